package routes

import (
	"github.com/gofiber/fiber/v2"

	"portal-webbase/config"
	"portal-webbase/internal/controllers"
	"portal-webbase/internal/repository"
	"portal-webbase/internal/services"
)

func SetupAuth(app *fiber.App, cfg config.Config) {
	svc := &services.AuthService{
		Users:  repository.NewTeacherRepository(),
		Secret: cfg.JWTSecret,
	}
	h := controllers.NewAuthHandler(svc)

	// POST /auth/login
	// {"email": "...", "password": "..."} -> {"token": ..., "user": ...}
	app.Post("/auth/login", h.Login)
}
