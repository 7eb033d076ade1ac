package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"portal-webbase/config"
	"portal-webbase/internal/controllers"
	"portal-webbase/internal/middleware"
	"portal-webbase/internal/models"
	"portal-webbase/internal/repository"
	"portal-webbase/internal/services"
)

func SetupRegistrations(app *fiber.App, client *mongo.Client, cfg config.Config) {
	svc := &services.RegistrationService{
		Client:        client,
		Registrations: repository.NewRegistrationRepository(),
		Students:      repository.NewStudentRepository(),
		Sessions:      repository.NewSessionRepository(),
	}
	h := controllers.NewRegistrationHandler(svc)

	// Applicants have no account yet, so filing a request is public.
	app.Post("/registrations", h.Submit)

	admin := app.Group("/registrations",
		middleware.RequireJWT(cfg.JWTSecret),
		middleware.RequireRole(models.RoleAdmin),
	)
	admin.Get("/pending", h.Pending)
	admin.Post("/:id/approve", h.Approve)
	admin.Post("/:id/reject", h.Reject)
}
