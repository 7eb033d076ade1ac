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

func SetupSessions(app *fiber.App, client *mongo.Client, cfg config.Config) {
	svc := &services.SessionService{
		Client:        client,
		Sessions:      repository.NewSessionRepository(),
		Teachers:      repository.NewTeacherRepository(),
		Students:      repository.NewStudentRepository(),
		Classes:       repository.NewClassRepository(),
		Sections:      repository.NewSectionRepository(),
		Registrations: repository.NewRegistrationRepository(),
	}
	h := controllers.NewSessionHandler(svc)

	sessions := app.Group("/sessions", middleware.RequireJWT(cfg.JWTSecret))
	admin := middleware.RequireRole(models.RoleAdmin)

	// Any signed-in user can see which session is running and page
	// through the history.
	sessions.Get("/status", h.Status)
	sessions.Get("/", h.ListSessions)

	// Lifecycle control is admin territory. At most one session is
	// active at a time; /start loses the race with 409.
	sessions.Post("/start", admin, h.Start)
	sessions.Post("/end", admin, h.End)
	sessions.Post("/activities", admin, h.LogActivity)
	sessions.Post("/backup", admin, h.Backup)
	sessions.Get("/backups", admin, h.Backups)
	sessions.Get("/statistics", admin, h.Statistics)
	sessions.Delete("/:id", admin, h.Delete)

	// GET previews what a restore would touch; POST validates the
	// request but never writes, restore stays disabled.
	sessions.Get("/:id/restore", admin, h.RestorePreview)
	sessions.Post("/:id/restore", admin, h.Restore)
}
