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

func SetupClasses(app *fiber.App, client *mongo.Client, cfg config.Config) {
	sections := repository.NewSectionRepository()
	svc := &services.ClassService{
		Client:   client,
		Classes:  repository.NewClassRepository(),
		Sections: sections,
		Teachers: repository.NewTeacherRepository(),
		Students: repository.NewStudentRepository(),
		Sessions: repository.NewSessionRepository(),
	}
	h := controllers.NewClassHandler(svc, sections)

	classes := app.Group("/classes", middleware.RequireJWT(cfg.JWTSecret))

	// GET /classes and GET /classes/:id are open to any signed-in role.
	classes.Get("/", h.ListClasses)
	classes.Get("/:id", h.GetClass)

	// Creating and deleting a class is admin-only. Delete cascades into
	// teacher assignments and student enrollments.
	classes.Post("/", middleware.RequireRole(models.RoleAdmin), h.CreateClass)
	classes.Delete("/:id", middleware.RequireRole(models.RoleAdmin), h.DeleteClass)
}
