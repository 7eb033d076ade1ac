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

func SetupEnrollments(app *fiber.App, client *mongo.Client, cfg config.Config) {
	svc := &services.EnrollmentService{
		Client:   client,
		Teachers: repository.NewTeacherRepository(),
		Students: repository.NewStudentRepository(),
		Sections: repository.NewSectionRepository(),
		Sessions: repository.NewSessionRepository(),
	}
	h := controllers.NewEnrollmentHandler(svc)

	enrollments := app.Group("/enrollments", middleware.RequireJWT(cfg.JWTSecret))

	// POST /enrollments
	// A student joins a section with the teacher-issued credentials.
	enrollments.Post("/", middleware.RequireRole(models.RoleStudent, models.RoleAdmin), h.EnrollStudent)

	// GET /enrollments/student/:id
	enrollments.Get("/student/:id", h.MyEnrollments)
}
