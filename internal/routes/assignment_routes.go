package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"portal-webbase/config"
	"portal-webbase/internal/controllers"
	"portal-webbase/internal/mailer"
	"portal-webbase/internal/middleware"
	"portal-webbase/internal/models"
	"portal-webbase/internal/repository"
	"portal-webbase/internal/services"
)

func SetupAssignments(app *fiber.App, client *mongo.Client, cfg config.Config) {
	teachers := repository.NewTeacherRepository()
	classes := repository.NewClassRepository()
	sections := repository.NewSectionRepository()
	students := repository.NewStudentRepository()
	sessions := repository.NewSessionRepository()

	assign := &services.AssignmentService{
		Client:   client,
		Teachers: teachers,
		Classes:  classes,
		Sections: sections,
		Sessions: sessions,
		Mail:     mailer.New(cfg),
	}
	unassign := &services.UnassignService{
		Teachers: teachers,
		Classes:  classes,
		Sections: sections,
		Students: students,
		Sessions: sessions,
	}
	h := controllers.NewAssignmentHandler(assign, unassign)

	authed := app.Group("/assignments", middleware.RequireJWT(cfg.JWTSecret))

	// POST /assignments
	// Claims sections of a class for a teacher and mints the join
	// credentials students enroll with.
	authed.Post("/", middleware.RequireRole(models.RoleAdmin), h.AssignTeacher)

	// DELETE /assignments/:teacherId/:classId?subject=OOP&sections=A,B
	// Reverses the claim and drops the matching enrollments.
	authed.Delete("/:teacherId/:classId", middleware.RequireRole(models.RoleAdmin), h.UnassignTeacher)

	// GET /assignments/teacher/:id
	authed.Get("/teacher/:id", middleware.RequireRole(models.RoleAdmin, models.RoleTeacher), h.MyAssignments)

	// POST /maintenance/repair-counters
	// Recomputes enrolled_students and enrollment_count from the arrays.
	app.Post("/maintenance/repair-counters",
		middleware.RequireJWT(cfg.JWTSecret),
		middleware.RequireRole(models.RoleAdmin),
		h.RepairCounters,
	)
}
