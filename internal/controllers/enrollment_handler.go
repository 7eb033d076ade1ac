package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"portal-webbase/dto"
	"portal-webbase/internal/services"
)

type EnrollmentHandler struct {
	Service *services.EnrollmentService
}

func NewEnrollmentHandler(svc *services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{Service: svc}
}

// EnrollStudent godoc
// @Summary      Enroll a student via section credentials
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Param        body  body      dto.EnrollReq  true  "Join credentials"
// @Success      201   {object}  services.EnrollmentSummary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /enrollments [post]
func (h *EnrollmentHandler) EnrollStudent(c *fiber.Ctx) error {
	var req dto.EnrollReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := dto.Validate(&req); err != nil {
		return writeErr(c, err)
	}
	studentID, err := bson.ObjectIDFromHex(req.StudentID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid student id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
	defer cancel()

	summary, err := h.Service.EnrollStudent(ctx, studentID, req.Username, req.Password)
	if err != nil {
		return writeErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "enrolled",
		"summary": summary,
	})
}

// MyEnrollments godoc
// @Summary      List a student's enrollments
// @Tags         enrollments
// @Produce      json
// @Param        id path string true "Student ID"
// @Success      200 {object} map[string]interface{}
// @Router       /enrollments/student/{id} [get]
func (h *EnrollmentHandler) MyEnrollments(c *fiber.Ctx) error {
	studentID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid student id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	student, err := h.Service.Students.FindByID(ctx, studentID)
	if err != nil {
		return writeErr(c, err)
	}
	if student == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "student not found"})
	}
	return c.JSON(fiber.Map{
		"enrollments":      student.Enrollments,
		"enrollment_count": student.EnrollmentCount,
	})
}
