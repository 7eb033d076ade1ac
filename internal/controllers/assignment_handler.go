package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"portal-webbase/dto"
	"portal-webbase/internal/services"
)

type AssignmentHandler struct {
	Assign   *services.AssignmentService
	Unassign *services.UnassignService
}

func NewAssignmentHandler(assign *services.AssignmentService, unassign *services.UnassignService) *AssignmentHandler {
	return &AssignmentHandler{Assign: assign, Unassign: unassign}
}

// AssignTeacher godoc
// @Summary      Assign a teacher to sections
// @Description  Claims sections for a subject and creates join credentials
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AssignTeacherReq  true  "Assignment data"
// @Success      201   {object}  services.AssignmentSummary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /assignments [post]
func (h *AssignmentHandler) AssignTeacher(c *fiber.Ctx) error {
	var req dto.AssignTeacherReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := dto.Validate(&req); err != nil {
		return writeErr(c, err)
	}
	teacherID, err := bson.ObjectIDFromHex(req.TeacherID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid teacher id")
	}
	classID, err := bson.ObjectIDFromHex(req.ClassID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid class id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
	defer cancel()

	summary, err := h.Assign.AssignTeacher(ctx, teacherID, classID, req.Subject, req.Sections, req.Username, req.Password)
	if err != nil {
		return writeErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "teacher assigned",
		"summary": summary,
	})
}

// UnassignTeacher godoc
// @Summary      Unassign a teacher from sections
// @Description  Reverses the assignment and cascades enrollment cleanup
// @Tags         assignments
// @Produce      json
// @Param        teacherId path  string true "Teacher ID"
// @Param        classId   path  string true "Class ID"
// @Param        sections  query string true "Comma-delimited section list"
// @Param        subject   query string true "Subject"
// @Success      200 {object} services.UnassignSummary
// @Router       /assignments/{teacherId}/{classId} [delete]
func (h *AssignmentHandler) UnassignTeacher(c *fiber.Ctx) error {
	teacherID, err := bson.ObjectIDFromHex(c.Params("teacherId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid teacher id")
	}
	classID, err := bson.ObjectIDFromHex(c.Params("classId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid class id")
	}
	sections := c.Query("sections")
	subject := c.Query("subject")
	if subject == "" {
		return fiber.NewError(fiber.StatusBadRequest, "subject is required")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	summary, err := h.Unassign.Unassign(ctx, teacherID, classID, sections, subject)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "teacher unassigned", "summary": summary})
}

// RepairCounters godoc
// @Summary      Recompute denormalized enrollment counters
// @Tags         assignments
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /maintenance/repair-counters [post]
func (h *AssignmentHandler) RepairCounters(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	students, sections, err := h.Unassign.RepairCounters(ctx)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{
		"message":        "counters reconciled",
		"students_fixed": students,
		"sections_fixed": sections,
	})
}

// MyAssignments godoc
// @Summary      List a teacher's class assignments
// @Tags         assignments
// @Produce      json
// @Param        id path string true "Teacher ID"
// @Success      200 {object} map[string]interface{}
// @Router       /assignments/teacher/{id} [get]
func (h *AssignmentHandler) MyAssignments(c *fiber.Ctx) error {
	teacherID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid teacher id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	teacher, err := h.Assign.Teachers.FindByID(ctx, teacherID)
	if err != nil {
		return writeErr(c, err)
	}
	if teacher == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "teacher not found"})
	}
	return c.JSON(fiber.Map{"assignments": teacher.ClassAssignments})
}
