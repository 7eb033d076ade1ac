package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"portal-webbase/dto"
	repo "portal-webbase/internal/repository"
	"portal-webbase/internal/services"
)

type ClassHandler struct {
	Service  *services.ClassService
	Sections *repo.SectionRepository
}

func NewClassHandler(svc *services.ClassService, sections *repo.SectionRepository) *ClassHandler {
	return &ClassHandler{Service: svc, Sections: sections}
}

// CreateClass godoc
// @Summary      Create a class
// @Description  Creates the class template and one unbound section per code
// @Tags         classes
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateClassReq  true  "Class data"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /classes [post]
func (h *ClassHandler) CreateClass(c *fiber.Ctx) error {
	var req dto.CreateClassReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := dto.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	class, err := h.Service.CreateClass(ctx, req.Program, req.Semester, req.Sections, req.Subjects)
	if err != nil {
		return writeErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "class created",
		"class_id": class.ID,
		"class":    class,
	})
}

// ListClasses godoc
// @Summary      List classes
// @Tags         classes
// @Produce      json
// @Success      200 {array} models.Class
// @Router       /classes [get]
func (h *ClassHandler) ListClasses(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	classes, err := h.Service.Classes.FindAll(ctx)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"classes": classes})
}

// GetClass godoc
// @Summary      Get a class with its sections
// @Tags         classes
// @Produce      json
// @Param        id path string true "Class ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} dto.ErrorResponse
// @Router       /classes/{id} [get]
func (h *ClassHandler) GetClass(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid class id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	class, err := h.Service.Classes.FindByID(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	if class == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "class not found"})
	}
	sections, err := h.Sections.FindByClass(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"class": class, "sections": sections})
}

// DeleteClass godoc
// @Summary      Delete a class and cascade related data
// @Tags         classes
// @Produce      json
// @Param        id path string true "Class ID"
// @Success      200 {object} services.DeleteClassSummary
// @Router       /classes/{id} [delete]
func (h *ClassHandler) DeleteClass(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid class id")
	}

	// the cascade walks every teacher and student; give it room
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	summary, err := h.Service.DeleteClass(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"message": summary.Message, "summary": summary})
}
