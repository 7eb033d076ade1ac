package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"portal-webbase/dto"
	"portal-webbase/internal/models"
	"portal-webbase/internal/services"
)

type RegistrationHandler struct {
	Service *services.RegistrationService
}

func NewRegistrationHandler(svc *services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{Service: svc}
}

// Submit godoc
// @Summary      File a registration request
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegistrationReq  true  "Applicant data"
// @Success      201   {object}  models.RegistrationRequest
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /registrations [post]
func (h *RegistrationHandler) Submit(c *fiber.Ctx) error {
	var req dto.RegistrationReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := dto.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	created, err := h.Service.Submit(ctx, &models.RegistrationRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		StudentID: req.StudentID,
		Program:   req.Program,
		Semester:  req.Semester,
		Section:   req.Section,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "request filed", "request": created})
}

// Pending godoc
// @Summary      List pending registration requests
// @Tags         registrations
// @Produce      json
// @Success      200 {array} models.RegistrationRequest
// @Router       /registrations/pending [get]
func (h *RegistrationHandler) Pending(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	requests, err := h.Service.Pending(ctx)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"requests": requests})
}

// Approve godoc
// @Summary      Approve a request and create the student
// @Tags         registrations
// @Produce      json
// @Param        id path string true "Request ID"
// @Success      200 {object} models.Student
// @Router       /registrations/{id}/approve [post]
func (h *RegistrationHandler) Approve(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	student, err := h.Service.Approve(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "request approved", "student": student})
}

// Reject godoc
// @Summary      Reject a pending request
// @Tags         registrations
// @Produce      json
// @Param        id path string true "Request ID"
// @Success      200 {object} map[string]interface{}
// @Router       /registrations/{id}/reject [post]
func (h *RegistrationHandler) Reject(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.Service.Reject(ctx, id); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "request rejected"})
}
