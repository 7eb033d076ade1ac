package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"portal-webbase/dto"
	"portal-webbase/internal/services"
)

type SessionHandler struct {
	Service *services.SessionService
}

func NewSessionHandler(svc *services.SessionService) *SessionHandler {
	return &SessionHandler{Service: svc}
}

// StartSession godoc
// @Summary      Start a new academic session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body      dto.StartSessionReq  true  "Session data"
// @Success      201   {object}  models.Session
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /sessions/start [post]
func (h *SessionHandler) Start(c *fiber.Ctx) error {
	var req dto.StartSessionReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := dto.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	session, err := h.Service.Start(ctx, req.SessionType, req.Year)
	if err != nil {
		return writeErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "session started",
		"session": session,
	})
}

// Status godoc
// @Summary      Current session status
// @Tags         sessions
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /sessions/status [get]
func (h *SessionHandler) Status(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	session, err := h.Service.Status(ctx)
	if err != nil {
		return writeErr(c, err)
	}
	if session == nil {
		return c.JSON(fiber.Map{"active": false})
	}
	return c.JSON(fiber.Map{"active": true, "session": session})
}

// Statistics godoc
// @Summary      Live aggregates for the active session
// @Tags         sessions
// @Produce      json
// @Success      200 {object} services.SessionStatistics
// @Failure      404 {object} dto.ErrorResponse
// @Router       /sessions/statistics [get]
func (h *SessionHandler) Statistics(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
	defer cancel()

	stats, err := h.Service.Statistics(ctx)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(stats)
}

// LogActivity godoc
// @Summary      Append an activity log entry to the active session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LogActivityReq  true  "Activity"
// @Success      201   {object}  map[string]interface{}
// @Router       /sessions/activities [post]
func (h *SessionHandler) LogActivity(c *fiber.Ctx) error {
	var req dto.LogActivityReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := dto.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.Service.LogActivity(ctx, req.Type, req.Description, bson.M(req.Details)); err != nil {
		return writeErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "activity logged"})
}

// Backup godoc
// @Summary      Capture a manual backup snapshot
// @Tags         sessions
// @Produce      json
// @Success      200 {object} models.SessionSnapshot
// @Failure      404 {object} dto.ErrorResponse
// @Router       /sessions/backup [post]
func (h *SessionHandler) Backup(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	snapshot, err := h.Service.Backup(ctx)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "backup captured", "snapshot": snapshot})
}

// Backups godoc
// @Summary      List ended sessions carrying snapshot data
// @Tags         sessions
// @Produce      json
// @Success      200 {array} models.Session
// @Router       /sessions/backups [get]
func (h *SessionHandler) Backups(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	sessions, err := h.Service.Backups(ctx)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"backups": sessions})
}

// End godoc
// @Summary      End the active session
// @Tags         sessions
// @Produce      json
// @Success      200 {object} models.Session
// @Router       /sessions/end [post]
func (h *SessionHandler) End(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	session, err := h.Service.End(ctx)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "session ended", "session": session})
}

// Delete godoc
// @Summary      Delete a historical session
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} map[string]interface{}
// @Failure      409 {object} dto.ErrorResponse
// @Router       /sessions/{id} [delete]
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.Service.Delete(ctx, id); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "session deleted"})
}

// RestorePreview godoc
// @Summary      Preview a restore without touching data
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} services.RestorePreview
// @Router       /sessions/{id}/restore [get]
func (h *SessionHandler) RestorePreview(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	preview, err := h.Service.Preview(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(preview)
}

// Restore godoc
// @Summary      Validate a restore request (restoration itself is disabled)
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} services.RestorePreview
// @Router       /sessions/{id}/restore [post]
func (h *SessionHandler) Restore(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.Service.Restore(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(result)
}

// ListSessions godoc
// @Summary      List sessions newest-first
// @Tags         sessions
// @Produce      json
// @Param        cursor query string false "Page cursor"
// @Success      200 {object} map[string]interface{}
// @Router       /sessions [get]
func (h *SessionHandler) ListSessions(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	sessions, next, err := h.Service.ListSessionsPage(ctx, c.Query("cursor"), 20)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(fiber.Map{"sessions": sessions, "next_cursor": next})
}
