package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"portal-webbase/internal/models"
	repo "portal-webbase/internal/repository"
)

// logActivity appends an entry to the active session's log. Best-effort:
// engines must not fail because no session is active or the log write
// raced a session end.
func logActivity(ctx context.Context, sessions *repo.SessionRepository, kind, description string, details bson.M) {
	active, err := sessions.ActivePointer(ctx)
	if err != nil || active == nil {
		return
	}
	entry := models.ActivityLogEntry{
		Type:        kind,
		Description: description,
		Details:     details,
		Timestamp:   time.Now().UTC(),
	}
	if err := sessions.PushActivity(ctx, active.SessionID, entry); err != nil {
		log.Println("activity log write skipped:", err)
	}
}
