package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"portal-webbase/internal/apperrors"
	"portal-webbase/internal/cursor"
	"portal-webbase/internal/models"
	repo "portal-webbase/internal/repository"
	"portal-webbase/internal/utils"
)

type SessionService struct {
	Client        *mongo.Client
	Sessions      *repo.SessionRepository
	Teachers      *repo.TeacherRepository
	Students      *repo.StudentRepository
	Classes       *repo.ClassRepository
	Sections      *repo.SectionRepository
	Registrations *repo.RegistrationRepository
}

// Start opens a new academic session. The single-active invariant rests on
// the atomic pointer claim, not on a find-then-insert check.
func (s *SessionService) Start(ctx context.Context, sessionType string, year int) (*models.Session, error) {
	sessionType = utils.CanonicalVocab(utils.SessionTypes, sessionType)
	if sessionType == "" {
		return nil, apperrors.NewValidation("unknown session type")
	}
	if year < 2000 || year > 2100 {
		return nil, apperrors.NewValidation("year out of range")
	}

	session := &models.Session{
		ID:          bson.NewObjectID(),
		SessionType: sessionType,
		Year:        year,
		StartDate:   time.Now().UTC(),
		IsActive:    true,
		Activities:  []models.ActivityLogEntry{},
	}

	claimed, err := s.Sessions.ClaimActive(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, apperrors.NewConflict("a session is already active, end it first")
	}

	if err := s.Sessions.Insert(ctx, session); err != nil {
		// give the pointer back so a failed insert cannot wedge the system
		_ = s.Sessions.ReleaseActive(ctx, session.ID)
		return nil, err
	}

	logActivity(ctx, s.Sessions, "session_started",
		fmt.Sprintf("%s %d session started", sessionType, year), nil)
	return session, nil
}

// Status returns the active session, or nil when none is running.
func (s *SessionService) Status(ctx context.Context) (*models.Session, error) {
	return s.Sessions.FindActive(ctx)
}

func (s *SessionService) LogActivity(ctx context.Context, kind, description string, details bson.M) error {
	active, err := s.Sessions.FindActive(ctx)
	if err != nil {
		return err
	}
	if active == nil {
		return apperrors.NewNotFound("session", "no active session")
	}
	entry := models.ActivityLogEntry{
		Type:        kind,
		Description: description,
		Details:     details,
		Timestamp:   time.Now().UTC(),
	}
	return s.Sessions.PushActivity(ctx, active.ID, entry)
}

// buildSnapshot captures current counts and collections plus the activity
// log of the active session.
func (s *SessionService) buildSnapshot(ctx context.Context, active *models.Session) (*models.SessionSnapshot, error) {
	teacherCount, err := s.Teachers.Count(ctx)
	if err != nil {
		return nil, err
	}
	studentCount, err := s.Students.Count(ctx)
	if err != nil {
		return nil, err
	}
	classCount, err := s.Classes.Count(ctx)
	if err != nil {
		return nil, err
	}
	sectionCount, err := s.Sections.Count(ctx)
	if err != nil {
		return nil, err
	}
	regCount, err := s.Registrations.Count(ctx)
	if err != nil {
		return nil, err
	}
	classes, err := s.Classes.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sections, err := s.Sections.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return &models.SessionSnapshot{
		BackupID:             uuid.NewString(),
		BackupAt:             time.Now().UTC(),
		TeacherCount:         teacherCount,
		StudentCount:         studentCount,
		ClassCount:           classCount,
		ClassSectionCount:    sectionCount,
		RegistrationRequests: regCount,
		Classes:              classes,
		ClassSections:        sections,
		Activities:           active.Activities,
	}, nil
}

// Backup captures a point-in-time snapshot of the active session and logs
// a manual_backup activity with the counts. The snapshot is returned to
// the caller; only the activity entry is persisted.
func (s *SessionService) Backup(ctx context.Context) (*models.SessionSnapshot, error) {
	active, err := s.Sessions.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, apperrors.NewNotFound("session", "no active session")
	}

	snapshot, err := s.buildSnapshot(ctx, active)
	if err != nil {
		return nil, err
	}

	entry := models.ActivityLogEntry{
		Type:        "manual_backup",
		Description: fmt.Sprintf("manual backup %s", snapshot.BackupID),
		Details: bson.M{
			"backup_id":             snapshot.BackupID,
			"teacher_count":         snapshot.TeacherCount,
			"student_count":         snapshot.StudentCount,
			"class_count":           snapshot.ClassCount,
			"class_section_count":   snapshot.ClassSectionCount,
			"registration_requests": snapshot.RegistrationRequests,
		},
		Timestamp: snapshot.BackupAt,
	}
	if err := s.Sessions.PushActivity(ctx, active.ID, entry); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// End closes the active session, storing the closing snapshot and
// releasing the pointer in one transaction.
func (s *SessionService) End(ctx context.Context) (*models.Session, error) {
	active, err := s.Sessions.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, apperrors.NewNotFound("session", "no active session")
	}

	snapshot, err := s.buildSnapshot(ctx, active)
	if err != nil {
		return nil, err
	}

	endedAt := time.Now().UTC()
	err = repo.WithTxnRetry(ctx, s.Client, func(sc context.Context) error {
		if err := s.Sessions.End(sc, active.ID, snapshot, endedAt); err != nil {
			return err
		}
		return s.Sessions.ReleaseActive(sc, active.ID)
	})
	if err != nil {
		return nil, err
	}

	active.IsActive = false
	active.EndDate = &endedAt
	active.SessionData = snapshot
	return active, nil
}

// Delete hard-deletes a historical session. The active one is protected.
func (s *SessionService) Delete(ctx context.Context, sessionID bson.ObjectID) error {
	pointer, err := s.Sessions.ActivePointer(ctx)
	if err != nil {
		return err
	}
	if pointer != nil && pointer.SessionID == sessionID {
		return apperrors.NewConflict("session is active, end it first")
	}

	found, err := s.Sessions.Delete(ctx, sessionID)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NewNotFound("session", "session not found")
	}
	return nil
}

// Backups lists past sessions that carry snapshot data.
func (s *SessionService) Backups(ctx context.Context) ([]models.Session, error) {
	return s.Sessions.List(ctx, bson.M{"session_data": bson.M{"$ne": nil}, "is_active": false}, 100)
}

// ListSessionsPage returns one page of sessions newest-first, with a
// cursor for the next page when more remain.
func (s *SessionService) ListSessionsPage(ctx context.Context, cursorStr string, limit int64) ([]models.Session, *string, error) {
	filter := bson.M{}
	if cursorStr != "" {
		t, oid, err := cursor.DecodeSessionCursor(cursorStr)
		if err != nil {
			return nil, nil, apperrors.NewValidation("invalid cursor")
		}
		filter["$or"] = []bson.M{
			{"start_date": bson.M{"$lt": t}},
			{"start_date": t, "_id": bson.M{"$lt": oid}},
		}
	}

	sessions, err := s.Sessions.List(ctx, filter, limit+1)
	if err != nil {
		return nil, nil, err
	}
	if int64(len(sessions)) > limit {
		sessions = sessions[:limit]
		last := sessions[len(sessions)-1]
		next := cursor.EncodeSessionCursor(last.StartDate, last.ID)
		return sessions, &next, nil
	}
	return sessions, nil, nil
}

type RestorePreview struct {
	SessionID   bson.ObjectID `json:"session_id"`
	SessionType string        `json:"session_type"`
	Year        int           `json:"year"`
	HasSnapshot bool          `json:"has_snapshot"`
	BackupAt    *time.Time    `json:"backup_at,omitempty"`
	Counts      bson.M        `json:"counts,omitempty"`
	Restorable  bool          `json:"restorable"`
	Message     string        `json:"message"`
}

// Preview describes what a restore of the given session would touch.
// Read-only, always allowed for inactive sessions.
func (s *SessionService) Preview(ctx context.Context, sessionID bson.ObjectID) (*RestorePreview, error) {
	target, err := s.Sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperrors.NewNotFound("session", "session not found")
	}
	if target.IsActive {
		return nil, apperrors.NewConflict("cannot preview the active session")
	}

	preview := &RestorePreview{
		SessionID:   target.ID,
		SessionType: target.SessionType,
		Year:        target.Year,
		HasSnapshot: target.SessionData != nil,
		Restorable:  false,
		Message:     "data restoration is disabled for safety; preview only",
	}
	if target.SessionData != nil {
		preview.BackupAt = &target.SessionData.BackupAt
		preview.Counts = bson.M{
			"teachers":              target.SessionData.TeacherCount,
			"students":              target.SessionData.StudentCount,
			"classes":               target.SessionData.ClassCount,
			"class_sections":        target.SessionData.ClassSectionCount,
			"registration_requests": target.SessionData.RegistrationRequests,
		}
	}
	return preview, nil
}

// Restore validates the restore preconditions but deliberately performs no
// data mutation. The guard against destructive overwrite is the feature.
func (s *SessionService) Restore(ctx context.Context, sessionID bson.ObjectID) (*RestorePreview, error) {
	pointer, err := s.Sessions.ActivePointer(ctx)
	if err != nil {
		return nil, err
	}
	if pointer != nil {
		return nil, apperrors.NewConflict("a session is active, end it before restoring")
	}

	preview, err := s.Preview(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !preview.HasSnapshot {
		return nil, apperrors.NewValidation("session has no snapshot data to restore")
	}
	preview.Message = "restore request validated; data restoration is disabled for safety and no collections were modified"
	return preview, nil
}
