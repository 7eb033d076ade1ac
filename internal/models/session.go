package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ActivityLimit caps the embedded activity log so the session document
// cannot grow without bound.
const ActivityLimit = 1000

type ActivityLogEntry struct {
	Type        string    `bson:"type" json:"type"`
	Description string    `bson:"description" json:"description"`
	Details     bson.M    `bson:"details,omitempty" json:"details,omitempty"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
}

// SessionSnapshot is the point-in-time backup payload captured when a
// session is backed up or ended.
type SessionSnapshot struct {
	BackupID             string    `bson:"backup_id" json:"backup_id"`
	BackupAt             time.Time `bson:"backup_at" json:"backup_at"`
	TeacherCount         int64     `bson:"teacher_count" json:"teacher_count"`
	StudentCount         int64     `bson:"student_count" json:"student_count"`
	ClassCount           int64     `bson:"class_count" json:"class_count"`
	ClassSectionCount    int64     `bson:"class_section_count" json:"class_section_count"`
	RegistrationRequests int64     `bson:"registration_requests" json:"registration_requests"`

	Classes       []Class        `bson:"classes,omitempty" json:"classes,omitempty"`
	ClassSections []ClassSection `bson:"class_sections,omitempty" json:"class_sections,omitempty"`

	Activities []ActivityLogEntry `bson:"activities,omitempty" json:"activities,omitempty"`
}

// Session is one academic term. At most one session is active system-wide;
// the invariant is enforced by the fixed-id pointer document below.
type Session struct {
	ID          bson.ObjectID      `bson:"_id,omitempty" json:"_id,omitempty"`
	SessionType string             `bson:"session_type" json:"session_type"`
	Year        int                `bson:"year" json:"year"`
	StartDate   time.Time          `bson:"start_date" json:"start_date"`
	EndDate     *time.Time         `bson:"end_date" json:"end_date"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	Activities  []ActivityLogEntry `bson:"activities" json:"activities"`
	SessionData *SessionSnapshot   `bson:"session_data,omitempty" json:"session_data,omitempty"`
}

// ActiveSessionPointerID is the fixed _id of the singleton pointer document
// in the session_pointer collection. Claiming it atomically is what makes
// concurrent start() calls safe.
const ActiveSessionPointerID = "active_session"

type ActiveSessionPointer struct {
	ID        string        `bson:"_id" json:"_id"`
	SessionID bson.ObjectID `bson:"session_id" json:"session_id"`
	ClaimedAt time.Time     `bson:"claimed_at" json:"claimed_at"`
}
