package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Enrollment is a student's membership in one class section, created via
// the section's join credentials.
type Enrollment struct {
	ClassSectionID bson.ObjectID `bson:"class_section_id" json:"class_section_id"`
	ClassID        bson.ObjectID `bson:"class_id" json:"class_id"`
	Subject        string        `bson:"subject" json:"subject"`
	Program        string        `bson:"program" json:"program"`
	Semester       string        `bson:"semester" json:"semester"`
	Section        string        `bson:"section" json:"section"`
	EnrolledAt     time.Time     `bson:"enrolled_at" json:"enrolled_at"`
}

type Student struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FirstName string        `bson:"firstname" json:"firstname"`
	LastName  string        `bson:"lastname" json:"lastname"`
	Email     string        `bson:"email" json:"email"`
	StudentID string        `bson:"student_id" json:"student_id"`
	Program   string        `bson:"program" json:"program"`
	Semester  string        `bson:"semester" json:"semester"`
	Section   string        `bson:"section" json:"section"`

	Enrollments []Enrollment `bson:"enrollments" json:"enrollments"`
	// EnrollmentCount mirrors len(enrollments); kept in sync transactionally
	// or by the reconciliation pass.
	EnrollmentCount int `bson:"enrollment_count" json:"enrollment_count"`

	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
