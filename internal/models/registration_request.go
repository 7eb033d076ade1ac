package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	RegistrationPending  = "pending"
	RegistrationApproved = "approved"
	RegistrationRejected = "rejected"
)

// RegistrationRequest is a student's application to join the portal.
// Approval by an admin creates the Student document.
type RegistrationRequest struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FirstName string        `bson:"firstname" json:"firstname"`
	LastName  string        `bson:"lastname" json:"lastname"`
	Email     string        `bson:"email" json:"email"`
	StudentID string        `bson:"student_id" json:"student_id"`
	Program   string        `bson:"program" json:"program"`
	Semester  string        `bson:"semester" json:"semester"`
	Section   string        `bson:"section" json:"section"`
	Status    string        `bson:"status" json:"status"`
	CreatedAt time.Time     `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time     `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
