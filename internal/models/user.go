package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// ClassCredentials are the student-facing join credentials for one
// assignment. Password always holds a bcrypt hash, never plaintext.
type ClassCredentials struct {
	Username string `bson:"username" json:"username"`
	Password string `bson:"password" json:"-"`
}

// ClassAssignment is a teacher's claim over a set of sections for one
// subject within one class.
type ClassAssignment struct {
	ClassID          bson.ObjectID    `bson:"class_id" json:"class_id"`
	Sections         []string         `bson:"sections" json:"sections"`
	Subject          string           `bson:"subject" json:"subject"`
	ClassDisplayName string           `bson:"class_display_name" json:"class_display_name"`
	ClassCredentials ClassCredentials `bson:"class_credentials" json:"class_credentials"`
	AssignedAt       time.Time        `bson:"assigned_at" json:"assigned_at"`
}

type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FirstName    string        `bson:"firstname" json:"firstname"`
	LastName     string        `bson:"lastname" json:"lastname"`
	Email        string        `bson:"email" json:"email"`
	Role         string        `bson:"role" json:"role"`
	PasswordHash string        `bson:"password_hash,omitempty" json:"-"`

	// teacher only
	ClassAssignments []ClassAssignment `bson:"class_assignments,omitempty" json:"class_assignments,omitempty"`

	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
