package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Class is a program+semester template defining the sections and subjects
// available for assignment.
type Class struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Program   string        `bson:"program" json:"program"`
	ClassName string        `bson:"class_name" json:"class_name"`
	Semester  int           `bson:"semester" json:"semester"`
	Sections  []string      `bson:"sections" json:"sections"`
	Subjects  []string      `bson:"subjects" json:"subjects"`
	CreatedAt time.Time     `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time     `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// ClassSection is the enrollable unit: one subject taught to one section of
// one class. Subject stays nil until a teacher assignment binds it.
type ClassSection struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ClassID  bson.ObjectID `bson:"class_id" json:"class_id"`
	Section  string        `bson:"section" json:"section"`
	Subject  *string       `bson:"subject" json:"subject"`
	Program  string        `bson:"program" json:"program"`
	Semester string        `bson:"semester" json:"semester"`
	Room     string        `bson:"room,omitempty" json:"room,omitempty"`

	AssignedTeacher *bson.ObjectID `bson:"assigned_teacher" json:"assigned_teacher"`
	AssignedAt      *time.Time     `bson:"assigned_at" json:"assigned_at"`

	Students []bson.ObjectID `bson:"students" json:"students"`
	// EnrolledStudents mirrors len(students); kept in sync transactionally
	// or by the reconciliation pass.
	EnrolledStudents int `bson:"enrolled_students" json:"enrolled_students"`

	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
