package services

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"portal-webbase/database"
	"portal-webbase/internal/apperrors"
	"portal-webbase/internal/models"
	repo "portal-webbase/internal/repository"
)

// Needs a replica-set MongoDB because the engines run multi-document
// transactions. Set MONGO_TEST_URI to enable.
func connectTestDB(t *testing.T) *mongo.Client {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	database.Client = client
	database.DB = client.Database("portal_test")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.DB.Drop(ctx); err != nil {
		t.Fatalf("drop test db: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})
	return client
}

func seedTeacher(t *testing.T, teachers *repo.TeacherRepository) *models.User {
	t.Helper()
	u := &models.User{
		ID:        bson.NewObjectID(),
		FirstName: "Sana",
		LastName:  "Khan",
		Email:     "sana.khan@portal.edu",
		Role:      models.RoleTeacher,
		CreatedAt: time.Now().UTC(),
	}
	if err := teachers.InsertUser(context.Background(), u); err != nil {
		t.Fatalf("seed teacher: %v", err)
	}
	return u
}

func seedStudent(t *testing.T, students *repo.StudentRepository, email, studentID, section string) *models.Student {
	t.Helper()
	st := &models.Student{
		ID:          bson.NewObjectID(),
		FirstName:   "Ali",
		LastName:    "Raza",
		Email:       email,
		StudentID:   studentID,
		Program:     "BSCS",
		Semester:    "1st",
		Section:     section,
		Enrollments: []models.Enrollment{},
		CreatedAt:   time.Now().UTC(),
	}
	if err := students.Insert(context.Background(), st); err != nil {
		t.Fatalf("seed student: %v", err)
	}
	return st
}

func TestAssignEnrollUnassignFlow(t *testing.T) {
	client := connectTestDB(t)
	ctx := context.Background()

	teachers := repo.NewTeacherRepository()
	classes := repo.NewClassRepository()
	sections := repo.NewSectionRepository()
	students := repo.NewStudentRepository()
	sessions := repo.NewSessionRepository()

	classSvc := &ClassService{
		Client: client, Classes: classes, Sections: sections,
		Teachers: teachers, Students: students, Sessions: sessions,
	}
	assignSvc := &AssignmentService{
		Client: client, Teachers: teachers, Classes: classes,
		Sections: sections, Sessions: sessions,
	}
	enrollSvc := &EnrollmentService{
		Client: client, Teachers: teachers, Students: students,
		Sections: sections, Sessions: sessions,
	}
	unassignSvc := &UnassignService{
		Teachers: teachers, Classes: classes, Sections: sections,
		Students: students, Sessions: sessions,
	}

	teacher := seedTeacher(t, teachers)
	student := seedStudent(t, students, "ali.raza@portal.edu", "FA25-001", "A")

	class, err := classSvc.CreateClass(ctx, "bscs", 1, []string{"a", "b"}, []string{"Databases", "Math"})
	if err != nil {
		t.Fatalf("create class: %v", err)
	}
	if class.ClassName != "BSCS Semester 1" {
		t.Fatalf("class name = %q", class.ClassName)
	}

	summary, err := assignSvc.AssignTeacher(ctx, teacher.ID, class.ID, "databases", []string{"A", "B"}, "dbs-fall-a", "secret123")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if summary.Subject != "Databases" {
		t.Fatalf("subject = %q", summary.Subject)
	}

	// The same sections for the same subject cannot be claimed twice.
	_, err = assignSvc.AssignTeacher(ctx, teacher.ID, class.ID, "Databases", []string{"B"}, "other-user", "secret456")
	if !apperrors.IsConflict(err) {
		t.Fatalf("duplicate claim: err = %v, want conflict", err)
	}
	var conflict *apperrors.ConflictError
	if !errors.As(err, &conflict) || len(conflict.Sections) != 1 || conflict.Sections[0] != "B" {
		t.Fatalf("conflict should carry the colliding sections, got %+v", conflict)
	}

	t.Run("enroll", func(t *testing.T) {
		// Username matching ignores case.
		enr, err := enrollSvc.EnrollStudent(ctx, student.ID, "DBS-FALL-A", "secret123")
		if err != nil {
			t.Fatalf("enroll: %v", err)
		}
		if enr.Section != "A" || enr.Subject != "Databases" {
			t.Fatalf("enrollment = %+v", enr)
		}

		sec, err := sections.FindByID(ctx, enr.ClassSectionID)
		if err != nil || sec == nil {
			t.Fatalf("section lookup: %v", err)
		}
		if sec.EnrolledStudents != 1 || len(sec.Students) != 1 {
			t.Fatalf("section counter = %d, roster = %d", sec.EnrolledStudents, len(sec.Students))
		}

		st, _ := students.FindByID(ctx, student.ID)
		if st.EnrollmentCount != 1 || len(st.Enrollments) != 1 {
			t.Fatalf("student counter = %d, enrollments = %d", st.EnrollmentCount, len(st.Enrollments))
		}

		if _, err := enrollSvc.EnrollStudent(ctx, student.ID, "dbs-fall-a", "secret123"); !apperrors.IsConflict(err) {
			t.Fatalf("re-enroll: err = %v, want conflict", err)
		}
		if _, err := enrollSvc.EnrollStudent(ctx, student.ID, "dbs-fall-a", "wrong"); !apperrors.IsAuth(err) {
			t.Fatalf("bad password: err = %v, want auth", err)
		}
	})

	t.Run("unassign_cascades", func(t *testing.T) {
		res, err := unassignSvc.Unassign(ctx, teacher.ID, class.ID, "A,B", "Databases")
		if err != nil {
			t.Fatalf("unassign: %v", err)
		}
		if !res.AssignmentRemoved {
			t.Fatal("assignment should be removed")
		}
		if res.StudentsAffected != 1 {
			t.Fatalf("students affected = %d, want 1", res.StudentsAffected)
		}

		st, _ := students.FindByID(ctx, student.ID)
		if st.EnrollmentCount != 0 || len(st.Enrollments) != 0 {
			t.Fatalf("cascade left counter = %d, enrollments = %d", st.EnrollmentCount, len(st.Enrollments))
		}

		tch, _ := teachers.FindByID(ctx, teacher.ID)
		if len(tch.ClassAssignments) != 0 {
			t.Fatalf("teacher still holds %d assignments", len(tch.ClassAssignments))
		}
	})
}

func TestDeleteClassCascade(t *testing.T) {
	client := connectTestDB(t)
	ctx := context.Background()

	teachers := repo.NewTeacherRepository()
	classes := repo.NewClassRepository()
	sections := repo.NewSectionRepository()
	students := repo.NewStudentRepository()
	sessions := repo.NewSessionRepository()

	classSvc := &ClassService{
		Client: client, Classes: classes, Sections: sections,
		Teachers: teachers, Students: students, Sessions: sessions,
	}
	assignSvc := &AssignmentService{
		Client: client, Teachers: teachers, Classes: classes,
		Sections: sections, Sessions: sessions,
	}
	enrollSvc := &EnrollmentService{
		Client: client, Teachers: teachers, Students: students,
		Sections: sections, Sessions: sessions,
	}

	teacher := seedTeacher(t, teachers)
	first := seedStudent(t, students, "ali.raza@portal.edu", "FA25-001", "A")
	second := seedStudent(t, students, "sara.ali@portal.edu", "FA25-002", "B")

	class, err := classSvc.CreateClass(ctx, "BSCS", 1, []string{"A", "B"}, []string{"Databases"})
	if err != nil {
		t.Fatalf("create class: %v", err)
	}
	if _, err := assignSvc.AssignTeacher(ctx, teacher.ID, class.ID, "Databases", []string{"A", "B"}, "dbs-fa25", "secret123"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	for _, st := range []*models.Student{first, second} {
		if _, err := enrollSvc.EnrollStudent(ctx, st.ID, "dbs-fa25", "secret123"); err != nil {
			t.Fatalf("enroll %s: %v", st.StudentID, err)
		}
	}

	summary, err := classSvc.DeleteClass(ctx, class.ID)
	if err != nil {
		t.Fatalf("delete class: %v", err)
	}
	if !summary.ClassFound {
		t.Fatal("class should have been found")
	}
	if summary.StudentsAffected != 2 {
		t.Fatalf("students affected = %d, want 2", summary.StudentsAffected)
	}

	// Nothing may reference the class afterwards: no section documents,
	// no enrollments, no teacher assignments, counters at zero.
	left, err := sections.FindByClass(ctx, class.ID)
	if err != nil {
		t.Fatalf("sections after delete: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("delete left %d section documents", len(left))
	}
	for _, st := range []*models.Student{first, second} {
		got, _ := students.FindByID(ctx, st.ID)
		if len(got.Enrollments) != 0 || got.EnrollmentCount != 0 {
			t.Fatalf("%s still has %d enrollments, counter %d", st.StudentID, len(got.Enrollments), got.EnrollmentCount)
		}
	}
	tch, _ := teachers.FindByID(ctx, teacher.ID)
	if len(tch.ClassAssignments) != 0 {
		t.Fatalf("teacher still holds %d assignments", len(tch.ClassAssignments))
	}
	if gone, _ := classes.FindByID(ctx, class.ID); gone != nil {
		t.Fatal("class document should be gone")
	}

	// Deleting again still cleans related data and reports the class as
	// missing rather than failing.
	summary, err = classSvc.DeleteClass(ctx, class.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if summary.ClassFound {
		t.Fatal("second delete should not find the class")
	}
	if summary.Message != "class not found but related data cleaned" {
		t.Fatalf("message = %q", summary.Message)
	}
}

func TestSessionLifecycleSingleActive(t *testing.T) {
	client := connectTestDB(t)
	ctx := context.Background()

	svc := &SessionService{
		Client:        client,
		Sessions:      repo.NewSessionRepository(),
		Teachers:      repo.NewTeacherRepository(),
		Students:      repo.NewStudentRepository(),
		Classes:       repo.NewClassRepository(),
		Sections:      repo.NewSectionRepository(),
		Registrations: repo.NewRegistrationRepository(),
	}

	first, err := svc.Start(ctx, "Fall", 2025)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !first.IsActive {
		t.Fatal("started session should be active")
	}

	if _, err := svc.Start(ctx, "Spring", 2026); !apperrors.IsConflict(err) {
		t.Fatalf("second start: err = %v, want conflict", err)
	}

	if err := svc.Delete(ctx, first.ID); !apperrors.IsConflict(err) {
		t.Fatalf("delete active: err = %v, want conflict", err)
	}

	ended, err := svc.End(ctx)
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if ended.IsActive || ended.EndDate == nil || ended.SessionData == nil {
		t.Fatalf("ended session state: %+v", ended)
	}

	// The slot is free again.
	second, err := svc.Start(ctx, "Spring", 2026)
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if second.ID == first.ID {
		t.Fatal("restart reused the old session id")
	}

	// Inert restore: validated but nothing written.
	preview, err := svc.Preview(ctx, first.ID)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !preview.HasSnapshot {
		t.Fatal("ended session should carry a snapshot")
	}
}
