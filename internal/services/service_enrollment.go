package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/crypto/bcrypt"

	"portal-webbase/internal/apperrors"
	"portal-webbase/internal/models"
	repo "portal-webbase/internal/repository"
	"portal-webbase/internal/utils"
)

type EnrollmentService struct {
	Client   *mongo.Client
	Teachers *repo.TeacherRepository
	Students *repo.StudentRepository
	Sections *repo.SectionRepository
	Sessions *repo.SessionRepository
}

type EnrollmentSummary struct {
	StudentID      bson.ObjectID `json:"student_id"`
	ClassSectionID bson.ObjectID `json:"class_section_id"`
	ClassName      string        `json:"class_name"`
	Subject        string        `json:"subject"`
	Section        string        `json:"section"`
	EnrolledAt     time.Time     `json:"enrolled_at"`
}

// EnrollStudent resolves the join credentials to a class section and
// records the enrollment on both sides atomically. Every step of the
// resolution chain fails with its own reason; the reasons are contract,
// not decoration.
func (s *EnrollmentService) EnrollStudent(ctx context.Context, studentID bson.ObjectID, username, rawPassword string) (*EnrollmentSummary, error) {
	student, err := s.Students.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperrors.NewNotFound("student", "student not found")
	}

	teacher, err := s.Teachers.FindByCredentialUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if teacher == nil {
		return nil, apperrors.NewAuth("no class found for these credentials")
	}

	var assignment *models.ClassAssignment
	for i := range teacher.ClassAssignments {
		if utils.EqualFoldTrim(teacher.ClassAssignments[i].ClassCredentials.Username, username) {
			assignment = &teacher.ClassAssignments[i]
			break
		}
	}
	if assignment == nil {
		return nil, apperrors.NewAuth("assignment not found for these credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(assignment.ClassCredentials.Password), []byte(rawPassword)); err != nil {
		return nil, apperrors.NewAuth("invalid class password")
	}

	semester := utils.NormalizeSemester(student.Semester)

	section, err := s.Sections.FindEnrollable(ctx, assignment.ClassID, student.Program, semester, student.Section, assignment.Subject)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, apperrors.NewNotFound("class_section",
			fmt.Sprintf("no class section for %s semester %s section %s in %s",
				student.Program, semester, student.Section, assignment.Subject))
	}

	for _, e := range student.Enrollments {
		if e.ClassSectionID == section.ID {
			return nil, apperrors.NewConflict("student is already enrolled in this class section")
		}
	}

	now := time.Now().UTC()
	enrollment := models.Enrollment{
		ClassSectionID: section.ID,
		ClassID:        assignment.ClassID,
		Subject:        assignment.Subject,
		Program:        student.Program,
		Semester:       semester,
		Section:        student.Section,
		EnrolledAt:     now,
	}

	err = repo.WithTxnRetry(ctx, s.Client, func(sc context.Context) error {
		if err := s.Students.PushEnrollment(sc, student.ID, enrollment); err != nil {
			return err
		}
		return s.Sections.AddStudent(sc, section.ID, student.ID)
	})
	if err != nil {
		return nil, err
	}

	logActivity(ctx, s.Sessions, "student_enrolled",
		fmt.Sprintf("%s %s enrolled in %s (%s/%s)", student.FirstName, student.LastName, assignment.ClassDisplayName, assignment.Subject, student.Section),
		bson.M{"student_id": student.ID, "class_section_id": section.ID},
	)

	return &EnrollmentSummary{
		StudentID:      student.ID,
		ClassSectionID: section.ID,
		ClassName:      assignment.ClassDisplayName,
		Subject:        assignment.Subject,
		Section:        student.Section,
		EnrolledAt:     now,
	}, nil
}
