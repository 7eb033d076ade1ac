package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"portal-webbase/internal/apperrors"
	"portal-webbase/internal/models"
	repo "portal-webbase/internal/repository"
	"portal-webbase/internal/utils"
)

type ClassService struct {
	Client   *mongo.Client
	Classes  *repo.ClassRepository
	Sections *repo.SectionRepository
	Teachers *repo.TeacherRepository
	Students *repo.StudentRepository
	Sessions *repo.SessionRepository
}

type DeleteClassSummary struct {
	ClassFound         bool   `json:"class_found"`
	Message            string `json:"message"`
	AssignmentsRemoved int64  `json:"assignments_removed"`
	StudentsAffected   int64  `json:"students_affected"`
	SectionsDeleted    int64  `json:"sections_deleted"`
	StudentsReconciled int64  `json:"students_reconciled"`
}

// CreateClass creates the class template plus one unbound section document
// per section code, all in one transaction.
func (s *ClassService) CreateClass(ctx context.Context, program string, semester int, sections, subjects []string) (*models.Class, error) {
	program = utils.CanonicalVocab(utils.Programs, program)
	if program == "" {
		return nil, apperrors.NewValidation("unknown program")
	}
	if semester < 1 || semester > 8 {
		return nil, apperrors.NewValidation("semester must be between 1 and 8")
	}
	if len(sections) == 0 {
		return nil, apperrors.NewValidation("at least one section is required")
	}
	if len(subjects) == 0 {
		return nil, apperrors.NewValidation("at least one subject is required")
	}

	normSections := make([]string, 0, len(sections))
	for _, sec := range sections {
		code := utils.CanonicalVocab(utils.SectionCodes, sec)
		if code == "" {
			return nil, apperrors.NewValidation("unknown section code: %s", sec)
		}
		normSections = append(normSections, code)
	}
	normSubjects := make([]string, 0, len(subjects))
	for _, sub := range subjects {
		name := utils.CanonicalVocab(utils.Subjects, sub)
		if name == "" {
			return nil, apperrors.NewValidation("unknown subject: %s", sub)
		}
		normSubjects = append(normSubjects, name)
	}

	className := fmt.Sprintf("%s Semester %d", program, semester)
	existing, err := s.Classes.FindByName(ctx, className)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflict("class %q already exists", className)
	}

	now := time.Now().UTC()
	class := &models.Class{
		ID:        bson.NewObjectID(),
		Program:   program,
		ClassName: className,
		Semester:  semester,
		Sections:  normSections,
		Subjects:  normSubjects,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = repo.WithTxnRetry(ctx, s.Client, func(sc context.Context) error {
		if err := s.Classes.Insert(sc, class); err != nil {
			return err
		}
		for _, code := range normSections {
			section := &models.ClassSection{
				ID:               bson.NewObjectID(),
				ClassID:          class.ID,
				Section:          code,
				Subject:          nil,
				Program:          program,
				Semester:         strconv.Itoa(semester),
				Students:         []bson.ObjectID{},
				EnrolledStudents: 0,
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			if err := s.Sections.InsertSection(sc, section); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.NewConflict("class %q already exists", className)
		}
		return nil, err
	}

	logActivity(ctx, s.Sessions, "class_created",
		fmt.Sprintf("class %s created with sections %s", className, strings.Join(normSections, ", ")),
		bson.M{"class_id": class.ID, "program": program, "semester": semester},
	)
	return class, nil
}

// DeleteClass cascades in strict order: teacher assignments, student
// enrollments (with recount), section documents, then the class itself.
// Earlier steps stay durable even when a later one fails; a missing class
// document at the end is reported, not treated as a failure.
func (s *ClassService) DeleteClass(ctx context.Context, classID bson.ObjectID) (*DeleteClassSummary, error) {
	assignments, err := s.Teachers.PullAssignmentsByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	studentsAffected, err := s.Students.PullEnrollmentsByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	reconciled, err := s.Students.RecountEnrollments(ctx)
	if err != nil {
		return nil, err
	}

	sectionsDeleted, err := s.Sections.DeleteByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	found, err := s.Classes.DeleteByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	msg := "class deleted"
	if !found {
		msg = "class not found but related data cleaned"
	}

	logActivity(ctx, s.Sessions, "class_deleted", msg,
		bson.M{"class_id": classID, "sections_deleted": sectionsDeleted, "students_affected": studentsAffected},
	)

	return &DeleteClassSummary{
		ClassFound:         found,
		Message:            msg,
		AssignmentsRemoved: assignments,
		StudentsAffected:   studentsAffected,
		SectionsDeleted:    sectionsDeleted,
		StudentsReconciled: reconciled,
	}, nil
}
