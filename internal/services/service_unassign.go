package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"portal-webbase/internal/apperrors"
	repo "portal-webbase/internal/repository"
	"portal-webbase/internal/utils"
)

type UnassignService struct {
	Teachers *repo.TeacherRepository
	Classes  *repo.ClassRepository
	Sections *repo.SectionRepository
	Students *repo.StudentRepository
	Sessions *repo.SessionRepository
}

type UnassignSummary struct {
	Sections []string `json:"sections"`
	// StudentsAffected counts students whose enrollments were pulled, not
	// the pulled entries themselves; UpdateMany reports touched documents.
	StudentsAffected   int64 `json:"students_affected"`
	AssignmentRemoved  bool  `json:"assignment_removed"`
	StudentsReconciled int64 `json:"students_reconciled"`
}

// Unassign reverses a teacher's claim over sections for one subject. The
// per-section cleanup steps are deliberately not one cross-document
// transaction; the closing reconciliation pass repairs the student
// counters the pulls may have skewed.
func (s *UnassignService) Unassign(ctx context.Context, teacherID, classID bson.ObjectID, sectionList, subject string) (*UnassignSummary, error) {
	sections := utils.SplitSectionList(sectionList)
	if len(sections) == 0 {
		return nil, apperrors.NewValidation("no sections given")
	}

	teacher, err := s.Teachers.FindByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if teacher == nil {
		return nil, apperrors.NewNotFound("teacher", "teacher not found")
	}

	class, err := s.Classes.FindByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, apperrors.NewNotFound("class", "class not found")
	}

	var studentsAffected int64
	for _, section := range sections {
		n, err := s.Students.PullEnrollments(ctx, classID, subject, section)
		if err != nil {
			return nil, err
		}
		studentsAffected += n

		if err := s.Sections.ClearAssignment(ctx, classID, section, subject); err != nil {
			return nil, err
		}
	}

	// the stored assignment matches when its section set covers the ones
	// being unassigned, regardless of order
	assignmentRemoved, err := s.Teachers.PullAssignment(ctx, teacherID, classID, subject, func(stored []string) bool {
		return utils.SectionSetsEqual(stored, sections) || utils.SectionSetContains(stored, sections)
	})
	if err != nil {
		return nil, err
	}

	reconciled, err := s.Students.RecountEnrollments(ctx)
	if err != nil {
		return nil, err
	}

	logActivity(ctx, s.Sessions, "teacher_unassigned",
		fmt.Sprintf("%s %s unassigned from %s (%s)", teacher.FirstName, teacher.LastName, class.ClassName, subject),
		bson.M{"teacher_id": teacherID, "class_id": classID, "subject": subject, "sections": sections},
	)

	return &UnassignSummary{
		Sections:           sections,
		StudentsAffected:   studentsAffected,
		AssignmentRemoved:  assignmentRemoved,
		StudentsReconciled: reconciled,
	}, nil
}

// RepairCounters is the on-demand reconciliation operation: recompute both
// denormalized counters from their source-of-truth arrays.
func (s *UnassignService) RepairCounters(ctx context.Context) (studentsFixed, sectionsFixed int64, err error) {
	studentsFixed, err = s.Students.RecountEnrollments(ctx)
	if err != nil {
		return 0, 0, err
	}
	sectionsFixed, err = s.Sections.RecountStudents(ctx)
	if err != nil {
		return 0, 0, err
	}
	return studentsFixed, sectionsFixed, nil
}
