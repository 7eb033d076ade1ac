package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/crypto/bcrypt"

	"portal-webbase/internal/apperrors"
	"portal-webbase/internal/mailer"
	"portal-webbase/internal/models"
	repo "portal-webbase/internal/repository"
	"portal-webbase/internal/utils"
)

// CredentialHashCost is the bcrypt cost for section join passwords.
const CredentialHashCost = 12

type AssignmentService struct {
	Client   *mongo.Client
	Teachers *repo.TeacherRepository
	Classes  *repo.ClassRepository
	Sections *repo.SectionRepository
	Sessions *repo.SessionRepository
	Mail     *mailer.Mailer
}

type AssignmentSummary struct {
	TeacherID   bson.ObjectID `json:"teacher_id"`
	TeacherName string        `json:"teacher_name"`
	ClassName   string        `json:"class_name"`
	Subject     string        `json:"subject"`
	Sections    []string      `json:"sections"`
	Username    string        `json:"username"`
	AssignedAt  time.Time     `json:"assigned_at"`
}

// AssignTeacher links a teacher to a set of sections for one subject,
// creating the join credentials students will enroll with. The section
// upserts and the assignment push commit as one transaction; the
// notification mail goes out only after commit and only best-effort.
func (s *AssignmentService) AssignTeacher(ctx context.Context, teacherID, classID bson.ObjectID, subject string, sections []string, username, rawPassword string) (*AssignmentSummary, error) {
	if len(sections) == 0 {
		return nil, apperrors.NewValidation("at least one section is required")
	}
	username = strings.TrimSpace(username)
	if username == "" || rawPassword == "" {
		return nil, apperrors.NewValidation("class credentials are required")
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

	subject = utils.CanonicalVocab(class.Subjects, subject)
	if subject == "" {
		return nil, apperrors.NewValidation("subject is not offered by this class")
	}

	normalized := make([]string, 0, len(sections))
	var invalid []string
	for _, sec := range sections {
		code := utils.CanonicalVocab(class.Sections, sec)
		if code == "" {
			invalid = append(invalid, sec)
			continue
		}
		normalized = append(normalized, code)
	}
	if len(invalid) > 0 {
		return nil, apperrors.NewValidation("invalid sections for this class: %s", strings.Join(invalid, ", "))
	}

	// duplicate credentials would make enrollment resolution ambiguous
	holder, err := s.Teachers.FindByCredentialUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if holder != nil {
		return nil, apperrors.NewConflict("credentials username already in use")
	}

	taken, err := s.Sections.FindAssignedSections(ctx, classID, subject, normalized)
	if err != nil {
		return nil, err
	}
	if len(taken) > 0 {
		return nil, apperrors.NewDuplicateAssignment(taken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), CredentialHashCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	assignment := models.ClassAssignment{
		ClassID:          classID,
		Sections:         normalized,
		Subject:          subject,
		ClassDisplayName: class.ClassName,
		ClassCredentials: models.ClassCredentials{Username: username, Password: string(hash)},
		AssignedAt:       now,
	}

	err = repo.WithTxnRetry(ctx, s.Client, func(sc context.Context) error {
		for _, section := range normalized {
			if err := s.Sections.UpsertAssignment(sc, class, section, subject, teacherID, "", now); err != nil {
				return err
			}
		}
		return s.Teachers.PushAssignment(sc, teacherID, assignment)
	})
	if err != nil {
		// two admins racing the same section claim can both pass the
		// pre-check; the partial unique index settles it
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.NewDuplicateAssignment(normalized)
		}
		return nil, err
	}

	// non-transactional by design: a dead mail relay must not undo the
	// assignment
	if s.Mail != nil && teacher.Email != "" {
		s.Mail.NotifyAssignment(teacher.Email, class.ClassName, subject, normalized, username)
	}

	logActivity(ctx, s.Sessions, "teacher_assigned",
		fmt.Sprintf("%s %s assigned to %s (%s)", teacher.FirstName, teacher.LastName, class.ClassName, subject),
		bson.M{"teacher_id": teacherID, "class_id": classID, "subject": subject, "sections": normalized},
	)

	return &AssignmentSummary{
		TeacherID:   teacherID,
		TeacherName: strings.TrimSpace(teacher.FirstName + " " + teacher.LastName),
		ClassName:   class.ClassName,
		Subject:     subject,
		Sections:    normalized,
		Username:    username,
		AssignedAt:  now,
	}, nil
}
