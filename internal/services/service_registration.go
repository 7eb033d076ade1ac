package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"portal-webbase/internal/apperrors"
	"portal-webbase/internal/models"
	repo "portal-webbase/internal/repository"
	"portal-webbase/internal/utils"
)

type RegistrationService struct {
	Client        *mongo.Client
	Registrations *repo.RegistrationRepository
	Students      *repo.StudentRepository
	Sessions      *repo.SessionRepository
}

// Submit files a pending registration request.
func (s *RegistrationService) Submit(ctx context.Context, req *models.RegistrationRequest) (*models.RegistrationRequest, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		return nil, apperrors.NewValidation("email is required")
	}
	req.Program = utils.CanonicalVocab(utils.Programs, req.Program)
	if req.Program == "" {
		return nil, apperrors.NewValidation("unknown program")
	}
	req.Section = utils.CanonicalVocab(utils.SectionCodes, req.Section)
	if req.Section == "" {
		return nil, apperrors.NewValidation("unknown section code")
	}
	req.Semester = utils.NormalizeSemester(req.Semester)

	existing, err := s.Registrations.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status == models.RegistrationPending {
		return nil, apperrors.NewConflict("a pending request already exists for this email")
	}

	now := time.Now().UTC()
	req.ID = bson.NewObjectID()
	req.Status = models.RegistrationPending
	req.CreatedAt = now
	req.UpdatedAt = now
	if err := s.Registrations.Insert(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *RegistrationService) Pending(ctx context.Context) ([]models.RegistrationRequest, error) {
	return s.Registrations.FindByStatus(ctx, models.RegistrationPending)
}

// Approve flips the request to approved and creates the Student document
// in one transaction.
func (s *RegistrationService) Approve(ctx context.Context, requestID bson.ObjectID) (*models.Student, error) {
	req, err := s.Registrations.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperrors.NewNotFound("registration_request", "registration request not found")
	}
	if req.Status != models.RegistrationPending {
		return nil, apperrors.NewConflict("request already %s", req.Status)
	}

	now := time.Now().UTC()
	student := &models.Student{
		ID:              bson.NewObjectID(),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		StudentID:       req.StudentID,
		Program:         req.Program,
		Semester:        req.Semester,
		Section:         req.Section,
		Enrollments:     []models.Enrollment{},
		EnrollmentCount: 0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = repo.WithTxnRetry(ctx, s.Client, func(sc context.Context) error {
		ok, err := s.Registrations.SetStatus(sc, requestID, models.RegistrationApproved)
		if err != nil {
			return err
		}
		if !ok {
			return mongo.ErrNoDocuments
		}
		return s.Students.Insert(sc, student)
	})
	if err != nil {
		return nil, err
	}

	logActivity(ctx, s.Sessions, "registration_approved",
		fmt.Sprintf("registration approved for %s %s", req.FirstName, req.LastName),
		bson.M{"request_id": requestID, "student_id": student.ID},
	)
	return student, nil
}

func (s *RegistrationService) Reject(ctx context.Context, requestID bson.ObjectID) error {
	req, err := s.Registrations.FindByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return apperrors.NewNotFound("registration_request", "registration request not found")
	}
	if req.Status != models.RegistrationPending {
		return apperrors.NewConflict("request already %s", req.Status)
	}
	_, err = s.Registrations.SetStatus(ctx, requestID, models.RegistrationRejected)
	return err
}
