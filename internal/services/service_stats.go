package services

import (
	"context"
	"math"

	"portal-webbase/internal/apperrors"
)

type Distribution struct {
	Counts      map[string]int64   `json:"counts"`
	Percentages map[string]float64 `json:"percentages"`
}

type SessionStatistics struct {
	SessionID   string `json:"session_id"`
	SessionType string `json:"session_type"`
	Year        int    `json:"year"`

	Teachers             int64 `json:"teachers"`
	Students             int64 `json:"students"`
	Classes              int64 `json:"classes"`
	ClassSections        int64 `json:"class_sections"`
	RegistrationRequests int64 `json:"registration_requests"`

	StudentsBySemester Distribution `json:"students_by_semester"`
	StudentsByProgram  Distribution `json:"students_by_program"`
	ClassesBySemester  Distribution `json:"classes_by_semester"`
}

// Statistics computes live aggregates for the active session. Read-only.
func (s *SessionService) Statistics(ctx context.Context) (*SessionStatistics, error) {
	active, err := s.Sessions.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, apperrors.NewNotFound("session", "no active session")
	}

	stats := &SessionStatistics{
		SessionID:   active.ID.Hex(),
		SessionType: active.SessionType,
		Year:        active.Year,
	}

	if stats.Teachers, err = s.Teachers.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Students, err = s.Students.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Classes, err = s.Classes.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ClassSections, err = s.Sections.Count(ctx); err != nil {
		return nil, err
	}
	if stats.RegistrationRequests, err = s.Registrations.Count(ctx); err != nil {
		return nil, err
	}

	bySemester, err := s.Students.CountBy(ctx, "semester")
	if err != nil {
		return nil, err
	}
	stats.StudentsBySemester = MakeDistribution(bySemester)

	byProgram, err := s.Students.CountBy(ctx, "program")
	if err != nil {
		return nil, err
	}
	stats.StudentsByProgram = MakeDistribution(byProgram)

	classSemesters, err := s.Classes.CountBySemester(ctx)
	if err != nil {
		return nil, err
	}
	stats.ClassesBySemester = MakeDistribution(classSemesters)

	return stats, nil
}

// MakeDistribution derives percentage-of-total metrics from raw counts.
// Percentages are rounded to two decimals.
func MakeDistribution(counts map[string]int64) Distribution {
	d := Distribution{
		Counts:      counts,
		Percentages: make(map[string]float64, len(counts)),
	}
	var total int64
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return d
	}
	for k, n := range counts {
		d.Percentages[k] = math.Round(float64(n)/float64(total)*10000) / 100
	}
	return d
}
