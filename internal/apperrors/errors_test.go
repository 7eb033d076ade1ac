package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestTypedErrorMatching(t *testing.T) {
	nf := NewNotFound("class", "class not found")
	if !IsNotFound(nf) {
		t.Error("IsNotFound should match NotFoundError")
	}
	if IsNotFound(errors.New("class not found")) {
		t.Error("IsNotFound should not match a plain error")
	}

	// Classification survives wrapping.
	wrapped := fmt.Errorf("assign teacher: %w", NewConflict("already assigned"))
	if !IsConflict(wrapped) {
		t.Error("IsConflict should see through wrapping")
	}
	if IsValidation(wrapped) || IsAuth(wrapped) || IsNotFound(wrapped) {
		t.Error("wrapped conflict matched an unrelated class")
	}
}

func TestNewDuplicateAssignment(t *testing.T) {
	err := NewDuplicateAssignment([]string{"A", "C"})
	want := "sections already assigned for this subject: A, C"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if len(err.Sections) != 2 || err.Sections[0] != "A" || err.Sections[1] != "C" {
		t.Errorf("Sections = %v", err.Sections)
	}
	if !IsConflict(err) {
		t.Error("duplicate assignment should classify as conflict")
	}
}

func TestNotFoundFallbackMessage(t *testing.T) {
	if got := NewNotFound("teacher", "").Error(); got != "teacher not found" {
		t.Errorf("Error() = %q", got)
	}
}
