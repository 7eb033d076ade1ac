package utils

import "testing"

func TestInVocab(t *testing.T) {
	if !InVocab(Programs, "bscs") {
		t.Error("program matching should be case-insensitive")
	}
	if !InVocab(SessionTypes, " Fall ") {
		t.Error("surrounding whitespace should be ignored")
	}
	if InVocab(SectionCodes, "G") {
		t.Error("G is not a known section code")
	}
}

func TestCanonicalVocab(t *testing.T) {
	if got := CanonicalVocab(Subjects, "programming fundamentals"); got != "Programming Fundamentals" {
		t.Errorf("got %q, want canonical casing", got)
	}
	if got := CanonicalVocab(Programs, "MBBS"); got != "" {
		t.Errorf("out-of-vocabulary value should map to empty, got %q", got)
	}
}
