package utils

import "strings"

// Closed vocabularies for class creation. Anything outside these lists is a
// validation error, not a new value.
var (
	Programs = []string{"BSCS", "BSIT", "BSSE", "BBA", "BSED"}

	SectionCodes = []string{"A", "B", "C", "D", "E", "F"}

	Subjects = []string{
		"Math", "English", "Urdu", "Physics", "Chemistry", "Biology",
		"Computer Science", "Programming Fundamentals", "Data Structures",
		"Databases", "Operating Systems", "Software Engineering",
		"Islamiat", "Pak Studies", "Statistics", "Economics", "Accounting",
	}

	SessionTypes = []string{"Spring", "Summer", "Fall"}
)

func InVocab(vocab []string, value string) bool {
	for _, v := range vocab {
		if strings.EqualFold(v, strings.TrimSpace(value)) {
			return true
		}
	}
	return false
}

// CanonicalVocab returns the canonical casing for value, or "" when value
// is out of vocabulary.
func CanonicalVocab(vocab []string, value string) string {
	for _, v := range vocab {
		if strings.EqualFold(v, strings.TrimSpace(value)) {
			return v
		}
	}
	return ""
}
