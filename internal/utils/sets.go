package utils

import "strings"

// SplitSectionList parses a comma-delimited section list, trimming and
// deduplicating entries. Order of first appearance is preserved.
func SplitSectionList(list string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, part := range strings.Split(list, ",") {
		s := strings.ToUpper(strings.TrimSpace(part))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// SectionSetsEqual compares two section lists as sets, ignoring order,
// case and duplicates. Assignment matching must not depend on the order
// sections were stored in.
func SectionSetsEqual(a, b []string) bool {
	return sectionSet(a) == sectionSet(b)
}

// SectionSetContains reports whether set a covers every entry of b.
func SectionSetContains(a, b []string) bool {
	have := make(map[string]bool, len(a))
	for _, s := range a {
		have[strings.ToUpper(strings.TrimSpace(s))] = true
	}
	for _, s := range b {
		if !have[strings.ToUpper(strings.TrimSpace(s))] {
			return false
		}
	}
	return true
}

func sectionSet(list []string) string {
	set := make(map[string]bool, len(list))
	for _, s := range list {
		v := strings.ToUpper(strings.TrimSpace(s))
		if v != "" {
			set[v] = true
		}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	// insertion-order independent key
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			if keys[j] < keys[i] {
				keys[i], keys[j] = keys[j], keys[i]
			}
		}
	}
	return strings.Join(keys, "|")
}

// EqualFoldTrim is the case-normalized string comparison used for
// credential usernames.
func EqualFoldTrim(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
