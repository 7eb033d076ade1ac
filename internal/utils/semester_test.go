package utils

import "testing"

func TestNormalizeSemester(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1st", "1"},
		{"2nd", "2"},
		{"3rd", "3"},
		{"4th", "4"},
		{"8TH", "8"},
		{" 5 ", "5"},
		{"6", "6"},
		{"first", "first"},
		{"st", "st"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeSemester(c.in); got != c.want {
			t.Errorf("NormalizeSemester(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSplitSectionList(t *testing.T) {
	t.Run("trims_uppercases_dedupes", func(t *testing.T) {
		got := SplitSectionList(" a, B ,b, c ,,A")
		want := []string{"A", "B", "C"}
		if len(got) != len(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("got %v, want %v", got, want)
			}
		}
	})

	t.Run("empty_input", func(t *testing.T) {
		if got := SplitSectionList(" , ,"); len(got) != 0 {
			t.Fatalf("expected empty result, got %v", got)
		}
	})
}

func TestSectionSetsEqual(t *testing.T) {
	if !SectionSetsEqual([]string{"A", "B"}, []string{"b", " a "}) {
		t.Error("order and case should not matter")
	}
	if !SectionSetsEqual([]string{"A", "A", "B"}, []string{"A", "B"}) {
		t.Error("duplicates should not matter")
	}
	if SectionSetsEqual([]string{"A"}, []string{"A", "B"}) {
		t.Error("different sets reported equal")
	}
	if !SectionSetsEqual(nil, nil) {
		t.Error("two empty sets should be equal")
	}
}

func TestSectionSetContains(t *testing.T) {
	if !SectionSetContains([]string{"A", "B", "C"}, []string{"c", "a"}) {
		t.Error("superset should cover subset")
	}
	if SectionSetContains([]string{"A"}, []string{"A", "B"}) {
		t.Error("subset cannot cover superset")
	}
	if !SectionSetContains([]string{"A"}, nil) {
		t.Error("every set covers the empty set")
	}
}
