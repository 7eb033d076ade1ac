package services

import "testing"

func TestMakeDistribution(t *testing.T) {
	t.Run("percentages_sum_from_counts", func(t *testing.T) {
		d := MakeDistribution(map[string]int64{"BSCS": 3, "BSIT": 1})
		if d.Percentages["BSCS"] != 75 {
			t.Errorf("BSCS = %v, want 75", d.Percentages["BSCS"])
		}
		if d.Percentages["BSIT"] != 25 {
			t.Errorf("BSIT = %v, want 25", d.Percentages["BSIT"])
		}
	})

	t.Run("rounds_to_two_decimals", func(t *testing.T) {
		d := MakeDistribution(map[string]int64{"a": 1, "b": 1, "c": 1})
		if d.Percentages["a"] != 33.33 {
			t.Errorf("a = %v, want 33.33", d.Percentages["a"])
		}
	})

	t.Run("zero_total_has_no_percentages", func(t *testing.T) {
		d := MakeDistribution(map[string]int64{"a": 0})
		if len(d.Percentages) != 0 {
			t.Errorf("expected empty percentages, got %v", d.Percentages)
		}
		if d.Counts["a"] != 0 {
			t.Errorf("counts should pass through unchanged")
		}
	})

	t.Run("empty_counts", func(t *testing.T) {
		d := MakeDistribution(map[string]int64{})
		if len(d.Percentages) != 0 {
			t.Errorf("expected empty percentages, got %v", d.Percentages)
		}
	})
}
