package utils

import "testing"

func TestIsLockedOnStrictlyPast(t *testing.T) {
	today := "2025-06-01"
	r := LockStrictlyPast

	cases := []struct {
		date string
		want bool
	}{
		{"2025-05-31", true},
		{"2025-06-01", false},
		{"2025-06-02", false},
		{"", false},
		{"  ", false},
	}
	for _, c := range cases {
		if got := r.IsLockedOn(c.date, today); got != c.want {
			t.Errorf("StrictlyPast.IsLockedOn(%q, %q) = %t, want %t", c.date, today, got, c.want)
		}
	}
}

func TestIsLockedOnOneDayBefore(t *testing.T) {
	today := "2025-06-01"
	r := LockOneDayBefore

	cases := []struct {
		date string
		want bool
	}{
		{"2025-05-31", true},
		{"2025-06-01", true},
		{"2025-06-02", true}, // tomorrow is already committed
		{"2025-06-03", false},
		{"", false},
	}
	for _, c := range cases {
		if got := r.IsLockedOn(c.date, today); got != c.want {
			t.Errorf("OneDayBefore.IsLockedOn(%q, %q) = %t, want %t", c.date, today, got, c.want)
		}
	}
}

func TestAllSlotsLockedOn(t *testing.T) {
	today := "2025-06-01"
	r := LockStrictlyPast

	if r.AllSlotsLockedOn([]string{"2024-01-01", "2024-02-02"}, 0, today) {
		t.Error("n=0 must never count as fully locked")
	}
	if r.AllSlotsLockedOn([]string{"2024-01-01"}, 2, today) {
		t.Error("fewer dates than n must never count as fully locked")
	}
	if r.AllSlotsLockedOn([]string{"2024-01-01", "2099-01-01"}, 2, today) {
		t.Error("one future slot keeps the plan editable")
	}
	if !r.AllSlotsLockedOn([]string{"2024-01-01", "2024-02-02"}, 2, today) {
		t.Error("all past slots should lock the plan")
	}
	// Extra dates beyond n are ignored.
	if !r.AllSlotsLockedOn([]string{"2024-01-01", "2024-02-02", "2099-01-01"}, 2, today) {
		t.Error("dates beyond n must not affect the decision")
	}
}
