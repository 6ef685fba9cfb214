package types

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelForPoints_Thresholds(t *testing.T) {
	cases := []struct {
		points  int
		current int
		want    int
	}{
		{0, 1, 1},
		{99, 1, 1},
		{100, 1, 2},
		{299, 2, 2},
		{300, 2, 3},
		{600, 1, 4},
		{1000, 4, 5},
		{2000, 5, 6},
		{999999, 1, 6},
	}

	for _, tc := range cases {
		got := LevelForPoints(tc.points, tc.current)
		if got != tc.want {
			t.Errorf("LevelForPoints(%d, %d) = %d, want %d", tc.points, tc.current, got, tc.want)
		}
	}
}

func TestLevelForPoints_NeverRegresses(t *testing.T) {
	// Current level above what the points justify must be preserved.
	if got := LevelForPoints(0, 5); got != 5 {
		t.Errorf("expected level to stay at 5, got %d", got)
	}
}

func TestLevelForPoints_MonotonicOverAwards(t *testing.T) {
	points, level := 0, 1
	for _, award := range []int{10, 50, 45, 200, 5, 500, 300, 1000} {
		points += award
		next := LevelForPoints(points, level)
		if next < level {
			t.Fatalf("level regressed from %d to %d at %d points", level, next, points)
		}
		level = next
	}
}

func TestDateAndMonthKeys(t *testing.T) {
	ts := time.Date(2026, time.March, 7, 15, 4, 5, 0, time.UTC)
	if got := DateKey(ts); got != "2026-03-07" {
		t.Errorf("DateKey = %q", got)
	}
	if got := MonthKey(ts); got != "2026-03" {
		t.Errorf("MonthKey = %q", got)
	}
	if got := MonthOfDate("2026-03-07"); got != "2026-03" {
		t.Errorf("MonthOfDate = %q", got)
	}
}

func TestValidCategory(t *testing.T) {
	if !ValidCategory(CategoryFood) {
		t.Error("Food should be valid")
	}
	if ValidCategory(Category("Crypto")) {
		t.Error("unknown category should be invalid")
	}
}

func TestFocusSession_Covers(t *testing.T) {
	f := FocusSession{StartDate: "2026-03-01", EndDate: "2026-03-08"}
	if !f.Covers("2026-03-01") || !f.Covers("2026-03-08") || !f.Covers("2026-03-05") {
		t.Error("expected window boundaries to be covered")
	}
	if f.Covers("2026-02-28") || f.Covers("2026-03-09") {
		t.Error("expected dates outside the window to be excluded")
	}
}

func TestProgressionState_UnlockIsAppendOnly(t *testing.T) {
	var s ProgressionState
	s.Unlock(BadgeNoSpend)
	s.Unlock(BadgeNoSpend)
	if len(s.Badges) != 1 {
		t.Fatalf("expected single badge, got %v", s.Badges)
	}
}

func TestProgressionState_MarshalNilCollections(t *testing.T) {
	data, err := json.Marshal(ProgressionState{OwnerID: "o1"})
	if err != nil {
		t.Fatal(err)
	}
	body := string(data)
	if !strings.Contains(body, `"badges":[]`) {
		t.Errorf("expected empty badges array, got %s", body)
	}
	if !strings.Contains(body, `"monthly_records":{}`) {
		t.Errorf("expected empty monthly records object, got %s", body)
	}
}

func TestSubscription_RenewalNote(t *testing.T) {
	s := Subscription{Name: "Netflix"}
	if got := s.RenewalNote(); got != "Netflix (Auto-subscription)" {
		t.Errorf("RenewalNote = %q", got)
	}
}
