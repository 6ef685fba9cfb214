package engine

import (
	"context"
	"testing"
	"time"

	"github.com/emberworks/ember/internal/notify"
	"github.com/emberworks/ember/internal/store"
	"github.com/emberworks/ember/internal/types"
	"github.com/oklog/ulid/v2"
)

// testClock is a settable time source pinned to a calendar day.
type testClock struct {
	current time.Time
}

func (c *testClock) Now() time.Time { return c.current }

func (c *testClock) Advance(days int) { c.current = c.current.AddDate(0, 0, days) }

func newTestEngine(t *testing.T, start time.Time) (*Engine, *store.SQLiteStore, *notify.Recorder, *testClock) {
	t.Helper()
	db, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	recorder := &notify.Recorder{}
	clock := &testClock{current: start}
	eng := New(db, recorder, DefaultAwards()).WithClock(clock.Now)
	return eng, db, recorder, clock
}

func appendExpense(t *testing.T, db *store.SQLiteStore, owner, date string, amount float64, category types.Category) {
	t.Helper()
	err := db.AppendEntry(context.Background(), &types.LedgerEntry{
		ID:        ulid.Make().String(),
		OwnerID:   owner,
		Amount:    amount,
		Category:  category,
		Date:      date,
		Month:     types.MonthOfDate(date),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func appendExpenseNote(t *testing.T, db *store.SQLiteStore, owner, date string, amount float64, category types.Category, note string) {
	t.Helper()
	err := db.AppendEntry(context.Background(), &types.LedgerEntry{
		ID:        ulid.Make().String(),
		OwnerID:   owner,
		Amount:    amount,
		Category:  category,
		Note:      note,
		Date:      date,
		Month:     types.MonthOfDate(date),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func mustProgression(t *testing.T, db *store.SQLiteStore, owner string) *types.ProgressionState {
	t.Helper()
	state, err := db.GetProgression(context.Background(), owner)
	if err != nil {
		t.Fatal(err)
	}
	return state
}

func TestOnSessionStart_ReturnsSnapshot(t *testing.T) {
	start := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	eng, _, _, _ := newTestEngine(t, start)
	ctx := context.Background()

	if _, err := eng.Scheduler.Create(ctx, "owner-1", types.NewSubscription{
		Name:       "Netflix",
		Amount:     200,
		Category:   types.CategorySubscriptions,
		DayOfMonth: 5,
		IsActive:   true,
	}); err != nil {
		t.Fatal(err)
	}

	snap, err := eng.OnSessionStart(ctx, "owner-1")
	if err != nil {
		t.Fatal(err)
	}

	if snap.Progression == nil || snap.Progression.OwnerID != "owner-1" {
		t.Fatalf("missing progression in snapshot: %+v", snap)
	}
	if len(snap.Subscriptions) != 1 {
		t.Errorf("expected 1 subscription, got %d", len(snap.Subscriptions))
	}
	if snap.Focus != nil {
		t.Errorf("expected no focus session, got %+v", snap.Focus)
	}
	if snap.Progression.LastProcessedDate != types.DateKey(start) {
		t.Errorf("catch-up did not run: last processed = %q", snap.Progression.LastProcessedDate)
	}
}

func TestOnSessionStart_SecondCallSameDayIsIdempotent(t *testing.T) {
	start := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	eng, db, _, _ := newTestEngine(t, start)
	ctx := context.Background()

	if _, err := eng.OnSessionStart(ctx, "owner-1"); err != nil {
		t.Fatal(err)
	}
	first := mustProgression(t, db, "owner-1")

	if _, err := eng.OnSessionStart(ctx, "owner-1"); err != nil {
		t.Fatal(err)
	}
	second := mustProgression(t, db, "owner-1")

	if first.Points != second.Points || first.Shields != second.Shields || first.Fires != second.Fires {
		t.Errorf("state mutated on second call: %+v vs %+v", first, second)
	}
}
