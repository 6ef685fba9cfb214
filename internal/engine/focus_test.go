package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/emberworks/ember/internal/types"
)

func TestFocus_StartOpensSession(t *testing.T) {
	eng, _, _, clock := newTestEngine(t, baseDay)
	ctx := context.Background()

	session, err := eng.Focus.Start(ctx, "owner-1", types.CategoryFood, 300, 7)
	if err != nil {
		t.Fatal(err)
	}
	if session.Status != types.FocusActive {
		t.Errorf("status = %q", session.Status)
	}
	if session.StartDate != types.DateKey(clock.Now()) {
		t.Errorf("start date = %q", session.StartDate)
	}
	if session.EndDate != types.DateKey(clock.Now().AddDate(0, 0, 7)) {
		t.Errorf("end date = %q", session.EndDate)
	}

	active, err := eng.Focus.Active(ctx, "owner-1")
	if err != nil {
		t.Fatal(err)
	}
	if active.ID != session.ID {
		t.Errorf("active session id = %q, want %q", active.ID, session.ID)
	}
}

func TestFocus_SecondStartRejected(t *testing.T) {
	eng, _, _, _ := newTestEngine(t, baseDay)
	ctx := context.Background()

	first, err := eng.Focus.Start(ctx, "owner-1", types.CategoryFood, 300, 7)
	if err != nil {
		t.Fatal(err)
	}

	_, err = eng.Focus.Start(ctx, "owner-1", types.CategoryTravel, 100, 3)
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("expected ErrInvariantViolation, got %v", err)
	}

	// The rejected start must not have touched the existing session.
	active, err := eng.Focus.Active(ctx, "owner-1")
	if err != nil {
		t.Fatal(err)
	}
	if active.ID != first.ID || active.Category != types.CategoryFood {
		t.Errorf("existing session mutated: %+v", active)
	}
}

func TestFocus_SessionsAreOwnerScoped(t *testing.T) {
	eng, _, _, _ := newTestEngine(t, baseDay)
	ctx := context.Background()

	if _, err := eng.Focus.Start(ctx, "owner-1", types.CategoryFood, 300, 7); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.Focus.Start(ctx, "owner-2", types.CategoryFood, 300, 7); err != nil {
		t.Errorf("other owner blocked: %v", err)
	}
}

func TestFocus_CancelAbandonsAndAllowsRestart(t *testing.T) {
	eng, _, _, _ := newTestEngine(t, baseDay)
	ctx := context.Background()

	if _, err := eng.Focus.Start(ctx, "owner-1", types.CategoryFood, 300, 7); err != nil {
		t.Fatal(err)
	}
	if err := eng.Focus.Cancel(ctx, "owner-1"); err != nil {
		t.Fatal(err)
	}

	if _, err := eng.Focus.Active(ctx, "owner-1"); err == nil {
		t.Fatal("expected no active session after cancel")
	}
	if _, err := eng.Focus.Start(ctx, "owner-1", types.CategoryTravel, 50, 3); err != nil {
		t.Errorf("restart after cancel failed: %v", err)
	}
}

func TestFocus_CancelWithoutSession(t *testing.T) {
	eng, _, _, _ := newTestEngine(t, baseDay)

	if err := eng.Focus.Cancel(context.Background(), "owner-1"); err == nil {
		t.Fatal("expected error cancelling with no active session")
	}
}

func TestFocus_DailySpendSumsCategoryOnly(t *testing.T) {
	eng, db, _, clock := newTestEngine(t, baseDay)
	ctx := context.Background()

	today := types.DateKey(clock.Now())
	appendExpense(t, db, "owner-1", today, 120, types.CategoryFood)
	appendExpense(t, db, "owner-1", today, 80, types.CategoryFood)
	appendExpense(t, db, "owner-1", today, 999, types.CategoryRent)

	spend, err := eng.Focus.DailySpend(ctx, "owner-1", today, types.CategoryFood)
	if err != nil {
		t.Fatal(err)
	}
	if spend != 200 {
		t.Errorf("spend = %v, want 200", spend)
	}
}
