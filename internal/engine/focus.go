package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emberworks/ember/internal/notify"
	"github.com/emberworks/ember/internal/store"
	"github.com/emberworks/ember/internal/types"
	"github.com/oklog/ulid/v2"
)

// FocusGuard manages the time-boxed spending-limit session. At most one
// session per owner is active at any time.
type FocusGuard struct {
	store    store.Store
	notifier notify.Notifier
	now      func() time.Time
}

// Start opens a new focus session. An existing active session rejects the
// request before any write is attempted; the storage-level unique index
// backstops the same invariant against concurrent starts.
func (g *FocusGuard) Start(ctx context.Context, ownerID string, category types.Category, dailyLimit float64, durationDays int) (*types.FocusSession, error) {
	_, err := g.store.ActiveFocus(ctx, ownerID)
	if err == nil {
		return nil, fmt.Errorf("%w: %w", ErrInvariantViolation, store.ErrFocusActive)
	}
	if !errors.Is(err, store.ErrNotFound) {
		g.notifier.Error(ownerID, "Failed to activate Focus Mode")
		return nil, fmt.Errorf("check active session: %w", err)
	}

	now := g.now()
	session := &types.FocusSession{
		ID:           ulid.Make().String(),
		OwnerID:      ownerID,
		Category:     category,
		DailyLimit:   dailyLimit,
		StartDate:    types.DateKey(now),
		EndDate:      types.DateKey(now.AddDate(0, 0, durationDays)),
		DurationDays: durationDays,
		Status:       types.FocusActive,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}

	if err := g.store.CreateFocus(ctx, session); err != nil {
		if errors.Is(err, store.ErrFocusActive) {
			return nil, fmt.Errorf("%w: %w", ErrInvariantViolation, err)
		}
		g.notifier.Error(ownerID, "Failed to activate Focus Mode")
		return nil, fmt.Errorf("create focus session: %w", err)
	}

	g.notifier.Success(ownerID, fmt.Sprintf("Focus Mode activated: %s", category))
	return session, nil
}

// Cancel abandons the owner's active session. History is retained.
func (g *FocusGuard) Cancel(ctx context.Context, ownerID string) error {
	session, err := g.store.ActiveFocus(ctx, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		g.notifier.Error(ownerID, "Failed to cancel Focus Mode")
		return fmt.Errorf("read focus session: %w", err)
	}

	if err := g.store.TransitionFocus(ctx, ownerID, session.ID, types.FocusAbandoned, session.DaysSucceeded); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		g.notifier.Error(ownerID, "Failed to cancel Focus Mode")
		return fmt.Errorf("abandon focus session: %w", err)
	}

	g.notifier.Info(ownerID, "Focus Mode cancelled")
	return nil
}

// Active returns the owner's active session, or store.ErrNotFound.
func (g *FocusGuard) Active(ctx context.Context, ownerID string) (*types.FocusSession, error) {
	return g.store.ActiveFocus(ctx, ownerID)
}

// DailySpend returns the category-restricted spend for the date. Pure read.
func (g *FocusGuard) DailySpend(ctx context.Context, ownerID, date string, category types.Category) (float64, error) {
	return g.store.SpendForDate(ctx, ownerID, date, category)
}
