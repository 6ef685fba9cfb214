// Package engine implements the progression state machine, the recurring
// obligation scheduler, and the budget guard. It is a library-style engine:
// the host application triggers it from lifecycle events, there is no
// ambient scheduler of its own.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/emberworks/ember/internal/notify"
	"github.com/emberworks/ember/internal/store"
	"github.com/emberworks/ember/internal/types"
)

// ErrInvariantViolation marks operations rejected before any write was
// attempted (negative awards, double focus start).
var ErrInvariantViolation = errors.New("invariant violation")

// Awards are the XP amounts granted by engine events.
type Awards struct {
	Base         int // any daily processing event
	Fire         int // a tracked-spend day extended the fire streak
	Shield       int // a no-spend day extended the shield streak
	Focus        int // a focus day stayed within its limit
	Subscription int // a subscription renewal materialized
}

// DefaultAwards returns the standard XP tuning.
func DefaultAwards() Awards {
	return Awards{Base: 5, Fire: 10, Shield: 50, Focus: 25, Subscription: 10}
}

// Engine bundles the three cooperating components over one store.
type Engine struct {
	Progression *Progression
	Scheduler   *Scheduler
	Focus       *FocusGuard

	store store.Store
	now   func() time.Time
}

// New creates an Engine over the given store and notification channel.
func New(s store.Store, n notify.Notifier, awards Awards) *Engine {
	progression := &Progression{store: s, notifier: n, awards: awards, now: time.Now}
	guard := &FocusGuard{store: s, notifier: n, now: time.Now}
	scheduler := &Scheduler{store: s, notifier: n, progression: progression, awards: awards, now: time.Now}

	return &Engine{
		Progression: progression,
		Scheduler:   scheduler,
		Focus:       guard,
		store:       s,
		now:         time.Now,
	}
}

// WithClock replaces the engine's time source. Used by tests to pin the
// calendar day.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	e.Progression.now = now
	e.Scheduler.now = now
	e.Focus.now = now
	return e
}

// OnSessionStart is the explicit entry point the host application calls
// once per client session: renew due subscriptions, then run the daily
// catch-up, then return the state the UI displays. Processing failures are
// recoverable by the next trigger and never fail the session itself.
func (e *Engine) OnSessionStart(ctx context.Context, ownerID string) (*types.SessionSnapshot, error) {
	if _, err := e.Scheduler.ProcessDue(ctx, ownerID); err != nil {
		slog.Error("subscription processing failed", "owner_id", ownerID, "error", err)
	}

	if err := e.Progression.CatchUp(ctx, ownerID, e.now()); err != nil {
		slog.Error("daily catch-up failed", "owner_id", ownerID, "error", err)
	}

	return e.Snapshot(ctx, ownerID)
}

// Snapshot reads the owner's current engine state without processing.
func (e *Engine) Snapshot(ctx context.Context, ownerID string) (*types.SessionSnapshot, error) {
	progression, err := e.store.GetProgression(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	subs, err := e.store.ListSubscriptions(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	focus, err := e.store.ActiveFocus(ctx, ownerID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	return &types.SessionSnapshot{
		Progression:   progression,
		Subscriptions: subs,
		Focus:         focus,
	}, nil
}
