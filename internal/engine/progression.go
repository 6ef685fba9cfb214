package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/emberworks/ember/internal/notify"
	"github.com/emberworks/ember/internal/store"
	"github.com/emberworks/ember/internal/types"
)

// Progression owns the per-owner gamification record and advances it
// exactly once per calendar day.
type Progression struct {
	store    store.Store
	notifier notify.Notifier
	awards   Awards
	now      func() time.Time
}

// CatchUp advances the owner's progression through today. It is a no-op if
// today was already processed, and at most one concurrent session can win
// the final conditional write, so the daily cycle applies exactly once.
func (p *Progression) CatchUp(ctx context.Context, ownerID string, today time.Time) error {
	todayKey := types.DateKey(today)

	// Fresh read to narrow staleness against concurrent sessions.
	state, err := p.store.GetProgression(ctx, ownerID)
	if err != nil {
		p.notifier.Error(ownerID, "Could not load your daily progress")
		return fmt.Errorf("read progression: %w", err)
	}
	if state.LastProcessedDate == todayKey {
		return nil
	}
	previous := state.LastProcessedDate

	yesterdayKey := types.DateKey(today.AddDate(0, 0, -1))
	entries, err := p.store.EntriesByDate(ctx, ownerID, yesterdayKey)
	if err != nil {
		p.notifier.Error(ownerID, "Could not check yesterday's expenses")
		return fmt.Errorf("query yesterday's entries: %w", err)
	}
	spentYesterday := len(entries) > 0

	// Streak update. Shields and fires are mutually exclusive: extending
	// one resets the other. The first observation of an owner counts as
	// consecutive; a gap of more than one day resets both.
	var shieldGained, fireGained bool
	switch {
	case previous == yesterdayKey || previous == "":
		if spentYesterday {
			state.Fires++
			state.Shields = 0
			fireGained = true
		} else {
			state.Shields++
			state.Fires = 0
			shieldGained = true
		}
	default:
		state.Shields = 0
		state.Fires = 0
	}

	award := p.awards.Base
	if shieldGained {
		award += p.awards.Shield
	}
	if fireGained {
		award += p.awards.Fire
	}

	// Budget guard evaluation for yesterday, if a session overlapped it.
	focus, err := p.store.ActiveFocus(ctx, ownerID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		p.notifier.Error(ownerID, "Could not check your focus session")
		return fmt.Errorf("read focus session: %w", err)
	}

	focusWon := false
	if focus != nil && focus.Covers(yesterdayKey) {
		spend, err := p.store.SpendForDate(ctx, ownerID, yesterdayKey, focus.Category)
		if err != nil {
			p.notifier.Error(ownerID, "Could not compute yesterday's focus spend")
			return fmt.Errorf("compute focus spend: %w", err)
		}
		if spend <= focus.DailyLimit {
			state.FocusStreak++
			state.FocusWins++
			award += p.awards.Focus
			focus.DaysSucceeded++
			focusWon = true
		} else {
			// A lost day breaks the streak without touching the
			// session's own status.
			state.FocusStreak = 0
		}
	}

	// Session closure once the window has passed.
	var closeTo types.FocusStatus
	if focus != nil && todayKey > focus.EndDate {
		if focus.DaysSucceeded >= focus.DurationDays {
			closeTo = types.FocusCompleted
			state.Unlock(types.BadgeFocusFinisher)
		} else {
			closeTo = types.FocusFailed
		}
	}

	state.Points += award
	state.Level = types.LevelForPoints(state.Points, state.Level)

	if shieldGained {
		state.Unlock(types.BadgeNoSpend)
	}
	if state.Shields >= 7 {
		state.Unlock(types.BadgeSaverPro)
	}
	if state.Fires >= 7 {
		state.Unlock(types.BadgeStreak7)
	}

	// Monthly aggregates for the month yesterday belongs to.
	monthKey := types.MonthOfDate(yesterdayKey)
	if state.MonthlyRecords == nil {
		state.MonthlyRecords = map[string]types.MonthlyRecord{}
	}
	record := state.MonthlyRecords[monthKey]
	if spentYesterday {
		record.TotalFires++
	} else {
		record.TotalShields++
	}
	if state.Shields > record.MaxShields {
		record.MaxShields = state.Shields
	}
	if state.Fires > record.MaxFires {
		record.MaxFires = state.Fires
	}
	state.MonthlyRecords[monthKey] = record

	state.LastProcessedDate = todayKey

	// Single conditional persist. A concurrent session that advanced the
	// date first wins; this cycle then never happened.
	if err := p.store.SaveProgression(ctx, state, previous); err != nil {
		if errors.Is(err, store.ErrStaleState) {
			slog.Debug("catch-up lost the daily race", "owner_id", ownerID, "date", todayKey)
			return nil
		}
		p.notifier.Error(ownerID, "Could not save your daily progress")
		return fmt.Errorf("persist progression: %w", err)
	}

	// Focus bookkeeping follows the progression write so a lost race never
	// double-counts a day.
	if focus != nil {
		if closeTo != "" {
			if err := p.store.TransitionFocus(ctx, ownerID, focus.ID, closeTo, focus.DaysSucceeded); err != nil && !errors.Is(err, store.ErrNotFound) {
				slog.Error("focus session closure failed", "owner_id", ownerID, "error", err)
			} else if closeTo == types.FocusCompleted {
				p.notifier.Success(ownerID, "Focus Mode completed!")
			} else {
				p.notifier.Info(ownerID, "Focus Mode ended")
			}
		} else if focusWon {
			if err := p.store.UpdateFocusProgress(ctx, ownerID, focus.ID, focus.DaysSucceeded); err != nil && !errors.Is(err, store.ErrNotFound) {
				slog.Error("focus progress update failed", "owner_id", ownerID, "error", err)
			}
		}
	}

	p.notifier.Success(ownerID, "Daily progress processed")
	return nil
}

// AwardPoints applies a direct, non-negative point award outside the daily
// cycle, with the same monotonic level recompute.
func (p *Progression) AwardPoints(ctx context.Context, ownerID string, amount int) (*types.ProgressionState, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: negative point award %d", ErrInvariantViolation, amount)
	}

	state, err := p.store.AddPoints(ctx, ownerID, amount)
	if err != nil {
		p.notifier.Error(ownerID, "Could not record your points")
		return nil, fmt.Errorf("award points: %w", err)
	}
	return state, nil
}
