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
	"github.com/oklog/ulid/v2"
)

// Scheduler materializes recurring obligations into concrete ledger entries,
// at most once per subscription per billing month.
type Scheduler struct {
	store       store.Store
	notifier    notify.Notifier
	progression *Progression
	awards      Awards
	now         func() time.Time
}

// Create persists a new subscription. When the subscription is active and
// already due this month, the ledger entry is materialized in the same
// transaction and the month stamped, so the next ProcessDue pass skips it.
func (s *Scheduler) Create(ctx context.Context, ownerID string, in types.NewSubscription) (*types.Subscription, error) {
	now := s.now()
	sub := &types.Subscription{
		ID:         ulid.Make().String(),
		OwnerID:    ownerID,
		Name:       in.Name,
		Amount:     in.Amount,
		Category:   in.Category,
		DayOfMonth: in.DayOfMonth,
		IsActive:   in.IsActive,
		CreatedAt:  now.UTC(),
		UpdatedAt:  now.UTC(),
	}

	var entry *types.LedgerEntry
	if in.IsActive && now.Day() >= in.DayOfMonth {
		sub.LastProcessedMonth = types.MonthKey(now)
		entry = s.renewalEntry(sub, now)
		// The creation-time entry carries no subscription id: the record
		// does not exist yet when the ledger write commits.
		entry.SubscriptionID = ""
	}

	if err := s.store.CreateSubscription(ctx, sub, entry); err != nil {
		s.notifier.Error(ownerID, "Failed to add subscription")
		return nil, fmt.Errorf("create subscription: %w", err)
	}

	if entry != nil {
		s.notifier.Success(ownerID, "Subscription added & expense created!")
		s.awardRenewalPoints(ctx, ownerID)
	} else {
		s.notifier.Success(ownerID, "Subscription added")
	}

	return sub, nil
}

// ProcessDue renews every active subscription that is due this month and
// not yet stamped. Returns the number of renewals materialized. Failures on
// one subscription never block the rest.
func (s *Scheduler) ProcessDue(ctx context.Context, ownerID string) (int, error) {
	now := s.now()
	currentMonth := types.MonthKey(now)
	currentDay := now.Day()

	subs, err := s.store.ListSubscriptions(ctx, ownerID)
	if err != nil {
		s.notifier.Error(ownerID, "Failed to check subscription renewals")
		return 0, fmt.Errorf("list subscriptions: %w", err)
	}

	processed := 0
	failed := 0
	for i := range subs {
		sub := &subs[i]
		if !sub.IsActive {
			continue
		}
		if sub.LastProcessedMonth == currentMonth {
			continue
		}
		// A day-of-month beyond this month's length never becomes due and
		// the subscription is silently skipped for the cycle.
		if currentDay < sub.DayOfMonth {
			continue
		}

		renewed, err := s.renew(ctx, sub, currentMonth, now)
		if err != nil {
			slog.Error("subscription renewal failed",
				"owner_id", ownerID,
				"subscription_id", sub.ID,
				"name", sub.Name,
				"error", err,
			)
			failed++
			continue
		}
		if renewed {
			processed++
			s.awardRenewalPoints(ctx, ownerID)
		}
	}

	if failed > 0 {
		s.notifier.Error(ownerID, "Some subscription renewals failed and will retry next session")
	}
	if processed > 0 {
		message := fmt.Sprintf("Processed %d subscription renewal", processed)
		if processed > 1 {
			message += "s"
		}
		s.notifier.Info(ownerID, message)
	}

	return processed, nil
}

// renew materializes one subscription for the month. Returns true when a
// new ledger entry was created, false when the month was already covered.
func (s *Scheduler) renew(ctx context.Context, sub *types.Subscription, month string, now time.Time) (bool, error) {
	// Defensive existence check: a previous run may have written the entry
	// but crashed before stamping the month.
	exists, err := s.store.HasSubscriptionEntry(ctx, sub.OwnerID, month, sub.RenewalNote(), sub.Amount)
	if err != nil {
		return false, fmt.Errorf("check existing entry: %w", err)
	}
	if exists {
		if err := s.store.MarkSubscriptionProcessed(ctx, sub.OwnerID, sub.ID, month, nil); err != nil && !errors.Is(err, store.ErrStaleState) {
			return false, fmt.Errorf("stamp subscription: %w", err)
		}
		return false, nil
	}

	entry := s.renewalEntry(sub, now)
	err = s.store.MarkSubscriptionProcessed(ctx, sub.OwnerID, sub.ID, month, entry)
	if errors.Is(err, store.ErrStaleState) {
		// A concurrent session renewed first; nothing to do.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("materialize renewal: %w", err)
	}
	return true, nil
}

func (s *Scheduler) renewalEntry(sub *types.Subscription, now time.Time) *types.LedgerEntry {
	return &types.LedgerEntry{
		ID:               ulid.Make().String(),
		OwnerID:          sub.OwnerID,
		Amount:           sub.Amount,
		Category:         sub.Category,
		Note:             sub.RenewalNote(),
		Date:             types.DateKey(now),
		Month:            types.MonthKey(now),
		Time:             now.Format("15:04"),
		FromSubscription: true,
		SubscriptionID:   sub.ID,
		CreatedAt:        now.UTC(),
	}
}

// awardRenewalPoints grants the renewal XP. The award is best-effort: a
// failure leaves the ledger correct and only the points behind.
func (s *Scheduler) awardRenewalPoints(ctx context.Context, ownerID string) {
	if _, err := s.progression.AwardPoints(ctx, ownerID, s.awards.Subscription); err != nil {
		slog.Warn("renewal point award failed", "owner_id", ownerID, "error", err)
	}
}

// Update applies field edits to a subscription. Pausing (is_active=false)
// halts processing; already materialized entries stay in the ledger.
func (s *Scheduler) Update(ctx context.Context, ownerID, id string, upd types.SubscriptionUpdate) (*types.Subscription, error) {
	sub, err := s.store.UpdateSubscription(ctx, ownerID, id, upd)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.notifier.Error(ownerID, "Failed to update subscription")
		}
		return nil, fmt.Errorf("update subscription: %w", err)
	}
	s.notifier.Success(ownerID, "Subscription updated")
	return sub, nil
}

// Delete removes the subscription record only. Generated ledger entries are
// never un-materialized.
func (s *Scheduler) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.store.DeleteSubscription(ctx, ownerID, id); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.notifier.Error(ownerID, "Failed to delete subscription")
		}
		return fmt.Errorf("delete subscription: %w", err)
	}
	s.notifier.Success(ownerID, "Subscription removed")
	return nil
}
