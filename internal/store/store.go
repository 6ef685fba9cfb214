package store

import (
	"context"

	"github.com/emberworks/ember/internal/types"
)

// Store defines the interface contract for all engine storage operations.
//
// Writes that advance a processing watermark (last_processed_date,
// last_processed_month) are conditional: a concurrent session that lost the
// race receives ErrStaleState and must not retry blindly.
type Store interface {
	// Progression.
	GetProgression(ctx context.Context, ownerID string) (*types.ProgressionState, error)
	SaveProgression(ctx context.Context, state *types.ProgressionState, expectedLastProcessedDate string) error
	AddPoints(ctx context.Context, ownerID string, amount int) (*types.ProgressionState, error)

	// Subscriptions. CreateSubscription persists the subscription and, when
	// entry is non-nil, the immediately materialized ledger entry in one
	// transaction. MarkSubscriptionProcessed stamps last_processed_month and
	// optionally creates the renewal entry, also atomically.
	CreateSubscription(ctx context.Context, sub *types.Subscription, entry *types.LedgerEntry) error
	GetSubscription(ctx context.Context, ownerID, id string) (*types.Subscription, error)
	ListSubscriptions(ctx context.Context, ownerID string) ([]types.Subscription, error)
	UpdateSubscription(ctx context.Context, ownerID, id string, upd types.SubscriptionUpdate) (*types.Subscription, error)
	DeleteSubscription(ctx context.Context, ownerID, id string) error
	MarkSubscriptionProcessed(ctx context.Context, ownerID, id, month string, entry *types.LedgerEntry) error

	// Ledger.
	AppendEntry(ctx context.Context, entry *types.LedgerEntry) error
	EntriesByDate(ctx context.Context, ownerID, date string) ([]types.LedgerEntry, error)
	EntriesByMonth(ctx context.Context, ownerID, month string) ([]types.LedgerEntry, error)
	DeleteEntry(ctx context.Context, ownerID, id string) error
	SpendForDate(ctx context.Context, ownerID, date string, category types.Category) (float64, error)
	HasSubscriptionEntry(ctx context.Context, ownerID, month, note string, amount float64) (bool, error)

	// Focus sessions.
	ActiveFocus(ctx context.Context, ownerID string) (*types.FocusSession, error)
	CreateFocus(ctx context.Context, session *types.FocusSession) error
	TransitionFocus(ctx context.Context, ownerID, id string, to types.FocusStatus, daysSucceeded int) error
	UpdateFocusProgress(ctx context.Context, ownerID, id string, daysSucceeded int) error

	// Maintenance.
	GenerateSnapshot(ctx context.Context) error
	SnapshotPath() string
	Close() error
}
