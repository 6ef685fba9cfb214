package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emberworks/ember/internal/types"
	_ "modernc.org/sqlite"
)

// SQLiteStore is the SQLite-backed engine database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates a new SQLiteStore instance.
// It initializes the database with WAL mode, applies pragmas, and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure parent directory exists
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := enablePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db, path: dbPath}, nil
}

// enablePragmas sets SQLite pragmas for optimal performance and safety.
func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// --- Progression ---

// GetProgression returns the owner's progression record, creating it with
// zero defaults on first observation.
func (s *SQLiteStore) GetProgression(ctx context.Context, ownerID string) (*types.ProgressionState, error) {
	state, err := s.scanProgression(ctx, ownerID)
	if err == nil {
		return state, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("query progression: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO progression (owner_id, created_at, updated_at)
		VALUES (?, ?, ?)
	`, ownerID, now, now)
	if err != nil {
		return nil, fmt.Errorf("initialize progression: %w", err)
	}

	state, err = s.scanProgression(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("reread progression: %w", err)
	}
	return state, nil
}

func (s *SQLiteStore) scanProgression(ctx context.Context, ownerID string) (*types.ProgressionState, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT owner_id, points, level, shields, fires, focus_streak, focus_wins,
		       last_processed_date, badges, monthly_records, created_at, updated_at
		FROM progression
		WHERE owner_id = ?
	`, ownerID)

	var state types.ProgressionState
	var badgesJSON, recordsJSON string
	var createdAt, updatedAt string

	err := row.Scan(
		&state.OwnerID,
		&state.Points,
		&state.Level,
		&state.Shields,
		&state.Fires,
		&state.FocusStreak,
		&state.FocusWins,
		&state.LastProcessedDate,
		&badgesJSON,
		&recordsJSON,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(badgesJSON), &state.Badges); err != nil {
		return nil, fmt.Errorf("parse badges JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(recordsJSON), &state.MonthlyRecords); err != nil {
		return nil, fmt.Errorf("parse monthly records JSON: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		state.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		state.UpdatedAt = t
	}

	return &state, nil
}

// SaveProgression persists the full merged record as a compare-and-swap on
// last_processed_date. A concurrent session that already advanced the date
// gets ErrStaleState and must treat the cycle as done.
func (s *SQLiteStore) SaveProgression(ctx context.Context, state *types.ProgressionState, expectedLastProcessedDate string) error {
	badges := state.Badges
	if badges == nil {
		badges = []string{}
	}
	badgesJSON, err := json.Marshal(badges)
	if err != nil {
		return fmt.Errorf("marshal badges: %w", err)
	}

	records := state.MonthlyRecords
	if records == nil {
		records = map[string]types.MonthlyRecord{}
	}
	recordsJSON, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal monthly records: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	result, err := s.db.ExecContext(ctx, `
		UPDATE progression
		SET points = ?, level = ?, shields = ?, fires = ?,
		    focus_streak = ?, focus_wins = ?, last_processed_date = ?,
		    badges = ?, monthly_records = ?, updated_at = ?
		WHERE owner_id = ? AND last_processed_date = ?
	`,
		state.Points, state.Level, state.Shields, state.Fires,
		state.FocusStreak, state.FocusWins, state.LastProcessedDate,
		string(badgesJSON), string(recordsJSON), now,
		state.OwnerID, expectedLastProcessedDate,
	)
	if err != nil {
		return fmt.Errorf("save progression: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		var exists bool
		if err := s.db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM progression WHERE owner_id = ?)", state.OwnerID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("check progression existence: %w", err)
		}
		if !exists {
			return ErrNotFound
		}
		return ErrStaleState
	}

	return nil
}

// AddPoints applies a direct point award inside a transaction, recomputing
// the level with the same monotonic rule the daily cycle uses.
func (s *SQLiteStore) AddPoints(ctx context.Context, ownerID string, amount int) (*types.ProgressionState, error) {
	// First observation of an owner initializes the record.
	if _, err := s.GetProgression(ctx, ownerID); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var points, level int
	if err := tx.QueryRowContext(ctx,
		"SELECT points, level FROM progression WHERE owner_id = ?", ownerID,
	).Scan(&points, &level); err != nil {
		return nil, fmt.Errorf("read points: %w", err)
	}

	points += amount
	level = types.LevelForPoints(points, level)
	now := time.Now().UTC().Format(time.RFC3339)

	if _, err := tx.ExecContext(ctx, `
		UPDATE progression SET points = ?, level = ?, updated_at = ? WHERE owner_id = ?
	`, points, level, now, ownerID); err != nil {
		return nil, fmt.Errorf("update points: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return s.GetProgression(ctx, ownerID)
}

// --- Subscriptions ---

// CreateSubscription persists a subscription and, when entry is non-nil,
// its immediately materialized ledger entry in a single transaction.
func (s *SQLiteStore) CreateSubscription(ctx context.Context, sub *types.Subscription, entry *types.LedgerEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO subscriptions (id, owner_id, name, amount, category, day_of_month, is_active, last_processed_month, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		sub.ID, sub.OwnerID, sub.Name, sub.Amount, string(sub.Category),
		sub.DayOfMonth, boolToInt(sub.IsActive), sub.LastProcessedMonth,
		sub.CreatedAt.Format(time.RFC3339), sub.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}

	if entry != nil {
		if err := insertEntry(ctx, tx, entry); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetSubscription retrieves a subscription by id, scoped to the owner.
func (s *SQLiteStore) GetSubscription(ctx context.Context, ownerID, id string) (*types.Subscription, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, amount, category, day_of_month, is_active, last_processed_month, created_at, updated_at
		FROM subscriptions
		WHERE id = ? AND owner_id = ?
	`, id, ownerID)

	sub, err := scanSubscription(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan subscription: %w", err)
	}
	return sub, nil
}

// ListSubscriptions returns all subscriptions for the owner, oldest first.
func (s *SQLiteStore) ListSubscriptions(ctx context.Context, ownerID string) ([]types.Subscription, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, name, amount, category, day_of_month, is_active, last_processed_month, created_at, updated_at
		FROM subscriptions
		WHERE owner_id = ?
		ORDER BY created_at ASC, id ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []types.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscriptions: %w", err)
	}
	return subs, nil
}

// UpdateSubscription applies the non-nil fields of upd and returns the
// updated record. The scheduler's watermark cannot be edited this way.
func (s *SQLiteStore) UpdateSubscription(ctx context.Context, ownerID, id string, upd types.SubscriptionUpdate) (*types.Subscription, error) {
	var sets []string
	var args []any

	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Amount != nil {
		sets = append(sets, "amount = ?")
		args = append(args, *upd.Amount)
	}
	if upd.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, string(*upd.Category))
	}
	if upd.DayOfMonth != nil {
		sets = append(sets, "day_of_month = ?")
		args = append(args, *upd.DayOfMonth)
	}
	if upd.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, boolToInt(*upd.IsActive))
	}

	if len(sets) > 0 {
		sets = append(sets, "updated_at = ?")
		args = append(args, time.Now().UTC().Format(time.RFC3339))
		args = append(args, id, ownerID)

		query := "UPDATE subscriptions SET " + strings.Join(sets, ", ") + " WHERE id = ? AND owner_id = ?"
		result, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("update subscription: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("get rows affected: %w", err)
		}
		if rows == 0 {
			return nil, ErrNotFound
		}
	}

	return s.GetSubscription(ctx, ownerID, id)
}

// DeleteSubscription removes the subscription record only; ledger entries
// it generated are never deleted.
func (s *SQLiteStore) DeleteSubscription(ctx context.Context, ownerID, id string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM subscriptions WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkSubscriptionProcessed stamps last_processed_month and, when entry is
// non-nil, creates the renewal ledger entry in the same transaction. The
// stamp is conditional on the month not already being set, so a concurrent
// session cannot materialize the renewal twice.
func (s *SQLiteStore) MarkSubscriptionProcessed(ctx context.Context, ownerID, id, month string, entry *types.LedgerEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	result, err := tx.ExecContext(ctx, `
		UPDATE subscriptions
		SET last_processed_month = ?, updated_at = ?
		WHERE id = ? AND owner_id = ? AND last_processed_month <> ?
	`, month, now, id, ownerID, month)
	if err != nil {
		return fmt.Errorf("stamp subscription: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM subscriptions WHERE id = ? AND owner_id = ?)", id, ownerID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("check subscription existence: %w", err)
		}
		if !exists {
			return ErrNotFound
		}
		return ErrStaleState
	}

	if entry != nil {
		if err := insertEntry(ctx, tx, entry); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// --- Ledger ---

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertEntry(ctx context.Context, db execer, entry *types.LedgerEntry) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO ledger_entries (id, owner_id, amount, category, note, date, month, time, from_subscription, subscription_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID, entry.OwnerID, entry.Amount, string(entry.Category), entry.Note,
		entry.Date, entry.Month, entry.Time, boolToInt(entry.FromSubscription),
		entry.SubscriptionID, entry.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// AppendEntry appends an expense record to the ledger.
func (s *SQLiteStore) AppendEntry(ctx context.Context, entry *types.LedgerEntry) error {
	return insertEntry(ctx, s.db, entry)
}

// EntriesByDate returns all ledger entries for the owner on the given date.
func (s *SQLiteStore) EntriesByDate(ctx context.Context, ownerID, date string) ([]types.LedgerEntry, error) {
	return s.queryEntries(ctx, "date", ownerID, date)
}

// EntriesByMonth returns all ledger entries for the owner in the given month.
func (s *SQLiteStore) EntriesByMonth(ctx context.Context, ownerID, month string) ([]types.LedgerEntry, error) {
	return s.queryEntries(ctx, "month", ownerID, month)
}

func (s *SQLiteStore) queryEntries(ctx context.Context, column, ownerID, key string) ([]types.LedgerEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, amount, category, note, date, month, time, from_subscription, subscription_id, created_at
		FROM ledger_entries
		WHERE owner_id = ? AND `+column+` = ?
		ORDER BY created_at ASC, id ASC
	`, ownerID, key)
	if err != nil {
		return nil, fmt.Errorf("query ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []types.LedgerEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entries: %w", err)
	}
	return entries, nil
}

// DeleteEntry removes a ledger entry by id, scoped to the owner.
func (s *SQLiteStore) DeleteEntry(ctx context.Context, ownerID, id string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM ledger_entries WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("delete ledger entry: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// SpendForDate sums the owner's entries for the date, restricted to the
// category. Pure read, no side effects.
func (s *SQLiteStore) SpendForDate(ctx context.Context, ownerID, date string, category types.Category) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM ledger_entries
		WHERE owner_id = ? AND date = ? AND category = ?
	`, ownerID, date, string(category)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum daily spend: %w", err)
	}
	return total, nil
}

// HasSubscriptionEntry reports whether a ledger entry matching the
// subscription's identity (month, note, amount) already exists. Used as the
// defensive existence check before materializing a renewal.
func (s *SQLiteStore) HasSubscriptionEntry(ctx context.Context, ownerID, month, note string, amount float64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM ledger_entries
			WHERE owner_id = ? AND month = ? AND note = ? AND amount = ?
		)
	`, ownerID, month, note, amount).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check subscription entry: %w", err)
	}
	return exists, nil
}

// --- Focus sessions ---

// ActiveFocus returns the owner's active session, or ErrNotFound when none.
func (s *SQLiteStore) ActiveFocus(ctx context.Context, ownerID string) (*types.FocusSession, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, category, daily_limit, start_date, end_date, duration_days, status, days_succeeded, created_at, updated_at
		FROM focus_sessions
		WHERE owner_id = ? AND status = 'active'
	`, ownerID)

	session, err := scanFocus(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan focus session: %w", err)
	}
	return session, nil
}

// CreateFocus inserts a new session. The partial unique index on active
// sessions turns a concurrent double-start into ErrFocusActive.
func (s *SQLiteStore) CreateFocus(ctx context.Context, session *types.FocusSession) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO focus_sessions (id, owner_id, category, daily_limit, start_date, end_date, duration_days, status, days_succeeded, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		session.ID, session.OwnerID, string(session.Category), session.DailyLimit,
		session.StartDate, session.EndDate, session.DurationDays, string(session.Status),
		session.DaysSucceeded, session.CreatedAt.Format(time.RFC3339), session.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrFocusActive
		}
		return fmt.Errorf("insert focus session: %w", err)
	}
	return nil
}

// TransitionFocus moves an active session to a terminal status. Closed
// states are terminal: the guard on status='active' makes a second
// transition a no-op error rather than an overwrite.
func (s *SQLiteStore) TransitionFocus(ctx context.Context, ownerID, id string, to types.FocusStatus, daysSucceeded int) error {
	now := time.Now().UTC().Format(time.RFC3339)
	result, err := s.db.ExecContext(ctx, `
		UPDATE focus_sessions
		SET status = ?, days_succeeded = ?, updated_at = ?
		WHERE id = ? AND owner_id = ? AND status = 'active'
	`, string(to), daysSucceeded, now, id, ownerID)
	if err != nil {
		return fmt.Errorf("transition focus session: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateFocusProgress records the per-day success counter on an active session.
func (s *SQLiteStore) UpdateFocusProgress(ctx context.Context, ownerID, id string, daysSucceeded int) error {
	now := time.Now().UTC().Format(time.RFC3339)
	result, err := s.db.ExecContext(ctx, `
		UPDATE focus_sessions
		SET days_succeeded = ?, updated_at = ?
		WHERE id = ? AND owner_id = ? AND status = 'active'
	`, daysSucceeded, now, id, ownerID)
	if err != nil {
		return fmt.Errorf("update focus progress: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Maintenance ---

// GenerateSnapshot writes a consistent copy of the database next to the
// live file using VACUUM INTO. The previous snapshot is replaced.
func (s *SQLiteStore) GenerateSnapshot(ctx context.Context) error {
	if s.path == ":memory:" || s.path == "" {
		return ErrNoSnapshot
	}

	target := s.SnapshotPath()
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove previous snapshot: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?", target); err != nil {
		return fmt.Errorf("vacuum into snapshot: %w", err)
	}
	return nil
}

// SnapshotPath returns the path the snapshot is written to.
func (s *SQLiteStore) SnapshotPath() string {
	return s.path + ".snapshot"
}

// --- scanners ---

func scanSubscription(scanner interface{ Scan(...any) error }) (*types.Subscription, error) {
	var sub types.Subscription
	var category string
	var isActive int
	var createdAt, updatedAt string

	err := scanner.Scan(
		&sub.ID,
		&sub.OwnerID,
		&sub.Name,
		&sub.Amount,
		&category,
		&sub.DayOfMonth,
		&isActive,
		&sub.LastProcessedMonth,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	sub.Category = types.Category(category)
	sub.IsActive = isActive != 0
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		sub.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		sub.UpdatedAt = t
	}
	return &sub, nil
}

func scanEntry(scanner interface{ Scan(...any) error }) (*types.LedgerEntry, error) {
	var entry types.LedgerEntry
	var category string
	var fromSubscription int
	var createdAt string

	err := scanner.Scan(
		&entry.ID,
		&entry.OwnerID,
		&entry.Amount,
		&category,
		&entry.Note,
		&entry.Date,
		&entry.Month,
		&entry.Time,
		&fromSubscription,
		&entry.SubscriptionID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Category = types.Category(category)
	entry.FromSubscription = fromSubscription != 0
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		entry.CreatedAt = t
	}
	return &entry, nil
}

func scanFocus(scanner interface{ Scan(...any) error }) (*types.FocusSession, error) {
	var session types.FocusSession
	var category, status string
	var createdAt, updatedAt string

	err := scanner.Scan(
		&session.ID,
		&session.OwnerID,
		&category,
		&session.DailyLimit,
		&session.StartDate,
		&session.EndDate,
		&session.DurationDays,
		&status,
		&session.DaysSucceeded,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	session.Category = types.Category(category)
	session.Status = types.FocusStatus(status)
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		session.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		session.UpdatedAt = t
	}
	return &session, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
