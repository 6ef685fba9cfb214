package types

import (
	"encoding/json"
	"time"
)

// Category classifies a ledger entry or subscription.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryRent          Category = "Rent"
	CategoryTravel        Category = "Travel"
	CategoryShopping      Category = "Shopping"
	CategoryUtilities     Category = "Utilities"
	CategoryEntertainment Category = "Entertainment"
	CategoryElectrical    Category = "Electrical"
	CategoryHealth        Category = "Health"
	CategoryEducation     Category = "Education"
	CategoryGifts         Category = "Gifts"
	CategorySubscriptions Category = "Subscriptions"
	CategoryInsurance     Category = "Insurance"
	CategoryEMIs          Category = "EMIS"
	CategoryOther         Category = "Other"
)

// Categories is the canonical list of spending categories.
// Keep this stable because stored records reference the raw strings.
var Categories = []Category{
	CategoryFood,
	CategoryRent,
	CategoryTravel,
	CategoryShopping,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryElectrical,
	CategoryHealth,
	CategoryEducation,
	CategoryGifts,
	CategorySubscriptions,
	CategoryInsurance,
	CategoryEMIs,
	CategoryOther,
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// FocusStatus represents the lifecycle state of a focus session.
type FocusStatus string

const (
	FocusActive    FocusStatus = "active"
	FocusCompleted FocusStatus = "completed"
	FocusFailed    FocusStatus = "failed"
	FocusAbandoned FocusStatus = "abandoned"
)

// FocusDurations are the allowed focus session lengths in days.
var FocusDurations = []int{3, 7, 30}

// ValidFocusDuration reports whether days is an allowed session length.
func ValidFocusDuration(days int) bool {
	for _, d := range FocusDurations {
		if days == d {
			return true
		}
	}
	return false
}

// Badge identifiers. IDs must remain stable because they are persisted
// in the owner's unlock set.
const (
	BadgeNoSpend       = "no_spend"
	BadgeStreak7       = "streak_7"
	BadgeSaverPro      = "saver_pro"
	BadgeFocusFinisher = "focus_finisher"
)

// levelThreshold maps a level to the minimum points required for it.
type levelThreshold struct {
	Level  int
	Points int
}

// levelThresholds is ascending by points. Level is a pure function of
// points over this table, clamped so it never regresses.
var levelThresholds = []levelThreshold{
	{Level: 1, Points: 0},
	{Level: 2, Points: 100},
	{Level: 3, Points: 300},
	{Level: 4, Points: 600},
	{Level: 5, Points: 1000},
	{Level: 6, Points: 2000},
}

// MaxLevel is the highest attainable level.
const MaxLevel = 6

// LevelForPoints returns the level for the given points total, never lower
// than current. The result is monotonic in both arguments.
func LevelForPoints(points, current int) int {
	level := current
	if level < 1 {
		level = 1
	}
	for _, t := range levelThresholds {
		if points >= t.Points && t.Level > level {
			level = t.Level
		}
	}
	return level
}

// PointsForLevel returns the minimum points needed for the given level,
// or -1 if the level is beyond the table.
func PointsForLevel(level int) int {
	for _, t := range levelThresholds {
		if t.Level == level {
			return t.Points
		}
	}
	return -1
}

// DateKey formats t as a calendar date key (YYYY-MM-DD).
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// MonthKey formats t as a calendar month key (YYYY-MM).
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthOfDate derives the month key from a date key.
func MonthOfDate(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// MonthlyRecord holds historical streak aggregates for one calendar month.
type MonthlyRecord struct {
	MaxShields   int `json:"max_shields"`
	MaxFires     int `json:"max_fires"`
	TotalShields int `json:"total_shields"`
	TotalFires   int `json:"total_fires"`
}

// ProgressionState is the single per-owner gamification record.
// Shields and fires are mutually exclusive streak counters: incrementing
// one resets the other within the same processing cycle.
type ProgressionState struct {
	OwnerID           string                   `json:"owner_id"`
	Points            int                      `json:"points"`
	Level             int                      `json:"level"`
	Shields           int                      `json:"shields"`
	Fires             int                      `json:"fires"`
	FocusStreak       int                      `json:"focus_streak"`
	FocusWins         int                      `json:"focus_wins"`
	LastProcessedDate string                   `json:"last_processed_date"` // YYYY-MM-DD, empty until first catch-up
	Badges            []string                 `json:"badges"`
	MonthlyRecords    map[string]MonthlyRecord `json:"monthly_records"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

// HasBadge reports whether the badge id is already unlocked.
func (s *ProgressionState) HasBadge(id string) bool {
	for _, b := range s.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// Unlock appends the badge id if not already present. The set is
// append-only; badges are never revoked.
func (s *ProgressionState) Unlock(id string) {
	if !s.HasBadge(id) {
		s.Badges = append(s.Badges, id)
	}
}

// MarshalJSON ensures nil collections in ProgressionState marshal as empty,
// not null.
func (s ProgressionState) MarshalJSON() ([]byte, error) {
	if s.Badges == nil {
		s.Badges = []string{}
	}
	if s.MonthlyRecords == nil {
		s.MonthlyRecords = map[string]MonthlyRecord{}
	}
	type Alias ProgressionState
	return json.Marshal(Alias(s))
}

// Subscription is a recurring financial obligation. The scheduler
// materializes at most one ledger entry per subscription per
// LastProcessedMonth value.
type Subscription struct {
	ID                 string    `json:"id"`
	OwnerID            string    `json:"owner_id"`
	Name               string    `json:"name"`
	Amount             float64   `json:"amount"`
	Category           Category  `json:"category"`
	DayOfMonth         int       `json:"day_of_month"` // 1-31
	IsActive           bool      `json:"is_active"`
	LastProcessedMonth string    `json:"last_processed_month"` // YYYY-MM, empty until first materialization
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// RenewalNote is the ledger note used for entries this subscription
// generates. The scheduler matches on it when checking for a previous
// partial run, so the format must stay stable.
func (s *Subscription) RenewalNote() string {
	return s.Name + " (Auto-subscription)"
}

// NewSubscription is the input for creating a subscription.
type NewSubscription struct {
	Name       string   `json:"name"`
	Amount     float64  `json:"amount"`
	Category   Category `json:"category"`
	DayOfMonth int      `json:"day_of_month"`
	IsActive   bool     `json:"is_active"`
}

// SubscriptionUpdate carries optional field edits. Nil fields are left
// unchanged. LastProcessedMonth is deliberately absent: only the scheduler
// mutates it.
type SubscriptionUpdate struct {
	Name       *string   `json:"name,omitempty"`
	Amount     *float64  `json:"amount,omitempty"`
	Category   *Category `json:"category,omitempty"`
	DayOfMonth *int      `json:"day_of_month,omitempty"`
	IsActive   *bool     `json:"is_active,omitempty"`
}

// FocusSession is a time-boxed, category-scoped daily spending-limit
// challenge. At most one session per owner may be active at a time.
type FocusSession struct {
	ID            string      `json:"id"`
	OwnerID       string      `json:"owner_id"`
	Category      Category    `json:"category"`
	DailyLimit    float64     `json:"daily_limit"`
	StartDate     string      `json:"start_date"` // YYYY-MM-DD
	EndDate       string      `json:"end_date"`   // YYYY-MM-DD, start + duration
	DurationDays  int         `json:"duration_days"`
	Status        FocusStatus `json:"status"`
	DaysSucceeded int         `json:"days_succeeded"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Covers reports whether the session window includes the given date key.
func (f *FocusSession) Covers(date string) bool {
	return f.StartDate <= date && date <= f.EndDate
}

// LedgerEntry is an expense record. Entries generated by the scheduler
// carry FromSubscription and, for renewals, the source subscription id.
// Existing entries are treated as given facts when computing spend.
type LedgerEntry struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"owner_id"`
	Amount           float64   `json:"amount"`
	Category         Category  `json:"category"`
	Note             string    `json:"note"`
	Date             string    `json:"date"`  // YYYY-MM-DD
	Month            string    `json:"month"` // YYYY-MM
	Time             string    `json:"time,omitempty"`
	FromSubscription bool      `json:"from_subscription"`
	SubscriptionID   string    `json:"subscription_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// SessionSnapshot bundles the engine state the UI consumes after a
// session-start trigger.
type SessionSnapshot struct {
	Progression   *ProgressionState `json:"progression"`
	Subscriptions []Subscription    `json:"subscriptions"`
	Focus         *FocusSession     `json:"focus,omitempty"`
}

// MarshalJSON ensures a nil subscription list marshals as [] not null.
func (s SessionSnapshot) MarshalJSON() ([]byte, error) {
	if s.Subscriptions == nil {
		s.Subscriptions = []Subscription{}
	}
	type Alias SessionSnapshot
	return json.Marshal(Alias(s))
}
