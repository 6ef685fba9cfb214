package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/emberworks/ember/internal/types"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Collector accumulates validation errors without failing on first.
type Collector struct {
	errors []ValidationError
}

// Add appends a validation error to the collector if non-nil.
func (c *Collector) Add(err *ValidationError) {
	if err != nil {
		c.errors = append(c.errors, *err)
	}
}

// HasErrors returns true if the collector has accumulated any errors.
func (c *Collector) HasErrors() bool {
	return len(c.errors) > 0
}

// Errors returns all accumulated validation errors.
func (c *Collector) Errors() []ValidationError {
	return c.errors
}

// ValidateRequired returns an error if the value is empty or whitespace-only.
func ValidateRequired(field, value string) *ValidationError {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   field,
			Message: "is required",
		}
	}
	return nil
}

// ValidatePositive returns an error unless value > 0.
func ValidatePositive(field string, value float64) *ValidationError {
	if value <= 0 {
		return &ValidationError{
			Field:   field,
			Message: "must be greater than zero",
		}
	}
	return nil
}

// ValidateCategory returns an error if the value is not a known category.
func ValidateCategory(field string, value types.Category) *ValidationError {
	if !types.ValidCategory(value) {
		return &ValidationError{
			Field:   field,
			Message: "must be a known spending category",
		}
	}
	return nil
}

// ValidateDayOfMonth returns an error if the value is outside 1..31.
func ValidateDayOfMonth(field string, value int) *ValidationError {
	if value < 1 || value > 31 {
		return &ValidationError{
			Field:   field,
			Message: "must be between 1 and 31",
		}
	}
	return nil
}

// ValidateFocusDuration returns an error if days is not an allowed length.
func ValidateFocusDuration(field string, days int) *ValidationError {
	if !types.ValidFocusDuration(days) {
		allowed := make([]string, len(types.FocusDurations))
		for i, d := range types.FocusDurations {
			allowed[i] = fmt.Sprintf("%d", d)
		}
		return &ValidationError{
			Field:   field,
			Message: "must be one of: " + strings.Join(allowed, ", "),
		}
	}
	return nil
}

var dateKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateDateKey returns an error if the value is not a YYYY-MM-DD key.
func ValidateDateKey(field, value string) *ValidationError {
	if !dateKeyPattern.MatchString(value) {
		return &ValidationError{
			Field:   field,
			Message: "must be a calendar date in YYYY-MM-DD form",
		}
	}
	return nil
}

// ValidateNewSubscription checks all fields of a subscription create request.
func ValidateNewSubscription(in types.NewSubscription) []ValidationError {
	var c Collector
	c.Add(ValidateRequired("name", in.Name))
	c.Add(ValidatePositive("amount", in.Amount))
	c.Add(ValidateCategory("category", in.Category))
	c.Add(ValidateDayOfMonth("day_of_month", in.DayOfMonth))
	return c.Errors()
}

// ValidateSubscriptionUpdate checks the fields present in an edit request.
func ValidateSubscriptionUpdate(upd types.SubscriptionUpdate) []ValidationError {
	var c Collector
	if upd.Name != nil {
		c.Add(ValidateRequired("name", *upd.Name))
	}
	if upd.Amount != nil {
		c.Add(ValidatePositive("amount", *upd.Amount))
	}
	if upd.Category != nil {
		c.Add(ValidateCategory("category", *upd.Category))
	}
	if upd.DayOfMonth != nil {
		c.Add(ValidateDayOfMonth("day_of_month", *upd.DayOfMonth))
	}
	return c.Errors()
}

// ValidateFocusStart checks the parameters of a focus session start request.
func ValidateFocusStart(category types.Category, dailyLimit float64, durationDays int) []ValidationError {
	var c Collector
	c.Add(ValidateCategory("category", category))
	c.Add(ValidatePositive("daily_limit", dailyLimit))
	c.Add(ValidateFocusDuration("duration_days", durationDays))
	return c.Errors()
}

// ValidateLedgerEntry checks the fields of an expense append request.
func ValidateLedgerEntry(entry types.LedgerEntry) []ValidationError {
	var c Collector
	c.Add(ValidatePositive("amount", entry.Amount))
	c.Add(ValidateCategory("category", entry.Category))
	c.Add(ValidateDateKey("date", entry.Date))
	return c.Errors()
}
