package validation

import (
	"testing"

	"github.com/emberworks/ember/internal/types"
)

func TestValidateNewSubscription_Valid(t *testing.T) {
	errs := ValidateNewSubscription(types.NewSubscription{
		Name:       "Netflix",
		Amount:     200,
		Category:   types.CategorySubscriptions,
		DayOfMonth: 5,
		IsActive:   true,
	})
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateNewSubscription_CollectsAllErrors(t *testing.T) {
	errs := ValidateNewSubscription(types.NewSubscription{
		Name:       "  ",
		Amount:     0,
		Category:   types.Category("Crypto"),
		DayOfMonth: 32,
	})
	if len(errs) != 4 {
		t.Errorf("expected 4 errors, got %d: %v", len(errs), errs)
	}
}

func TestValidateSubscriptionUpdate_OnlyPresentFields(t *testing.T) {
	bad := -5.0
	errs := ValidateSubscriptionUpdate(types.SubscriptionUpdate{Amount: &bad})
	if len(errs) != 1 || errs[0].Field != "amount" {
		t.Errorf("expected single amount error, got %v", errs)
	}

	if errs := ValidateSubscriptionUpdate(types.SubscriptionUpdate{}); len(errs) != 0 {
		t.Errorf("empty update should be valid, got %v", errs)
	}
}

func TestValidateFocusStart(t *testing.T) {
	if errs := ValidateFocusStart(types.CategoryFood, 300, 7); len(errs) != 0 {
		t.Errorf("expected valid, got %v", errs)
	}
	if errs := ValidateFocusStart(types.CategoryFood, 300, 5); len(errs) != 1 {
		t.Errorf("expected duration error, got %v", errs)
	}
	if errs := ValidateFocusStart(types.Category("Nope"), -1, 4); len(errs) != 3 {
		t.Errorf("expected 3 errors, got %v", errs)
	}
}

func TestValidateDateKey(t *testing.T) {
	if err := ValidateDateKey("date", "2026-03-07"); err != nil {
		t.Errorf("expected valid date key, got %v", err)
	}
	for _, bad := range []string{"2026-3-7", "20260307", "yesterday", ""} {
		if err := ValidateDateKey("date", bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestValidateLedgerEntry(t *testing.T) {
	errs := ValidateLedgerEntry(types.LedgerEntry{
		Amount:   50,
		Category: types.CategoryFood,
		Date:     "2026-03-07",
	})
	if len(errs) != 0 {
		t.Errorf("expected valid entry, got %v", errs)
	}
}
