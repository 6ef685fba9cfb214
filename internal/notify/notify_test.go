package notify

import "testing"

func TestRecorder_CapturesEvents(t *testing.T) {
	r := &Recorder{}
	r.Success("owner-1", "Subscription added")
	r.Error("owner-1", "Failed to add subscription")
	r.Info("owner-2", "Processed 1 subscription renewal")

	events := r.Events()
	if len(events) != 3 {
		t.Fatalf("captured %d events", len(events))
	}
	if events[0].Severity != SeveritySuccess || events[0].OwnerID != "owner-1" {
		t.Errorf("first event = %+v", events[0])
	}

	errs := r.BySeverity(SeverityError)
	if len(errs) != 1 || errs[0].Message != "Failed to add subscription" {
		t.Errorf("errors = %+v", errs)
	}
}

func TestRecorder_EventsReturnsCopy(t *testing.T) {
	r := &Recorder{}
	r.Info("owner-1", "hello")

	events := r.Events()
	events[0].Message = "mutated"

	if r.Events()[0].Message != "hello" {
		t.Error("Events() must return a copy")
	}
}

func TestNoop_DiscardsEverything(t *testing.T) {
	// Must not panic with zero value.
	var n Noop
	n.Success("o", "m")
	n.Error("o", "m")
	n.Info("o", "m")
}
