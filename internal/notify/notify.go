// Package notify is the engine's user-facing notification channel. Delivery
// is fire-and-forget: the engine reports each completed or failed write once
// and never depends on the sink acknowledging it.
package notify

import (
	"log/slog"
	"sync"
)

// Severity classifies a notification event.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Notifier is the message sink contract.
type Notifier interface {
	Success(ownerID, message string)
	Error(ownerID, message string)
	Info(ownerID, message string)
}

// SlogNotifier emits notifications through the process logger. It stands in
// for a real delivery channel (toast bus, push gateway) behind the same
// interface.
type SlogNotifier struct{}

func (SlogNotifier) Success(ownerID, message string) {
	slog.Info("notification", "severity", SeveritySuccess, "owner_id", ownerID, "message", message)
}

func (SlogNotifier) Error(ownerID, message string) {
	slog.Warn("notification", "severity", SeverityError, "owner_id", ownerID, "message", message)
}

func (SlogNotifier) Info(ownerID, message string) {
	slog.Info("notification", "severity", SeverityInfo, "owner_id", ownerID, "message", message)
}

// Noop discards all notifications.
type Noop struct{}

func (Noop) Success(ownerID, message string) {}
func (Noop) Error(ownerID, message string)   {}
func (Noop) Info(ownerID, message string)    {}

// Event is a captured notification, used by the Recorder test double.
type Event struct {
	OwnerID  string
	Severity Severity
	Message  string
}

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Success(ownerID, message string) {
	r.record(ownerID, SeveritySuccess, message)
}

func (r *Recorder) Error(ownerID, message string) {
	r.record(ownerID, SeverityError, message)
}

func (r *Recorder) Info(ownerID, message string) {
	r.record(ownerID, SeverityInfo, message)
}

func (r *Recorder) record(ownerID string, severity Severity, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{OwnerID: ownerID, Severity: severity, Message: message})
}

// Events returns a copy of the captured notifications.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// BySeverity returns captured notifications with the given severity.
func (r *Recorder) BySeverity(severity Severity) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Severity == severity {
			out = append(out, e)
		}
	}
	return out
}
