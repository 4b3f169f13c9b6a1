// Package notify delivers portfolio change events: loans and bills added,
// edited, or removed.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Kind identifies a change event.
type Kind string

const (
	LoanAdded   Kind = "loan.added"
	LoanUpdated Kind = "loan.updated"
	LoanDeleted Kind = "loan.deleted"
	BillAdded   Kind = "bill.added"
	BillUpdated Kind = "bill.updated"
	BillDeleted Kind = "bill.deleted"
)

// Event describes one change to the portfolio.
type Event struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Entity      string    `json:"entity"` // "loan" or "bill"
	EntityID    string    `json:"entity_id"`
	At          time.Time `json:"at"`
}

// ToJSON encodes the event for the wire.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EventFromJSON decodes an event.
func EventFromJSON(data []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(data, &e)
	return e, err
}

// Notifier receives change events.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context, ev Event) error

// Notify calls f.
func (f Func) Notify(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}

// Multi fans an event out to every notifier and joins their errors.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(ctx context.Context, ev Event) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogNotifier writes each event as a structured log line.
type LogNotifier struct {
	logger *logrus.Logger
}

// NewLogNotifier returns a notifier that logs to logger.
func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(_ context.Context, ev Event) error {
	n.logger.WithFields(logrus.Fields{
		"kind":      ev.Kind,
		"entity_id": ev.EntityID,
	}).Info(ev.Title + ": " + ev.Description)
	return nil
}

// Recorder keeps the events it receives, newest last.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Notify implements Notifier.
func (r *Recorder) Notify(_ context.Context, ev Event) error {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
	return nil
}

// Events returns a copy of every recorded event.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Last returns the most recent event.
func (r *Recorder) Last() (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return Event{}, false
	}
	return r.events[len(r.events)-1], true
}
