package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func sampleEvent() Event {
	return Event{
		ID:          "ev-1",
		Kind:        LoanAdded,
		Title:       "Loan Added",
		Description: "Car Loan has been added to your portfolio",
		Entity:      "loan",
		EntityID:    "loan-1",
		At:          time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestEventJSONRoundTrip(t *testing.T) {
	ev := sampleEvent()
	data, err := ev.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if !strings.Contains(string(data), `"kind":"loan.added"`) {
		t.Errorf("ToJSON = %s, want kind field", data)
	}
	got, err := EventFromJSON(data)
	if err != nil {
		t.Fatalf("EventFromJSON: %v", err)
	}
	if got != ev {
		t.Errorf("round trip = %+v, want %+v", got, ev)
	}
}

func TestMultiFansOutAndJoinsErrors(t *testing.T) {
	var a, b Recorder
	boom := errors.New("boom")
	failing := Func(func(context.Context, Event) error { return boom })

	err := Multi{&a, failing, nil, &b}.Notify(context.Background(), sampleEvent())
	if !errors.Is(err, boom) {
		t.Fatalf("Multi.Notify err = %v, want boom", err)
	}
	if len(a.Events()) != 1 || len(b.Events()) != 1 {
		t.Errorf("recorders got %d and %d events, want 1 each", len(a.Events()), len(b.Events()))
	}
}

func TestMultiNoErrors(t *testing.T) {
	var r Recorder
	if err := (Multi{&r}).Notify(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("Multi.Notify: %v", err)
	}
}

func TestRecorderLast(t *testing.T) {
	var r Recorder
	if _, ok := r.Last(); ok {
		t.Fatal("Last on empty recorder returned ok")
	}
	first := sampleEvent()
	second := sampleEvent()
	second.Kind = LoanDeleted
	_ = r.Notify(context.Background(), first)
	_ = r.Notify(context.Background(), second)

	last, ok := r.Last()
	if !ok || last.Kind != LoanDeleted {
		t.Errorf("Last = %v, %v; want loan.deleted", last.Kind, ok)
	}
}

func TestLogNotifierWritesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	if err := NewLogNotifier(logger).Notify(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"kind":"loan.added"`, `"entity_id":"loan-1"`, "Loan Added: Car Loan"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestRoutingKey(t *testing.T) {
	p := &AMQPPublisher{routingPrefix: "debtburn."}
	if got := p.RoutingKey(BillUpdated); got != "debtburn.bill.updated" {
		t.Errorf("RoutingKey = %q, want debtburn.bill.updated", got)
	}
}
