package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/debtburn/internal/model"
	"github.com/theirongolddev/debtburn/internal/notify"
	"github.com/theirongolddev/debtburn/internal/pipeline"
)

// Store is the persistence the service needs. *store.Store satisfies it.
type Store interface {
	ListLoans(ctx context.Context) ([]model.Loan, error)
	GetLoan(ctx context.Context, id string) (model.Loan, error)
	InsertLoan(ctx context.Context, l model.Loan) error
	UpdateLoan(ctx context.Context, l model.Loan) error
	DeleteLoan(ctx context.Context, id string) error

	ListBills(ctx context.Context) ([]model.Bill, error)
	GetBill(ctx context.Context, id string) (model.Bill, error)
	InsertBill(ctx context.Context, b model.Bill) error
	UpdateBill(ctx context.Context, b model.Bill) error
	DeleteBill(ctx context.Context, id string) error
}

// Service applies validated changes to the store and emits one notification
// per change. Notification failures are logged, never returned: the change
// has already been saved.
type Service struct {
	store    Store
	notifier notify.Notifier
	logger   *logrus.Logger
	now      func() time.Time
}

// NewService wires a service. A nil notifier disables notifications.
func NewService(store Store, notifier notify.Notifier, logger *logrus.Logger) *Service {
	if notifier == nil {
		notifier = notify.Multi{}
	}
	return &Service{store: store, notifier: notifier, logger: logger, now: time.Now}
}

// Loans returns every loan in insertion order.
func (s *Service) Loans(ctx context.Context) ([]model.Loan, error) {
	return s.store.ListLoans(ctx)
}

// Bills returns every bill in insertion order.
func (s *Service) Bills(ctx context.Context) ([]model.Bill, error) {
	return s.store.ListBills(ctx)
}

// AddLoan validates the form, stores a new loan, and returns it.
func (s *Service) AddLoan(ctx context.Context, form LoanForm) (model.Loan, error) {
	l, err := form.Parse()
	if err != nil {
		return model.Loan{}, err
	}
	l.ID = uuid.NewString()
	if err := s.store.InsertLoan(ctx, l); err != nil {
		return model.Loan{}, err
	}
	s.emit(ctx, notify.LoanAdded, "Loan Added", l.Name+" has been added to your loans.", "loan", l.ID)
	return l, nil
}

// UpdateLoan replaces the loan with the given id.
func (s *Service) UpdateLoan(ctx context.Context, id string, form LoanForm) (model.Loan, error) {
	l, err := form.Parse()
	if err != nil {
		return model.Loan{}, err
	}
	l.ID = id
	if err := s.store.UpdateLoan(ctx, l); err != nil {
		return model.Loan{}, err
	}
	s.emit(ctx, notify.LoanUpdated, "Loan Updated", l.Name+" has been updated.", "loan", l.ID)
	return l, nil
}

// DeleteLoan removes the loan with the given id.
func (s *Service) DeleteLoan(ctx context.Context, id string) error {
	l, err := s.store.GetLoan(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteLoan(ctx, id); err != nil {
		return err
	}
	s.emit(ctx, notify.LoanDeleted, "Loan Deleted", l.Name+" has been removed from your loans.", "loan", id)
	return nil
}

// AddBill validates the form, stores a new bill, and returns it.
func (s *Service) AddBill(ctx context.Context, form BillForm) (model.Bill, error) {
	b, err := form.Parse()
	if err != nil {
		return model.Bill{}, err
	}
	b.ID = uuid.NewString()
	if err := s.store.InsertBill(ctx, b); err != nil {
		return model.Bill{}, err
	}
	s.emit(ctx, notify.BillAdded, "Bill Added", b.Name+" has been added to your bills.", "bill", b.ID)
	return b, nil
}

// UpdateBill replaces the bill with the given id.
func (s *Service) UpdateBill(ctx context.Context, id string, form BillForm) (model.Bill, error) {
	b, err := form.Parse()
	if err != nil {
		return model.Bill{}, err
	}
	b.ID = id
	if err := s.store.UpdateBill(ctx, b); err != nil {
		return model.Bill{}, err
	}
	s.emit(ctx, notify.BillUpdated, "Bill Updated", b.Name+" has been updated.", "bill", b.ID)
	return b, nil
}

// DeleteBill removes the bill with the given id.
func (s *Service) DeleteBill(ctx context.Context, id string) error {
	b, err := s.store.GetBill(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteBill(ctx, id); err != nil {
		return err
	}
	s.emit(ctx, notify.BillDeleted, "Bill Deleted", b.Name+" has been removed from your bills.", "bill", id)
	return nil
}

// Snapshot is the full portfolio at one point in time.
type Snapshot struct {
	Loans []model.Loan
	Bills []model.Bill
	At    time.Time
}

// Snapshot loads every loan and bill.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	loans, err := s.store.ListLoans(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading loans: %w", err)
	}
	bills, err := s.store.ListBills(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading bills: %w", err)
	}
	return Snapshot{Loans: loans, Bills: bills, At: s.now()}, nil
}

// Summary aggregates the snapshot.
func (snap Snapshot) Summary() model.SummaryMetrics {
	return pipeline.Aggregate(snap.Loans, snap.Bills)
}

// Simulate runs the payment simulator at the given extra payment.
func (snap Snapshot) Simulate(extra float64) model.SimulatorResult {
	return pipeline.Simulate(snap.Loans, snap.Bills, extra, snap.At)
}

// Compare runs both payoff strategies at the given extra payment.
func (snap Snapshot) Compare(extra float64) model.Comparison {
	return pipeline.CompareStrategies(snap.Loans, extra)
}

// Empty reports whether the portfolio has no loans and no bills.
func (snap Snapshot) Empty() bool {
	return len(snap.Loans) == 0 && len(snap.Bills) == 0
}

func (s *Service) emit(ctx context.Context, kind notify.Kind, title, desc, entity, id string) {
	ev := notify.Event{
		ID:          uuid.NewString(),
		Kind:        kind,
		Title:       title,
		Description: desc,
		Entity:      entity,
		EntityID:    id,
		At:          s.now(),
	}
	if err := s.notifier.Notify(ctx, ev); err != nil {
		s.logger.WithFields(logrus.Fields{
			"kind":  kind,
			"error": err,
		}).Warn("notification failed")
	}
}

// BillSchedule reports when b is next due relative to the snapshot time.
func (snap Snapshot) BillSchedule(b model.Bill) model.BillSchedule {
	return pipeline.BillDueStatus(b, snap.At)
}
