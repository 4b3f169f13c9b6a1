package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/theirongolddev/debtburn/internal/model"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), Options{Driver: SQLite, Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoanCRUD(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	loans := []model.Loan{
		{ID: "b", Name: "Card", Balance: 5500, OriginalBalance: 8000, InterestRate: 22.99, MinimumPayment: 165, Type: model.LoanCreditCard},
		{ID: "a", Name: "Car", Balance: 9000.5, OriginalBalance: 12000, InterestRate: 6.1, MinimumPayment: 310, Type: model.LoanAuto},
	}
	for _, l := range loans {
		if err := s.InsertLoan(ctx, l); err != nil {
			t.Fatalf("InsertLoan(%s): %v", l.ID, err)
		}
	}

	got, err := s.ListLoans(ctx)
	if err != nil {
		t.Fatalf("ListLoans: %v", err)
	}
	if !reflect.DeepEqual(got, loans) {
		t.Fatalf("ListLoans = %+v, want insertion order %+v", got, loans)
	}

	edited := loans[0]
	edited.Balance = 5000
	edited.Name = "Chase Freedom Card"
	if err := s.UpdateLoan(ctx, edited); err != nil {
		t.Fatalf("UpdateLoan: %v", err)
	}
	one, err := s.GetLoan(ctx, "b")
	if err != nil {
		t.Fatalf("GetLoan: %v", err)
	}
	if one != edited {
		t.Fatalf("GetLoan = %+v, want %+v", one, edited)
	}

	got, _ = s.ListLoans(ctx)
	if got[0].ID != "b" {
		t.Fatalf("update moved loan: first = %s, want b", got[0].ID)
	}

	if err := s.DeleteLoan(ctx, "b"); err != nil {
		t.Fatalf("DeleteLoan: %v", err)
	}
	if _, err := s.GetLoan(ctx, "b"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetLoan after delete err = %v, want ErrNotFound", err)
	}
	if err := s.DeleteLoan(ctx, "b"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second DeleteLoan err = %v, want ErrNotFound", err)
	}
	if err := s.UpdateLoan(ctx, edited); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateLoan missing err = %v, want ErrNotFound", err)
	}
}

func TestBillCRUD(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	rent := model.Bill{ID: "r", Name: "Rent", Amount: 1200, DueDate: 1, Category: model.BillHousing, IsRecurring: true}
	gym := model.Bill{ID: "g", Name: "Gym", Amount: 39.99, DueDate: 31, Category: model.BillOther, IsRecurring: false}
	for _, b := range []model.Bill{rent, gym} {
		if err := s.InsertBill(ctx, b); err != nil {
			t.Fatalf("InsertBill(%s): %v", b.ID, err)
		}
	}

	got, err := s.ListBills(ctx)
	if err != nil {
		t.Fatalf("ListBills: %v", err)
	}
	if !reflect.DeepEqual(got, []model.Bill{rent, gym}) {
		t.Fatalf("ListBills = %+v", got)
	}

	gym.IsRecurring = true
	gym.DueDate = 15
	if err := s.UpdateBill(ctx, gym); err != nil {
		t.Fatalf("UpdateBill: %v", err)
	}
	one, err := s.GetBill(ctx, "g")
	if err != nil || one != gym {
		t.Fatalf("GetBill = %+v, %v; want %+v", one, err, gym)
	}

	if err := s.DeleteBill(ctx, "r"); err != nil {
		t.Fatalf("DeleteBill: %v", err)
	}
	loans, bills, err := s.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if loans != 0 || bills != 1 {
		t.Fatalf("Counts = %d, %d; want 0, 1", loans, bills)
	}
}

func TestInvalidDueDateRejected(t *testing.T) {
	s := openTemp(t)
	err := s.InsertBill(context.Background(), model.Bill{ID: "x", Name: "Bad", Amount: 1, DueDate: 32, Category: model.BillOther})
	if err == nil {
		t.Fatal("InsertBill accepted due_date 32")
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "persist.db")

	s, err := Open(ctx, Options{Path: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.InsertLoan(ctx, model.Loan{ID: "1", Name: "Loan", Balance: 10, Type: model.LoanPersonal}); err != nil {
		t.Fatalf("InsertLoan: %v", err)
	}
	_ = s.Close()

	s, err = Open(ctx, Options{Path: path})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s.Close() }()

	n, _, err := s.Counts(ctx)
	if err != nil || n != 1 {
		t.Fatalf("Counts after reopen = %d, %v; want 1", n, err)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, Options{Driver: Memory})
	if err != nil {
		t.Fatalf("Open memory: %v", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.InsertBill(ctx, model.Bill{ID: "n", Name: "Netflix", Amount: 15.99, DueDate: 8, Category: model.BillSubscriptions, IsRecurring: true}); err != nil {
		t.Fatalf("InsertBill: %v", err)
	}
	bills, err := s.ListBills(ctx)
	if err != nil || len(bills) != 1 {
		t.Fatalf("ListBills = %v, %v; want one bill", bills, err)
	}
}

func TestOpenRejectsBadOptions(t *testing.T) {
	ctx := context.Background()
	if _, err := Open(ctx, Options{Driver: "oracle"}); err == nil {
		t.Fatal("Open accepted unknown driver")
	}
	if _, err := Open(ctx, Options{Driver: SQLite}); err == nil {
		t.Fatal("Open accepted sqlite without a path")
	}
	if _, err := Open(ctx, Options{Driver: Postgres}); err == nil {
		t.Fatal("Open accepted postgres without a DSN")
	}
}

func TestRebind(t *testing.T) {
	pg := &Store{driver: Postgres}
	if got := pg.rebind("UPDATE t SET a = ?, b = ? WHERE id = ?"); got != "UPDATE t SET a = $1, b = $2 WHERE id = $3" {
		t.Fatalf("rebind = %q", got)
	}
	lite := &Store{driver: SQLite}
	if got := lite.rebind("SELECT ?"); got != "SELECT ?" {
		t.Fatalf("sqlite rebind = %q, want unchanged", got)
	}
}
