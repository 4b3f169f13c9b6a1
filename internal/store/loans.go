package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/theirongolddev/debtburn/internal/model"
)

const loanColumns = "id, name, balance, original_balance, interest_rate, minimum_payment, loan_type"

// ListLoans returns all loans in insertion order.
func (s *Store) ListLoans(ctx context.Context) ([]model.Loan, error) {
	rows, err := s.query(ctx, "SELECT "+loanColumns+" FROM loans ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("listing loans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var loans []model.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

// GetLoan returns one loan by id.
func (s *Store) GetLoan(ctx context.Context, id string) (model.Loan, error) {
	l, err := scanLoan(s.queryRow(ctx, "SELECT "+loanColumns+" FROM loans WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Loan{}, fmt.Errorf("loan %s: %w", id, ErrNotFound)
	}
	return l, err
}

// InsertLoan appends a loan after all existing loans.
func (s *Store) InsertLoan(ctx context.Context, l model.Loan) error {
	ts := now()
	_, err := s.exec(ctx, `INSERT INTO loans
		(id, name, balance, original_balance, interest_rate, minimum_payment, loan_type,
		 position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM loans), ?, ?)`,
		l.ID, l.Name, l.Balance, l.OriginalBalance, l.InterestRate, l.MinimumPayment, string(l.Type),
		ts, ts,
	)
	if err != nil {
		return fmt.Errorf("inserting loan: %w", err)
	}
	return nil
}

// UpdateLoan replaces every field of an existing loan, keeping its position.
func (s *Store) UpdateLoan(ctx context.Context, l model.Loan) error {
	res, err := s.exec(ctx, `UPDATE loans SET
		name = ?, balance = ?, original_balance = ?, interest_rate = ?, minimum_payment = ?,
		loan_type = ?, updated_at = ?
		WHERE id = ?`,
		l.Name, l.Balance, l.OriginalBalance, l.InterestRate, l.MinimumPayment,
		string(l.Type), now(), l.ID,
	)
	if err != nil {
		return fmt.Errorf("updating loan: %w", err)
	}
	if err := expectOne(res); err != nil {
		return fmt.Errorf("loan %s: %w", l.ID, err)
	}
	return nil
}

// DeleteLoan removes a loan by id.
func (s *Store) DeleteLoan(ctx context.Context, id string) error {
	res, err := s.exec(ctx, "DELETE FROM loans WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting loan: %w", err)
	}
	if err := expectOne(res); err != nil {
		return fmt.Errorf("loan %s: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLoan(r rowScanner) (model.Loan, error) {
	var (
		l        model.Loan
		loanType string
	)
	err := r.Scan(&l.ID, &l.Name, &l.Balance, &l.OriginalBalance, &l.InterestRate, &l.MinimumPayment, &loanType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return l, err
		}
		return l, fmt.Errorf("scanning loan: %w", err)
	}
	l.Type = model.LoanType(loanType)
	return l, nil
}
