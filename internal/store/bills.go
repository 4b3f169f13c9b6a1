package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/theirongolddev/debtburn/internal/model"
)

const billColumns = "id, name, amount, due_date, category, is_recurring"

// ListBills returns all bills in insertion order.
func (s *Store) ListBills(ctx context.Context) ([]model.Bill, error) {
	rows, err := s.query(ctx, "SELECT "+billColumns+" FROM bills ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var bills []model.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

// GetBill returns one bill by id.
func (s *Store) GetBill(ctx context.Context, id string) (model.Bill, error) {
	b, err := scanBill(s.queryRow(ctx, "SELECT "+billColumns+" FROM bills WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Bill{}, fmt.Errorf("bill %s: %w", id, ErrNotFound)
	}
	return b, err
}

// InsertBill appends a bill after all existing bills.
func (s *Store) InsertBill(ctx context.Context, b model.Bill) error {
	ts := now()
	_, err := s.exec(ctx, `INSERT INTO bills
		(id, name, amount, due_date, category, is_recurring, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM bills), ?, ?)`,
		b.ID, b.Name, b.Amount, b.DueDate, string(b.Category), b.IsRecurring, ts, ts,
	)
	if err != nil {
		return fmt.Errorf("inserting bill: %w", err)
	}
	return nil
}

// UpdateBill replaces every field of an existing bill, keeping its position.
func (s *Store) UpdateBill(ctx context.Context, b model.Bill) error {
	res, err := s.exec(ctx, `UPDATE bills SET
		name = ?, amount = ?, due_date = ?, category = ?, is_recurring = ?, updated_at = ?
		WHERE id = ?`,
		b.Name, b.Amount, b.DueDate, string(b.Category), b.IsRecurring, now(), b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating bill: %w", err)
	}
	if err := expectOne(res); err != nil {
		return fmt.Errorf("bill %s: %w", b.ID, err)
	}
	return nil
}

// DeleteBill removes a bill by id.
func (s *Store) DeleteBill(ctx context.Context, id string) error {
	res, err := s.exec(ctx, "DELETE FROM bills WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting bill: %w", err)
	}
	if err := expectOne(res); err != nil {
		return fmt.Errorf("bill %s: %w", id, err)
	}
	return nil
}

func scanBill(r rowScanner) (model.Bill, error) {
	var (
		b        model.Bill
		category string
	)
	err := r.Scan(&b.ID, &b.Name, &b.Amount, &b.DueDate, &category, &b.IsRecurring)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return b, err
		}
		return b, fmt.Errorf("scanning bill: %w", err)
	}
	b.Category = model.BillCategory(category)
	return b, nil
}
