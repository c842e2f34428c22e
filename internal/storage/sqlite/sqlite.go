// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas in the DSN apply to every pooled connection.
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateBill persists a new bill to the database.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	now := time.Now()
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = now.Unix()
	}
	bill.UpdatedAt = bill.CreatedAt
	if bill.Title == "" {
		bill.Title = bill.DefaultTitle(now)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO bills (id, owner_id, title, tax_cents, tip_cents, fees_cents,
			receipt_total_cents, payer_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.OwnerID, bill.Title, bill.TaxCents, bill.TipCents, bill.FeesCents,
		bill.ReceiptTotalCents, bill.PayerID, bill.CreatedAt, bill.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	if err := insertContents(ctx, tx, bill); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateBill replaces the bill row and all of its diners and dishes.
func (s *SQLiteStore) UpdateBill(ctx context.Context, bill *models.Bill) error {
	now := time.Now()
	bill.UpdatedAt = now.Unix()
	if bill.Title == "" {
		bill.Title = bill.DefaultTitle(now)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE bills SET title = ?, tax_cents = ?, tip_cents = ?, fees_cents = ?,
			receipt_total_cents = ?, payer_id = ?, updated_at = ?
		WHERE id = ?`,
		bill.Title, bill.TaxCents, bill.TipCents, bill.FeesCents,
		bill.ReceiptTotalCents, bill.PayerID, bill.UpdatedAt, bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	} else if n == 0 {
		return fmt.Errorf("bill %s: %w", bill.ID, storage.ErrNotFound)
	}

	// Dish assignments go with their dishes through ON DELETE CASCADE.
	if _, err := tx.ExecContext(ctx, "DELETE FROM diners WHERE bill_id = ?", bill.ID); err != nil {
		return fmt.Errorf("failed to clear diners: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM dishes WHERE bill_id = ?", bill.ID); err != nil {
		return fmt.Errorf("failed to clear dishes: %w", err)
	}

	if err := insertContents(ctx, tx, bill); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteBill removes a bill with its diners and dishes.
func (s *SQLiteStore) DeleteBill(ctx context.Context, billID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", billID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	return nil
}

// insertContents writes the diners and dishes of bill inside tx.
func insertContents(ctx context.Context, tx *sql.Tx, bill *models.Bill) error {
	for pos, name := range bill.Diners {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO diners (bill_id, position, name) VALUES (?, ?, ?)",
			bill.ID, pos, name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert diner: %w", err)
		}
	}

	for pos := range bill.Dishes {
		dish := &bill.Dishes[pos]
		if dish.ID == "" {
			dish.ID = uuid.New().String()
		}
		if dish.PriceMode == "" {
			dish.PriceMode = models.PriceModeTotal
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO dishes (id, bill_id, position, name, quantity, price_cents, price_mode)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			dish.ID, bill.ID, pos, dish.Name, dish.Quantity, dish.PriceCents, string(dish.PriceMode),
		)
		if err != nil {
			return fmt.Errorf("failed to insert dish: %w", err)
		}

		for dpos, dinerIndex := range dish.Diners {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO dish_diners (bill_id, dish_id, position, diner_index) VALUES (?, ?, ?, ?)",
				bill.ID, dish.ID, dpos, dinerIndex,
			)
			if err != nil {
				return fmt.Errorf("failed to insert dish assignment: %w", err)
			}
		}
	}
	return nil
}

// GetBill retrieves a bill by ID, including all diners and dishes.
func (s *SQLiteStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	bill := &models.Bill{}
	var receipt sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, tax_cents, tip_cents, fees_cents,
			receipt_total_cents, payer_id, created_at, updated_at
		FROM bills WHERE id = ?`,
		billID,
	).Scan(&bill.ID, &bill.OwnerID, &bill.Title, &bill.TaxCents, &bill.TipCents, &bill.FeesCents,
		&receipt, &bill.PayerID, &bill.CreatedAt, &bill.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	if receipt.Valid {
		bill.ReceiptTotalCents = &receipt.Int64
	}

	if bill.Diners, err = s.getDiners(ctx, billID); err != nil {
		return nil, err
	}
	if bill.Dishes, err = s.getDishes(ctx, billID); err != nil {
		return nil, err
	}

	return bill, nil
}

func (s *SQLiteStore) getDiners(ctx context.Context, billID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM diners WHERE bill_id = ? ORDER BY position",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get diners: %w", err)
	}
	defer rows.Close()

	diners := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan diner: %w", err)
		}
		diners = append(diners, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate diners: %w", err)
	}
	return diners, nil
}

func (s *SQLiteStore) getDishes(ctx context.Context, billID string) ([]models.Dish, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, quantity, price_cents, price_mode
		FROM dishes WHERE bill_id = ? ORDER BY position`,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get dishes: %w", err)
	}

	dishes := []models.Dish{}
	for rows.Next() {
		var dish models.Dish
		var mode string
		if err := rows.Scan(&dish.ID, &dish.Name, &dish.Quantity, &dish.PriceCents, &mode); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan dish: %w", err)
		}
		dish.PriceMode = models.PriceMode(mode)
		dishes = append(dishes, dish)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dishes: %w", err)
	}

	for i := range dishes {
		if dishes[i].Diners, err = s.getDishDiners(ctx, billID, dishes[i].ID); err != nil {
			return nil, err
		}
	}
	return dishes, nil
}

func (s *SQLiteStore) getDishDiners(ctx context.Context, billID, dishID string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT diner_index FROM dish_diners WHERE bill_id = ? AND dish_id = ? ORDER BY position",
		billID, dishID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get dish assignments: %w", err)
	}
	defer rows.Close()

	diners := []int{}
	for rows.Next() {
		var idx int
		if err := rows.Scan(&idx); err != nil {
			return nil, fmt.Errorf("failed to scan dish assignment: %w", err)
		}
		diners = append(diners, idx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dish assignments: %w", err)
	}
	return diners, nil
}

// ListBillsByOwner returns all bills saved by ownerID, newest first. Bills
// created in the same second keep their insertion order.
func (s *SQLiteStore) ListBillsByOwner(ctx context.Context, ownerID string) ([]*models.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM bills WHERE owner_id = ? ORDER BY created_at DESC, rowid DESC",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan bill id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	bills := make([]*models.Bill, 0, len(ids))
	for _, id := range ids {
		bill, err := s.GetBill(ctx, id)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, nil
}
