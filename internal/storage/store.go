// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/billsplit/internal/models"
)

// ErrNotFound is returned when a bill or user does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for bill and user storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateBill persists a new bill.
	// Empty ID, Title and timestamps are filled in by the store, and so are
	// empty dish IDs.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves a bill by its ID with diners and dishes in their
	// original order. Returns ErrNotFound if the bill does not exist.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// UpdateBill replaces an existing bill's contents.
	// Returns ErrNotFound if the bill does not exist.
	UpdateBill(ctx context.Context, bill *models.Bill) error

	// DeleteBill removes a bill. Returns ErrNotFound if it does not exist.
	DeleteBill(ctx context.Context, billID string) error

	// ListBillsByOwner returns every bill saved by ownerID, newest first.
	ListBillsByOwner(ctx context.Context, ownerID string) ([]*models.Bill, error)

	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
