// Package auth handles user accounts and session tokens for saved bills.
package auth

import (
	"context"

	"github.com/mmynk/billsplit/internal/models"
)

// Authenticator creates and verifies user accounts.
// The credential format depends on the implementation.
type Authenticator interface {
	// Register creates a new user account.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the matching user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks that a credential is acceptable before use.
	ValidateCredential(credential string) error
}
