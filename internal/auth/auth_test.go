package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
)

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[string]*models.User)}
}

func (m *memoryUsers) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[strings.ToLower(user.Email)] = user
	return nil
}

func (m *memoryUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[strings.ToLower(email)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return user, nil
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	a := NewPasswordAuthenticator(newMemoryUsers()).WithCost(bcrypt.MinCost)

	user, err := a.Register(ctx, "alice@example.com", "Alice", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	t.Run("weak password rejected", func(t *testing.T) {
		_, err := a.Register(ctx, "bob@example.com", "Bob", "short")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := a.Register(ctx, "ALICE@example.com", "Alice 2", "another-password")
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("authenticate with correct password", func(t *testing.T) {
		got, err := a.Authenticate(ctx, "alice@example.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "alice@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = a.Authenticate(ctx, "nobody@example.com", "whatever1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestJWTManager(t *testing.T) {
	user := &models.User{ID: "user-1", Email: "alice@example.com"}
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.Generate(user)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		_, err := other.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewJWTManager("test-secret", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Validate("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned token rejected", func(t *testing.T) {
		none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "user-1"})
		s, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.Validate(s)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
