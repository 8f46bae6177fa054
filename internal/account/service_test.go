package account_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodledger/internal/account"
	"moodledger/internal/storage"
)

func newService(t *testing.T) *account.Service {
	t.Helper()
	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return &account.Service{Repo: store}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	a, err := svc.Register(ctx, "alice", "Alice@Example.com", "secret123")
	require.NoError(t, err)
	assert.NotZero(t, a.ID)
	assert.Equal(t, "alice", a.Username)
	assert.Equal(t, "alice@example.com", a.Email, "email is stored lowercased")
	assert.NotEqual(t, "secret123", a.PasswordHash)

	byName, err := svc.Authenticate(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byName.ID)

	byEmail, err := svc.Authenticate(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byEmail.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"short username", "ab", "ab@example.com", "secret123"},
		{"long username", "this_username_is_way_too_long", "x@example.com", "secret123"},
		{"bad characters", "not ok!", "x@example.com", "secret123"},
		{"bad email", "valid_name", "not-an-email", "secret123"},
		{"empty email", "valid_name", "", "secret123"},
		{"short password", "valid_name", "x@example.com", "12345"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.email, tc.password)
			assert.ErrorIs(t, err, account.ErrInvalidInput)
		})
	}
}

func TestRegisterDuplicates(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "different@example.com", "secret123")
	assert.ErrorIs(t, err, account.ErrDuplicateAccount)

	_, err = svc.Register(ctx, "alice2", "alice@example.com", "secret123")
	assert.ErrorIs(t, err, account.ErrDuplicateAccount)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, wrongPass := svc.Authenticate(ctx, "alice", "wrongpass")
	_, unknown := svc.Authenticate(ctx, "nobody", "secret123")

	assert.ErrorIs(t, wrongPass, account.ErrAuthenticationFailed)
	assert.ErrorIs(t, unknown, account.ErrAuthenticationFailed)
	assert.Equal(t, wrongPass.Error(), unknown.Error(),
		"unknown identifier and wrong password must look identical to the caller")
}

func TestAuthenticateEmptyInput(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "", "secret123")
	assert.ErrorIs(t, err, account.ErrAuthenticationFailed)

	_, err = svc.Authenticate(ctx, "alice", "")
	assert.ErrorIs(t, err, account.ErrAuthenticationFailed)
}

func TestChangePassword(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	a, err := svc.Register(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, a.ID, "wrongpass", "newsecret")
	assert.ErrorIs(t, err, account.ErrAuthenticationFailed)

	err = svc.ChangePassword(ctx, a.ID, "secret123", "short")
	assert.ErrorIs(t, err, account.ErrInvalidInput)

	require.NoError(t, svc.ChangePassword(ctx, a.ID, "secret123", "newsecret"))

	_, err = svc.Authenticate(ctx, "alice", "secret123")
	assert.ErrorIs(t, err, account.ErrAuthenticationFailed)

	_, err = svc.Authenticate(ctx, "alice", "newsecret")
	assert.NoError(t, err)
}
