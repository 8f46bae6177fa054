package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"moodledger/internal/auth"
)

var (
	ErrNotFound         = errors.New("account not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicateAccount = errors.New("username or email already registered")

	// ErrAuthenticationFailed deliberately covers both unknown identifier
	// and wrong password so callers cannot tell which field was wrong.
	ErrAuthenticationFailed = errors.New("invalid username/email or password")
)

type Service struct {
	Repo Repository
}

// Register validates the input, checks uniqueness, and creates the account
// with a hashed credential. The plaintext is never stored or logged.
func (s *Service) Register(ctx context.Context, username, email, password string) (*Account, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	in := registration{Username: username, Email: email, Password: password}
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, rejectionReason(in))
	}

	taken, err := s.Repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: username already exists", ErrDuplicateAccount)
	}

	taken, err = s.Repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: email already registered", ErrDuplicateAccount)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	a := &Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.CreateAccount(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Authenticate resolves the identifier as a username first, then an email,
// and verifies the credential. All failure modes collapse to
// ErrAuthenticationFailed.
func (s *Service) Authenticate(ctx context.Context, identifier, password string) (*Account, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrAuthenticationFailed
	}

	a, err := s.Repo.FindByUsername(ctx, identifier)
	if errors.Is(err, ErrNotFound) {
		a, err = s.Repo.FindByEmail(ctx, strings.ToLower(identifier))
	}
	if errors.Is(err, ErrNotFound) {
		return nil, ErrAuthenticationFailed
	}
	if err != nil {
		return nil, err
	}

	if !auth.ComparePassword(a.PasswordHash, password) {
		return nil, ErrAuthenticationFailed
	}
	return a, nil
}

// ChangePassword rotates the credential after verifying the current one.
func (s *Service) ChangePassword(ctx context.Context, id uint64, oldPassword, newPassword string) error {
	a, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !auth.ComparePassword(a.PasswordHash, oldPassword) {
		return ErrAuthenticationFailed
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.Repo.UpdatePassword(ctx, id, hash)
}

func (s *Service) GetByID(ctx context.Context, id uint64) (*Account, error) {
	return s.Repo.FindByID(ctx, id)
}

// rejectionReason turns the first failed validation into the user-facing
// message the API returns.
func rejectionReason(in registration) string {
	switch {
	case !usernameRe.MatchString(in.Username):
		return "username must be 3-20 characters and contain only letters, numbers, and underscores"
	case len(in.Password) < auth.MinPasswordLen:
		return "password must be at least 6 characters long"
	default:
		return "please enter a valid email address"
	}
}
