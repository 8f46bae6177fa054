package account

import "context"

// Repository is the storage contract the account service consumes. Both the
// SQLite and Postgres stores implement it.
type Repository interface {
	CreateAccount(ctx context.Context, a *Account) error
	FindByUsername(ctx context.Context, username string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id uint64) (*Account, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
}
