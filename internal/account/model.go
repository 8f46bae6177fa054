package account

import "time"

// Account is a registered identity. Username and email are immutable after
// registration; only the credential may be rotated.
type Account struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
