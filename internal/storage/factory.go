package storage

import (
	"fmt"
	"io"

	"moodledger/internal/account"
	"moodledger/internal/mood"
)

// Store bundles the three repository contracts behind one handle so main
// can open a backend once and hand it to every service.
type Store interface {
	account.Repository
	mood.Repository
	mood.JournalRepository
	io.Closer
}

// Open picks a backend by name: "sqlite" (default) or "postgres".
func Open(backend, sqlitePath, postgresDSN string) (Store, error) {
	switch backend {
	case "", "sqlite":
		return OpenSQLite(sqlitePath)
	case "postgres":
		return OpenPostgres(postgresDSN)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}
