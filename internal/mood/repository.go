package mood

import (
	"context"
	"time"
)

// Repository is the mood ledger contract. Implementations serialize
// concurrent writes at the storage layer; the service adds no locking.
type Repository interface {
	// AppendMood persists a record and returns its id.
	AppendMood(ctx context.Context, r *Record) (uint64, error)
	// ListMoods returns an account's records newest first. limit <= 0
	// means no limit.
	ListMoods(ctx context.Context, accountID uint64, limit int) ([]Record, error)
	// UpdateMood rewrites level and note on the account's own record;
	// reports whether such a record existed.
	UpdateMood(ctx context.Context, accountID, id uint64, level int, note string) (bool, error)
	// DeleteMood reports whether the account owned such a record.
	DeleteMood(ctx context.Context, accountID, id uint64) (bool, error)
	// LatestMoodOn returns the newest record on a calendar day, or nil.
	LatestMoodOn(ctx context.Context, accountID uint64, day time.Time) (*Record, error)
	// MoodDates returns the distinct calendar dates with at least one
	// record, most recent first.
	MoodDates(ctx context.Context, accountID uint64) ([]time.Time, error)
}

type JournalRepository interface {
	AppendJournal(ctx context.Context, e *JournalEntry) (uint64, error)
	ListJournal(ctx context.Context, accountID uint64, limit int) ([]JournalEntry, error)
	LatestJournal(ctx context.Context, accountID uint64) (*JournalEntry, error)
	CountJournal(ctx context.Context, accountID uint64) (int, error)
}
