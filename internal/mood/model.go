package mood

import (
	"strings"
	"time"
)

// Level bounds. Out-of-range levels are clamped on construction and never
// stored out of range.
const (
	MinLevel = 1
	MaxLevel = 10
)

// ClampLevel forces a level into [MinLevel, MaxLevel].
func ClampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// Record is one mood ledger entry.
type Record struct {
	ID         uint64    `json:"id"`
	AccountID  uint64    `json:"account_id"`
	Level      int       `json:"level"`
	Note       string    `json:"note"`
	Tags       []string  `json:"tags"`
	RecordedAt time.Time `json:"recorded_at"`
}

// NewRecord builds a ledger entry with the level clamped and the note
// trimmed, stamped at the current UTC time.
func NewRecord(accountID uint64, level int, note string, tags []string) *Record {
	return &Record{
		AccountID:  accountID,
		Level:      ClampLevel(level),
		Note:       strings.TrimSpace(note),
		Tags:       normalizeTags(tags),
		RecordedAt: time.Now().UTC(),
	}
}

func normalizeTags(tags []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// JournalEntry is immutable once written; there is no update path.
type JournalEntry struct {
	ID         uint64    `json:"id"`
	AccountID  uint64    `json:"account_id"`
	Content    string    `json:"content"`
	RecordedAt time.Time `json:"recorded_at"`
}
