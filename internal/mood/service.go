package mood

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"moodledger/internal/stats"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// DefaultHistoryLimit caps history reads when the caller does not ask for
// a specific window.
const DefaultHistoryLimit = 10

// recentWindow is how many recent levels feed the recommendation engine.
const recentWindow = 7

// Statistics is the full derived view for one account. Recomputed from the
// ledger on every request; nothing here is persisted.
type Statistics struct {
	stats.Summary
	CurrentStreakDays int `json:"current_streak_days"`
}

// Overview is the dashboard payload: today's state plus headline counters.
type Overview struct {
	TodayLevel       *int   `json:"today_level"`
	TodayDescription string `json:"today_description,omitempty"`
	StreakDays       int    `json:"streak_days"`
	JournalCount     int    `json:"journal_count"`
	TotalEntries     int    `json:"total_entries"`
}

type Service struct {
	Moods    Repository
	Journals JournalRepository
	Policy   stats.StreakPolicy

	// now is swappable in tests; defaults to time.Now.
	now func() time.Time
}

func NewService(moods Repository, journals JournalRepository, policy stats.StreakPolicy) *Service {
	return &Service{Moods: moods, Journals: journals, Policy: policy, now: time.Now}
}

// Log appends a mood record. The level is clamped into range rather than
// rejected, matching the construction rule.
func (s *Service) Log(ctx context.Context, accountID uint64, level int, note string, tags []string) (uint64, error) {
	return s.Moods.AppendMood(ctx, NewRecord(accountID, level, note, tags))
}

func (s *Service) History(ctx context.Context, accountID uint64, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.Moods.ListMoods(ctx, accountID, limit)
}

// Update rewrites level and note on an existing record. Unlike Log, an
// out-of-range level is rejected here, not clamped.
func (s *Service) Update(ctx context.Context, accountID, id uint64, level int, note string) error {
	if level < MinLevel || level > MaxLevel {
		return fmt.Errorf("%w: mood level must be between %d and %d", ErrInvalidInput, MinLevel, MaxLevel)
	}
	ok, err := s.Moods.UpdateMood(ctx, accountID, id, level, strings.TrimSpace(note))
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, accountID, id uint64) error {
	ok, err := s.Moods.DeleteMood(ctx, accountID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// TodayMood returns the newest record logged today, or nil.
func (s *Service) TodayMood(ctx context.Context, accountID uint64) (*Record, error) {
	return s.Moods.LatestMoodOn(ctx, accountID, s.today())
}

// Statistics rescans the ledger and recomputes the aggregate and streak.
func (s *Service) Statistics(ctx context.Context, accountID uint64) (Statistics, error) {
	records, err := s.Moods.ListMoods(ctx, accountID, 0)
	if err != nil {
		return Statistics{}, err
	}
	levels := make([]int, len(records))
	for i, r := range records {
		levels[i] = r.Level
	}

	streak, err := s.Streak(ctx, accountID)
	if err != nil {
		return Statistics{}, err
	}

	return Statistics{
		Summary:           stats.Aggregate(levels),
		CurrentStreakDays: streak,
	}, nil
}

func (s *Service) Streak(ctx context.Context, accountID uint64) (int, error) {
	dates, err := s.Moods.MoodDates(ctx, accountID)
	if err != nil {
		return 0, err
	}
	return stats.CurrentStreak(dates, s.today(), s.Policy), nil
}

// Recommendations picks suggestions from today's level and the recent
// history window.
func (s *Service) Recommendations(ctx context.Context, accountID uint64) ([]string, error) {
	var todayLevel *int
	today, err := s.TodayMood(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if today != nil {
		todayLevel = &today.Level
	}

	recent, err := s.Moods.ListMoods(ctx, accountID, recentWindow)
	if err != nil {
		return nil, err
	}
	levels := make([]int, len(recent))
	for i, r := range recent {
		levels[i] = r.Level
	}

	return stats.Recommendations(todayLevel, levels), nil
}

// SaveEntry appends an immutable journal entry.
func (s *Service) SaveEntry(ctx context.Context, accountID uint64, content string) (uint64, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return 0, fmt.Errorf("%w: journal content must not be empty", ErrInvalidInput)
	}
	return s.Journals.AppendJournal(ctx, &JournalEntry{
		AccountID:  accountID,
		Content:    content,
		RecordedAt: s.today(),
	})
}

func (s *Service) Entries(ctx context.Context, accountID uint64, limit int) ([]JournalEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.Journals.ListJournal(ctx, accountID, limit)
}

func (s *Service) LatestEntry(ctx context.Context, accountID uint64) (*JournalEntry, error) {
	return s.Journals.LatestJournal(ctx, accountID)
}

// Overview assembles the dashboard numbers in one call.
func (s *Service) Overview(ctx context.Context, accountID uint64) (Overview, error) {
	o := Overview{}

	today, err := s.TodayMood(ctx, accountID)
	if err != nil {
		return o, err
	}
	if today != nil {
		o.TodayLevel = &today.Level
		o.TodayDescription = stats.Describe(today.Level)
	}

	if o.StreakDays, err = s.Streak(ctx, accountID); err != nil {
		return o, err
	}
	if o.JournalCount, err = s.Journals.CountJournal(ctx, accountID); err != nil {
		return o, err
	}

	records, err := s.Moods.ListMoods(ctx, accountID, 0)
	if err != nil {
		return o, err
	}
	o.TotalEntries = len(records)

	return o, nil
}

func (s *Service) today() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now().UTC()
}
