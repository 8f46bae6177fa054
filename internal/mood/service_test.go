package mood

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodledger/internal/stats"
)

// fakeLedger is an in-memory Repository + JournalRepository for service
// tests, so streaks can be pinned to synthetic timestamps.
type fakeLedger struct {
	nextID  uint64
	moods   []Record
	entries []JournalEntry
}

func (f *fakeLedger) AppendMood(_ context.Context, r *Record) (uint64, error) {
	f.nextID++
	rec := *r
	rec.ID = f.nextID
	f.moods = append(f.moods, rec)
	return rec.ID, nil
}

func (f *fakeLedger) ListMoods(_ context.Context, accountID uint64, limit int) ([]Record, error) {
	var out []Record
	for _, r := range f.moods {
		if r.AccountID == accountID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.After(out[j].RecordedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeLedger) UpdateMood(_ context.Context, accountID, id uint64, level int, note string) (bool, error) {
	for i := range f.moods {
		if f.moods[i].ID == id && f.moods[i].AccountID == accountID {
			f.moods[i].Level = level
			f.moods[i].Note = note
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLedger) DeleteMood(_ context.Context, accountID, id uint64) (bool, error) {
	for i := range f.moods {
		if f.moods[i].ID == id && f.moods[i].AccountID == accountID {
			f.moods = append(f.moods[:i], f.moods[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLedger) LatestMoodOn(_ context.Context, accountID uint64, day time.Time) (*Record, error) {
	var latest *Record
	y, m, d := day.UTC().Date()
	for i := range f.moods {
		r := f.moods[i]
		ry, rm, rd := r.RecordedAt.UTC().Date()
		if r.AccountID != accountID || ry != y || rm != m || rd != d {
			continue
		}
		if latest == nil || r.RecordedAt.After(latest.RecordedAt) {
			latest = &f.moods[i]
		}
	}
	return latest, nil
}

func (f *fakeLedger) MoodDates(_ context.Context, accountID uint64) ([]time.Time, error) {
	seen := map[time.Time]struct{}{}
	var out []time.Time
	for _, r := range f.moods {
		if r.AccountID != accountID {
			continue
		}
		day := r.RecordedAt.UTC().Truncate(24 * time.Hour)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].After(out[j]) })
	return out, nil
}

func (f *fakeLedger) AppendJournal(_ context.Context, e *JournalEntry) (uint64, error) {
	f.nextID++
	entry := *e
	entry.ID = f.nextID
	f.entries = append(f.entries, entry)
	return entry.ID, nil
}

func (f *fakeLedger) ListJournal(_ context.Context, accountID uint64, limit int) ([]JournalEntry, error) {
	var out []JournalEntry
	for _, e := range f.entries {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.After(out[j].RecordedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeLedger) LatestJournal(ctx context.Context, accountID uint64) (*JournalEntry, error) {
	list, err := f.ListJournal(ctx, accountID, 1)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return &list[0], nil
}

func (f *fakeLedger) CountJournal(_ context.Context, accountID uint64) (int, error) {
	n := 0
	for _, e := range f.entries {
		if e.AccountID == accountID {
			n++
		}
	}
	return n, nil
}

var _ Repository = (*fakeLedger)(nil)
var _ JournalRepository = (*fakeLedger)(nil)

var fixedNow = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

func newTestService() (*Service, *fakeLedger) {
	f := &fakeLedger{}
	svc := NewService(f, f, stats.AnchorToday)
	svc.now = func() time.Time { return fixedNow }
	return svc, f
}

// seedMood inserts a record with an explicit timestamp, bypassing the
// clamp-and-stamp constructor.
func seedMood(f *fakeLedger, accountID uint64, level int, at time.Time) {
	_, _ = f.AppendMood(context.Background(), &Record{
		AccountID:  accountID,
		Level:      level,
		RecordedAt: at,
	})
}

func TestLogClampsOutOfRangeLevels(t *testing.T) {
	svc, f := newTestService()
	ctx := context.Background()

	_, err := svc.Log(ctx, 1, 0, "rock bottom", nil)
	require.NoError(t, err)
	_, err = svc.Log(ctx, 1, 15, "over the moon", nil)
	require.NoError(t, err)

	records, err := f.ListMoods(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.GreaterOrEqual(t, r.Level, MinLevel)
		assert.LessOrEqual(t, r.Level, MaxLevel)
	}
}

func TestUpdateRejectsOutOfRangeLevels(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	id, err := svc.Log(ctx, 1, 5, "", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Update(ctx, 1, id, 0, ""), ErrInvalidInput)
	assert.ErrorIs(t, svc.Update(ctx, 1, id, 11, ""), ErrInvalidInput)
	assert.NoError(t, svc.Update(ctx, 1, id, 8, "better now"))
}

func TestUpdateAndDeleteMissingRecord(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	assert.ErrorIs(t, svc.Update(ctx, 1, 999, 5, ""), ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 1, 999), ErrNotFound)
}

func TestUpdateAndDeleteScopedToOwner(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	id, err := svc.Log(ctx, 1, 5, "", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Update(ctx, 2, id, 6, ""), ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 2, id), ErrNotFound)
	assert.NoError(t, svc.Delete(ctx, 1, id))
}

func TestHistoryDefaultLimit(t *testing.T) {
	svc, f := newTestService()
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		seedMood(f, 1, 5, fixedNow.Add(-time.Duration(i)*time.Hour))
	}

	records, err := svc.History(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, records, DefaultHistoryLimit)

	records, err = svc.History(ctx, 1, 3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestStatisticsRecomputedFromLedger(t *testing.T) {
	svc, f := newTestService()
	ctx := context.Background()

	seedMood(f, 1, 4, fixedNow)
	seedMood(f, 1, 6, fixedNow.AddDate(0, 0, -1))
	seedMood(f, 1, 8, fixedNow.AddDate(0, 0, -2))

	st, err := svc.Statistics(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalEntries)
	assert.Equal(t, 6.0, st.AverageLevel)
	assert.Equal(t, 4, st.MinLevel)
	assert.Equal(t, 8, st.MaxLevel)
	assert.Equal(t, 3, st.CurrentStreakDays)

	// Deleting a record changes the next read; nothing is cached.
	records, err := f.ListMoods(ctx, 1, 1)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, 1, records[0].ID))

	st, err = svc.Statistics(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, st.TotalEntries)
	assert.Equal(t, 7.0, st.AverageLevel)
	assert.Equal(t, 2, st.CurrentStreakDays)
}

func TestStatisticsEmptyLedger(t *testing.T) {
	svc, _ := newTestService()

	st, err := svc.Statistics(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, st.TotalEntries)
	assert.Equal(t, 0.0, st.AverageLevel)
	assert.Equal(t, 0, st.CurrentStreakDays)
}

func TestStreakBreaksOnMissedDay(t *testing.T) {
	svc, f := newTestService()
	ctx := context.Background()

	seedMood(f, 1, 5, fixedNow)
	seedMood(f, 1, 5, fixedNow.AddDate(0, 0, -2))

	streak, err := svc.Streak(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}

func TestStreakIgnoresOtherAccounts(t *testing.T) {
	svc, f := newTestService()
	ctx := context.Background()

	seedMood(f, 1, 5, fixedNow)
	seedMood(f, 2, 5, fixedNow.AddDate(0, 0, -1))

	streak, err := svc.Streak(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}

func TestRecommendationsUseTodayMood(t *testing.T) {
	svc, f := newTestService()
	ctx := context.Background()

	seedMood(f, 1, 2, fixedNow)

	recs, err := svc.Recommendations(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Contains(t, recs[1], "breathing")
}

func TestRecommendationsWithoutAnyMood(t *testing.T) {
	svc, _ := newTestService()

	recs, err := svc.Recommendations(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestSaveEntryRejectsEmptyContent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.SaveEntry(ctx, 1, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.SaveEntry(ctx, 1, "   \n\t")
	assert.ErrorIs(t, err, ErrInvalidInput)

	id, err := svc.SaveEntry(ctx, 1, "  a good day  ")
	require.NoError(t, err)
	assert.NotZero(t, id)

	entry, err := svc.LatestEntry(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "a good day", entry.Content)
}

func TestOverview(t *testing.T) {
	svc, f := newTestService()
	ctx := context.Background()

	seedMood(f, 1, 9, fixedNow.Add(-time.Hour))
	seedMood(f, 1, 4, fixedNow.AddDate(0, 0, -1))
	_, err := svc.SaveEntry(ctx, 1, "wrote something down")
	require.NoError(t, err)

	o, err := svc.Overview(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, o.TodayLevel)
	assert.Equal(t, 9, *o.TodayLevel)
	assert.Equal(t, "Great", o.TodayDescription)
	assert.Equal(t, 2, o.StreakDays)
	assert.Equal(t, 1, o.JournalCount)
	assert.Equal(t, 2, o.TotalEntries)
}

func TestOverviewEmpty(t *testing.T) {
	svc, _ := newTestService()

	o, err := svc.Overview(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, o.TodayLevel)
	assert.Empty(t, o.TodayDescription)
	assert.Equal(t, 0, o.StreakDays)
	assert.Equal(t, 0, o.JournalCount)
	assert.Equal(t, 0, o.TotalEntries)
}
