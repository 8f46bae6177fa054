package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"moodledger/internal/account"
	"moodledger/internal/mood"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PostgresStore backs the same repository contracts with gorm. Row structs
// stay private to this file; services only ever see the domain types.
type PostgresStore struct {
	db *gorm.DB
}

type accountRow struct {
	ID           uint64    `gorm:"primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;default:now()"`
}

func (accountRow) TableName() string { return "accounts" }

type moodRow struct {
	ID         uint64         `gorm:"primaryKey"`
	AccountID  uint64         `gorm:"index;not null"`
	Level      int            `gorm:"not null"`
	Note       string         `gorm:"type:text;not null;default:''"`
	Tags       pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	RecordedAt time.Time      `gorm:"index;not null"`
}

func (moodRow) TableName() string { return "mood_records" }

type journalRow struct {
	ID         uint64    `gorm:"primaryKey"`
	AccountID  uint64    `gorm:"index;not null"`
	Content    string    `gorm:"type:text;not null"`
	RecordedAt time.Time `gorm:"index;not null"`
}

func (journalRow) TableName() string { return "journal_entries" }

func OpenPostgres(dsn string) (*PostgresStore, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("storage: open postgres: %w", err)
	}

	if err := gdb.AutoMigrate(&accountRow{}, &moodRow{}, &journalRow{}); err != nil {
		return nil, fmt.Errorf("storage: automigrate: %w", err)
	}

	stmts := []string{
		`create index if not exists idx_moods_account_time on mood_records(account_id, recorded_at desc);`,
		`create index if not exists idx_journal_account_time on journal_entries(account_id, recorded_at desc);`,
		`create unique index if not exists uq_accounts_email_lower on accounts(lower(email));`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return nil, fmt.Errorf("storage: index exec failed: %w (sql=%s)", err, s)
		}
	}

	return &PostgresStore{db: gdb}, nil
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ─── account.Repository ──────────────────────────────────────────────────────

func (s *PostgresStore) CreateAccount(ctx context.Context, a *account.Account) error {
	row := accountRow{
		Username:     a.Username,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return account.ErrDuplicateAccount
		}
		return fmt.Errorf("storage: create account: %w", err)
	}
	a.ID = row.ID
	return nil
}

func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (*account.Account, error) {
	return s.findAccount(ctx, "username = ?", username)
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*account.Account, error) {
	return s.findAccount(ctx, "lower(email) = lower(?)", email)
}

func (s *PostgresStore) FindByID(ctx context.Context, id uint64) (*account.Account, error) {
	return s.findAccount(ctx, "id = ?", id)
}

func (s *PostgresStore) findAccount(ctx context.Context, where string, arg any) (*account.Account, error) {
	var row accountRow
	err := s.db.WithContext(ctx).Where(where, arg).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, account.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: find account: %w", err)
	}
	return &account.Account{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	}, nil
}

func (s *PostgresStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.count(ctx, "username = ?", username)
}

func (s *PostgresStore) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.count(ctx, "lower(email) = lower(?)", email)
}

func (s *PostgresStore) count(ctx context.Context, where string, arg any) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&accountRow{}).Where(where, arg).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("storage: count accounts: %w", err)
	}
	return n > 0, nil
}

func (s *PostgresStore) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	res := s.db.WithContext(ctx).Model(&accountRow{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return fmt.Errorf("storage: update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return account.ErrNotFound
	}
	return nil
}

// ─── mood.Repository ─────────────────────────────────────────────────────────

func (s *PostgresStore) AppendMood(ctx context.Context, r *mood.Record) (uint64, error) {
	row := moodRow{
		AccountID:  r.AccountID,
		Level:      r.Level,
		Note:       r.Note,
		Tags:       pq.StringArray(r.Tags),
		RecordedAt: r.RecordedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("storage: append mood: %w", err)
	}
	r.ID = row.ID
	return row.ID, nil
}

func (s *PostgresStore) ListMoods(ctx context.Context, accountID uint64, limit int) ([]mood.Record, error) {
	q := s.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("recorded_at desc, id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []moodRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("storage: list moods: %w", err)
	}

	records := make([]mood.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, moodFromRow(row))
	}
	return records, nil
}

func (s *PostgresStore) UpdateMood(ctx context.Context, accountID, id uint64, level int, note string) (bool, error) {
	res := s.db.WithContext(ctx).Model(&moodRow{}).
		Where("id = ? AND account_id = ?", id, accountID).
		Updates(map[string]any{"level": level, "note": note})
	if res.Error != nil {
		return false, fmt.Errorf("storage: update mood: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *PostgresStore) DeleteMood(ctx context.Context, accountID, id uint64) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		Delete(&moodRow{})
	if res.Error != nil {
		return false, fmt.Errorf("storage: delete mood: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *PostgresStore) LatestMoodOn(ctx context.Context, accountID uint64, day time.Time) (*mood.Record, error) {
	var row moodRow
	err := s.db.WithContext(ctx).
		Where("account_id = ? AND (recorded_at at time zone 'UTC')::date = ?", accountID, day.UTC().Format(time.DateOnly)).
		Order("recorded_at desc, id desc").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: latest mood: %w", err)
	}
	r := moodFromRow(row)
	return &r, nil
}

func (s *PostgresStore) MoodDates(ctx context.Context, accountID uint64) ([]time.Time, error) {
	rows, err := s.db.WithContext(ctx).Raw(`
		select distinct (recorded_at at time zone 'UTC')::date as d
		from mood_records
		where account_id = ?
		order by d desc
	`, accountID).Rows()
	if err != nil {
		return nil, fmt.Errorf("storage: mood dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("storage: scan date: %w", err)
		}
		dates = append(dates, d.UTC())
	}
	return dates, rows.Err()
}

func moodFromRow(row moodRow) mood.Record {
	return mood.Record{
		ID:         row.ID,
		AccountID:  row.AccountID,
		Level:      row.Level,
		Note:       row.Note,
		Tags:       []string(row.Tags),
		RecordedAt: row.RecordedAt,
	}
}

// ─── mood.JournalRepository ──────────────────────────────────────────────────

func (s *PostgresStore) AppendJournal(ctx context.Context, e *mood.JournalEntry) (uint64, error) {
	row := journalRow{
		AccountID:  e.AccountID,
		Content:    e.Content,
		RecordedAt: e.RecordedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("storage: append journal: %w", err)
	}
	e.ID = row.ID
	return row.ID, nil
}

func (s *PostgresStore) ListJournal(ctx context.Context, accountID uint64, limit int) ([]mood.JournalEntry, error) {
	q := s.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("recorded_at desc, id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []journalRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("storage: list journal: %w", err)
	}

	entries := make([]mood.JournalEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, mood.JournalEntry{
			ID:         row.ID,
			AccountID:  row.AccountID,
			Content:    row.Content,
			RecordedAt: row.RecordedAt,
		})
	}
	return entries, nil
}

func (s *PostgresStore) LatestJournal(ctx context.Context, accountID uint64) (*mood.JournalEntry, error) {
	entries, err := s.ListJournal(ctx, accountID, 1)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func (s *PostgresStore) CountJournal(ctx context.Context, accountID uint64) (int, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&journalRow{}).
		Where("account_id = ?", accountID).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("storage: count journal: %w", err)
	}
	return int(n), nil
}

var (
	_ account.Repository     = (*PostgresStore)(nil)
	_ mood.Repository        = (*PostgresStore)(nil)
	_ mood.JournalRepository = (*PostgresStore)(nil)
)
