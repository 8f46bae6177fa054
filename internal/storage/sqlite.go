package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"moodledger/internal/account"
	"moodledger/internal/mood"

	_ "modernc.org/sqlite"
)

// SQLiteStore is the default backend: one shared *sql.DB owning the schema
// and the connection lifecycle.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("storage: pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("storage: migration: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS accounts (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			username      TEXT NOT NULL UNIQUE,
			email         TEXT NOT NULL UNIQUE COLLATE NOCASE,
			password_hash TEXT NOT NULL,
			created_at    TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS mood_records (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			account_id  INTEGER NOT NULL REFERENCES accounts(id),
			level       INTEGER NOT NULL CHECK (level BETWEEN 1 AND 10),
			note        TEXT NOT NULL DEFAULT '',
			tags        TEXT NOT NULL DEFAULT '',
			recorded_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_moods_account_time
			ON mood_records(account_id, recorded_at DESC);

		CREATE TABLE IF NOT EXISTS journal_entries (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			account_id  INTEGER NOT NULL REFERENCES accounts(id),
			content     TEXT NOT NULL,
			recorded_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_journal_account_time
			ON journal_entries(account_id, recorded_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ─── account.Repository ──────────────────────────────────────────────────────

func (s *SQLiteStore) CreateAccount(ctx context.Context, a *account.Account) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		a.Username, a.Email, a.PasswordHash, a.CreatedAt.Format(time.RFC3339))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return account.ErrDuplicateAccount
		}
		return fmt.Errorf("storage: create account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("storage: create account id: %w", err)
	}
	a.ID = uint64(id)
	return nil
}

func (s *SQLiteStore) FindByUsername(ctx context.Context, username string) (*account.Account, error) {
	return s.findAccount(ctx, `username = ?`, username)
}

func (s *SQLiteStore) FindByEmail(ctx context.Context, email string) (*account.Account, error) {
	return s.findAccount(ctx, `email = ?`, email)
}

func (s *SQLiteStore) FindByID(ctx context.Context, id uint64) (*account.Account, error) {
	return s.findAccount(ctx, `id = ?`, id)
}

func (s *SQLiteStore) findAccount(ctx context.Context, where string, arg any) (*account.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at FROM accounts WHERE `+where, arg)

	var a account.Account
	var created string
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, account.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: find account: %w", err)
	}
	if a.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *SQLiteStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, `SELECT 1 FROM accounts WHERE username = ?`, username)
}

func (s *SQLiteStore) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, `SELECT 1 FROM accounts WHERE email = ?`, email)
}

func (s *SQLiteStore) exists(ctx context.Context, query string, arg any) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: exists: %w", err)
	}
	return true, nil
}

func (s *SQLiteStore) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("storage: update password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return account.ErrNotFound
	}
	return nil
}

// ─── mood.Repository ─────────────────────────────────────────────────────────

func (s *SQLiteStore) AppendMood(ctx context.Context, r *mood.Record) (uint64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO mood_records (account_id, level, note, tags, recorded_at) VALUES (?, ?, ?, ?, ?)`,
		r.AccountID, r.Level, r.Note, strings.Join(r.Tags, ","), r.RecordedAt.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("storage: append mood: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: append mood id: %w", err)
	}
	r.ID = uint64(id)
	return r.ID, nil
}

func (s *SQLiteStore) ListMoods(ctx context.Context, accountID uint64, limit int) ([]mood.Record, error) {
	q := `SELECT id, account_id, level, note, tags, recorded_at
		FROM mood_records WHERE account_id = ?
		ORDER BY recorded_at DESC, id DESC`
	args := []any{accountID}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: list moods: %w", err)
	}
	defer rows.Close()

	records := []mood.Record{}
	for rows.Next() {
		r, err := scanMood(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) UpdateMood(ctx context.Context, accountID, id uint64, level int, note string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE mood_records SET level = ?, note = ? WHERE id = ? AND account_id = ?`,
		level, note, id, accountID)
	if err != nil {
		return false, fmt.Errorf("storage: update mood: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *SQLiteStore) DeleteMood(ctx context.Context, accountID, id uint64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM mood_records WHERE id = ? AND account_id = ?`, id, accountID)
	if err != nil {
		return false, fmt.Errorf("storage: delete mood: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *SQLiteStore) LatestMoodOn(ctx context.Context, accountID uint64, day time.Time) (*mood.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, account_id, level, note, tags, recorded_at
		FROM mood_records
		WHERE account_id = ? AND date(recorded_at) = ?
		ORDER BY recorded_at DESC, id DESC LIMIT 1`,
		accountID, day.UTC().Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("storage: latest mood: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanMood(rows)
}

func (s *SQLiteStore) MoodDates(ctx context.Context, accountID uint64) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT date(recorded_at) AS d
		FROM mood_records WHERE account_id = ?
		ORDER BY d DESC`, accountID)
	if err != nil {
		return nil, fmt.Errorf("storage: mood dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("storage: scan date: %w", err)
		}
		t, err := time.ParseInLocation(time.DateOnly, d, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("storage: parse date %q: %w", d, err)
		}
		dates = append(dates, t)
	}
	return dates, rows.Err()
}

func scanMood(rows *sql.Rows) (*mood.Record, error) {
	var r mood.Record
	var tags, recorded string
	if err := rows.Scan(&r.ID, &r.AccountID, &r.Level, &r.Note, &tags, &recorded); err != nil {
		return nil, fmt.Errorf("storage: scan mood: %w", err)
	}
	if tags != "" {
		r.Tags = strings.Split(tags, ",")
	}
	var err error
	if r.RecordedAt, err = parseTime(recorded); err != nil {
		return nil, err
	}
	return &r, nil
}

// ─── mood.JournalRepository ──────────────────────────────────────────────────

func (s *SQLiteStore) AppendJournal(ctx context.Context, e *mood.JournalEntry) (uint64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO journal_entries (account_id, content, recorded_at) VALUES (?, ?, ?)`,
		e.AccountID, e.Content, e.RecordedAt.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("storage: append journal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: append journal id: %w", err)
	}
	e.ID = uint64(id)
	return e.ID, nil
}

func (s *SQLiteStore) ListJournal(ctx context.Context, accountID uint64, limit int) ([]mood.JournalEntry, error) {
	q := `SELECT id, account_id, content, recorded_at
		FROM journal_entries WHERE account_id = ?
		ORDER BY recorded_at DESC, id DESC`
	args := []any{accountID}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: list journal: %w", err)
	}
	defer rows.Close()

	entries := []mood.JournalEntry{}
	for rows.Next() {
		var e mood.JournalEntry
		var recorded string
		if err := rows.Scan(&e.ID, &e.AccountID, &e.Content, &recorded); err != nil {
			return nil, fmt.Errorf("storage: scan journal: %w", err)
		}
		if e.RecordedAt, err = parseTime(recorded); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) LatestJournal(ctx context.Context, accountID uint64) (*mood.JournalEntry, error) {
	entries, err := s.ListJournal(ctx, accountID, 1)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func (s *SQLiteStore) CountJournal(ctx context.Context, accountID uint64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM journal_entries WHERE account_id = ?`, accountID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: count journal: %w", err)
	}
	return n, nil
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	// SQLite's own datetime() format
	t, err = time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("storage: parse time %q: %w", s, err)
	}
	return t, nil
}

var (
	_ account.Repository     = (*SQLiteStore)(nil)
	_ mood.Repository        = (*SQLiteStore)(nil)
	_ mood.JournalRepository = (*SQLiteStore)(nil)
)
