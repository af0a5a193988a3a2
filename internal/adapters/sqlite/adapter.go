// Package sqlite provides a SQLite-backed implementation of the repository ports.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/kmod24/moodboard/internal/core/domain"
	"github.com/kmod24/moodboard/internal/core/ports"
)

// Adapter implements the user and mood repository ports for SQLite
type Adapter struct {
	db *sql.DB
}

var (
	_ ports.UserRepository = (*Adapter)(nil)
	_ ports.MoodRepository = (*Adapter)(nil)
)

// NewAdapter creates a connection and runs the schema migration
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	// :memory: databases are per-connection.
	if storagePath == ":memory:" || strings.Contains(storagePath, "mode=memory") {
		db.SetMaxOpenConns(1)
	}

	adapter := newAdapterFromDB(db)
	if err := adapter.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

func newAdapterFromDB(db *sql.DB) *Adapter {
	return &Adapter{db: db}
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) CreateUser(ctx context.Context, u domain.User) error {
	_, err := a.db.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)",
		u.ID, u.Email, u.PasswordHash, formatTime(u.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (a *Adapter) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := a.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, created_at FROM users WHERE email = ?", email)

	var u domain.User
	var createdAt string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("failed to load user: %w", err)
	}
	u.CreatedAt = parseTime(createdAt)
	return u, nil
}

func (a *Adapter) SaveMood(ctx context.Context, m domain.MoodEntry) error {
	b := m.Bundle.Clamp()
	songs, err := encodeList(b.Songs)
	if err != nil {
		return fmt.Errorf("failed to encode songs: %w", err)
	}
	images, err := encodeList(b.Images)
	if err != nil {
		return fmt.Errorf("failed to encode images: %w", err)
	}
	outfits, err := encodeList(b.Outfits)
	if err != nil {
		return fmt.Errorf("failed to encode outfits: %w", err)
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO moods (id, user_id, mood_word, note, created_at, songs, images, outfits, coffee)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.UserID, m.MoodWord, nullString(m.Note), formatTime(m.CreatedAt), songs, images, outfits, nullString(b.Coffee))
	if err != nil {
		return fmt.Errorf("failed to save mood: %w", err)
	}
	return nil
}

// ListMoods returns the user's entries, newest first.
func (a *Adapter) ListMoods(ctx context.Context, userID string) ([]domain.MoodSummary, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, mood_word, created_at
		FROM moods
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list moods: %w", err)
	}
	defer rows.Close()

	out := []domain.MoodSummary{}
	for rows.Next() {
		var s domain.MoodSummary
		var createdAt string
		if err := rows.Scan(&s.ID, &s.MoodWord, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan mood: %w", err)
		}
		s.CreatedAt = parseTime(createdAt)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate moods: %w", err)
	}
	return out, nil
}

func (a *Adapter) GetMood(ctx context.Context, id string) (domain.MoodEntry, error) {
	row := a.db.QueryRowContext(ctx, `
		SELECT id, user_id, mood_word, note, created_at, songs, images, outfits, coffee
		FROM moods WHERE id = ?
	`, id)

	var m domain.MoodEntry
	var note, songs, images, outfits, coffee sql.NullString
	var createdAt string
	if err := row.Scan(&m.ID, &m.UserID, &m.MoodWord, &note, &createdAt, &songs, &images, &outfits, &coffee); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.MoodEntry{}, domain.ErrNotFound
		}
		return domain.MoodEntry{}, fmt.Errorf("failed to load mood: %w", err)
	}
	m.Note = note.String
	m.CreatedAt = parseTime(createdAt)

	var err error
	if m.Bundle.Songs, err = decodeList(songs); err != nil {
		return domain.MoodEntry{}, fmt.Errorf("failed to decode songs: %w", err)
	}
	if m.Bundle.Images, err = decodeList(images); err != nil {
		return domain.MoodEntry{}, fmt.Errorf("failed to decode images: %w", err)
	}
	if m.Bundle.Outfits, err = decodeList(outfits); err != nil {
		return domain.MoodEntry{}, fmt.Errorf("failed to decode outfits: %w", err)
	}
	m.Bundle.Coffee = coffee.String
	if m.Bundle.Coffee == "" {
		m.Bundle.Coffee = domain.DefaultCoffee
	}
	return m, nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS moods (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		mood_word TEXT NOT NULL,
		note TEXT,
		created_at TEXT NOT NULL,
		songs TEXT,
		images TEXT,
		outfits TEXT,
		coffee TEXT,
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_moods_user_created ON moods(user_id, created_at);
	`
	_, err := a.db.Exec(query)
	return err
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Timestamps are stored as fixed-width UTC text so lexical order is time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		t, _ = time.Parse(time.RFC3339Nano, s)
	}
	return t
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeList(raw sql.NullString) ([]string, error) {
	if !raw.Valid || raw.String == "" {
		return []string{}, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(raw.String), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
