package adjcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"tunesets/internal/logging"
	"tunesets/internal/tunes"
)

// ErrNoSnapshot reports a cache that has never been filled, or was cleared.
var ErrNoSnapshot = errors.New("no cached adjacency snapshot")

// Store persists the fetched adjacency records for a whole playlist as one
// snapshot backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
	now    func() time.Time
}

// Info summarizes the stored snapshot.
type Info struct {
	Path      string
	Exists    bool
	SavedAt   time.Time
	Records   int
	SizeBytes int64
}

// Open initializes or connects to the cache database and applies migrations.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:     db,
		path:   path,
		logger: logging.NewComponentLogger(logger, "adjcache"),
		now:    time.Now,
	}
	if err := store.applyMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Load returns the cached entries in the order they were saved.
func (s *Store) Load(ctx context.Context) ([]tunes.Entry, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT record_count FROM snapshots WHERE id = 1").Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT tune_id, name, follows_json, goes_into_json FROM records ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	entries := make([]tunes.Entry, 0, count)
	for rows.Next() {
		var (
			entry        tunes.Entry
			followsJSON  string
			goesIntoJSON string
		)
		if err := rows.Scan(&entry.Tune.ID, &entry.Tune.Name, &followsJSON, &goesIntoJSON); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if err := json.Unmarshal([]byte(followsJSON), &entry.Follows); err != nil {
			return nil, fmt.Errorf("decode follows for tune %s: %w", entry.Tune.ID, err)
		}
		if err := json.Unmarshal([]byte(goesIntoJSON), &entry.Precedes); err != nil {
			return nil, fmt.Errorf("decode goes into for tune %s: %w", entry.Tune.ID, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	if len(entries) != count {
		return nil, fmt.Errorf("snapshot lists %d records but %d are stored", count, len(entries))
	}
	return entries, nil
}

// Save replaces the snapshot with entries in a single transaction.
func (s *Store) Save(ctx context.Context, entries []tunes.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := clearTx(ctx, tx); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO records (position, tune_id, name, follows_json, goes_into_json) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare record insert: %w", err)
	}
	defer stmt.Close()

	for i, entry := range entries {
		followsJSON, err := encodeEdges(entry.Follows)
		if err != nil {
			return fmt.Errorf("encode follows for tune %s: %w", entry.Tune.ID, err)
		}
		goesIntoJSON, err := encodeEdges(entry.Precedes)
		if err != nil {
			return fmt.Errorf("encode goes into for tune %s: %w", entry.Tune.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, i, entry.Tune.ID, entry.Tune.Name, followsJSON, goesIntoJSON); err != nil {
			return fmt.Errorf("insert record %s: %w", entry.Tune.ID, err)
		}
	}

	savedAt := s.now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO snapshots (id, saved_at, record_count) VALUES (1, ?, ?)", savedAt, len(entries)); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	s.logger.Info("saved adjacency snapshot",
		logging.String(logging.FieldEventType, "adjcache_saved"),
		logging.Int("records", len(entries)),
		logging.String("path", s.path))
	return nil
}

// Clear removes the snapshot so the next run fetches again.
func (s *Store) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()
	if err := clearTx(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear: %w", err)
	}
	s.logger.Info("cleared adjacency snapshot",
		logging.String(logging.FieldEventType, "adjcache_cleared"),
		logging.String("path", s.path))
	return nil
}

// Info describes the current snapshot without loading its records.
func (s *Store) Info(ctx context.Context) (Info, error) {
	info := Info{Path: s.path}
	for _, file := range []string{s.path, s.path + "-wal"} {
		if stat, err := os.Stat(file); err == nil {
			info.SizeBytes += stat.Size()
		}
	}

	var savedAt string
	err := s.db.QueryRowContext(ctx, "SELECT saved_at, record_count FROM snapshots WHERE id = 1").Scan(&savedAt, &info.Records)
	if errors.Is(err, sql.ErrNoRows) {
		return info, nil
	}
	if err != nil {
		return Info{}, fmt.Errorf("read snapshot: %w", err)
	}
	info.Exists = true
	if parsed, err := time.Parse(time.RFC3339Nano, savedAt); err == nil {
		info.SavedAt = parsed
	}
	return info, nil
}

func clearTx(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM records"); err != nil {
		return fmt.Errorf("delete records: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM snapshots"); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

func encodeEdges(edges []tunes.Edge) (string, error) {
	if edges == nil {
		edges = []tunes.Edge{}
	}
	data, err := json.Marshal(edges)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
