// Package store keeps anonymous visit counters and the contact submission
// audit. Raw IP addresses and message bodies are never stored.
package store

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kavinnandha/portfolio/internal/contact"
)

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

// VisitRetention is how long visit rows are kept.
const VisitRetention = 365 * 24 * time.Hour

// Store wraps the sqlite database.
type Store struct {
	db   *sql.DB
	salt string
}

// Open opens (creating if needed) the database at path and migrates it.
// The IP hashing salt is random per process.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	_ = os.Chmod(path, 0o600)

	return &Store{db: db, salt: randomHex(32)}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return fmt.Errorf("failed to get user_version: %w", err)
	}

	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS visits (
		  id         INTEGER PRIMARY KEY AUTOINCREMENT,
		  hashed_ip  TEXT NOT NULL,
		  user_agent TEXT,
		  path       TEXT,
		  visited_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_visits_visited_at ON visits(visited_at DESC);

		CREATE TABLE IF NOT EXISTS submissions (
		  id         TEXT PRIMARY KEY,
		  status     TEXT NOT NULL,
		  created_at INTEGER NOT NULL
		);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if _, err := db.Exec("PRAGMA user_version=1"); err != nil {
			return fmt.Errorf("failed to set user_version: %w", err)
		}
	}

	return nil
}

// HashIP returns a truncated salted hash of ip, stable for the life of the process.
func (s *Store) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// RecordVisit stores one page view.
func (s *Store) RecordVisit(ctx context.Context, ip, userAgent, path string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visits (hashed_ip, user_agent, path, visited_at)
		VALUES (?, ?, ?, ?)
	`, s.HashIP(ip), userAgent, path, at.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

// PruneVisits deletes visits older than retention and returns the count removed.
func (s *Store) PruneVisits(ctx context.Context, now time.Time, retention time.Duration) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM visits WHERE visited_at < ?`, now.Add(-retention).UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to prune visits: %w", err)
	}
	return res.RowsAffected()
}

// SaveSubmission records the outcome of a contact delivery.
func (s *Store) SaveSubmission(ctx context.Context, id string, status contact.Status, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO submissions (id, status, created_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET status = excluded.status
	`, id, string(status), at.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to record submission: %w", err)
	}
	return nil
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}
