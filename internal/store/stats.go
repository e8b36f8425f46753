package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/kavinnandha/portfolio/internal/contact"
)

// Visit is a stored page view.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// PathStat counts visits to one path.
type PathStat struct {
	Path   string `json:"path"`
	Visits int64  `json:"visits"`
}

// Stats summarizes the dashboard numbers.
type Stats struct {
	TotalVisits       int64      `json:"total_visits"`
	UniqueVisitors    int64      `json:"unique_visitors"`
	VisitsToday       int64      `json:"visits_today"`
	VisitsThisWeek    int64      `json:"visits_this_week"`
	SubmissionsSent   int64      `json:"submissions_sent"`
	SubmissionsFailed int64      `json:"submissions_failed"`
	TopPaths          []PathStat `json:"top_paths"`
	RecentVisits      []Visit    `json:"recent_visits"`
}

// Stats computes dashboard statistics relative to now.
func (s *Store) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	stats := &Stats{}
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisits, "SELECT COUNT(*) FROM visits", nil},
		{&stats.UniqueVisitors, "SELECT COUNT(DISTINCT hashed_ip) FROM visits", nil},
		{&stats.VisitsToday, "SELECT COUNT(*) FROM visits WHERE visited_at >= ?", []any{midnight.UnixMilli()}},
		{&stats.VisitsThisWeek, "SELECT COUNT(*) FROM visits WHERE visited_at >= ?", []any{now.Add(-7 * 24 * time.Hour).UnixMilli()}},
		{&stats.SubmissionsSent, "SELECT COUNT(*) FROM submissions WHERE status = ?", []any{string(contact.StatusSent)}},
		{&stats.SubmissionsFailed, "SELECT COUNT(*) FROM submissions WHERE status = ?", []any{string(contact.StatusFailed)}},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("failed to load stats: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS n
		FROM visits
		GROUP BY path
		ORDER BY n DESC, path ASC
		LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load top paths: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p PathStat
		if err := rows.Scan(&p.Path, &p.Visits); err != nil {
			continue
		}
		stats.TopPaths = append(stats.TopPaths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load top paths: %w", err)
	}

	stats.RecentVisits, err = s.RecentVisits(ctx, 50)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// RecentVisits returns the newest visits first.
func (s *Store) RecentVisits(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), visited_at
		FROM visits
		ORDER BY visited_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		var ms int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ms); err != nil {
			continue
		}
		v.Timestamp = time.UnixMilli(ms)
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// Recorder adapts the store to contact.Recorder.
type Recorder struct {
	Store *Store
	Now   func() time.Time
}

func (r Recorder) RecordSubmission(ctx context.Context, id string, status contact.Status) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	if err := r.Store.SaveSubmission(ctx, id, status, now()); err != nil {
		log.Printf("Error recording submission %s: %v", id, err)
	}
}
