package sqlite

import (
	"context"
	"time"

	"github.com/fwojciec/socialstats"
)

// Compile-time interface verification.
var _ socialstats.UsageService = (*UsageService)(nil)

// UsageService implements socialstats.UsageService using SQLite.
type UsageService struct {
	db  *DB
	Now func() time.Time
}

// NewUsageService creates a new UsageService.
func NewUsageService(db *DB) *UsageService {
	return &UsageService{db: db, Now: time.Now}
}

// TrackUsage increments the category/action counter and, when label is set,
// the labeled counter.
func (s *UsageService) TrackUsage(ctx context.Context, category, action, label string) error {
	if category == "" || action == "" {
		return socialstats.Errorf(socialstats.EINVALID, "usage category and action required")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := formatTime(s.Now())
	labels := []string{""}
	if label != "" {
		labels = append(labels, label)
	}
	for _, l := range labels {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO usage_stats (category, action, label, count, last_used)
			VALUES (?, ?, ?, 1, ?)
			ON CONFLICT(category, action, label) DO UPDATE SET
				count = count + 1,
				last_used = excluded.last_used
		`, category, action, l, now)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindUsage returns all counters ordered by category, action and label.
func (s *UsageService) FindUsage(ctx context.Context) ([]*socialstats.UsageStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, action, label, count, last_used
		FROM usage_stats
		ORDER BY category, action, label
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]*socialstats.UsageStat, 0)
	for rows.Next() {
		var stat socialstats.UsageStat
		var lastUsed string
		if err := rows.Scan(&stat.Category, &stat.Action, &stat.Label, &stat.Count, &lastUsed); err != nil {
			return nil, err
		}
		if stat.LastUsed, err = parseRFC3339(lastUsed, "last_used"); err != nil {
			return nil, err
		}
		stats = append(stats, &stat)
	}

	return stats, rows.Err()
}
