package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/socialstats"
)

// Compile-time interface verification.
var _ socialstats.RecentService = (*RecentService)(nil)

// RecentService implements socialstats.RecentService using SQLite.
type RecentService struct {
	db  *DB
	Now func() time.Time
}

// NewRecentService creates a new RecentService.
func NewRecentService(db *DB) *RecentService {
	return &RecentService{db: db, Now: time.Now}
}

// AddRecent moves the pair to the front of the list and drops entries beyond
// socialstats.MaxRecentEntries.
func (s *RecentService) AddRecent(ctx context.Context, platform socialstats.Platform, username string) error {
	if platform == "" {
		return socialstats.Errorf(socialstats.EINVALID, "platform required")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO recently_used (platform, username, used_at, seq)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM recently_used))
		ON CONFLICT(platform, username) DO UPDATE SET
			used_at = excluded.used_at,
			seq = excluded.seq
	`, string(platform), username, formatTime(s.Now()))
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM recently_used
		WHERE seq NOT IN (SELECT seq FROM recently_used ORDER BY seq DESC LIMIT ?)
	`, socialstats.MaxRecentEntries)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// FindRecent returns up to limit entries, newest first. A limit of 0 returns
// all entries.
func (s *RecentService) FindRecent(ctx context.Context, limit int) ([]*socialstats.RecentEntry, error) {
	var query strings.Builder
	query.WriteString(`
		SELECT platform, username, used_at
		FROM recently_used
		ORDER BY seq DESC`)
	var args []any
	appendLimit(&query, &args, limit)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*socialstats.RecentEntry, 0)
	for rows.Next() {
		var entry socialstats.RecentEntry
		var platform, usedAt string
		if err := rows.Scan(&platform, &entry.Username, &usedAt); err != nil {
			return nil, err
		}
		entry.Platform = socialstats.Platform(platform)
		if entry.UsedAt, err = parseRFC3339(usedAt, "used_at"); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
