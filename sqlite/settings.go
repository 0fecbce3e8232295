package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fwojciec/socialstats"
)

// Compile-time interface verification.
var _ socialstats.SettingsService = (*SettingsService)(nil)

// SettingsService implements socialstats.SettingsService using SQLite.
type SettingsService struct {
	db *DB
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(db *DB) *SettingsService {
	return &SettingsService{db: db}
}

// FindSettings returns the stored settings, or the defaults when none were
// stored yet.
func (s *SettingsService) FindSettings(ctx context.Context) (*socialstats.Settings, error) {
	return findSettings(ctx, s.db.QueryRowContext)
}

// UpdateSettings applies upd on top of the stored settings.
func (s *SettingsService) UpdateSettings(ctx context.Context, upd socialstats.SettingsUpdate) (*socialstats.Settings, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	settings, err := findSettings(ctx, tx.QueryRowContext)
	if err != nil {
		return nil, err
	}

	if upd.AutoSort != nil {
		settings.AutoSort = *upd.AutoSort
	}
	if upd.DefaultSortCriteria != nil {
		settings.DefaultSortCriteria = *upd.DefaultSortCriteria
	}
	if upd.DefaultExportFormat != nil {
		settings.DefaultExportFormat = *upd.DefaultExportFormat
	}
	if upd.DarkMode != nil {
		settings.DarkMode = *upd.DarkMode
	}
	if upd.MaxItemsToCollect != nil {
		settings.MaxItemsToCollect = *upd.MaxItemsToCollect
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO settings (id, auto_sort, default_sort_criteria, default_export_format, dark_mode, max_items_to_collect)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			auto_sort = excluded.auto_sort,
			default_sort_criteria = excluded.default_sort_criteria,
			default_export_format = excluded.default_export_format,
			dark_mode = excluded.dark_mode,
			max_items_to_collect = excluded.max_items_to_collect
	`, settings.AutoSort, string(settings.DefaultSortCriteria), string(settings.DefaultExportFormat),
		settings.DarkMode, settings.MaxItemsToCollect)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return settings, nil
}

type queryRowFunc func(ctx context.Context, query string, args ...any) *sql.Row

func findSettings(ctx context.Context, queryRow queryRowFunc) (*socialstats.Settings, error) {
	var settings socialstats.Settings
	var sortCriteria, exportFormat string

	err := queryRow(ctx, `
		SELECT auto_sort, default_sort_criteria, default_export_format, dark_mode, max_items_to_collect
		FROM settings
		WHERE id = 1
	`).Scan(&settings.AutoSort, &sortCriteria, &exportFormat, &settings.DarkMode, &settings.MaxItemsToCollect)

	if errors.Is(err, sql.ErrNoRows) {
		defaults := socialstats.DefaultSettings()
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}

	settings.DefaultSortCriteria = socialstats.SortCriterion(sortCriteria)
	settings.DefaultExportFormat = socialstats.ExportFormat(exportFormat)
	return &settings, nil
}
