package socialstats

import (
	"context"
	"time"
)

// Settings are the persisted user preferences.
type Settings struct {
	AutoSort            bool          `json:"autoSort"`
	DefaultSortCriteria SortCriterion `json:"defaultSortCriteria"`
	DefaultExportFormat ExportFormat  `json:"defaultExportFormat"`
	DarkMode            bool          `json:"darkMode"`
	MaxItemsToCollect   int           `json:"maxItemsToCollect"`
}

// DefaultSettings returns the settings used before the user changes any.
func DefaultSettings() Settings {
	return Settings{
		AutoSort:            false,
		DefaultSortCriteria: SortDate,
		DefaultExportFormat: FormatExcel,
		DarkMode:            false,
		MaxItemsToCollect:   1000,
	}
}

// Validate returns an error if the settings contain invalid fields.
func (s *Settings) Validate() error {
	if s.MaxItemsToCollect <= 0 {
		return Errorf(EINVALID, "max items to collect must be positive")
	}
	if _, ok := sortNames[s.DefaultSortCriteria]; !ok {
		return Errorf(EINVALID, "unknown sort criteria %q", s.DefaultSortCriteria)
	}
	switch s.DefaultExportFormat {
	case FormatCSV, FormatJSON, FormatExcel:
	default:
		return Errorf(EINVALID, "unknown export format %q", s.DefaultExportFormat)
	}
	return nil
}

// SettingsUpdate represents fields that can be updated on the settings.
type SettingsUpdate struct {
	AutoSort            *bool          `json:"autoSort"`
	DefaultSortCriteria *SortCriterion `json:"defaultSortCriteria"`
	DefaultExportFormat *ExportFormat  `json:"defaultExportFormat"`
	DarkMode            *bool          `json:"darkMode"`
	MaxItemsToCollect   *int           `json:"maxItemsToCollect"`
}

// SettingsService represents a service for managing user settings.
type SettingsService interface {
	// FindSettings returns the stored settings, or the defaults when none
	// were stored yet.
	FindSettings(ctx context.Context) (*Settings, error)

	// UpdateSettings applies upd and returns the resulting settings.
	UpdateSettings(ctx context.Context, upd SettingsUpdate) (*Settings, error)
}

// UsageStat is a coarse usage counter.
type UsageStat struct {
	Category string    `json:"category"`
	Action   string    `json:"action"`
	Label    string    `json:"label"`
	Count    int       `json:"count"`
	LastUsed time.Time `json:"lastUsed"`
}

// UsageService represents a service for counting feature usage.
type UsageService interface {
	// TrackUsage increments the counter of category/action and, when label
	// is not empty, the counter of that label.
	TrackUsage(ctx context.Context, category, action, label string) error

	// FindUsage returns all counters ordered by category and action.
	FindUsage(ctx context.Context) ([]*UsageStat, error)
}

// MaxRecentEntries bounds the most-recently-used list.
const MaxRecentEntries = 20

// RecentEntry is a (platform, user) pair the user exported recently.
type RecentEntry struct {
	Platform Platform  `json:"platform"`
	Username string    `json:"username"`
	UsedAt   time.Time `json:"timestamp"`
}

// RecentService represents a service for the most-recently-used list.
type RecentService interface {
	// AddRecent moves the pair to the front of the list, keeping at most
	// MaxRecentEntries entries.
	AddRecent(ctx context.Context, platform Platform, username string) error

	// FindRecent returns up to limit entries, newest first.
	FindRecent(ctx context.Context, limit int) ([]*RecentEntry, error)
}
