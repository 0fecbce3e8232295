package mock

import (
	"context"

	"github.com/fwojciec/socialstats"
)

var _ socialstats.SettingsService = (*SettingsService)(nil)

// SettingsService is a mock implementation of socialstats.SettingsService.
type SettingsService struct {
	FindSettingsFn   func(ctx context.Context) (*socialstats.Settings, error)
	UpdateSettingsFn func(ctx context.Context, upd socialstats.SettingsUpdate) (*socialstats.Settings, error)
}

func (s *SettingsService) FindSettings(ctx context.Context) (*socialstats.Settings, error) {
	return s.FindSettingsFn(ctx)
}

func (s *SettingsService) UpdateSettings(ctx context.Context, upd socialstats.SettingsUpdate) (*socialstats.Settings, error) {
	return s.UpdateSettingsFn(ctx, upd)
}

var _ socialstats.UsageService = (*UsageService)(nil)

// UsageService is a mock implementation of socialstats.UsageService.
type UsageService struct {
	TrackUsageFn func(ctx context.Context, category, action, label string) error
	FindUsageFn  func(ctx context.Context) ([]*socialstats.UsageStat, error)
}

func (s *UsageService) TrackUsage(ctx context.Context, category, action, label string) error {
	return s.TrackUsageFn(ctx, category, action, label)
}

func (s *UsageService) FindUsage(ctx context.Context) ([]*socialstats.UsageStat, error) {
	return s.FindUsageFn(ctx)
}

var _ socialstats.RecentService = (*RecentService)(nil)

// RecentService is a mock implementation of socialstats.RecentService.
type RecentService struct {
	AddRecentFn  func(ctx context.Context, platform socialstats.Platform, username string) error
	FindRecentFn func(ctx context.Context, limit int) ([]*socialstats.RecentEntry, error)
}

func (s *RecentService) AddRecent(ctx context.Context, platform socialstats.Platform, username string) error {
	return s.AddRecentFn(ctx, platform, username)
}

func (s *RecentService) FindRecent(ctx context.Context, limit int) ([]*socialstats.RecentEntry, error) {
	return s.FindRecentFn(ctx, limit)
}
