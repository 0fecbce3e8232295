package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/socialstats"
	"github.com/fwojciec/socialstats/sqlite"
	"github.com/stretchr/testify/require"
)

func openBenchDB(b *testing.B) *sqlite.DB {
	b.Helper()
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	b.Cleanup(func() { db.Close() })
	return db
}

// BenchmarkTrackUsage measures the counter upserts run after every export.
func BenchmarkTrackUsage(b *testing.B) {
	svc := sqlite.NewUsageService(openBenchDB(b))
	ctx := context.Background()
	formats := []string{"csv", "json", "excel"}

	for i := 0; b.Loop(); i++ {
		if err := svc.TrackUsage(ctx, "export", formats[i%len(formats)], "instagram"); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkAddRecent measures recent list updates once the list is full.
func BenchmarkAddRecent(b *testing.B) {
	svc := sqlite.NewRecentService(openBenchDB(b))
	ctx := context.Background()

	for i := 0; b.Loop(); i++ {
		user := fmt.Sprintf("user%d", i%(2*socialstats.MaxRecentEntries))
		if err := svc.AddRecent(ctx, socialstats.PlatformTikTok, user); err != nil {
			b.Fatal(err)
		}
	}
}
