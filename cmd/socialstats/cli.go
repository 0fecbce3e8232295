package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/socialstats"
	"github.com/fwojciec/socialstats/harvest"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Settings socialstats.SettingsService
	Usage    socialstats.UsageService
	Recent   socialstats.RecentService

	Scanner  socialstats.Scanner
	Exporter socialstats.Exporter
	Browser  socialstats.Browser

	// NewDeliverer returns a Deliverer writing into dir.
	NewDeliverer func(dir string) socialstats.Deliverer
}

// newSession builds a harvest session over source configured from settings.
func (d *Dependencies) newSession(source socialstats.DocumentSource, settings *socialstats.Settings) *harvest.Session {
	sess := harvest.NewSession(source, d.Scanner, d.Exporter)
	sess.Usage = d.Usage
	sess.Recent = d.Recent
	sess.MaxPlaceholders = settings.MaxItemsToCollect
	if d.Logger != nil {
		sess.Logger = d.Logger
	}
	return sess
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Selectors string `type:"path" env:"SOCIALSTATS_SELECTORS" help:"Selector configuration file replacing the built-in one"`
	Verbose   bool   `short:"v" help:"Log debug output"`

	Scan     ScanCmd     `cmd:"" help:"Harvest a saved page and export its content"`
	Watch    WatchCmd    `cmd:"" help:"Observe live pages while they load and export their content"`
	Serve    ServeCmd    `cmd:"" help:"Observe one live page and answer JSON requests from stdin"`
	Stats    StatsCmd    `cmd:"" help:"Show engagement statistics of a saved page"`
	Settings SettingsCmd `cmd:"" help:"Show or change settings"`
	Recent   RecentCmd   `cmd:"" help:"List recently exported accounts"`
	Usage    UsageCmd    `cmd:"" help:"Show usage counters"`
}

// ExportFlags are shared by commands that export.
type ExportFlags struct {
	Sort   string `short:"s" help:"Sort criteria: date, date-asc, likes, views, comments, shares, engagement (default from settings)"`
	Format string `short:"f" help:"Export format: csv, json, excel (default from settings)"`
	Out    string `short:"o" default:"." env:"SOCIALSTATS_OUT" help:"Directory exports are written to"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	File string `arg:"" help:"Saved HTML page"`
	URL  string `name:"url" help:"Address the page was saved from (default: read from the file)"`
	ExportFlags
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	URLs        []string      `arg:"" name:"url" help:"Pages to observe"`
	Duration    time.Duration `short:"d" default:"30s" help:"How long to observe each page (0 observes until interrupted)"`
	Concurrency int           `short:"c" default:"2" help:"Pages observed at once"`
	BrowserFlags
	ExportFlags
}

// BrowserFlags configure the browser of commands that open live pages.
type BrowserFlags struct {
	ControlURL string `env:"SOCIALSTATS_CONTROL_URL" help:"DevTools WebSocket URL of a running Chrome to attach to"`
	Headful    bool   `help:"Show the launched browser window"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	URL string `arg:"" name:"url" help:"Page to observe"`
	BrowserFlags
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	File  string    `arg:"" help:"Saved HTML page"`
	URL   string    `name:"url" help:"Address the page was saved from (default: read from the file)"`
	Since time.Time `format:"2006-01-02" help:"Only count items from this date (YYYY-MM-DD)"`
	Until time.Time `format:"2006-01-02" help:"Only count items up to this date (YYYY-MM-DD)"`
}

// SettingsCmd is the "settings" subcommand.
type SettingsCmd struct {
	AutoSort *bool   `name:"auto-sort" help:"Sort before every export"`
	Sort     *string `help:"Default sort criteria"`
	Format   *string `help:"Default export format"`
	DarkMode *bool   `name:"dark-mode" help:"Dark mode preference"`
	MaxItems *int    `name:"max-items" help:"Maximum number of items to collect"`
}

// RecentCmd is the "recent" subcommand.
type RecentCmd struct {
	Limit int `short:"n" default:"10" help:"Number of entries to show"`
}

// UsageCmd is the "usage" subcommand.
type UsageCmd struct{}
