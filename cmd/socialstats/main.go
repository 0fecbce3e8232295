package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/socialstats"
	"github.com/fwojciec/socialstats/export"
	"github.com/fwojciec/socialstats/fs"
	"github.com/fwojciec/socialstats/goquery"
	"github.com/fwojciec/socialstats/htmltomarkdown"
	"github.com/fwojciec/socialstats/rod"
	sslog "github.com/fwojciec/socialstats/slog"
	"github.com/fwojciec/socialstats/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Browser used by the watch and serve commands. Launched on demand when nil.
	Browser socialstats.Browser

	// Requests read by the serve command.
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("socialstats"),
		kong.Description("Harvest, sort and export Instagram and TikTok content statistics"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'socialstats --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SOCIALSTATS_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.Settings = sqlite.NewSettingsService(m.DB)
	deps.Usage = sqlite.NewUsageService(m.DB)
	deps.Recent = sqlite.NewRecentService(m.DB)

	cfg, err := loadSelectors(cli.Selectors)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", socialstats.ErrorMessage(err))
		return err
	}
	resolver := goquery.NewResolver(logger)
	registry, err := goquery.NewRegistryFromConfig(cfg, resolver)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", socialstats.ErrorMessage(err))
		return err
	}
	registry.SetCaptionConverter(htmltomarkdown.NewConverter())

	deps.Scanner = sslog.NewLoggingScanner(goquery.NewScanner(registry, logger), logger)
	deps.Exporter = sslog.NewLoggingExporter(export.NewExporter(), logger)
	deps.NewDeliverer = func(dir string) socialstats.Deliverer {
		return sslog.NewLoggingDeliverer(fs.NewDownloads(dir), logger)
	}

	if flags, ok := browserFlags(cli, cmd); ok {
		if m.Browser == nil {
			opts := []rod.Option{rod.WithHeadless(!flags.Headful)}
			if flags.ControlURL != "" {
				opts = append(opts, rod.WithControlURL(flags.ControlURL))
			}
			browser, err := rod.NewBrowser(opts...)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --control-url")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			defer browser.Close()
			m.Browser = browser
		}
		deps.Browser = rod.NewLoggingBrowser(m.Browser, logger)
	}

	return kongCtx.Run(deps)
}

// browserFlags reports the browser flags of cmd when it opens live pages.
func browserFlags(cli *CLI, cmd string) (BrowserFlags, bool) {
	switch cmd {
	case "watch":
		return cli.Watch.BrowserFlags, true
	case "serve":
		return cli.Serve.BrowserFlags, true
	}
	return BrowserFlags{}, false
}

func loadSelectors(path string) (goquery.Config, error) {
	if path == "" {
		return goquery.DefaultConfig()
	}
	return goquery.LoadConfig(path)
}

func defaultDBPath() string {
	if path := os.Getenv("SOCIALSTATS_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "socialstats.db"
	}
	dir := filepath.Join(home, ".socialstats")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "socialstats.db")
}
