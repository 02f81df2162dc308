package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	webscrape "github.com/codermillat/WebScrape-sub000"
	"github.com/codermillat/WebScrape-sub000/dedupe"
	"github.com/codermillat/WebScrape-sub000/fs"
	"github.com/codermillat/WebScrape-sub000/goquery"
	"github.com/codermillat/WebScrape-sub000/htmltomarkdown"
	wshttp "github.com/codermillat/WebScrape-sub000/http"
	"github.com/codermillat/WebScrape-sub000/pipeline"
	"github.com/codermillat/WebScrape-sub000/readability"
	"github.com/codermillat/WebScrape-sub000/rod"
	wslog "github.com/codermillat/WebScrape-sub000/slog"
	"github.com/codermillat/WebScrape-sub000/sqlite"
	"github.com/codermillat/WebScrape-sub000/sweep"
	"github.com/codermillat/WebScrape-sub000/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Allowlist path. Set before calling Run().
	AllowlistPath string

	// Export directory for the export command.
	ExportDir string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	CaptureService webscrape.CaptureService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:        defaultDBPath(),
		AllowlistPath: defaultAllowlistPath(),
		ExportDir:     defaultExportDir(),
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
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel()}))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webscrape"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webscrape --help' to see available commands")
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

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set WEBSCRAPE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.CaptureService = wslog.NewLoggingCaptureService(sqlite.NewCaptureService(m.DB), logger)
	deps.DB = m.DB
	deps.Captures = m.CaptureService
	deps.Writer = fs.NewWriter(m.ExportDir)

	memory := dedupe.NewMemory(logger, dedupe.WithStore(sqlite.NewLineStore(m.DB)))
	if err := memory.Load(ctx); err != nil {
		logger.Warn("line memory load failed", "err", err)
	}
	deps.Memory = memory

	// Wire the extraction pipeline for the capture command
	if cmd == "capture" {
		allowlist, err := fs.LoadAllowlist(m.AllowlistPath)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: Set WEBSCRAPE_ALLOWLIST to a JSON array of allowed domains\n")
			return fmt.Errorf("failed to load allowlist at %q: %w", m.AllowlistPath, err)
		}

		httpFetcher := wshttp.NewFetcher()
		defer httpFetcher.Close()

		p := &pipeline.Pipeline{
			Allowlist: allowlist,
			Fetcher:   httpFetcher,
			Walker:    goquery.NewWalker(),
			Fallbacks: []webscrape.ContentExtractor{
				trafilatura.NewExtractor(),
				readability.NewExtractor(),
			},
			Cards:     goquery.ScanFeeCards,
			Converter: htmltomarkdown.NewConverter(),
			Memory:    memory,
			Links: wshttp.NewLinkSweep(httpFetcher, logger,
				wshttp.WithLimiter(wshttp.NewDomainLimiter(1.0))),
			Logger: logger,
		}

		if cli.Capture.Dynamic {
			opener, err := rod.NewOpener()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --dynamic")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			sweeper := &sweep.Orchestrator{
				Sessions: opener,
				Walker:   goquery.NewWalker(),
				Logger:   logger,
			}
			defer sweeper.Close()
			p.Sweeper = wslog.NewLoggingSweeper(sweeper, logger)

			browser, err := rod.NewFetcher()
			if err == nil {
				defer browser.Close()
				p.Browser = rod.NewLoggingFetcher(browser, logger)
			}
		}

		deps.Pipeline = p
	}

	err = kongCtx.Run(deps)

	// Persist the line memory before exit; losses only cost dedup coverage.
	if flushErr := memory.Flush(context.Background()); flushErr != nil {
		logger.Warn("line memory flush failed", "err", flushErr)
	}

	return err
}

func logLevel() slog.Level {
	if os.Getenv("WEBSCRAPE_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func defaultDBPath() string {
	if path := os.Getenv("WEBSCRAPE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "webscrape.db"
	}
	dir := filepath.Join(home, ".webscrape")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "webscrape.db")
}

func defaultAllowlistPath() string {
	if path := os.Getenv("WEBSCRAPE_ALLOWLIST"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "allowlist.json"
	}
	return filepath.Join(home, ".webscrape", "allowlist.json")
}

func defaultExportDir() string {
	if path := os.Getenv("WEBSCRAPE_EXPORT_DIR"); path != "" {
		return path
	}
	return "."
}
