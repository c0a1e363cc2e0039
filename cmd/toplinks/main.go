package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/toplinks"
	"github.com/fwojciec/toplinks/config"
	"github.com/fwojciec/toplinks/exec"
	"github.com/fwojciec/toplinks/fs"
	"github.com/fwojciec/toplinks/goquery"
	tlhttp "github.com/fwojciec/toplinks/http"
	"github.com/fwojciec/toplinks/pipeline"
	tlslog "github.com/fwojciec/toplinks/slog"
	"github.com/fwojciec/toplinks/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	// SQLite database used by the run ledger.
	DB *sqlite.DB

	// Run ledger, exposed for end-to-end testing.
	RunService toplinks.RunService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
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
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("toplinks"),
		kong.Description("Harvest links from news home pages and publish them as a versioned dataset."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'toplinks --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(stderr, cli.LogLevel, cli.LogFormat)
	if err != nil {
		return err
	}
	deps.Logger = logger

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set TOPLINKS_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.RunService = sqlite.NewRunService(m.DB)
	deps.Runs = m.RunService

	cmd := strings.Fields(kongCtx.Command())[0]
	if cmd == "run" || cmd == "schedule" {
		cfg, err := config.Load(cli.Config, cli.EnvFile)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", toplinks.ErrorMessage(err))
			return err
		}
		p, closeFn := newPipeline(cfg, logger, m.RunService)
		defer closeFn()
		deps.Pipeline = p
		deps.Schedule = cfg.Schedule
	}

	return kongCtx.Run(deps)
}

// newPipeline wires the production implementations of every stage.
// The returned function releases the fetcher.
func newPipeline(cfg *config.Config, logger *slog.Logger, runs toplinks.RunService) (*pipeline.Pipeline, func()) {
	runner := exec.NewCommandRunner()
	runner.Timeout = cfg.ToolTimeout

	fetcher := tlhttp.NewFetcher(tlhttp.WithTimeout(cfg.FetchTimeout))

	harvester := &pipeline.Harvester{
		Fetcher:   tlslog.NewLoggingFetcher(fetcher, logger),
		Extractor: goquery.NewAnchorExtractor(),
		Logger:    logger,
	}
	if cfg.RateLimit > 0 {
		harvester.RateLimiter = pipeline.NewDomainLimiter(cfg.RateLimit)
	}

	publisher := &pipeline.Publisher{
		Writer:         tlslog.NewLoggingDatasetWriter(fs.NewCSVWriter(cfg.WorkDir), logger),
		SourceControl:  exec.NewGit(runner, cfg.WorkDir),
		ContentTracker: exec.NewDVC(runner, cfg.WorkDir),
		Logger:         logger,
		Path:           cfg.Path,
		StoreRemote:    cfg.StoreRemote(),
		Origin:         cfg.Origin(),
		Branch:         cfg.Branch,
		CommitMessage:  cfg.CommitMessage,
		Policy:         cfg.Policy,
	}

	p := &pipeline.Pipeline{
		Sources:   cfg.SourceList(),
		Harvester: harvester,
		Publisher: publisher,
		Runs:      runs,
		Logger:    logger,
	}
	return p, func() { _ = fetcher.Close() }
}

// newLogger builds a logger writing to w in the given format.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("invalid log format %q", format)
}

func defaultDBPath() string {
	if path := os.Getenv("TOPLINKS_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "toplinks.db"
	}
	dir := filepath.Join(home, ".toplinks")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "toplinks.db")
}
