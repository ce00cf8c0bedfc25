// Command stonks is a terminal dashboard for equity tickers.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"stonks/internal/app"
	"stonks/internal/catalog"
	"stonks/internal/config"
	"stonks/internal/scheduler"
	"stonks/internal/tradier"
	"stonks/internal/tui"
	"stonks/internal/util"
	"stonks/internal/watchlist"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "stonks [SYMBOL...]",
		Short:         "Terminal dashboard for equity quotes and intraday charts",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			return runDashboard(cmd.Context(), cfg, args)
		},
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", envOr("STONKS_CONFIG", "stonks.yaml"), "path to the YAML config file")

	root.AddCommand(
		newSymbolsCmd(&cfgPath),
		newOptionsCmd(&cfgPath),
		newRefreshCmd(&cfgPath),
	)
	return root
}

func loadConfig(path string) (*config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	return config.Load(path)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// defaultLogPath is the dated log file used when logging.file is unset.
func defaultLogPath(now time.Time) string {
	return filepath.Join(os.TempDir(), "stonks-"+now.In(util.ET).Format("2006-01-02")+".log")
}

// openLogger returns a logger writing to the configured file. The dashboard
// owns the terminal, so it never logs to stderr.
func openLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	path := cfg.Logging.File
	if path == "" {
		path = defaultLogPath(time.Now())
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return util.NewLogger(f, cfg.Logging.Level, cfg.Logging.Format), func() { f.Close() }, nil
}

func newStore(cfg *config.Config, cal *util.TradingCalendar, logger *slog.Logger) *catalog.Store {
	fetcher := catalog.NewFTPFetcher(cfg.Catalog.FTPAddr, cfg.Catalog.FTPUser, cfg.Catalog.FTPPassword, cfg.Catalog.RemoteDir)
	return catalog.NewStore(cfg.Catalog.Dir, fetcher,
		catalog.WithCalendar(cal),
		catalog.WithLogger(logger),
		catalog.WithRetry(cfg.Catalog.Retries, cfg.Catalog.RetryDelay),
	)
}

func newTradierClient(cfg *config.Config) *tradier.Client {
	return tradier.NewClient(cfg.APIKey,
		tradier.WithBaseURL(cfg.Tradier.BaseURL),
		tradier.WithRateLimiter(util.NewRateLimiter(cfg.Tradier.RateLimitPerMin, 4)),
		tradier.WithTimeout(cfg.Tradier.Timeout),
	)
}

func runDashboard(ctx context.Context, cfg *config.Config, args []string) error {
	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer cancel()

	cal, err := util.NewTradingCalendar(cfg.Calendar.MIC, cfg.Calendar.Holidays)
	if err != nil {
		return err
	}
	store := newStore(cfg, cal, logger)

	symbols, err := store.Symbols(ctx)
	if err != nil {
		logger.Error("loading symbol catalog", "error", err)
		return err
	}

	wanted := cfg.Watchlist
	if len(args) > 0 {
		wanted = args
	}
	wl, missing := watchlist.Build(symbols.Records, wanted)

	st := app.NewState(cfg.Title, symbols.Records, wl, logger)
	st.Logf("Loaded %d symbols and watchlist.", len(symbols.Records))
	for _, sym := range missing {
		st.Logf("Unknown symbol %s.", sym)
	}
	if symbols.Dropped > 0 {
		st.Logf("Skipped %d malformed symbol records.", symbols.Dropped)
	}

	shared := app.NewShared(st, app.WithHoldObserver(func(held time.Duration) {
		if held > 10*time.Millisecond {
			logger.Warn("state lock held too long", "held", held)
		}
	}))

	sched := scheduler.New(ctx, shared, newTradierClient(cfg), store,
		scheduler.WithCalendar(cal),
		scheduler.WithLogger(logger),
		scheduler.WithInterval(cfg.Tradier.IntervalMinutes),
		scheduler.WithQuotesCron(cfg.Refresh.QuotesCron),
	)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	logger.Info("dashboard started", "symbols", len(symbols.Records), "watchlist", wl.Len())
	if err := tui.Run(app.New(shared, sched), logger); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	logger.Info("dashboard stopped")
	return nil
}
