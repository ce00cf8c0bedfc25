// Package scheduler runs the background fetches that hydrate the dashboard
// caches. Each fetch copies its inputs out of the shared state, releases the
// lock for the remote call, and commits the result under the lock again.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"stonks/internal/app"
	"stonks/internal/catalog"
	"stonks/internal/domain"
	"stonks/internal/util"
)

// DefaultIntervalMinutes is the intraday bucket size.
const DefaultIntervalMinutes = 5

// Market is the remote quote and time-series source.
type Market interface {
	Quotes(ctx context.Context, symbols []string) ([]domain.Quote, error)
	TimeSales(ctx context.Context, symbol string, intervalMinutes int, r domain.DateRange) (domain.TimeSeries, error)
}

// OptionLoader loads the option catalog. *catalog.Store implements it.
type OptionLoader interface {
	Options(ctx context.Context) (catalog.File[domain.OptionListing], error)
}

// Scheduler owns the background fetch tasks. Tasks are detached: nothing
// waits for them on shutdown.
type Scheduler struct {
	ctx        context.Context
	shared     *app.Shared
	market     Market
	options    OptionLoader
	calendar   *util.TradingCalendar
	logger     *slog.Logger
	now        func() time.Time
	interval   int
	quotesCron string

	wg sync.WaitGroup

	mu       sync.Mutex
	inflight map[string]bool

	cron *cron.Cron
}

// Option configures a Scheduler.
type Option func(*Scheduler)

func WithCalendar(cal *util.TradingCalendar) Option {
	return func(s *Scheduler) { s.calendar = cal }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = logger }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithInterval sets the chart bucket size in minutes.
func WithInterval(minutes int) Option {
	return func(s *Scheduler) {
		if minutes > 0 {
			s.interval = minutes
		}
	}
}

// WithQuotesCron refreshes watchlist quotes on a cron schedule with a
// leading seconds field. Empty disables the refresh.
func WithQuotesCron(spec string) Option {
	return func(s *Scheduler) { s.quotesCron = spec }
}

// New creates a Scheduler. Tasks run with ctx.
func New(ctx context.Context, shared *app.Shared, market Market, options OptionLoader, opts ...Option) *Scheduler {
	s := &Scheduler{
		ctx:      ctx,
		shared:   shared,
		market:   market,
		options:  options,
		logger:   util.DiscardLogger(),
		now:      time.Now,
		interval: DefaultIntervalMinutes,
		inflight: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the startup fetches and the periodic quote refresh.
func (s *Scheduler) Start() error {
	if s.quotesCron != "" {
		c := cron.New(cron.WithSeconds(), cron.WithLocation(util.ET))
		if _, err := c.AddFunc(s.quotesCron, func() { s.spawn(s.FetchWatchlistQuotes) }); err != nil {
			return fmt.Errorf("parsing quotes cron %q: %w", s.quotesCron, err)
		}
		s.cron = c
		c.Start()
		s.logger.Info("quote refresh scheduled", "cron", s.quotesCron)
	}

	s.spawn(s.FetchOptions)
	s.spawn(s.FetchWatchlistQuotes)
	s.spawn(s.FetchChart)
	return nil
}

// Stop halts the periodic refresh. In-flight fetches are left to finish
// on their own.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Wait blocks until every spawned task has returned.
func (s *Scheduler) Wait() { s.wg.Wait() }

// SpawnChart starts FetchChart in the background.
func (s *Scheduler) SpawnChart() { s.spawn(s.FetchChart) }

func (s *Scheduler) spawn(task func(context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		task(s.ctx)
	}()
}

// ---------------------------------------------------------------------------
// Tasks
// ---------------------------------------------------------------------------

// FetchOptions loads the option catalog into the state. Failures are only
// written to the process log.
func (s *Scheduler) FetchOptions(ctx context.Context) {
	if s.options == nil {
		return
	}
	file, err := s.options.Options(ctx)
	if err != nil {
		s.logger.Warn("loading options failed", "error", err)
		return
	}

	s.shared.Update(func(st *app.State) {
		st.Options = file.Records
		st.Logf("Loaded %d options.", len(file.Records))
		if file.Dropped > 0 {
			st.Logf("Skipped %d malformed option records.", file.Dropped)
		}
	})
}

// FetchWatchlistQuotes downloads quotes for every watchlist symbol.
func (s *Scheduler) FetchWatchlistQuotes(ctx context.Context) {
	var symbols []string
	s.shared.With(func(st *app.State) {
		symbols = st.Watchlist.Tickers()
	})
	if len(symbols) == 0 {
		return
	}

	quotes, err := s.market.Quotes(ctx, symbols)
	if err != nil {
		s.logger.Warn("downloading watchlist quotes failed", "error", err)
		s.shared.Update(func(st *app.State) {
			st.Logf("Failed to download watchlist quotes.")
		})
		return
	}

	s.shared.Update(func(st *app.State) {
		for _, q := range quotes {
			st.PutQuote(q)
		}
		st.Logf("Downloaded watchlist quotes.")
	})
}

// FetchChart downloads the last session's series for the selected symbol
// unless it is already cached or being fetched.
func (s *Scheduler) FetchChart(ctx context.Context) {
	var (
		symbol string
		ok     bool
		cached bool
	)
	s.shared.With(func(st *app.State) {
		if symbol, ok = st.SelectedSymbol(); ok {
			_, cached = st.Series(symbol)
		}
	})
	if !ok || cached || !s.begin(symbol) {
		return
	}
	defer s.end(symbol)

	day := s.calendar.LastMarketOpenDay(s.now())
	series, err := s.market.TimeSales(ctx, symbol, s.interval, util.Session(day))

	s.shared.Update(func(st *app.State) {
		if err != nil {
			st.Logf("Failed to get timeseries data for %s.", symbol)
			return
		}
		st.PutSeries(symbol, series)
		st.Logf("Got timeseries data for %s.", symbol)
	})
	if err != nil {
		s.logger.Warn("fetching time series failed", "symbol", symbol, "error", err)
	}
}

// begin marks symbol as being fetched, returning false if it already is.
func (s *Scheduler) begin(symbol string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[symbol] {
		return false
	}
	s.inflight[symbol] = true
	return true
}

func (s *Scheduler) end(symbol string) {
	s.mu.Lock()
	delete(s.inflight, symbol)
	s.mu.Unlock()
}
