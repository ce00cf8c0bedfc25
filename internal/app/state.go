// Package app holds the dashboard state shared between the event loop and
// background fetches, and the event dispatch that mutates it.
package app

import (
	"fmt"
	"log/slog"

	"stonks/internal/domain"
	"stonks/internal/util"
	"stonks/internal/watchlist"
)

// View identifies the active screen.
type View int

const (
	ViewWatchlist View = iota
)

// State is the complete dashboard state. It is only accessed through a
// Shared handle, which serialises access.
type State struct {
	Title      string
	Symbols    []domain.Symbol
	Options    []domain.OptionListing
	Watchlist  *watchlist.Watchlist
	ShouldQuit bool
	ActiveView View

	// Caches only grow during a session.
	quotes map[string]domain.Quote
	charts map[string]domain.TimeSeries
	log    []string

	logger *slog.Logger
}

// NewState creates the initial state. A nil watchlist is treated as empty.
func NewState(title string, symbols []domain.Symbol, wl *watchlist.Watchlist, logger *slog.Logger) *State {
	if wl == nil {
		wl = watchlist.New(nil)
	}
	if logger == nil {
		logger = util.DiscardLogger()
	}
	return &State{
		Title:      title,
		Symbols:    symbols,
		Watchlist:  wl,
		ActiveView: ViewWatchlist,
		quotes:     make(map[string]domain.Quote),
		charts:     make(map[string]domain.TimeSeries),
		logger:     logger,
	}
}

// PutQuote stores q under its symbol, replacing any previous quote.
func (s *State) PutQuote(q domain.Quote) { s.quotes[q.Symbol] = q }

// Quote returns the cached quote for symbol.
func (s *State) Quote(symbol string) (domain.Quote, bool) {
	q, ok := s.quotes[symbol]
	return q, ok
}

// PutSeries stores the intraday series for symbol.
func (s *State) PutSeries(symbol string, series domain.TimeSeries) { s.charts[symbol] = series }

// Series returns the cached series for symbol.
func (s *State) Series(symbol string) (domain.TimeSeries, bool) {
	ts, ok := s.charts[symbol]
	return ts, ok
}

// QuoteCount and SeriesCount report cache sizes.
func (s *State) QuoteCount() int  { return len(s.quotes) }
func (s *State) SeriesCount() int { return len(s.charts) }

// Logf appends a status line to the log tail.
func (s *State) Logf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	s.log = append(s.log, line)
	s.logger.Info(line)
}

// Log returns a copy of the log tail.
func (s *State) Log() []string {
	out := make([]string, len(s.log))
	copy(out, s.log)
	return out
}

// LastLog returns the most recent status line, or "".
func (s *State) LastLog() string {
	if len(s.log) == 0 {
		return ""
	}
	return s.log[len(s.log)-1]
}

// SelectedSymbol returns the ticker under the cursor.
func (s *State) SelectedSymbol() (string, bool) {
	sym, ok := s.Watchlist.Selected()
	return sym.Symbol, ok
}

// OnKey handles a character key.
func (s *State) OnKey(c rune) {
	if c == 'q' {
		s.ShouldQuit = true
	}
}

// OnTick is called on every tick event.
func (s *State) OnTick() {}
