// Package watchlist holds the ordered set of symbols shown in the dashboard
// and the current selection.
package watchlist

import (
	"strings"

	"stonks/internal/domain"
)

// Default is the watchlist used when none is configured.
var Default = []string{"SPY", "TSLA", "DIS", "LUV", "AMD", "NVDA", "AAPL", "MSFT", "FB", "GOOG", "AMZN", "TWO"}

// Watchlist is an ordered list of symbols with an optional selection. The
// zero value is an empty watchlist with nothing selected.
type Watchlist struct {
	items []domain.Symbol
	sel   int
	has   bool
}

// New returns a watchlist of items with the first item selected, or nothing
// selected if items is empty.
func New(items []domain.Symbol) *Watchlist {
	w := &Watchlist{items: items}
	if len(items) > 0 {
		w.has = true
	}
	return w
}

// Build resolves wanted tickers against the catalog, keeping the order of
// wanted and dropping duplicates. Tickers absent from the catalog are
// returned as missing.
func Build(catalog []domain.Symbol, wanted []string) (w *Watchlist, missing []string) {
	bySymbol := make(map[string]domain.Symbol, len(catalog))
	for _, s := range catalog {
		if _, dup := bySymbol[s.Symbol]; !dup {
			bySymbol[s.Symbol] = s
		}
	}

	seen := make(map[string]bool, len(wanted))
	items := make([]domain.Symbol, 0, len(wanted))
	for _, t := range wanted {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		s, ok := bySymbol[t]
		if !ok {
			missing = append(missing, t)
			continue
		}
		items = append(items, s)
	}
	return New(items), missing
}

// Len returns the number of symbols.
func (w *Watchlist) Len() int { return len(w.items) }

// Items returns a copy of the symbols.
func (w *Watchlist) Items() []domain.Symbol {
	out := make([]domain.Symbol, len(w.items))
	copy(out, w.items)
	return out
}

// Tickers returns the symbol names in order.
func (w *Watchlist) Tickers() []string {
	out := make([]string, len(w.items))
	for i, s := range w.items {
		out[i] = s.Symbol
	}
	return out
}

// Index returns the selected position and whether anything is selected.
func (w *Watchlist) Index() (int, bool) { return w.sel, w.has }

// Selected returns the selected symbol, if any.
func (w *Watchlist) Selected() (domain.Symbol, bool) {
	if !w.has || w.sel >= len(w.items) {
		return domain.Symbol{}, false
	}
	return w.items[w.sel], true
}

// Next moves the selection forward, wrapping to the start. With no
// selection it selects the first item.
func (w *Watchlist) Next() {
	if len(w.items) == 0 {
		return
	}
	if !w.has {
		w.sel, w.has = 0, true
		return
	}
	w.sel = (w.sel + 1) % len(w.items)
}

// Prev moves the selection back, wrapping to the end. With no selection it
// selects the first item.
func (w *Watchlist) Prev() {
	if len(w.items) == 0 {
		return
	}
	if !w.has {
		w.sel, w.has = 0, true
		return
	}
	w.sel = (w.sel - 1 + len(w.items)) % len(w.items)
}
