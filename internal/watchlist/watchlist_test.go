package watchlist

import (
	"testing"

	"stonks/internal/domain"
)

func symbols(tickers ...string) []domain.Symbol {
	out := make([]domain.Symbol, len(tickers))
	for i, t := range tickers {
		out[i] = domain.Symbol{Symbol: t}
	}
	return out
}

func mod(a, b int) int { return ((a % b) + b) % b }

func TestNavigationWraps(t *testing.T) {
	for l := 1; l <= 6; l++ {
		for s := 0; s < l; s++ {
			for k := 0; k <= 2*l+1; k++ {
				w := New(symbols("A", "B", "C", "D", "E", "F")[:l])
				w.sel = s
				for i := 0; i < k; i++ {
					w.Next()
				}
				if got, _ := w.Index(); got != mod(s+k, l) {
					t.Fatalf("L=%d s=%d k=%d: Next -> %d, want %d", l, s, k, got, mod(s+k, l))
				}

				w.sel = s
				for i := 0; i < k; i++ {
					w.Prev()
				}
				if got, _ := w.Index(); got != mod(s-k, l) {
					t.Fatalf("L=%d s=%d k=%d: Prev -> %d, want %d", l, s, k, got, mod(s-k, l))
				}
			}
		}
	}
}

func TestEmptyWatchlist(t *testing.T) {
	w := New(nil)
	w.Next()
	w.Prev()
	if _, ok := w.Index(); ok {
		t.Error("empty watchlist should have no selection")
	}
	if _, ok := w.Selected(); ok {
		t.Error("Selected on empty watchlist should be false")
	}

	var zero Watchlist
	zero.Next()
	if _, ok := zero.Index(); ok {
		t.Error("zero Watchlist should stay unselected")
	}
}

func TestNoSelectionSelectsFirst(t *testing.T) {
	w := &Watchlist{items: symbols("A", "B", "C")}
	w.Prev()
	if i, ok := w.Index(); !ok || i != 0 {
		t.Errorf("Prev with no selection = (%d, %v), want (0, true)", i, ok)
	}

	w = &Watchlist{items: symbols("A", "B", "C")}
	w.Next()
	if i, ok := w.Index(); !ok || i != 0 {
		t.Errorf("Next with no selection = (%d, %v), want (0, true)", i, ok)
	}
}

func TestNewSelectsFirst(t *testing.T) {
	w := New(symbols("SPY", "TSLA"))
	s, ok := w.Selected()
	if !ok || s.Symbol != "SPY" {
		t.Errorf("Selected = %v, %v; want SPY", s.Symbol, ok)
	}
}

func TestBuild(t *testing.T) {
	catalog := symbols("AAPL", "MSFT", "SPY", "TSLA")
	w, missing := Build(catalog, []string{"tsla", "SPY", "FB", "SPY", " AAPL "})

	got := w.Tickers()
	want := []string{"TSLA", "SPY", "AAPL"}
	if len(got) != len(want) {
		t.Fatalf("Tickers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tickers[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if len(missing) != 1 || missing[0] != "FB" {
		t.Errorf("missing = %v, want [FB]", missing)
	}
	if i, ok := w.Index(); !ok || i != 0 {
		t.Errorf("Index = (%d, %v), want (0, true)", i, ok)
	}
}

func TestItemsIsCopy(t *testing.T) {
	w := New(symbols("A", "B"))
	items := w.Items()
	items[0].Symbol = "Z"
	if w.Tickers()[0] != "A" {
		t.Error("Items should return a copy")
	}
}
