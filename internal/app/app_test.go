package app

import (
	"sync"
	"testing"
	"time"

	"stonks/internal/domain"
	"stonks/internal/watchlist"
)

type countingSpawner struct{ n int }

func (c *countingSpawner) SpawnChart() { c.n++ }

func newTestApp(tickers ...string) (*App, *Shared, *countingSpawner) {
	syms := make([]domain.Symbol, len(tickers))
	for i, t := range tickers {
		syms[i] = domain.Symbol{Symbol: t}
	}
	st := NewState("StonksCLI", syms, watchlist.New(syms), nil)
	shared := NewShared(st)
	sp := &countingSpawner{}
	return New(shared, sp), shared, sp
}

func selected(t *testing.T, shared *Shared) string {
	t.Helper()
	var sym string
	shared.With(func(st *State) { sym, _ = st.SelectedSymbol() })
	return sym
}

func TestDispatchQuit(t *testing.T) {
	a, _, sp := newTestApp("SPY")
	if a.Dispatch(Event{Kind: EventChar, Char: 'x'}) {
		t.Error("'x' should not quit")
	}
	if !a.Dispatch(Event{Kind: EventChar, Char: 'q'}) {
		t.Error("'q' should quit")
	}
	if sp.n != 0 {
		t.Errorf("SpawnChart called %d times, want 0", sp.n)
	}
}

func TestDispatchNavigation(t *testing.T) {
	a, shared, sp := newTestApp("SPY", "TSLA", "DIS")

	a.Dispatch(Event{Kind: EventDown})
	if got := selected(t, shared); got != "TSLA" {
		t.Errorf("after Down selected = %q, want TSLA", got)
	}
	a.Dispatch(Event{Kind: EventUp})
	a.Dispatch(Event{Kind: EventUp})
	if got := selected(t, shared); got != "DIS" {
		t.Errorf("after Up Up selected = %q, want DIS", got)
	}
	if sp.n != 3 {
		t.Errorf("SpawnChart called %d times, want 3", sp.n)
	}
}

func TestDispatchIgnored(t *testing.T) {
	a, shared, sp := newTestApp("SPY", "TSLA")
	for _, ev := range []Event{{Kind: EventOther}, {Kind: EventTick}} {
		if a.Dispatch(ev) {
			t.Errorf("%v should not quit", ev)
		}
	}
	if got := selected(t, shared); got != "SPY" {
		t.Errorf("selected = %q, want SPY", got)
	}
	if sp.n != 0 {
		t.Errorf("SpawnChart called %d times, want 0", sp.n)
	}
}

func TestLogTail(t *testing.T) {
	st := NewState("t", nil, nil, nil)
	if st.LastLog() != "" {
		t.Error("empty log tail should have no last line")
	}
	st.Logf("Loaded %d options.", 3)
	st.Logf("Downloaded watchlist quotes.")
	if st.LastLog() != "Downloaded watchlist quotes." {
		t.Errorf("LastLog = %q", st.LastLog())
	}
	if log := st.Log(); len(log) != 2 || log[0] != "Loaded 3 options." {
		t.Errorf("Log = %v", log)
	}
}

func TestCaches(t *testing.T) {
	st := NewState("t", nil, nil, nil)
	st.PutQuote(domain.Quote{Symbol: "SPY", Last: 1})
	st.PutQuote(domain.Quote{Symbol: "SPY", Last: 2})
	if q, ok := st.Quote("SPY"); !ok || q.Last != 2 {
		t.Errorf("Quote(SPY) = %+v, %v", q, ok)
	}
	if st.QuoteCount() != 1 {
		t.Errorf("QuoteCount = %d, want 1", st.QuoteCount())
	}
	st.PutSeries("SPY", domain.TimeSeries{{VWAP: 1}})
	if ts, ok := st.Series("SPY"); !ok || len(ts) != 1 {
		t.Errorf("Series(SPY) = %v, %v", ts, ok)
	}
	if _, ok := st.Series("TSLA"); ok {
		t.Error("Series(TSLA) should be absent")
	}
}

func TestSubscribeCoalesces(t *testing.T) {
	shared := NewShared(NewState("t", nil, nil, nil))
	id, ch := shared.Subscribe()

	shared.Update(func(st *State) { st.Logf("one") })
	shared.Update(func(st *State) { st.Logf("two") })

	select {
	case <-ch:
	default:
		t.Fatal("expected a pending notification")
	}
	select {
	case <-ch:
		t.Fatal("notifications should coalesce")
	default:
	}

	shared.Unsubscribe(id)
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after Unsubscribe")
	}
}

func TestHoldObserver(t *testing.T) {
	var mu sync.Mutex
	var holds []time.Duration
	shared := NewShared(NewState("t", nil, nil, nil), WithHoldObserver(func(d time.Duration) {
		mu.Lock()
		holds = append(holds, d)
		mu.Unlock()
	}))

	shared.With(func(*State) { time.Sleep(5 * time.Millisecond) })
	if len(holds) != 1 || holds[0] < 5*time.Millisecond {
		t.Errorf("holds = %v, want one >= 5ms", holds)
	}
}
