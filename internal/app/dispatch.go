package app

// EventKind classifies an input event.
type EventKind int

const (
	EventChar EventKind = iota
	EventUp
	EventDown
	EventOther
	EventTick
)

// Event is one input or tick event from the terminal.
type Event struct {
	Kind EventKind
	Char rune // set for EventChar
}

// ChartSpawner starts a background chart fetch for the current selection.
type ChartSpawner interface {
	SpawnChart()
}

// App dispatches events against shared state.
type App struct {
	shared *Shared
	charts ChartSpawner
}

// New returns an App over shared that requests charts from charts.
func New(shared *Shared, charts ChartSpawner) *App {
	return &App{shared: shared, charts: charts}
}

// Shared returns the state handle.
func (a *App) Shared() *Shared { return a.shared }

// Dispatch applies ev and reports whether the loop should stop. A selection
// change starts a chart fetch after the lock is released.
func (a *App) Dispatch(ev Event) (quit bool) {
	moved := false
	a.shared.With(func(st *State) {
		switch ev.Kind {
		case EventChar:
			st.OnKey(ev.Char)
		case EventUp:
			st.Watchlist.Prev()
			moved = true
		case EventDown:
			st.Watchlist.Next()
			moved = true
		case EventTick:
			st.OnTick()
		}
		quit = st.ShouldQuit
	})

	if moved && a.charts != nil {
		a.charts.SpawnChart()
	}
	return quit
}
