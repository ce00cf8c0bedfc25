package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/jedib0t/go-pretty/v6/table"

	"stonks/internal/app"
	"stonks/internal/chart"
)

// Layout constants, in terminal cells.
const (
	barHeight     = 3
	maxWatchWidth = 50
	quoteWidth    = 38
	tickerWidth   = 8
	minPanel      = 4
)

// render draws one frame of st. It only reads from st.
func render(st *app.State, width, height int) string {
	if width < 3*minPanel || height < 2*barHeight+minPanel {
		return padOrTrunc("terminal too small", width)
	}

	mainHeight := height - 2*barHeight
	watchWidth := min(maxWatchWidth, width/3)
	qWidth := min(quoteWidth, (width-watchWidth)/2)
	chartWidth := width - watchWidth - qWidth

	selected, _ := st.SelectedSymbol()

	title := box(width, barHeight, titleStyle.Render(st.Title))
	main := lipgloss.JoinHorizontal(lipgloss.Top,
		box(watchWidth, mainHeight, renderWatchlist(st, watchWidth-2, mainHeight-2)),
		box(qWidth, mainHeight, renderQuote(st, selected, qWidth-2)),
		box(chartWidth, mainHeight, renderChart(st, selected, chartWidth-2, mainHeight-2)),
	)
	logBar := box(width, barHeight, dimStyle.Render(st.LastLog()))

	return lipgloss.JoinVertical(lipgloss.Left, title, main, logBar)
}

// box draws content inside a rounded border occupying exactly width x
// height cells.
func box(width, height int, content string) string {
	inner := clip(content, width-2, height-2)
	return panelStyle.Render(inner)
}

// ---------------------------------------------------------------------------
// Watchlist
// ---------------------------------------------------------------------------

func renderWatchlist(st *app.State, width, height int) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Watchlist"))
	b.WriteByte('\n')

	items := st.Watchlist.Items()
	sel, hasSel := st.Watchlist.Index()
	rows := height - 1
	start := 0
	if hasSel && sel >= rows {
		start = sel - rows + 1
	}

	right := width - tickerWidth
	for i := start; i < len(items) && i < start+rows; i++ {
		sym := items[i].Symbol
		detail, style := placeholder, dimStyle
		if q, ok := st.Quote(sym); ok {
			detail = fmt.Sprintf("%10s %9s", formatPrice(q.Last), formatPercent(q.ChangePercentage))
			style = changeStyle(q.ChangePercentage)
		}

		if hasSel && i == sel {
			b.WriteString(selectStyle.Render(padOrTrunc(sym, tickerWidth) + padOrTrunc(detail, right)))
		} else {
			b.WriteString(symbolStyle.Render(padOrTrunc(sym, tickerWidth)))
			b.WriteString(style.Render(padOrTrunc(detail, right)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Quote panel
// ---------------------------------------------------------------------------

func renderQuote(st *app.State, symbol string, width int) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(orPlaceholder(symbol)))
	b.WriteByte('\n')

	q, ok := st.Quote(symbol)
	rows := []table.Row{
		{"Name", placeholder},
		{"Bid", placeholder},
		{"Ask", placeholder},
		{"Last", placeholder},
		{"Volume", placeholder},
		{"Change", placeholder},
		{"52W High", placeholder},
		{"52W Low", placeholder},
		{"Open", placeholder},
		{"Close", placeholder},
	}
	if ok {
		rows = []table.Row{
			{"Name", q.Description},
			{"Bid", fmt.Sprintf("%s x %s", formatPrice(q.Bid), formatCount(q.BidSize))},
			{"Ask", fmt.Sprintf("%s x %s", formatPrice(q.Ask), formatCount(q.AskSize))},
			{"Last", formatPrice(q.Last)},
			{"Volume", formatCount(q.Volume)},
			{"Change", changeStyle(q.ChangePoints).Render(formatChange(q.ChangePoints, q.ChangePercentage))},
			{"52W High", formatPrice(q.Week52High)},
			{"52W Low", formatPrice(q.Week52Low)},
			{"Open", formatOptional(q.Open)},
			{"Close", formatOptional(q.Close)},
		}
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Options = table.OptionsNoBordersAndSeparators
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMax: 9},
		{Number: 2, WidthMax: max(1, width-11)},
	})
	tw.AppendRows(rows)
	b.WriteString(tw.Render())
	return b.String()
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// ---------------------------------------------------------------------------
// Chart panel
// ---------------------------------------------------------------------------

func renderChart(st *app.State, symbol string, width, height int) string {
	series, ok := st.Series(symbol)
	if symbol == "" || !ok || len(series) == 0 {
		return headingStyle.Render("Chart") + "\n" + placeholder
	}

	lo, hi := chart.MinMax(series)
	color, style := asciigraph.Red, lossStyle
	if chart.WentUp(series) {
		color, style = asciigraph.Green, gainStyle
	}

	heading := fmt.Sprintf("%s  %s - %s", symbol, formatPrice(float32(lo)), formatPrice(float32(hi)))
	labelWidth := max(len(fmt.Sprintf("%.2f", lo)), len(fmt.Sprintf("%.2f", hi))) + 2
	cols := max(1, width-labelWidth-1)
	plotHeight := max(1, height-3)

	ys := chart.Values(chart.Downsample(series, cols))
	plot := asciigraph.Plot(ys,
		asciigraph.Height(plotHeight),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(color),
	)

	var b strings.Builder
	b.WriteString(style.Render(heading))
	b.WriteByte('\n')
	b.WriteString(plot)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", labelWidth+1))
	b.WriteString(dimStyle.Render(axisLabels(chart.TimeMarkers, cols)))
	return b.String()
}

// axisLabels spreads labels evenly across width cells, keeping the last one
// flush with the right edge.
func axisLabels(labels []string, width int) string {
	if width <= 0 || len(labels) == 0 {
		return ""
	}
	buf := []rune(strings.Repeat(" ", width))
	for i, l := range labels {
		pos := 0
		if len(labels) > 1 {
			pos = i * (width - 1) / (len(labels) - 1)
		}
		if i == len(labels)-1 {
			pos = width - len(l)
		}
		if pos < 0 {
			pos = 0
		}
		for j, r := range l {
			if pos+j < width {
				buf[pos+j] = r
			}
		}
	}
	return string(buf)
}
