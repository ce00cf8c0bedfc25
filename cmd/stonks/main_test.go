package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"stonks/internal/domain"
)

var testSymbols = []domain.Symbol{
	{Symbol: "AAPL", SecurityName: "Apple Inc. - Common Stock"},
	{Symbol: "AAL", SecurityName: "American Airlines Group, Inc. - Common Stock"},
	{Symbol: "QQQ", SecurityName: "Invesco QQQ Trust, Series 1", ETF: true},
	{Symbol: "TSLA", SecurityName: "Tesla, Inc. - Common Stock"},
}

func tickers(syms []domain.Symbol) string {
	var out []string
	for _, s := range syms {
		out = append(out, s.Symbol)
	}
	return strings.Join(out, ",")
}

func TestMatchSymbols(t *testing.T) {
	tests := []struct {
		query string
		limit int
		want  string
	}{
		{"", 0, "AAPL,AAL,QQQ,TSLA"},
		{"", 2, "AAPL,AAL"},
		{"aa", 0, "AAPL,AAL"},
		{"tesla", 0, "TSLA"},
		{"common stock", 0, "AAPL,AAL,TSLA"},
		{"zzz", 0, ""},
	}
	for _, tt := range tests {
		if got := tickers(matchSymbols(testSymbols, tt.query, tt.limit)); got != tt.want {
			t.Errorf("matchSymbols(%q, %d) = %q, want %q", tt.query, tt.limit, got, tt.want)
		}
	}
}

func TestOptionsFor(t *testing.T) {
	all := []domain.OptionListing{
		{UnderlyingSymbol: "AAPL", Strike: 150},
		{UnderlyingSymbol: "TSLA", Strike: 700},
		{UnderlyingSymbol: "AAPL", Strike: 155},
	}
	got := optionsFor(all, "aapl")
	if len(got) != 2 || got[0].Strike != 150 || got[1].Strike != 155 {
		t.Errorf("optionsFor = %+v", got)
	}
}

func TestWriteSymbols(t *testing.T) {
	var buf bytes.Buffer
	writeSymbols(&buf, testSymbols[2:3])
	out := buf.String()
	for _, want := range []string{"SYMBOL", "CATEGORY", "QQQ", "Invesco QQQ Trust"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// Text columns are left-aligned like the name column.
	if !strings.Contains(out, "│ Unknown ") {
		t.Errorf("category and status should be left-aligned:\n%s", out)
	}
}

func TestDefaultLogPath(t *testing.T) {
	now := time.Date(2021, 3, 2, 3, 0, 0, 0, time.UTC) // 2021-03-01 22:00 ET
	if got := filepath.Base(defaultLogPath(now)); got != "stonks-2021-03-01.log" {
		t.Errorf("defaultLogPath = %q", got)
	}
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"symbols", "options", "refresh"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if f := root.PersistentFlags().Lookup("config"); f == nil {
		t.Error("missing --config flag")
	}
}
