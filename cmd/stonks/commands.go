package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"stonks/internal/catalog"
	"stonks/internal/config"
	"stonks/internal/domain"
	"stonks/internal/util"
)

// cliEnv is what the catalog subcommands share. They run without the
// dashboard, so they log to stderr.
func cliEnv(cfgPath string) (*config.Config, *catalog.Store, *slog.Logger, error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := util.NewLogger(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	cal, err := util.NewTradingCalendar(cfg.Calendar.MIC, cfg.Calendar.Holidays)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, newStore(cfg, cal, logger), logger, nil
}

func newSymbolsCmd(cfgPath *string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "symbols [QUERY]",
		Short: "List catalog symbols, optionally filtered by ticker or name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, logger, err := cliEnv(*cfgPath)
			if err != nil {
				return err
			}
			file, err := store.Symbols(cmd.Context())
			if err != nil {
				return err
			}
			if file.Dropped > 0 {
				logger.Warn("skipped malformed symbol records", "count", file.Dropped)
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			writeSymbols(cmd.OutOrStdout(), matchSymbols(file.Records, query, limit))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum rows to print (0 for all)")
	return cmd
}

func newOptionsCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "options UNDERLYING",
		Short: "List option series for an underlying symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, logger, err := cliEnv(*cfgPath)
			if err != nil {
				return err
			}
			file, err := store.Options(cmd.Context())
			if err != nil {
				return err
			}
			if file.Dropped > 0 {
				logger.Warn("skipped malformed option records", "count", file.Dropped)
			}
			writeOptions(cmd.OutOrStdout(), optionsFor(file.Records, args[0]))
			return nil
		},
	}
}

func newRefreshCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Download every catalog file from the FTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, logger, err := cliEnv(*cfgPath)
			if err != nil {
				return err
			}
			if err := store.RefreshAll(cmd.Context()); err != nil {
				return err
			}
			logger.Info("catalog refreshed", "dir", cfg.Catalog.Dir)
			return nil
		},
	}
}

// matchSymbols returns symbols whose ticker has query as a prefix or whose
// name contains it, case-insensitively. limit <= 0 means no limit.
func matchSymbols(all []domain.Symbol, query string, limit int) []domain.Symbol {
	q := strings.ToUpper(query)
	var out []domain.Symbol
	for _, s := range all {
		if q != "" && !strings.HasPrefix(s.Symbol, q) && !strings.Contains(strings.ToUpper(s.SecurityName), q) {
			continue
		}
		out = append(out, s)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func optionsFor(all []domain.OptionListing, underlying string) []domain.OptionListing {
	u := strings.ToUpper(underlying)
	var out []domain.OptionListing
	for _, o := range all {
		if o.UnderlyingSymbol == u {
			out = append(out, o)
		}
	}
	return out
}

func writeSymbols(w io.Writer, syms []domain.Symbol) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Symbol", "Name", "Category", "Status", "Lot", "ETF"})
	for _, s := range syms {
		etf := ""
		if s.ETF {
			etf = "Y"
		}
		tw.AppendRow(table.Row{s.Symbol, s.SecurityName, s.MarketCategory, s.FinancialStatus, s.RoundLotSize, etf})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 48},
		{Number: 3, Align: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft},
		{Number: 5, Align: text.AlignRight},
	})
	tw.Render()
}

func writeOptions(w io.Writer, opts []domain.OptionListing) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Underlying", "Expiration", "Type", "Strike", "Closing"})
	for _, o := range opts {
		tw.AppendRow(table.Row{o.UnderlyingSymbol, o.ExpirationDate, o.OptionType, fmt.Sprintf("%.2f", o.Strike), o.ClosingType})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
	})
	tw.Render()
}
