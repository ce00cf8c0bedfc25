package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"stonks/internal/domain"
)

const recordFields = 8

// Catalog files published in the exchange's SymbolDirectory.
const (
	NasdaqListedFile = "nasdaqlisted.txt"
	OtherListedFile  = "otherlisted.txt"
	OptionsFile      = "options.txt"
)

// Formats for each catalog file.
var (
	NasdaqListed = Format[domain.Symbol]{Filename: NasdaqListedFile, Parse: ParseSymbol}
	OtherListed  = Format[domain.Symbol]{Filename: OtherListedFile, Parse: ParseOtherListed}
	Options      = Format[domain.OptionListing]{Filename: OptionsFile, Parse: ParseOption}
)

func splitFields(line string) ([]string, error) {
	fields := strings.Split(line, "|")
	if len(fields) != recordFields {
		return nil, fmt.Errorf("want %d fields, got %d", recordFields, len(fields))
	}
	return fields, nil
}

func yes(field string) bool { return field == "Y" }

func flag(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}

func roundLot(field string) uint16 {
	n, err := strconv.ParseUint(field, 10, 16)
	if err != nil {
		return domain.DefaultRoundLotSize
	}
	return uint16(n)
}

// ---------------------------------------------------------------------------
// nasdaqlisted.txt
// ---------------------------------------------------------------------------

// ParseSymbol parses one nasdaqlisted.txt record:
// symbol|security_name|market_category|test_issue|financial_status|round_lot_size|etf|next_shares.
func ParseSymbol(line string) (domain.Symbol, error) {
	f, err := splitFields(line)
	if err != nil {
		return domain.Symbol{}, err
	}
	return domain.Symbol{
		Symbol:          f[0],
		SecurityName:    f[1],
		Exchange:        domain.ExchangeNasdaq,
		MarketCategory:  domain.ParseMarketCategory(f[2]),
		TestIssue:       yes(f[3]),
		FinancialStatus: domain.ParseFinancialStatus(f[4]),
		RoundLotSize:    roundLot(f[5]),
		ETF:             yes(f[6]),
		NextShares:      yes(f[7]),
	}, nil
}

// FormatSymbol renders s in the nasdaqlisted.txt layout.
func FormatSymbol(s domain.Symbol) string {
	return strings.Join([]string{
		s.Symbol,
		s.SecurityName,
		s.MarketCategory.Code(),
		flag(s.TestIssue),
		s.FinancialStatus.Code(),
		strconv.FormatUint(uint64(s.RoundLotSize), 10),
		flag(s.ETF),
		flag(s.NextShares),
	}, "|")
}

// ---------------------------------------------------------------------------
// otherlisted.txt
// ---------------------------------------------------------------------------

// ParseOtherListed parses one otherlisted.txt record:
// act_symbol|security_name|exchange|cqs_symbol|etf|round_lot_size|test_issue|nasdaq_symbol.
// NASDAQ-only attributes are left Unknown.
func ParseOtherListed(line string) (domain.Symbol, error) {
	f, err := splitFields(line)
	if err != nil {
		return domain.Symbol{}, err
	}
	return domain.Symbol{
		Symbol:       f[0],
		SecurityName: f[1],
		Exchange:     f[2],
		ETF:          yes(f[4]),
		RoundLotSize: roundLot(f[5]),
		TestIssue:    yes(f[6]),
	}, nil
}

// FormatOtherListed renders s in the otherlisted.txt layout, reusing the
// ticker for the CQS and NASDAQ symbol columns.
func FormatOtherListed(s domain.Symbol) string {
	return strings.Join([]string{
		s.Symbol,
		s.SecurityName,
		s.Exchange,
		s.Symbol,
		flag(s.ETF),
		strconv.FormatUint(uint64(s.RoundLotSize), 10),
		flag(s.TestIssue),
		s.Symbol,
	}, "|")
}

// ---------------------------------------------------------------------------
// options.txt
// ---------------------------------------------------------------------------

// ParseOption parses one options.txt record:
// root_symbol|closing_type|option_type|expiration_date|strike_price|underlying_symbol|underlying_name|pending.
// The root symbol is not kept.
func ParseOption(line string) (domain.OptionListing, error) {
	f, err := splitFields(line)
	if err != nil {
		return domain.OptionListing{}, err
	}

	var typ domain.OptionType
	switch f[2] {
	case "C":
		typ = domain.OptionCall
	case "P":
		typ = domain.OptionPut
	default:
		return domain.OptionListing{}, fmt.Errorf("option type %q", f[2])
	}

	strike, err := strconv.ParseFloat(f[4], 32)
	if err != nil {
		return domain.OptionListing{}, fmt.Errorf("strike %q: %w", f[4], err)
	}

	return domain.OptionListing{
		ClosingType:      f[1],
		OptionType:       typ,
		ExpirationDate:   f[3],
		Strike:           float32(strike),
		UnderlyingSymbol: f[5],
		UnderlyingName:   f[6],
		Pending:          yes(f[7]),
	}, nil
}

// FormatOption renders o in the options.txt layout with the underlying as
// the root symbol.
func FormatOption(o domain.OptionListing) string {
	typ := "C"
	if o.OptionType == domain.OptionPut {
		typ = "P"
	}
	return strings.Join([]string{
		o.UnderlyingSymbol,
		o.ClosingType,
		typ,
		o.ExpirationDate,
		strconv.FormatFloat(float64(o.Strike), 'g', -1, 32),
		o.UnderlyingSymbol,
		o.UnderlyingName,
		flag(o.Pending),
	}, "|")
}
