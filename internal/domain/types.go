// Package domain defines the core value types shared across stonks: catalog
// records, quotes and intraday time series.
package domain

import "time"

// ---------------------------------------------------------------------------
// Catalog records
// ---------------------------------------------------------------------------

// MarketCategory is the NASDAQ market tier of a listed security.
type MarketCategory int

const (
	MarketCategoryUnknown MarketCategory = iota
	MarketCategoryGlobalSelect
	MarketCategoryGlobal
	MarketCategoryCapital
)

var marketCategoryCodes = map[MarketCategory]string{
	MarketCategoryGlobalSelect: "Q",
	MarketCategoryGlobal:       "G",
	MarketCategoryCapital:      "S",
}

// ParseMarketCategory maps a one-letter listing code to a MarketCategory.
// Unrecognised codes map to MarketCategoryUnknown.
func ParseMarketCategory(code string) MarketCategory {
	for c, s := range marketCategoryCodes {
		if s == code {
			return c
		}
	}
	return MarketCategoryUnknown
}

// Code returns the listing code for c, or "" for MarketCategoryUnknown.
func (c MarketCategory) Code() string { return marketCategoryCodes[c] }

func (c MarketCategory) String() string {
	switch c {
	case MarketCategoryGlobalSelect:
		return "GlobalSelect"
	case MarketCategoryGlobal:
		return "Global"
	case MarketCategoryCapital:
		return "Capital"
	default:
		return "Unknown"
	}
}

// FinancialStatus reports whether an issuer is out of compliance with
// listing requirements.
type FinancialStatus int

const (
	FinancialStatusUnknown FinancialStatus = iota
	FinancialStatusDeficient
	FinancialStatusDelinquent
	FinancialStatusBankrupt
	FinancialStatusNormal
	FinancialStatusDeficientAndBankrupt
	FinancialStatusDeficientAndDelinquent
	FinancialStatusDelinquentAndBankrupt
	FinancialStatusDeficientDelinquentAndBankrupt
)

var financialStatusCodes = map[FinancialStatus]string{
	FinancialStatusDeficient:                      "D",
	FinancialStatusDelinquent:                     "E",
	FinancialStatusBankrupt:                       "Q",
	FinancialStatusNormal:                         "N",
	FinancialStatusDeficientAndBankrupt:           "G",
	FinancialStatusDeficientAndDelinquent:         "H",
	FinancialStatusDelinquentAndBankrupt:          "J",
	FinancialStatusDeficientDelinquentAndBankrupt: "K",
}

var financialStatusNames = map[FinancialStatus]string{
	FinancialStatusDeficient:                      "Deficient",
	FinancialStatusDelinquent:                     "Delinquent",
	FinancialStatusBankrupt:                       "Bankrupt",
	FinancialStatusNormal:                         "Normal",
	FinancialStatusDeficientAndBankrupt:           "DeficientAndBankrupt",
	FinancialStatusDeficientAndDelinquent:         "DeficientAndDelinquent",
	FinancialStatusDelinquentAndBankrupt:          "DelinquentAndBankrupt",
	FinancialStatusDeficientDelinquentAndBankrupt: "DeficientDelinquentAndBankrupt",
}

// ParseFinancialStatus maps a one-letter status code to a FinancialStatus.
// Unrecognised codes map to FinancialStatusUnknown.
func ParseFinancialStatus(code string) FinancialStatus {
	for s, c := range financialStatusCodes {
		if c == code {
			return s
		}
	}
	return FinancialStatusUnknown
}

// Code returns the listing code for s, or "" for FinancialStatusUnknown.
func (s FinancialStatus) Code() string { return financialStatusCodes[s] }

func (s FinancialStatus) String() string {
	if name, ok := financialStatusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// ExchangeNasdaq is the exchange code recorded for nasdaqlisted symbols.
const ExchangeNasdaq = "Q"

// DefaultRoundLotSize is used when a listing's round lot field is unparseable.
const DefaultRoundLotSize uint16 = 100

// Symbol is one listed security.
type Symbol struct {
	Symbol          string
	SecurityName    string
	Exchange        string
	MarketCategory  MarketCategory
	TestIssue       bool
	FinancialStatus FinancialStatus
	RoundLotSize    uint16
	ETF             bool
	NextShares      bool
}

// OptionType distinguishes calls from puts.
type OptionType int

const (
	OptionCall OptionType = iota
	OptionPut
)

func (t OptionType) String() string {
	if t == OptionPut {
		return "Put"
	}
	return "Call"
}

// OptionListing is one listed option series.
type OptionListing struct {
	ClosingType      string
	OptionType       OptionType
	ExpirationDate   string // YYYY-MM-DD as published
	Strike           float32
	UnderlyingSymbol string
	UnderlyingName   string
	Pending          bool
}

// ---------------------------------------------------------------------------
// Market data
// ---------------------------------------------------------------------------

// Quote is a point-in-time snapshot of one security.
type Quote struct {
	Symbol           string   `json:"symbol"`
	Description      string   `json:"description"`
	Ask              float32  `json:"ask"`
	Bid              float32  `json:"bid"`
	AskSize          uint32   `json:"asksize"`
	BidSize          uint32   `json:"bidsize"`
	Volume           uint32   `json:"volume"`
	Week52High       float32  `json:"week_52_high"`
	Week52Low        float32  `json:"week_52_low"`
	Open             *float32 `json:"open"`
	Close            *float32 `json:"close"`
	Last             float32  `json:"last"`
	ChangePoints     float32  `json:"change"`
	ChangePercentage float32  `json:"change_percentage"`
}

// TimePoint is one bucket of an intraday series.
type TimePoint struct {
	Time      time.Time
	Timestamp uint32
	Price     float64
	High      float64
	Low       float64
	Close     float64
	VWAP      float64
	Volume    uint32
}

// TimeSeries is ordered oldest to newest.
type TimeSeries []TimePoint

// DateRange represents a time range for data fetching.
type DateRange struct {
	Start time.Time
	End   time.Time
}
