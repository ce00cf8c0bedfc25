package domain

import "testing"

func TestMarketCategoryCodes(t *testing.T) {
	tests := map[string]MarketCategory{
		"Q": MarketCategoryGlobalSelect,
		"G": MarketCategoryGlobal,
		"S": MarketCategoryCapital,
		"X": MarketCategoryUnknown,
		"":  MarketCategoryUnknown,
	}
	for code, want := range tests {
		if got := ParseMarketCategory(code); got != want {
			t.Errorf("ParseMarketCategory(%q) = %v, want %v", code, got, want)
		}
	}

	for _, c := range []MarketCategory{MarketCategoryGlobalSelect, MarketCategoryGlobal, MarketCategoryCapital, MarketCategoryUnknown} {
		if got := ParseMarketCategory(c.Code()); got != c {
			t.Errorf("ParseMarketCategory(%v.Code()) = %v", c, got)
		}
	}
}

func TestFinancialStatusCodes(t *testing.T) {
	for code, name := range map[string]string{
		"D": "Deficient",
		"E": "Delinquent",
		"Q": "Bankrupt",
		"N": "Normal",
		"G": "DeficientAndBankrupt",
		"H": "DeficientAndDelinquent",
		"J": "DelinquentAndBankrupt",
		"K": "DeficientDelinquentAndBankrupt",
		"Z": "Unknown",
	} {
		s := ParseFinancialStatus(code)
		if s.String() != name {
			t.Errorf("ParseFinancialStatus(%q) = %v, want %s", code, s, name)
		}
		if s != FinancialStatusUnknown && s.Code() != code {
			t.Errorf("%v.Code() = %q, want %q", s, s.Code(), code)
		}
	}
}

func TestOptionTypeString(t *testing.T) {
	if OptionCall.String() != "Call" {
		t.Errorf("OptionCall.String() = %q, want %q", OptionCall.String(), "Call")
	}
	if OptionPut.String() != "Put" {
		t.Errorf("OptionPut.String() = %q, want %q", OptionPut.String(), "Put")
	}
}
