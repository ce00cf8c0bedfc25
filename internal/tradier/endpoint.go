package tradier

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"stonks/internal/domain"
	"stonks/internal/errs"
	"stonks/internal/util"
)

// DefaultBaseURL is the Tradier sandbox API root.
const DefaultBaseURL = "https://sandbox.tradier.com/v1"

// timeSalesLayout is the "YYYY-MM-DD HH:MM" form Tradier expects for
// start and end, in ET.
const timeSalesLayout = "2006-01-02 15:04"

const (
	quotesPath    = "/markets/quotes"
	timeSalesPath = "/markets/timesales"
)

func buildURL(base, path string, q url.Values) (string, error) {
	u, err := url.Parse(strings.TrimRight(base, "/") + path)
	if err != nil {
		return "", errs.Parse("building "+path+" url", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errs.Parse(fmt.Sprintf("base url %q is not absolute", base), nil)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// QuotesURL returns the quotes endpoint for symbols.
func QuotesURL(base string, symbols []string) (string, error) {
	q := url.Values{}
	q.Set("symbols", strings.Join(symbols, ","))
	return buildURL(base, quotesPath, q)
}

// TimeSalesURL returns the intraday series endpoint for symbol over r at
// the given bucket size in minutes.
func TimeSalesURL(base, symbol string, intervalMinutes int, r domain.DateRange) (string, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", strconv.Itoa(intervalMinutes)+"min")
	q.Set("start", r.Start.In(util.ET).Format(timeSalesLayout))
	q.Set("end", r.End.In(util.ET).Format(timeSalesLayout))
	return buildURL(base, timeSalesPath, q)
}
