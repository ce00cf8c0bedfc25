package util

import (
	"fmt"
	"time"

	"github.com/scmhub/calendar"

	"stonks/internal/domain"
)

// ET is US Eastern Time as a fixed UTC-05:00 offset. Daylight saving is not
// modelled.
var ET = time.FixedZone("ET", -5*60*60)

// Session bounds used for intraday requests, in ET.
const (
	sessionOpenHour   = 9
	sessionOpenMinute = 30
	sessionCloseHour  = 16
)

// maxWalkBack bounds the search in LastMarketOpenDay so a misconfigured
// holiday source cannot loop forever.
const maxWalkBack = 366

// exchangeFirstYear is the earliest year the exchange calendar covers.
// Dates outside its range fall back to the holiday table.
const exchangeFirstYear = 2000

// businessDays is the subset of *calendar.Calendar we depend on.
type businessDays interface {
	IsBusinessDay(t time.Time) bool
}

// TradingCalendar answers weekday and market-holiday questions for US
// equities. Holidays come from a fixed table and, optionally, from an
// exchange calendar. A nil *TradingCalendar knows no holidays.
type TradingCalendar struct {
	holidays map[string]struct{}
	exchange businessDays

	// loc is the exchange's time zone; holiday lookups are keyed on its
	// midnight.
	loc       *time.Location
	firstYear int
	lastYear  int
}

// NewTradingCalendar builds a calendar from an exchange MIC (for example
// "xnys"; empty disables the exchange calendar) and a list of extra
// holidays in YYYY-MM-DD form.
func NewTradingCalendar(mic string, holidays []string) (*TradingCalendar, error) {
	tc := &TradingCalendar{holidays: make(map[string]struct{}, len(holidays))}
	for _, h := range holidays {
		d, err := time.Parse(time.DateOnly, h)
		if err != nil {
			return nil, fmt.Errorf("parsing holiday %q: %w", h, err)
		}
		tc.holidays[d.Format(time.DateOnly)] = struct{}{}
	}

	if mic != "" {
		last := time.Now().Year() + calendar.YearsAhead
		cal := calendar.GetCalendar(mic, exchangeFirstYear, last)
		if cal == nil {
			return nil, fmt.Errorf("unknown exchange calendar %q", mic)
		}
		tc.exchange = cal
		tc.loc = cal.Loc
		tc.firstYear, tc.lastYear = exchangeFirstYear, last
	}
	return tc, nil
}

// IsWeekend reports whether d falls on Saturday or Sunday.
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsHoliday reports whether the calendar date of d is a weekday market
// holiday. Weekends are not holidays.
func (tc *TradingCalendar) IsHoliday(d time.Time) bool {
	if tc == nil || IsWeekend(d) {
		return false
	}
	if _, ok := tc.holidays[d.Format(time.DateOnly)]; ok {
		return true
	}
	if tc.exchange != nil && d.Year() >= tc.firstYear && d.Year() <= tc.lastYear {
		loc := tc.loc
		if loc == nil {
			loc = ET
		}
		noon := time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, loc)
		return !tc.exchange.IsBusinessDay(noon)
	}
	return false
}

// IsTradingDay reports whether d is a weekday that is not a holiday.
func (tc *TradingCalendar) IsTradingDay(d time.Time) bool {
	return !IsWeekend(d) && !tc.IsHoliday(d)
}

// DateIn returns midnight in loc on the calendar date t has in its own
// location.
func DateIn(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// SameDate reports whether a and b carry the same calendar date, each read
// in its own location.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// LastMarketOpenDay returns midnight ET of the most recent trading day at or
// before now, with now read in ET.
func (tc *TradingCalendar) LastMarketOpenDay(now time.Time) time.Time {
	day := DateIn(now.In(ET), ET)
	for i := 0; i < maxWalkBack && !tc.IsTradingDay(day); i++ {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

// Session returns the regular session of day, 09:30 to 16:00:01 ET. The
// extra second keeps the closing bucket inside the range.
func Session(day time.Time) domain.DateRange {
	y, m, d := day.Date()
	return domain.DateRange{
		Start: time.Date(y, m, d, sessionOpenHour, sessionOpenMinute, 0, 0, ET),
		End:   time.Date(y, m, d, sessionCloseHour, 0, 1, 0, ET),
	}
}
