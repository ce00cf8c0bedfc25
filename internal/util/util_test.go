package util

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry(t *testing.T) {
	attempts := 0
	targetAttempts := 3

	err := Retry(context.Background(), 5, 0, func() error {
		attempts++
		if attempts < targetAttempts {
			return errors.New("transient error")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Retry returned unexpected error: %v", err)
	}
	if attempts != targetAttempts {
		t.Errorf("Retry called fn %d times, want %d", attempts, targetAttempts)
	}
}

func TestRetryAllFail(t *testing.T) {
	attempts := 0
	maxAttempts := 3

	err := Retry(context.Background(), maxAttempts, 0, func() error {
		attempts++
		return errors.New("persistent error")
	})

	if err == nil {
		t.Fatal("Retry should return error when all attempts fail")
	}
	if attempts != maxAttempts {
		t.Errorf("Retry called fn %d times, want %d", attempts, maxAttempts)
	}
}

func TestRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := Retry(ctx, 3, time.Hour, func() error {
		attempts++
		return errors.New("fail")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry error = %v, want context.Canceled", err)
	}
	if attempts != 1 {
		t.Errorf("Retry called fn %d times, want 1", attempts)
	}
}

func TestRateLimiterBurst(t *testing.T) {
	rl := NewRateLimiter(60, 3)
	if rl == nil {
		t.Fatal("NewRateLimiter returned nil")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := rl.Wait(ctx); err != nil {
			t.Fatalf("Wait #%d: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("burst of 3 took %v, want immediate", elapsed)
	}

	// The bucket is empty now and refills at one token per second.
	short, cancelShort := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelShort()
	if err := rl.Wait(short); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait on empty bucket = %v, want deadline exceeded", err)
	}
}

func TestRateLimiterNil(t *testing.T) {
	var rl *RateLimiter
	if err := rl.Wait(context.Background()); err != nil {
		t.Errorf("nil RateLimiter Wait = %v, want nil", err)
	}
	if NewRateLimiter(0, 1) != nil {
		t.Error("NewRateLimiter(0) should be unlimited (nil)")
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, ET)
}

func TestTradingCalendarHolidays(t *testing.T) {
	cal, err := NewTradingCalendar("", []string{"2020-07-03"})
	if err != nil {
		t.Fatalf("NewTradingCalendar: %v", err)
	}

	if !cal.IsHoliday(date(2020, 7, 3)) {
		t.Error("2020-07-03 should be a holiday")
	}
	if cal.IsHoliday(date(2020, 7, 2)) {
		t.Error("2020-07-02 should not be a holiday")
	}
	// 2020-07-04 is a Saturday.
	if cal.IsHoliday(date(2020, 7, 4)) {
		t.Error("weekends are not holidays")
	}
	if cal.IsTradingDay(date(2020, 7, 4)) {
		t.Error("Saturday should not be a trading day")
	}

	var none *TradingCalendar
	if none.IsHoliday(date(2020, 7, 3)) {
		t.Error("nil calendar should know no holidays")
	}

	if _, err := NewTradingCalendar("", []string{"07/03/2020"}); err == nil {
		t.Error("NewTradingCalendar should reject malformed holiday dates")
	}
}

type fakeExchange map[string]bool

func (f fakeExchange) IsBusinessDay(t time.Time) bool {
	closed := f[t.Format(time.DateOnly)]
	return !closed
}

func TestTradingCalendarExchange(t *testing.T) {
	cal := &TradingCalendar{
		holidays:  map[string]struct{}{},
		exchange:  fakeExchange{"2024-12-25": true},
		firstYear: 2000,
		lastYear:  2030,
	}
	if !cal.IsHoliday(date(2024, 12, 25)) {
		t.Error("exchange closure should count as a holiday")
	}
	if cal.IsHoliday(date(2024, 12, 24)) {
		t.Error("2024-12-24 should be open")
	}
}

func TestTradingCalendarXNYS(t *testing.T) {
	cal, err := NewTradingCalendar("xnys", nil)
	if err != nil {
		t.Fatal(err)
	}
	closed := []time.Time{
		date(2024, 12, 25),
		date(2024, 7, 4), // daylight saving time in New York
		date(2024, 1, 1),
	}
	for _, d := range closed {
		if !cal.IsHoliday(d) {
			t.Errorf("IsHoliday(%s) = false, want true", d.Format(time.DateOnly))
		}
	}
	for _, d := range []time.Time{date(2024, 12, 24), date(2024, 7, 5)} {
		if !cal.IsTradingDay(d) {
			t.Errorf("IsTradingDay(%s) = false, want true", d.Format(time.DateOnly))
		}
	}

	// Years the exchange calendar does not cover only use the table.
	if cal.IsHoliday(date(1990, 12, 25)) {
		t.Error("1990-12-25 is outside the exchange calendar and not in the table")
	}
	if _, err := NewTradingCalendar("nope", nil); err == nil {
		t.Error("NewTradingCalendar should reject an unknown MIC")
	}
}

func TestLastMarketOpenDay(t *testing.T) {
	cal, err := NewTradingCalendar("", []string{"2020-07-03"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"weekday", time.Date(2020, 7, 2, 14, 0, 0, 0, ET), date(2020, 7, 2)},
		{"holiday friday", time.Date(2020, 7, 3, 10, 0, 0, 0, ET), date(2020, 7, 2)},
		{"saturday after holiday", time.Date(2020, 7, 4, 10, 0, 0, 0, ET), date(2020, 7, 2)},
		{"sunday", time.Date(2024, 3, 10, 10, 0, 0, 0, ET), date(2024, 3, 8)},
		{"monday", time.Date(2024, 3, 11, 0, 0, 0, 0, ET), date(2024, 3, 11)},
		// 03:00 UTC on Monday is still Sunday in ET.
		{"utc monday early", time.Date(2024, 3, 11, 3, 0, 0, 0, time.UTC), date(2024, 3, 8)},
	}
	for _, tt := range tests {
		got := cal.LastMarketOpenDay(tt.now)
		if !got.Equal(tt.want) {
			t.Errorf("%s: LastMarketOpenDay(%v) = %v, want %v", tt.name, tt.now, got, tt.want)
		}
	}
}

func TestSession(t *testing.T) {
	r := Session(date(2020, 7, 2))
	if got := r.Start.Format("2006-01-02 15:04:05 -07:00"); got != "2020-07-02 09:30:00 -05:00" {
		t.Errorf("Session start = %s", got)
	}
	if got := r.End.Format("2006-01-02 15:04:05 -07:00"); got != "2020-07-02 16:00:01 -05:00" {
		t.Errorf("Session end = %s", got)
	}
}

func TestSameDate(t *testing.T) {
	a := time.Date(2024, 3, 8, 23, 0, 0, 0, time.UTC)
	b := date(2024, 3, 8)
	if !SameDate(a, b) {
		t.Error("SameDate should compare dates in each value's own location")
	}
	if SameDate(a, date(2024, 3, 9)) {
		t.Error("different dates reported equal")
	}
}
