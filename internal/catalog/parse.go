// Package catalog loads the exchange listing files (securities and options)
// from a local directory, refreshing them over FTP when missing or stale.
package catalog

import (
	"strconv"
	"strings"
	"time"

	"stonks/internal/util"
)

const trailerPrefix = "File Creation Time: "

// Format describes one catalog file: its name on disk and on the FTP server,
// and how to parse a single record line.
type Format[T any] struct {
	Filename string
	Parse    func(line string) (T, error)
}

// File is a parsed catalog file.
type File[T any] struct {
	Records []T
	Created time.Time // midnight ET of the trailer's creation date
	Dropped int       // record lines that failed to parse
}

// ParseFile parses the full text of a catalog file. The first line is a
// header and the last non-empty line is the creation-time trailer; every
// other line is parsed with f.Parse and dropped on error. now supplies the
// creation date when the trailer is missing or unreadable.
func ParseFile[T any](data string, f Format[T], now time.Time) File[T] {
	lines := strings.Split(data, "\n")
	if len(lines) < 3 {
		return File[T]{Created: today(now)}
	}

	lines = lines[1:]
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return File[T]{Created: today(now)}
	}
	trailer := lines[len(lines)-1]
	lines = lines[:len(lines)-1]

	out := File[T]{
		Records: make([]T, 0, len(lines)),
		Created: ParseCreationDate(trailer, now),
	}
	for _, line := range lines {
		rec, err := f.Parse(line)
		if err != nil {
			out.Dropped++
			continue
		}
		out.Records = append(out.Records, rec)
	}
	return out
}

// ParseCreationDate extracts the MMDDYYYY date from a trailer line of the
// form "File Creation Time: MMDDYYYY...|". It falls back to today's date
// when the line does not match.
func ParseCreationDate(trailer string, now time.Time) time.Time {
	if len(trailer) < len(trailerPrefix) {
		return today(now)
	}
	rest := trailer[len(trailerPrefix):]
	pipe := strings.IndexByte(rest, '|')
	if pipe < 8 {
		return today(now)
	}
	stamp := rest[:pipe]
	if !allDigits(stamp[:8]) {
		return today(now)
	}

	month, err := strconv.Atoi(stamp[0:2])
	if err != nil || month < 1 || month > 12 {
		return today(now)
	}
	day, err := strconv.Atoi(stamp[2:4])
	if err != nil || day < 1 {
		return today(now)
	}
	year, err := strconv.Atoi(stamp[4:8])
	if err != nil {
		return today(now)
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, util.ET)
	if d.Day() != day {
		// Day overflowed the month, e.g. 02302020.
		return today(now)
	}
	return d
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// today returns the local calendar date of now as midnight ET.
func today(now time.Time) time.Time {
	return util.DateIn(now, util.ET)
}

// IsStale reports whether a file created on created must be refreshed on the
// local date of now. Only trading days can be stale.
func IsStale(created, now time.Time, cal *util.TradingCalendar) bool {
	local := today(now)
	if !cal.IsTradingDay(local) {
		return false
	}
	return !util.SameDate(created, local)
}
