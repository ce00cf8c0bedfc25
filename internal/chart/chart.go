// Package chart turns an intraday series into plot-ready values.
package chart

import "stonks/internal/domain"

// TimeMarkers label the x axis of an intraday session chart.
var TimeMarkers = []string{"9:30", "11:00", "1:00", "2:30", "4:00"}

// Point is one plotted column.
type Point struct {
	X int
	Y float64
}

// Downsample resamples series to exactly width columns by taking, for
// column i, the VWAP of point floor(i/width*len(series)). It returns nil if
// series is empty or width is not positive.
func Downsample(series domain.TimeSeries, width int) []Point {
	n := len(series)
	if n == 0 || width <= 0 {
		return nil
	}
	out := make([]Point, width)
	for i := 0; i < width; i++ {
		idx := i * n / width
		out[i] = Point{X: i, Y: series[idx].VWAP}
	}
	return out
}

// Values returns the Y of each point.
func Values(points []Point) []float64 {
	ys := make([]float64, len(points))
	for i, p := range points {
		ys[i] = p.Y
	}
	return ys
}

// MinMax returns the smallest and largest VWAP in series. The series must
// not be empty.
func MinMax(series domain.TimeSeries) (lo, hi float64) {
	lo, hi = series[0].VWAP, series[0].VWAP
	for _, p := range series[1:] {
		if p.VWAP < lo {
			lo = p.VWAP
		}
		if p.VWAP > hi {
			hi = p.VWAP
		}
	}
	return lo, hi
}

// WentUp reports whether the last VWAP is at least the first. The series
// must not be empty.
func WentUp(series domain.TimeSeries) bool {
	return series[0].VWAP <= series[len(series)-1].VWAP
}
