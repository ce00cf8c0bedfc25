package tradier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"stonks/internal/domain"
	"stonks/internal/errs"
)

// seriesOffset is appended to Tradier's zone-less timestamps.
const seriesOffset = "-05:00"

// oneOrMany decodes a JSON array, or a single object as a one-element
// slice. Tradier collapses single-element arrays to objects.
type oneOrMany[T any] []T

func (m *oneOrMany[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*m = nil
		return nil
	case len(b) > 0 && b[0] == '[':
		var many []T
		if err := json.Unmarshal(b, &many); err != nil {
			return err
		}
		*m = many
		return nil
	default:
		var one T
		if err := json.Unmarshal(b, &one); err != nil {
			return err
		}
		*m = []T{one}
		return nil
	}
}

type quotesEnvelope struct {
	Quotes *struct {
		Quote oneOrMany[domain.Quote] `json:"quote"`
	} `json:"quotes"`
}

// DecodeQuotes decodes a /markets/quotes response body.
func DecodeQuotes(body []byte) ([]domain.Quote, error) {
	var env quotesEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errs.Deserialization(err)
	}
	if env.Quotes == nil {
		return nil, errs.Deserialization(errors.New(`missing "quotes" object`))
	}
	quotes := []domain.Quote(env.Quotes.Quote)
	if quotes == nil {
		quotes = []domain.Quote{}
	}
	return quotes, nil
}

type wirePoint struct {
	Time      string  `json:"time"`
	Timestamp uint32  `json:"timestamp"`
	Price     float64 `json:"price"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	VWAP      float64 `json:"vwap"`
	Volume    uint32  `json:"volume"`
}

type seriesEnvelope struct {
	Series *struct {
		Data oneOrMany[wirePoint] `json:"data"`
	} `json:"series"`
}

// DecodeSeries decodes a /markets/timesales response body.
func DecodeSeries(body []byte) (domain.TimeSeries, error) {
	var env seriesEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errs.Deserialization(err)
	}
	if env.Series == nil {
		return nil, errs.Deserialization(errors.New(`missing "series" object`))
	}

	series := make(domain.TimeSeries, 0, len(env.Series.Data))
	for _, p := range env.Series.Data {
		ts, err := time.Parse(time.RFC3339, p.Time+seriesOffset)
		if err != nil {
			return nil, errs.Deserialization(fmt.Errorf("point time %q: %w", p.Time, err))
		}
		series = append(series, domain.TimePoint{
			Time:      ts,
			Timestamp: p.Timestamp,
			Price:     p.Price,
			High:      p.High,
			Low:       p.Low,
			Close:     p.Close,
			VWAP:      p.VWAP,
			Volume:    p.Volume,
		})
	}
	return series, nil
}
