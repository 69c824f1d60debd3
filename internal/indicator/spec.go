package indicator

import (
	"errors"
	"fmt"

	"StockAnalyzer/internal/model"
)

var (
	// ErrInvalidSeries reports malformed or unordered input data.
	ErrInvalidSeries = errors.New("invalid series")
	// ErrInvalidParameter reports indicator parameters out of valid range.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Spec identifies an indicator kind and its parameters. The kind set is
// closed: the unexported methods keep implementations inside this package,
// so a switch over kinds can be exhaustive.
type Spec interface {
	// Name is a short identifier such as "SMA(20)".
	Name() string
	// warmup is the number of leading bars consumed before the first value.
	warmup() int
	// validate checks parameters against the series length.
	validate(n int) error
	// compute emits len(bars)-warmup() values, one per post-warmup bar.
	// Input is already validated.
	compute(bars []model.OHLCV) []float64
}

// Compute runs one indicator over a series. It validates everything up
// front and performs no partial work on invalid input. The result timestamps
// are a suffix of the series timestamps; the first warmup() bars emit no
// value. Pure function: identical input yields identical output.
func Compute(series *model.Series, spec Spec) (*model.IndicatorSeries, error) {
	if err := ValidateSeries(series); err != nil {
		return nil, err
	}
	if err := spec.validate(series.Len()); err != nil {
		return nil, err
	}

	values := spec.compute(series.Bars)
	w := spec.warmup()
	points := make([]model.IndicatorPoint, len(values))
	for i, v := range values {
		points[i] = model.IndicatorPoint{Time: series.Bars[w+i].Time, Value: v}
	}
	return &model.IndicatorSeries{Name: spec.Name(), Points: points}, nil
}

// ValidateSeries checks the series contract: non-empty, strictly ascending
// timestamps, positive prices, high/low bracketing open and close, and
// non-negative volume. Gaps between timestamps are fine; windows always run
// over available bars, never calendar days.
func ValidateSeries(s *model.Series) error {
	if s == nil || len(s.Bars) == 0 {
		return fmt.Errorf("%w: empty series", ErrInvalidSeries)
	}
	for i, b := range s.Bars {
		if i > 0 && !s.Bars[i-1].Time.Before(b.Time) {
			return fmt.Errorf("%w: timestamps not strictly ascending at index %d", ErrInvalidSeries, i)
		}
		if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
			return fmt.Errorf("%w: non-positive price at index %d", ErrInvalidSeries, i)
		}
		if b.High < b.Open || b.High < b.Close || b.High < b.Low {
			return fmt.Errorf("%w: high below open/close/low at index %d", ErrInvalidSeries, i)
		}
		if b.Low > b.Open || b.Low > b.Close {
			return fmt.Errorf("%w: low above open/close at index %d", ErrInvalidSeries, i)
		}
		if b.Volume < 0 {
			return fmt.Errorf("%w: negative volume at index %d", ErrInvalidSeries, i)
		}
	}
	return nil
}

func validateWindow(window, n int) error {
	if window < 1 {
		return fmt.Errorf("%w: window %d must be >= 1", ErrInvalidParameter, window)
	}
	if window > n {
		return fmt.Errorf("%w: window %d exceeds series length %d", ErrInvalidParameter, window, n)
	}
	return nil
}
