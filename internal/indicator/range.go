package indicator

import (
	"fmt"
	"math"

	"StockAnalyzer/internal/model"
)

// TrailingRange scans the most recent count bars and returns the high and
// low. When the series is shorter than count it uses all available bars;
// the range is over available observations, not calendar days.
func TrailingRange(series *model.Series, count int) (high, low float64, err error) {
	if err := ValidateSeries(series); err != nil {
		return 0, 0, err
	}
	if count < 1 {
		return 0, 0, fmt.Errorf("%w: count %d must be >= 1", ErrInvalidParameter, count)
	}
	n := series.Len()
	start := n - count
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		if series.Bars[i].High > high {
			high = series.Bars[i].High
		}
		if series.Bars[i].Low < low {
			low = series.Bars[i].Low
		}
	}
	return high, low, nil
}

// RangePosition returns where a price sits within [low, high] as 0.0~1.0,
// clamped at the edges. A degenerate range yields 0.5.
func RangePosition(price, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, fmt.Errorf("%w: high %.2f below low %.2f", ErrInvalidParameter, high, low)
	}
	pos := (price - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
