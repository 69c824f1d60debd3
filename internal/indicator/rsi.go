package indicator

import (
	"fmt"

	"StockAnalyzer/internal/model"
)

// RSI is the Wilder-smoothed relative strength index. Warmup is Period:
// the first value needs Period+1 bars (Period close-to-close changes).
type RSI struct {
	Period int
}

func (r RSI) Name() string { return fmt.Sprintf("RSI(%d)", r.Period) }

func (r RSI) warmup() int { return r.Period }

func (r RSI) validate(n int) error {
	if r.Period < 1 {
		return fmt.Errorf("%w: period %d must be >= 1", ErrInvalidParameter, r.Period)
	}
	if r.Period+1 > n {
		return fmt.Errorf("%w: period %d needs %d observations, series has %d",
			ErrInvalidParameter, r.Period, r.Period+1, n)
	}
	return nil
}

func (r RSI) compute(bars []model.OHLCV) []float64 {
	out := make([]float64, 0, len(bars)-r.Period)

	// Initial average gain/loss over the first Period changes.
	var avgGain, avgLoss float64
	for i := 1; i <= r.Period; i++ {
		change := bars[i].Close - bars[i-1].Close
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change // make positive
		}
	}
	avgGain /= float64(r.Period)
	avgLoss /= float64(r.Period)
	out = append(out, rsiValue(avgGain, avgLoss))

	// Wilder smoothing for remaining bars.
	for i := r.Period + 1; i < len(bars); i++ {
		change := bars[i].Close - bars[i-1].Close
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(r.Period-1) + gain) / float64(r.Period)
		avgLoss = (avgLoss*float64(r.Period-1) + loss) / float64(r.Period)
		out = append(out, rsiValue(avgGain, avgLoss))
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
