package indicator

import (
	"fmt"

	"StockAnalyzer/internal/model"
)

// SMA is the arithmetic mean of the trailing Window closing prices.
// Warmup is Window-1: the first value needs Window bars.
type SMA struct {
	Window int
}

func (s SMA) Name() string { return fmt.Sprintf("SMA(%d)", s.Window) }

func (s SMA) warmup() int { return s.Window - 1 }

func (s SMA) validate(n int) error { return validateWindow(s.Window, n) }

func (s SMA) compute(bars []model.OHLCV) []float64 {
	out := make([]float64, 0, len(bars)-s.Window+1)
	sum := 0.0
	for i, b := range bars {
		sum += b.Close
		if i >= s.Window {
			sum -= bars[i-s.Window].Close
		}
		if i >= s.Window-1 {
			out = append(out, sum/float64(s.Window))
		}
	}
	return out
}

// EMA is the exponential moving average with alpha = 2/(Window+1), applied
// recursively. The first value is seeded with the simple average of the
// first Window closes; the seed choice is part of the contract because it
// shapes every early value.
type EMA struct {
	Window int
}

func (e EMA) Name() string { return fmt.Sprintf("EMA(%d)", e.Window) }

func (e EMA) warmup() int { return e.Window - 1 }

func (e EMA) validate(n int) error { return validateWindow(e.Window, n) }

func (e EMA) compute(bars []model.OHLCV) []float64 {
	out := make([]float64, 0, len(bars)-e.Window+1)

	seed := 0.0
	for i := 0; i < e.Window; i++ {
		seed += bars[i].Close
	}
	seed /= float64(e.Window)
	out = append(out, seed)

	alpha := 2.0 / float64(e.Window+1)
	ema := seed
	for i := e.Window; i < len(bars); i++ {
		ema = alpha*bars[i].Close + (1-alpha)*ema
		out = append(out, ema)
	}
	return out
}
