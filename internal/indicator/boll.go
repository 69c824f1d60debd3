package indicator

import (
	"fmt"
	"math"

	"StockAnalyzer/internal/model"
)

// Band selects which Bollinger band a computation emits.
type Band int

const (
	BandMiddle Band = iota
	BandUpper
	BandLower
)

func (b Band) String() string {
	switch b {
	case BandMiddle:
		return "middle"
	case BandUpper:
		return "upper"
	case BandLower:
		return "lower"
	default:
		return "unknown"
	}
}

// Bollinger emits one band of the Bollinger channel: SMA middle band
// shifted by Width population standard deviations of the window.
// Warmup is Window-1, same as SMA.
type Bollinger struct {
	Window int
	Width  float64
	Band   Band
}

func (b Bollinger) Name() string {
	return fmt.Sprintf("BOLL(%d,%.1f)-%s", b.Window, b.Width, b.Band)
}

func (b Bollinger) warmup() int { return b.Window - 1 }

func (b Bollinger) validate(n int) error {
	if err := validateWindow(b.Window, n); err != nil {
		return err
	}
	if b.Width <= 0 {
		return fmt.Errorf("%w: band width %.2f must be positive", ErrInvalidParameter, b.Width)
	}
	if b.Band < BandMiddle || b.Band > BandLower {
		return fmt.Errorf("%w: unknown band %d", ErrInvalidParameter, int(b.Band))
	}
	return nil
}

func (b Bollinger) compute(bars []model.OHLCV) []float64 {
	out := make([]float64, 0, len(bars)-b.Window+1)
	for i := b.Window - 1; i < len(bars); i++ {
		window := bars[i-b.Window+1 : i+1]

		sum := 0.0
		for _, w := range window {
			sum += w.Close
		}
		mean := sum / float64(b.Window)

		variance := 0.0
		for _, w := range window {
			variance += (w.Close - mean) * (w.Close - mean)
		}
		std := math.Sqrt(variance / float64(b.Window))

		switch b.Band {
		case BandUpper:
			out = append(out, mean+b.Width*std)
		case BandLower:
			out = append(out, mean-b.Width*std)
		default:
			out = append(out, mean)
		}
	}
	return out
}
