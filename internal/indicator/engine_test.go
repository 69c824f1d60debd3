package indicator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/model"
)

var seriesStart = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// dailySeries builds a valid series with one bar per day.
func dailySeries(closes ...float64) *model.Series {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   seriesStart.AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000,
		}
	}
	return &model.Series{Symbol: "TEST", Bars: bars}
}

func TestComputeSMA_Example(t *testing.T) {
	s := dailySeries(10, 12, 14, 16)

	res, err := Compute(s, SMA{Window: 3})
	require.NoError(t, err)

	require.Equal(t, 2, res.Len())
	assert.Equal(t, s.Bars[2].Time, res.Points[0].Time)
	assert.Equal(t, 12.0, res.Points[0].Value) // (10+12+14)/3
	assert.Equal(t, s.Bars[3].Time, res.Points[1].Time)
	assert.Equal(t, 14.0, res.Points[1].Value) // (12+14+16)/3
}

func TestComputeSMA_LengthAndAlignment(t *testing.T) {
	closes := []float64{10, 11, 12, 13, 14, 15, 16, 17}
	s := dailySeries(closes...)

	for _, window := range []int{1, 2, 3, 5, 8} {
		res, err := Compute(s, SMA{Window: window})
		require.NoError(t, err, "window %d", window)
		assert.Equal(t, len(closes)-(window-1), res.Len(), "window %d", window)

		// Result timestamps are a suffix of the series timestamps.
		offset := len(s.Bars) - res.Len()
		for i, p := range res.Points {
			assert.Equal(t, s.Bars[offset+i].Time, p.Time)
		}
	}
}

func TestComputeSMA_FullWindow(t *testing.T) {
	s := dailySeries(10, 20, 30, 40)

	res, err := Compute(s, SMA{Window: 4})
	require.NoError(t, err)

	require.Equal(t, 1, res.Len())
	assert.Equal(t, 25.0, res.Points[0].Value)
	assert.Equal(t, s.Bars[3].Time, res.Points[0].Time)
}

func TestCompute_InvalidWindow(t *testing.T) {
	s := dailySeries(10, 11, 12)

	for _, window := range []int{0, -1, 4} {
		_, err := Compute(s, SMA{Window: window})
		assert.ErrorIs(t, err, ErrInvalidParameter, "window %d", window)
		_, err = Compute(s, EMA{Window: window})
		assert.ErrorIs(t, err, ErrInvalidParameter, "window %d", window)
	}
}

func TestCompute_InvalidSeries(t *testing.T) {
	valid := dailySeries(10, 11, 12)

	dup := dailySeries(10, 11, 12)
	dup.Bars[2].Time = dup.Bars[1].Time

	unordered := dailySeries(10, 11, 12)
	unordered.Bars[0].Time, unordered.Bars[2].Time = unordered.Bars[2].Time, unordered.Bars[0].Time

	badHigh := dailySeries(10, 11, 12)
	badHigh.Bars[1].High = badHigh.Bars[1].Low * 0.5

	badLow := dailySeries(10, 11, 12)
	badLow.Bars[1].Low = badLow.Bars[1].Close * 2

	negPrice := dailySeries(10, 11, 12)
	negPrice.Bars[0].Close = -1

	negVolume := dailySeries(10, 11, 12)
	negVolume.Bars[0].Volume = -5

	tests := []struct {
		name   string
		series *model.Series
	}{
		{"nil", nil},
		{"empty", &model.Series{Symbol: "TEST"}},
		{"duplicate timestamp", dup},
		{"unordered", unordered},
		{"high below low", badHigh},
		{"low above close", badLow},
		{"negative price", negPrice},
		{"negative volume", negVolume},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.series, SMA{Window: 2})
			assert.ErrorIs(t, err, ErrInvalidSeries)
		})
	}

	_, err := Compute(valid, SMA{Window: 2})
	assert.NoError(t, err)
}

func TestCompute_GapsNotInterpolated(t *testing.T) {
	closes := []float64{10, 12, 14, 16, 18}

	contiguous := dailySeries(closes...)

	// Same closes but with weekend-sized holes in the calendar.
	gapped := dailySeries(closes...)
	for i := range gapped.Bars {
		gapped.Bars[i].Time = seriesStart.AddDate(0, 0, i*3)
	}

	a, err := Compute(contiguous, SMA{Window: 3})
	require.NoError(t, err)
	b, err := Compute(gapped, SMA{Window: 3})
	require.NoError(t, err)

	require.Equal(t, a.Len(), b.Len())
	for i := range a.Points {
		assert.Equal(t, a.Points[i].Value, b.Points[i].Value,
			"window must cover the 3 most recent available bars, not 3 calendar days")
	}
}

func TestCompute_Idempotent(t *testing.T) {
	s := dailySeries(10, 12, 11, 13, 15, 14, 16)

	first, err := Compute(s, RSI{Period: 3})
	require.NoError(t, err)
	second, err := Compute(s, RSI{Period: 3})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompute_IndependentOfInputIdentity(t *testing.T) {
	s := dailySeries(10, 12, 11, 13, 15)

	clone := &model.Series{Symbol: s.Symbol, Bars: append([]model.OHLCV(nil), s.Bars...)}

	a, err := Compute(s, EMA{Window: 3})
	require.NoError(t, err)
	b, err := Compute(clone, EMA{Window: 3})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestComputeEMA_SeedAndRecursion(t *testing.T) {
	// Window 3: alpha = 0.5, seed = (1+2+3)/3 = 2, then 0.5*4+0.5*2 = 3,
	// then 0.5*5+0.5*3 = 4. All values exact in binary.
	s := dailySeries(1, 2, 3, 4, 5)

	res, err := Compute(s, EMA{Window: 3})
	require.NoError(t, err)

	require.Equal(t, 3, res.Len())
	assert.Equal(t, 2.0, res.Points[0].Value)
	assert.Equal(t, 3.0, res.Points[1].Value)
	assert.Equal(t, 4.0, res.Points[2].Value)
	assert.Equal(t, s.Bars[2].Time, res.Points[0].Time)
}

func TestComputeRSI(t *testing.T) {
	t.Run("all gains", func(t *testing.T) {
		res, err := Compute(dailySeries(10, 11, 12, 13, 14), RSI{Period: 3})
		require.NoError(t, err)
		require.Equal(t, 2, res.Len())
		for _, p := range res.Points {
			assert.Equal(t, 100.0, p.Value)
		}
	})

	t.Run("all losses", func(t *testing.T) {
		res, err := Compute(dailySeries(14, 13, 12, 11, 10), RSI{Period: 3})
		require.NoError(t, err)
		for _, p := range res.Points {
			assert.Equal(t, 0.0, p.Value)
		}
	})

	t.Run("wilder smoothing", func(t *testing.T) {
		// Period 2 over closes 10,12,11,13: initial avgGain=1, avgLoss=0.5
		// -> RSI 66.67; next change +2: avgGain=1.5, avgLoss=0.25 -> RSI 85.71.
		res, err := Compute(dailySeries(10, 12, 11, 13), RSI{Period: 2})
		require.NoError(t, err)
		require.Equal(t, 2, res.Len())
		assert.InDelta(t, 66.6667, res.Points[0].Value, 0.001)
		assert.InDelta(t, 85.7143, res.Points[1].Value, 0.001)
	})

	t.Run("insufficient data", func(t *testing.T) {
		_, err := Compute(dailySeries(10, 11, 12), RSI{Period: 3})
		assert.ErrorIs(t, err, ErrInvalidParameter)
	})

	t.Run("bad period", func(t *testing.T) {
		_, err := Compute(dailySeries(10, 11, 12), RSI{Period: 0})
		assert.ErrorIs(t, err, ErrInvalidParameter)
	})
}

func TestComputeBollinger(t *testing.T) {
	t.Run("flat series collapses bands", func(t *testing.T) {
		s := dailySeries(50, 50, 50, 50)
		for _, band := range []Band{BandUpper, BandMiddle, BandLower} {
			res, err := Compute(s, Bollinger{Window: 3, Width: 2, Band: band})
			require.NoError(t, err)
			for _, p := range res.Points {
				assert.Equal(t, 50.0, p.Value, "band %s", band)
			}
		}
	})

	t.Run("known deviation", func(t *testing.T) {
		// Window over 1,2,3: mean 2, population std sqrt(2/3).
		s := dailySeries(1, 2, 3)
		upper, err := Compute(s, Bollinger{Window: 3, Width: 1, Band: BandUpper})
		require.NoError(t, err)
		require.Equal(t, 1, upper.Len())
		assert.InDelta(t, 2.8164966, upper.Points[0].Value, 1e-6)

		lower, err := Compute(s, Bollinger{Window: 3, Width: 1, Band: BandLower})
		require.NoError(t, err)
		assert.InDelta(t, 1.1835034, lower.Points[0].Value, 1e-6)
	})

	t.Run("invalid params", func(t *testing.T) {
		s := dailySeries(1, 2, 3)
		_, err := Compute(s, Bollinger{Window: 3, Width: 0, Band: BandUpper})
		assert.ErrorIs(t, err, ErrInvalidParameter)
		_, err = Compute(s, Bollinger{Window: 3, Width: 2, Band: Band(9)})
		assert.ErrorIs(t, err, ErrInvalidParameter)
	})
}

func TestTrailingRange(t *testing.T) {
	s := dailySeries(10, 30, 20, 25)

	high, low, err := TrailingRange(s, 3)
	require.NoError(t, err)
	assert.InDelta(t, 30*1.01, high, 1e-9)
	assert.InDelta(t, 20*0.99, low, 1e-9)

	// count larger than the series scans everything available.
	high, low, err = TrailingRange(s, 252)
	require.NoError(t, err)
	assert.InDelta(t, 30*1.01, high, 1e-9)
	assert.InDelta(t, 10*0.99, low, 1e-9)

	_, _, err = TrailingRange(s, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, _, err = TrailingRange(&model.Series{}, 3)
	assert.ErrorIs(t, err, ErrInvalidSeries)
}

func TestRangePosition(t *testing.T) {
	pos, err := RangePosition(75, 100, 50)
	require.NoError(t, err)
	assert.Equal(t, 0.5, pos)

	pos, err = RangePosition(200, 100, 50)
	require.NoError(t, err)
	assert.Equal(t, 1.0, pos)

	pos, err = RangePosition(10, 100, 50)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pos)

	pos, err = RangePosition(70, 70, 70)
	require.NoError(t, err)
	assert.Equal(t, 0.5, pos)

	_, err = RangePosition(70, 50, 100)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
