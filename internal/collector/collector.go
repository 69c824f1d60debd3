package collector

import (
	"fmt"
	"log"
	"time"

	"StockAnalyzer/internal/fundamental"
	"StockAnalyzer/internal/indicator"
	"StockAnalyzer/internal/model"
)

// maxRecommendations caps how many of the most recent analyst actions an
// analysis carries.
const maxRecommendations = 5

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price           float64
	DailyData       []model.OHLCV
	WeeklyData      []model.OHLCV
	Info            map[string]any
	Holders         []model.InstitutionalHolder
	Recommendations []model.Recommendation
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ string, days int) ([]model.OHLCV, error) {
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return generateMockBars(m.Price, days), nil
}

func (m *MockFetcher) FetchWeeklyBars(_ string, weeks int) ([]model.OHLCV, error) {
	if m.WeeklyData != nil {
		return m.WeeklyData, nil
	}
	return generateMockBars(m.Price, weeks), nil
}

func (m *MockFetcher) FetchCurrentPrice(_ string) (float64, error) {
	return m.Price, nil
}

func (m *MockFetcher) FetchFundamentals(_ string) (map[string]any, error) {
	if m.Info == nil {
		return nil, fmt.Errorf("mock: no fundamentals configured")
	}
	return m.Info, nil
}

func (m *MockFetcher) FetchHolders(_ string) ([]model.InstitutionalHolder, error) {
	if m.Holders == nil {
		return nil, fmt.Errorf("mock: no holders configured")
	}
	return m.Holders, nil
}

func (m *MockFetcher) FetchRecommendations(_ string) ([]model.Recommendation, error) {
	if m.Recommendations == nil {
		return nil, fmt.Errorf("mock: no recommendations configured")
	}
	return m.Recommendations, nil
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector orchestrates data fetching, series validation and indicator
// computation for one data source.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// CollectIndicators fetches price history and computes the technical
// snapshot for a symbol.
func (c *Collector) CollectIndicators(symbol string) (*model.MarketIndicators, error) {
	dailyBars, err := c.Fetcher.FetchDailyBars(symbol, 300)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}
	weeklyBars, err := c.Fetcher.FetchWeeklyBars(symbol, 60)
	if err != nil {
		return nil, fmt.Errorf("fetch weekly bars: %w", err)
	}
	currentPrice, err := c.Fetcher.FetchCurrentPrice(symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch current price: %w", err)
	}

	daily := &model.Series{Symbol: symbol, Bars: dailyBars}
	weekly := &model.Series{Symbol: symbol, Bars: weeklyBars}
	if err := indicator.ValidateSeries(daily); err != nil {
		return nil, fmt.Errorf("daily series: %w", err)
	}
	if err := indicator.ValidateSeries(weekly); err != nil {
		return nil, fmt.Errorf("weekly series: %w", err)
	}

	ind := &model.MarketIndicators{CurrentPrice: currentPrice}

	ind.MA20 = c.latest(daily, indicator.SMA{Window: 20}, currentPrice)
	ind.MA50 = c.latest(daily, indicator.SMA{Window: 50}, currentPrice)
	ind.MA200 = c.latest(daily, indicator.SMA{Window: 200}, currentPrice)
	ind.MA20w = c.latest(weekly, indicator.SMA{Window: 20}, currentPrice)
	ind.MA50w = c.latest(weekly, indicator.SMA{Window: 50}, currentPrice)
	ind.DailyRSI = c.latest(daily, indicator.RSI{Period: 14}, 50)
	ind.WeeklyRSI = c.latest(weekly, indicator.RSI{Period: 14}, 50)
	ind.BollUpper = c.latest(daily, indicator.Bollinger{Window: 20, Width: 2, Band: indicator.BandUpper}, currentPrice)
	ind.BollMiddle = c.latest(daily, indicator.Bollinger{Window: 20, Width: 2, Band: indicator.BandMiddle}, currentPrice)
	ind.BollLower = c.latest(daily, indicator.Bollinger{Window: 20, Width: 2, Band: indicator.BandLower}, currentPrice)

	// 52-week range over trading days (252 bars), 30-day range over 22 bars.
	if h, l, err := indicator.TrailingRange(daily, 252); err != nil {
		log.Printf("[WARN] 52-week range failed: %v", err)
		ind.High52w, ind.Low52w = currentPrice, currentPrice
	} else {
		ind.High52w, ind.Low52w = h, l
	}
	if h, l, err := indicator.TrailingRange(daily, 22); err != nil {
		log.Printf("[WARN] 30-day range failed: %v", err)
		ind.High30d, ind.Low30d = currentPrice, currentPrice
	} else {
		ind.High30d, ind.Low30d = h, l
	}
	if pos, err := indicator.RangePosition(currentPrice, ind.High52w, ind.Low52w); err != nil {
		log.Printf("[WARN] 52-week position failed: %v", err)
		ind.Position52w = 0.5
	} else {
		ind.Position52w = pos
	}

	return ind, nil
}

// latest computes one indicator over the series and returns its most recent
// value, or the fallback when the series is too short for the window.
func (c *Collector) latest(series *model.Series, spec indicator.Spec, fallback float64) float64 {
	res, err := indicator.Compute(series, spec)
	if err != nil {
		log.Printf("[WARN] %s failed: %v, using fallback", spec.Name(), err)
		return fallback
	}
	last, ok := res.Last()
	if !ok {
		return fallback
	}
	return last.Value
}

// Analyze produces the full analysis bundle for a symbol: technical
// snapshot, categorized fundamentals, institutional holders and the most
// recent analyst recommendations. Company data is best-effort: a provider
// that can't serve it degrades to a technicals-only analysis.
func (c *Collector) Analyze(symbol string) (*model.Analysis, error) {
	ind, err := c.CollectIndicators(symbol)
	if err != nil {
		return nil, err
	}

	analysis := &model.Analysis{
		Symbol:     symbol,
		Indicators: ind,
		FetchedAt:  time.Now(),
	}

	if info, err := c.Fetcher.FetchFundamentals(symbol); err != nil {
		log.Printf("[WARN] fundamentals for %s unavailable: %v", symbol, err)
	} else {
		analysis.Fundamentals = fundamental.Categorize(symbol, info)
	}

	if holders, err := c.Fetcher.FetchHolders(symbol); err != nil {
		log.Printf("[WARN] holders for %s unavailable: %v", symbol, err)
	} else {
		analysis.Holders = holders
	}

	if recs, err := c.Fetcher.FetchRecommendations(symbol); err != nil {
		log.Printf("[WARN] recommendations for %s unavailable: %v", symbol, err)
	} else {
		if len(recs) > maxRecommendations {
			recs = recs[len(recs)-maxRecommendations:]
		}
		analysis.Recommendations = recs
	}

	return analysis, nil
}
