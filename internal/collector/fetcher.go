package collector

import "StockAnalyzer/internal/model"

// Fetcher defines the interface for fetching market and company data.
// Implementations normalize raw provider responses into the model shapes;
// the indicator engine never talks to a provider directly.
type Fetcher interface {
	FetchDailyBars(symbol string, days int) ([]model.OHLCV, error)
	FetchWeeklyBars(symbol string, weeks int) ([]model.OHLCV, error)
	FetchCurrentPrice(symbol string) (float64, error)
	FetchFundamentals(symbol string) (map[string]any, error)
	FetchHolders(symbol string) ([]model.InstitutionalHolder, error)
	FetchRecommendations(symbol string) ([]model.Recommendation, error)
	Name() string
}
