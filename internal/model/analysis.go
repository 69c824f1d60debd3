package model

import "time"

// Analysis bundles everything the collector produced for one symbol.
// Fundamentals, Holders and Recommendations may be nil when the data source
// doesn't provide them.
type Analysis struct {
	Symbol          string
	Indicators      *MarketIndicators
	Fundamentals    *FundamentalReport
	Holders         []InstitutionalHolder
	Recommendations []Recommendation
	FetchedAt       time.Time
}
