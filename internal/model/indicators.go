package model

import "time"

// IndicatorPoint is a single indicator value aligned to a bar timestamp.
type IndicatorPoint struct {
	Time  time.Time
	Value float64
}

// IndicatorSeries is the output of one indicator computation. Its timestamps
// are a suffix of the source series' timestamps: the leading warmup bars emit
// no value.
type IndicatorSeries struct {
	Name   string
	Points []IndicatorPoint
}

// Len returns the number of points in the result.
func (r *IndicatorSeries) Len() int { return len(r.Points) }

// Last returns the most recent point.
func (r *IndicatorSeries) Last() (IndicatorPoint, bool) {
	if len(r.Points) == 0 {
		return IndicatorPoint{}, false
	}
	return r.Points[len(r.Points)-1], true
}

// MarketIndicators is the latest-value snapshot the collector assembles for
// one symbol.
type MarketIndicators struct {
	CurrentPrice float64
	MA20         float64
	MA50         float64
	MA200        float64
	MA20w        float64
	MA50w        float64
	DailyRSI     float64
	WeeklyRSI    float64
	BollUpper    float64
	BollMiddle   float64
	BollLower    float64
	High52w      float64
	Low52w       float64
	High30d      float64
	Low30d       float64
	Position52w  float64 // 0.0 ~ 1.0
}
