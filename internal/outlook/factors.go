package outlook

import (
	"fmt"
	"math"

	"StockAnalyzer/internal/model"
)

// scoreMA200Deviation scores how far the current price deviates from MA200.
// Weight: 0.35
func scoreMA200Deviation(ind *model.MarketIndicators) model.Reading {
	if ind.MA200 == 0 {
		return model.Reading{Name: "MA200 deviation", Score: 0, Weight: 0.35, Weighted: 0, Commentary: "MA200 unavailable"}
	}
	deviation := (ind.CurrentPrice - ind.MA200) / ind.MA200 * 100 // percentage

	var score float64
	switch {
	case deviation <= -20:
		score = 2.0
	case deviation <= -10:
		score = 1.5
	case deviation <= -5:
		score = 1.0
	case deviation <= 0:
		score = 0.5
	case deviation <= 5:
		score = 0
	case deviation <= 10:
		score = -0.5
	case deviation <= 15:
		score = -1.0
	case deviation <= 20:
		score = -1.5
	default:
		score = -2.0
	}

	return model.Reading{
		Name:       "MA200 deviation",
		Score:      score,
		Weight:     0.35,
		Weighted:   score * 0.35,
		Commentary: fmt.Sprintf("%+.1f%% vs MA200", deviation),
	}
}

// rsiScore maps an RSI(14) reading onto the -2..+2 scale.
func rsiScore(rsi float64) float64 {
	switch {
	case rsi <= 25:
		return 2.0
	case rsi <= 30:
		return 1.5
	case rsi <= 40:
		return 1.0
	case rsi <= 45:
		return 0.5
	case rsi <= 55:
		return 0
	case rsi <= 60:
		return -0.5
	case rsi <= 70:
		return -1.0
	case rsi <= 80:
		return -1.5
	default:
		return -2.0
	}
}

// scoreWeeklyRSI scores the weekly RSI(14).
// Weight: 0.25
func scoreWeeklyRSI(ind *model.MarketIndicators) model.Reading {
	score := rsiScore(ind.WeeklyRSI)
	return model.Reading{
		Name:       "weekly RSI",
		Score:      score,
		Weight:     0.25,
		Weighted:   score * 0.25,
		Commentary: fmt.Sprintf("RSI=%.0f", ind.WeeklyRSI),
	}
}

// scoreDailyRSI scores the daily RSI(14).
// Weight: 0.15
func scoreDailyRSI(ind *model.MarketIndicators) model.Reading {
	score := rsiScore(ind.DailyRSI)
	return model.Reading{
		Name:       "daily RSI",
		Score:      score,
		Weight:     0.15,
		Weighted:   score * 0.15,
		Commentary: fmt.Sprintf("RSI=%.0f", ind.DailyRSI),
	}
}

// score52WeekPosition scores where the price sits in the 52-week range.
// Weight: 0.10
// Above 95% the score only drops to -2 when the other factors average below
// -1; otherwise it caps at -1, so a fresh high alone doesn't read as a top.
func score52WeekPosition(ind *model.MarketIndicators, otherFactorsAvg float64) model.Reading {
	pos := ind.Position52w * 100 // percentage

	var score float64
	switch {
	case pos <= 10:
		score = 2.0
	case pos <= 20:
		score = 1.5
	case pos <= 30:
		score = 1.0
	case pos <= 40:
		score = 0.5
	case pos <= 60:
		score = 0
	case pos <= 70:
		score = -0.5
	case pos <= 80:
		score = -1.0
	case pos <= 95:
		score = -1.5
	default:
		if otherFactorsAvg < -1 {
			score = -2.0
		} else {
			score = -1.0
		}
	}

	return model.Reading{
		Name:       "52-week position",
		Score:      score,
		Weight:     0.10,
		Weighted:   score * 0.10,
		Commentary: fmt.Sprintf("at %.0f%% of range", pos),
	}
}

// scoreTrend scores moving-average alignment and 30-day extremes.
// Weight: 0.15
// Bull alignment: price > MA20w > MA50w. Bear alignment: price < MA20w < MA50w.
func scoreTrend(ind *model.MarketIndicators) model.Reading {
	bullish := ind.CurrentPrice > ind.MA20w && ind.MA20w > ind.MA50w
	bearish := ind.CurrentPrice < ind.MA20w && ind.MA20w < ind.MA50w

	near30dHigh := math.Abs(ind.CurrentPrice-ind.High30d)/ind.High30d < 0.01
	near30dLow := math.Abs(ind.CurrentPrice-ind.Low30d)/ind.Low30d < 0.01

	var score float64
	var commentary string

	switch {
	case bullish && near30dHigh:
		score = 1.5
		commentary = "bull alignment, at 30-day high"
	case bullish:
		score = 1.0
		commentary = "bull alignment"
	case bearish && near30dLow:
		score = -1.0
		commentary = "bear alignment, at 30-day low"
	case bearish:
		score = -0.5
		commentary = "bear alignment"
	default:
		score = 0
		commentary = "range-bound"
	}

	return model.Reading{
		Name:       "trend",
		Score:      score,
		Weight:     0.15,
		Weighted:   score * 0.15,
		Commentary: commentary,
	}
}
