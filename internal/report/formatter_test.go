package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"StockAnalyzer/internal/model"
)

func sampleAnalysis() (*model.Analysis, *model.Outlook) {
	a := &model.Analysis{
		Symbol: "AAPL",
		Indicators: &model.MarketIndicators{
			CurrentPrice: 189.5,
			MA20:         185.1,
			MA50:         181.7,
			MA200:        175.2,
			MA20w:        180.0,
			MA50w:        172.4,
			DailyRSI:     61,
			WeeklyRSI:    58,
			BollUpper:    195.3,
			BollMiddle:   185.1,
			BollLower:    174.9,
			High52w:      199.6,
			Low52w:       140.3,
			Position52w:  0.83,
		},
		Fundamentals: &model.FundamentalReport{
			Symbol: "AAPL",
			Categories: map[string]map[string]any{
				model.CategoryPrice:     {"currentPrice": 189.5},
				model.CategoryValuation: {"marketCap": int64(2900000000000)},
				model.CategoryCompany:   {"sector": "Technology", "longName": "Apple Inc."},
			},
		},
		Holders: []model.InstitutionalHolder{
			{Holder: "Vanguard Group", Shares: 1300000000, PctHeld: 0.084,
				DateReported: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)},
		},
		Recommendations: []model.Recommendation{
			{Date: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
				Firm: "Morgan Stanley", ToGrade: "Overweight", FromGrade: "Equal-Weight"},
		},
		FetchedAt: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	out := &model.Outlook{
		Readings: []model.Reading{
			{Name: "MA200 deviation", Score: -0.5, Weight: 0.35, Weighted: -0.175, Commentary: "+8.2% vs MA200"},
		},
		TotalScore: -0.175,
		Rating:     model.RatingHold,
	}
	return a, out
}

func TestFormatAnalysis_AllSections(t *testing.T) {
	a, out := sampleAnalysis()
	text := FormatAnalysis(a, out)

	for _, want := range []string{
		"AAPL | 2024-06-01",
		"=== TECHNICALS ===",
		"Price: 189.50",
		"=== OUTLOOK ===",
		"HOLD",
		"=== FUNDAMENTALS ===",
		"** Price **",
		"currentPrice: 189.5",
		"** Company Info **",
		"=== INSTITUTIONAL HOLDERS ===",
		"Vanguard Group",
		"=== RECOMMENDATIONS ===",
		"Morgan Stanley",
		"(from Equal-Weight)",
	} {
		assert.Contains(t, text, want)
	}
}

func TestFormatAnalysis_MissingSections(t *testing.T) {
	a, out := sampleAnalysis()
	a.Fundamentals = nil
	a.Holders = nil
	a.Recommendations = nil

	text := FormatAnalysis(a, out)
	assert.Equal(t, 3, strings.Count(text, "No data available"))
}

func TestFormatAnalysis_Deterministic(t *testing.T) {
	a, out := sampleAnalysis()
	assert.Equal(t, FormatAnalysis(a, out), FormatAnalysis(a, out))
}

func TestFormatAnalysis_Warning(t *testing.T) {
	a, out := sampleAnalysis()
	out.Warning = "RSI above 85: momentum stretched, pullback risk elevated"
	assert.Contains(t, FormatAnalysis(a, out), "! RSI above 85")
}
