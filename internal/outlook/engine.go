package outlook

import "StockAnalyzer/internal/model"

// ratingBands maps score thresholds to ratings, highest first.
var ratingBands = []struct {
	MinScore float64
	Rating   model.Rating
}{
	{1.2, model.RatingStrongBuy},
	{0.5, model.RatingBuy},
	{-0.5, model.RatingHold},
	{-1.2, model.RatingReduce},
}

func mapRating(totalScore float64) model.Rating {
	for _, b := range ratingBands {
		if totalScore >= b.MinScore {
			return b.Rating
		}
	}
	return model.RatingAvoid
}

// Summarize derives the technical outlook from a market snapshot.
func Summarize(ind *model.MarketIndicators) *model.Outlook {
	f1 := scoreMA200Deviation(ind)
	f2 := scoreWeeklyRSI(ind)
	f3 := scoreDailyRSI(ind)
	f5 := scoreTrend(ind)

	// The 52-week position factor is non-linear: at a fresh high it only
	// turns maximally negative when the other factors agree.
	otherFactorsAvg := (f1.Score + f2.Score + f3.Score + f5.Score) / 4.0
	f4 := score52WeekPosition(ind, otherFactorsAvg)

	readings := []model.Reading{f1, f2, f3, f4, f5}

	totalScore := f1.Weighted + f2.Weighted + f3.Weighted + f4.Weighted + f5.Weighted

	out := &model.Outlook{
		Readings:   readings,
		TotalScore: totalScore,
		Rating:     mapRating(totalScore),
	}

	if ind.WeeklyRSI > 85 || ind.DailyRSI > 85 {
		out.Warning = "RSI above 85: momentum stretched, pullback risk elevated"
	}

	return out
}
