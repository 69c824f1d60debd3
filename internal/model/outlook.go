package model

// Rating is the qualitative stance derived from the weighted factor score.
type Rating string

const (
	RatingStrongBuy Rating = "STRONG_BUY"
	RatingBuy       Rating = "BUY"
	RatingHold      Rating = "HOLD"
	RatingReduce    Rating = "REDUCE"
	RatingAvoid     Rating = "AVOID"
)

// Reading is a single factor's scoring result. Scores run -2 (stretched,
// unattractive entry) to +2 (deeply oversold, attractive entry).
type Reading struct {
	Name       string
	Score      float64
	Weight     float64
	Weighted   float64
	Commentary string
}

// Outlook is the technical summary derived from a market snapshot.
type Outlook struct {
	Readings   []Reading
	TotalScore float64
	Rating     Rating
	Warning    string
}
