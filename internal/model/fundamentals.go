package model

import "time"

// Fundamental categories, in display order.
const (
	CategoryPrice      = "price"
	CategoryShares     = "shares"
	CategoryValuation  = "valuation"
	CategoryFinancials = "financials"
	CategoryLocation   = "location"
	CategoryCompany    = "company_info"
	CategoryOther      = "other"
)

// CategoryOrder is the display order for fundamental categories.
var CategoryOrder = []string{
	CategoryPrice,
	CategoryShares,
	CategoryValuation,
	CategoryFinancials,
	CategoryLocation,
	CategoryCompany,
	CategoryOther,
}

// FundamentalReport groups raw provider key/value pairs into fixed categories.
// Keys the category map doesn't know about land in "other".
type FundamentalReport struct {
	Symbol     string
	Categories map[string]map[string]any
	FetchedAt  time.Time
}

// InstitutionalHolder is one row of the institutional ownership table.
type InstitutionalHolder struct {
	Holder       string
	Shares       int64
	DateReported time.Time
	PctHeld      float64
	Value        int64
}

// Recommendation is a single analyst rating action.
type Recommendation struct {
	Date      time.Time
	Firm      string
	ToGrade   string
	FromGrade string
	Action    string
}
