package fundamental

import (
	"time"

	"StockAnalyzer/internal/model"
)

// categoryKeys assigns well-known provider keys to fixed categories.
// Anything the map doesn't know about lands in "other".
var categoryKeys = map[string][]string{
	model.CategoryPrice: {
		"regularMarketPreviousClose", "regularMarketOpen",
		"regularMarketDayHigh", "regularMarketDayLow", "currentPrice",
	},
	model.CategoryShares: {
		"sharesOutstanding", "floatShares", "sharesShort",
	},
	model.CategoryValuation: {
		"marketCap", "enterpriseValue", "priceToBook", "enterpriseToRevenue",
	},
	model.CategoryFinancials: {
		"totalCash", "totalDebt", "totalRevenue", "grossProfits", "ebitda",
	},
	model.CategoryLocation: {
		"address1", "address2", "city", "state", "zip", "country", "phone",
	},
	model.CategoryCompany: {
		"sector", "industry", "longName", "website", "employees",
	},
}

// keyToCategory is the reverse index, built once for O(1) lookups.
var keyToCategory = func() map[string]string {
	idx := make(map[string]string)
	for category, keys := range categoryKeys {
		for _, k := range keys {
			idx[k] = category
		}
	}
	return idx
}()

// Categorize sorts raw provider info into the fixed category groups.
// Every category key is present in the result, even when empty.
func Categorize(symbol string, info map[string]any) *model.FundamentalReport {
	categories := make(map[string]map[string]any, len(model.CategoryOrder))
	for _, c := range model.CategoryOrder {
		categories[c] = make(map[string]any)
	}

	for key, value := range info {
		category, ok := keyToCategory[key]
		if !ok {
			category = model.CategoryOther
		}
		categories[category][key] = value
	}

	return &model.FundamentalReport{
		Symbol:     symbol,
		Categories: categories,
		FetchedAt:  time.Now(),
	}
}
