package fundamental

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/model"
)

func TestCategorize(t *testing.T) {
	info := map[string]any{
		"currentPrice":      189.5,
		"marketCap":         int64(2900000000000),
		"sharesOutstanding": int64(15500000000),
		"totalRevenue":      int64(383000000000),
		"city":              "Cupertino",
		"sector":            "Technology",
		"fiftyTwoWeekHigh":  199.6, // unknown key -> other
	}

	report := Categorize("AAPL", info)

	require.Equal(t, "AAPL", report.Symbol)
	assert.Equal(t, 189.5, report.Categories[model.CategoryPrice]["currentPrice"])
	assert.Equal(t, int64(2900000000000), report.Categories[model.CategoryValuation]["marketCap"])
	assert.Equal(t, int64(15500000000), report.Categories[model.CategoryShares]["sharesOutstanding"])
	assert.Equal(t, int64(383000000000), report.Categories[model.CategoryFinancials]["totalRevenue"])
	assert.Equal(t, "Cupertino", report.Categories[model.CategoryLocation]["city"])
	assert.Equal(t, "Technology", report.Categories[model.CategoryCompany]["sector"])
	assert.Equal(t, 199.6, report.Categories[model.CategoryOther]["fiftyTwoWeekHigh"])
	assert.False(t, report.FetchedAt.IsZero())
}

func TestCategorize_AllCategoriesPresent(t *testing.T) {
	report := Categorize("MSFT", nil)
	require.Len(t, report.Categories, len(model.CategoryOrder))
	for _, c := range model.CategoryOrder {
		m, ok := report.Categories[c]
		require.True(t, ok, "missing category %s", c)
		assert.Empty(t, m)
	}
}
