package report

import (
	"fmt"
	"sort"
	"strings"

	"StockAnalyzer/internal/model"
)

// FormatAnalysis renders a full analysis bundle as sectioned plain text.
func FormatAnalysis(a *model.Analysis, out *model.Outlook) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s | %s\n", a.Symbol, a.FetchedAt.Format("2006-01-02 15:04")))

	writeTechnicals(&b, a.Indicators)
	writeOutlook(&b, out)
	writeFundamentals(&b, a.Fundamentals)
	writeHolders(&b, a.Holders)
	writeRecommendations(&b, a.Recommendations)

	return b.String()
}

func section(b *strings.Builder, name string) {
	b.WriteString(fmt.Sprintf("\n=== %s ===\n", strings.ToUpper(name)))
}

func writeTechnicals(b *strings.Builder, ind *model.MarketIndicators) {
	section(b, "technicals")
	if ind == nil {
		b.WriteString("No data available\n")
		return
	}

	b.WriteString(fmt.Sprintf("Price: %.2f\n", ind.CurrentPrice))
	ma200Dev := 0.0
	if ind.MA200 > 0 {
		ma200Dev = (ind.CurrentPrice - ind.MA200) / ind.MA200 * 100
	}
	b.WriteString(fmt.Sprintf("MA20: %.2f | MA50: %.2f | MA200: %.2f (%+.1f%%)\n",
		ind.MA20, ind.MA50, ind.MA200, ma200Dev))
	b.WriteString(fmt.Sprintf("MA20w: %.2f | MA50w: %.2f\n", ind.MA20w, ind.MA50w))
	b.WriteString(fmt.Sprintf("RSI(14): daily %.0f | weekly %.0f\n", ind.DailyRSI, ind.WeeklyRSI))
	b.WriteString(fmt.Sprintf("Bollinger(20,2): %.2f / %.2f / %.2f\n",
		ind.BollLower, ind.BollMiddle, ind.BollUpper))
	b.WriteString(fmt.Sprintf("52-week range: %.2f ~ %.2f (at %.0f%%)\n",
		ind.Low52w, ind.High52w, ind.Position52w*100))
}

func writeOutlook(b *strings.Builder, out *model.Outlook) {
	section(b, "outlook")
	if out == nil {
		b.WriteString("No data available\n")
		return
	}

	for _, r := range out.Readings {
		b.WriteString(fmt.Sprintf("  %-18s %+.1f (x%.2f) = %+.3f  %s\n",
			r.Name, r.Score, r.Weight, r.Weighted, r.Commentary))
	}
	b.WriteString("  ------------------\n")
	b.WriteString(fmt.Sprintf("  total score: %+.3f -> %s\n", out.TotalScore, out.Rating))
	if out.Warning != "" {
		b.WriteString(fmt.Sprintf("  ! %s\n", out.Warning))
	}
}

func writeFundamentals(b *strings.Builder, report *model.FundamentalReport) {
	section(b, "fundamentals")
	if report == nil {
		b.WriteString("No data available\n")
		return
	}

	for _, category := range model.CategoryOrder {
		values := report.Categories[category]
		if len(values) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("\n** %s **\n", titleCase(category)))

		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(fmt.Sprintf("%30s: %v\n", k, values[k]))
		}
	}
}

func titleCase(category string) string {
	parts := strings.Split(category, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

func writeHolders(b *strings.Builder, holders []model.InstitutionalHolder) {
	section(b, "institutional holders")
	if len(holders) == 0 {
		b.WriteString("No data available\n")
		return
	}

	for _, h := range holders {
		b.WriteString(fmt.Sprintf("%-40s %14d shares  %5.2f%%  reported %s\n",
			h.Holder, h.Shares, h.PctHeld*100, h.DateReported.Format("2006-01-02")))
	}
}

func writeRecommendations(b *strings.Builder, recs []model.Recommendation) {
	section(b, "recommendations")
	if len(recs) == 0 {
		b.WriteString("No data available\n")
		return
	}

	for _, r := range recs {
		line := fmt.Sprintf("%s  %-28s %s", r.Date.Format("2006-01-02"), r.Firm, r.ToGrade)
		if r.FromGrade != "" && r.FromGrade != r.ToGrade {
			line += fmt.Sprintf(" (from %s)", r.FromGrade)
		}
		b.WriteString(line + "\n")
	}
}
