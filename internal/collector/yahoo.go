package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"StockAnalyzer/internal/model"
)

// YahooFetcher implements Fetcher using the Yahoo Finance public API.
type YahooFetcher struct {
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (f *YahooFetcher) get(u string) ([]byte, error) {
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func (f *YahooFetcher) fetchChart(symbol, interval, rng string) ([]model.OHLCV, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=%s&range=%s",
		url.PathEscape(f.yahooSymbol(symbol)), interval, rng)

	body, err := f.get(u)
	if err != nil {
		return nil, err
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func (f *YahooFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	// Yahoo range: max "2y" for daily interval
	rng := "2y"
	if days <= 30 {
		rng = "1mo"
	} else if days <= 90 {
		rng = "3mo"
	} else if days <= 180 {
		rng = "6mo"
	} else if days <= 365 {
		rng = "1y"
	}
	bars, err := f.fetchChart(symbol, "1d", rng)
	if err != nil {
		return nil, err
	}
	// Trim to requested count
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

func (f *YahooFetcher) FetchWeeklyBars(symbol string, weeks int) ([]model.OHLCV, error) {
	rng := "2y"
	if weeks <= 26 {
		rng = "6mo"
	} else if weeks <= 52 {
		rng = "1y"
	}
	bars, err := f.fetchChart(symbol, "1wk", rng)
	if err != nil {
		return nil, err
	}
	if len(bars) > weeks {
		bars = bars[len(bars)-weeks:]
	}
	return bars, nil
}

func (f *YahooFetcher) FetchCurrentPrice(symbol string) (float64, error) {
	bars, err := f.fetchChart(symbol, "1d", "1d")
	if err != nil {
		return 0, err
	}
	if len(bars) == 0 {
		return 0, fmt.Errorf("yahoo: no price data")
	}
	return bars[len(bars)-1].Close, nil
}

// yahooSummary is the quoteSummary envelope. Module contents are dynamic,
// so they stay as raw maps and get flattened below.
type yahooSummary struct {
	QuoteSummary struct {
		Result []map[string]json.RawMessage `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func (f *YahooFetcher) fetchSummary(symbol string, modules string) (map[string]json.RawMessage, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s?modules=%s",
		url.PathEscape(f.yahooSymbol(symbol)), modules)

	body, err := f.get(u)
	if err != nil {
		return nil, err
	}

	var summary yahooSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("yahoo decode summary: %w", err)
	}
	if summary.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", summary.QuoteSummary.Error.Description)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no summary data for %s", symbol)
	}
	return summary.QuoteSummary.Result[0], nil
}

// unwrapRaw reduces Yahoo's {raw, fmt} value wrappers to their raw value.
func unwrapRaw(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	if raw, ok := m["raw"]; ok {
		return raw
	}
	return nil
}

func (f *YahooFetcher) FetchFundamentals(symbol string) (map[string]any, error) {
	modules := "price,summaryDetail,defaultKeyStatistics,financialData,assetProfile"
	result, err := f.fetchSummary(symbol, modules)
	if err != nil {
		return nil, err
	}

	// Flatten all modules into one key space, the shape yfinance's .info
	// exposes. Scalars pass through; wrapped numbers are unwrapped; nested
	// lists (company officers etc.) are skipped.
	info := make(map[string]any)
	for _, raw := range result {
		var module map[string]any
		if err := json.Unmarshal(raw, &module); err != nil {
			continue
		}
		for key, value := range module {
			switch value.(type) {
			case []any:
				continue
			case map[string]any:
				if unwrapped := unwrapRaw(value); unwrapped != nil {
					info[key] = unwrapped
				}
			default:
				if value != nil {
					info[key] = value
				}
			}
		}
	}
	if len(info) == 0 {
		return nil, fmt.Errorf("yahoo: empty fundamentals for %s", symbol)
	}
	return info, nil
}

func (f *YahooFetcher) FetchHolders(symbol string) ([]model.InstitutionalHolder, error) {
	result, err := f.fetchSummary(symbol, "institutionOwnership")
	if err != nil {
		return nil, err
	}
	raw, ok := result["institutionOwnership"]
	if !ok {
		return nil, fmt.Errorf("yahoo: no institutional ownership for %s", symbol)
	}

	var module struct {
		OwnershipList []struct {
			Organization string `json:"organization"`
			ReportDate   struct {
				Raw int64 `json:"raw"`
			} `json:"reportDate"`
			PctHeld struct {
				Raw float64 `json:"raw"`
			} `json:"pctHeld"`
			Position struct {
				Raw int64 `json:"raw"`
			} `json:"position"`
			Value struct {
				Raw int64 `json:"raw"`
			} `json:"value"`
		} `json:"ownershipList"`
	}
	if err := json.Unmarshal(raw, &module); err != nil {
		return nil, fmt.Errorf("yahoo decode holders: %w", err)
	}

	holders := make([]model.InstitutionalHolder, 0, len(module.OwnershipList))
	for _, h := range module.OwnershipList {
		holders = append(holders, model.InstitutionalHolder{
			Holder:       h.Organization,
			Shares:       h.Position.Raw,
			DateReported: time.Unix(h.ReportDate.Raw, 0),
			PctHeld:      h.PctHeld.Raw,
			Value:        h.Value.Raw,
		})
	}
	return holders, nil
}

func (f *YahooFetcher) FetchRecommendations(symbol string) ([]model.Recommendation, error) {
	result, err := f.fetchSummary(symbol, "upgradeDowngradeHistory")
	if err != nil {
		return nil, err
	}
	raw, ok := result["upgradeDowngradeHistory"]
	if !ok {
		return nil, fmt.Errorf("yahoo: no recommendation history for %s", symbol)
	}

	var module struct {
		History []struct {
			EpochGradeDate int64  `json:"epochGradeDate"`
			Firm           string `json:"firm"`
			ToGrade        string `json:"toGrade"`
			FromGrade      string `json:"fromGrade"`
			Action         string `json:"action"`
		} `json:"history"`
	}
	if err := json.Unmarshal(raw, &module); err != nil {
		return nil, fmt.Errorf("yahoo decode recommendations: %w", err)
	}

	recs := make([]model.Recommendation, 0, len(module.History))
	for _, r := range module.History {
		recs = append(recs, model.Recommendation{
			Date:      time.Unix(r.EpochGradeDate, 0),
			Firm:      r.Firm,
			ToGrade:   r.ToGrade,
			FromGrade: r.FromGrade,
			Action:    r.Action,
		})
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Date.Before(recs[j].Date) })
	return recs, nil
}
