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

// RESTFetcher implements Fetcher against a self-hosted market-data REST API,
// for deployments that can't reach Yahoo directly.
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string) *RESTFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &RESTFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape for bar endpoints.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (f *RESTFetcher) getJSON(endpoint string, out any) error {
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("fetch %s: status %d, body: %s", endpoint, resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}

func (f *RESTFetcher) fetchBars(endpoint string) ([]model.OHLCV, error) {
	var restBars []restBar
	if err := f.getJSON(endpoint, &restBars); err != nil {
		return nil, err
	}
	bars := make([]model.OHLCV, len(restBars))
	for i, rb := range restBars {
		bars[i] = model.OHLCV{
			Time:   time.Unix(rb.Timestamp, 0),
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  rb.Close,
			Volume: rb.Volume,
		}
	}
	// Ensure chronological order
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func (f *RESTFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&limit=%d", f.BaseURL, symbol, days)
	return f.fetchBars(endpoint)
}

func (f *RESTFetcher) FetchWeeklyBars(symbol string, weeks int) ([]model.OHLCV, error) {
	// Try the weekly endpoint first; if the API only provides daily, aggregate internally.
	endpoint := fmt.Sprintf("%s/api/v1/bars/weekly?symbol=%s&limit=%d", f.BaseURL, symbol, weeks)
	bars, err := f.fetchBars(endpoint)
	if err != nil {
		dailyBars, dailyErr := f.FetchDailyBars(symbol, weeks*7)
		if dailyErr != nil {
			return nil, fmt.Errorf("weekly fetch failed: %w; daily fallback also failed: %w", err, dailyErr)
		}
		return AggregateDailyToWeekly(dailyBars), nil
	}
	return bars, nil
}

func (f *RESTFetcher) FetchCurrentPrice(symbol string) (float64, error) {
	endpoint := fmt.Sprintf("%s/api/v1/quote?symbol=%s", f.BaseURL, symbol)
	var result struct {
		Price float64 `json:"price"`
	}
	if err := f.getJSON(endpoint, &result); err != nil {
		return 0, err
	}
	return result.Price, nil
}

func (f *RESTFetcher) FetchFundamentals(symbol string) (map[string]any, error) {
	endpoint := fmt.Sprintf("%s/api/v1/fundamentals?symbol=%s", f.BaseURL, symbol)
	var info map[string]any
	if err := f.getJSON(endpoint, &info); err != nil {
		return nil, err
	}
	if len(info) == 0 {
		return nil, fmt.Errorf("no fundamentals for %s", symbol)
	}
	return info, nil
}

func (f *RESTFetcher) FetchHolders(symbol string) ([]model.InstitutionalHolder, error) {
	endpoint := fmt.Sprintf("%s/api/v1/holders?symbol=%s", f.BaseURL, symbol)
	var rows []struct {
		Holder     string  `json:"holder"`
		Shares     int64   `json:"shares"`
		ReportedAt int64   `json:"reported_at"`
		PctHeld    float64 `json:"pct_held"`
		Value      int64   `json:"value"`
	}
	if err := f.getJSON(endpoint, &rows); err != nil {
		return nil, err
	}
	holders := make([]model.InstitutionalHolder, len(rows))
	for i, r := range rows {
		holders[i] = model.InstitutionalHolder{
			Holder:       r.Holder,
			Shares:       r.Shares,
			DateReported: time.Unix(r.ReportedAt, 0),
			PctHeld:      r.PctHeld,
			Value:        r.Value,
		}
	}
	return holders, nil
}

func (f *RESTFetcher) FetchRecommendations(symbol string) ([]model.Recommendation, error) {
	endpoint := fmt.Sprintf("%s/api/v1/recommendations?symbol=%s", f.BaseURL, symbol)
	var rows []struct {
		Date      int64  `json:"date"`
		Firm      string `json:"firm"`
		ToGrade   string `json:"to_grade"`
		FromGrade string `json:"from_grade"`
		Action    string `json:"action"`
	}
	if err := f.getJSON(endpoint, &rows); err != nil {
		return nil, err
	}
	recs := make([]model.Recommendation, len(rows))
	for i, r := range rows {
		recs[i] = model.Recommendation{
			Date:      time.Unix(r.Date, 0),
			Firm:      r.Firm,
			ToGrade:   r.ToGrade,
			FromGrade: r.FromGrade,
			Action:    r.Action,
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Date.Before(recs[j].Date) })
	return recs, nil
}

// AggregateDailyToWeekly converts daily bars into ISO-week bars.
func AggregateDailyToWeekly(daily []model.OHLCV) []model.OHLCV {
	if len(daily) == 0 {
		return nil
	}
	var weekly []model.OHLCV
	var week model.OHLCV
	var weekStarted bool

	for _, d := range daily {
		year, isoWeek := d.Time.ISOWeek()
		weekKey := year*100 + isoWeek

		if !weekStarted {
			week = model.OHLCV{Time: d.Time, Open: d.Open, High: d.High, Low: d.Low, Close: d.Close, Volume: d.Volume}
			weekStarted = true
			continue
		}

		cy, cw := week.Time.ISOWeek()
		currentKey := cy*100 + cw

		if weekKey != currentKey {
			weekly = append(weekly, week)
			week = model.OHLCV{Time: d.Time, Open: d.Open, High: d.High, Low: d.Low, Close: d.Close, Volume: d.Volume}
		} else {
			if d.High > week.High {
				week.High = d.High
			}
			if d.Low < week.Low {
				week.Low = d.Low
			}
			week.Close = d.Close
			week.Volume += d.Volume
		}
	}
	if weekStarted {
		weekly = append(weekly, week)
	}
	return weekly
}
