package recorder

import "StockAnalyzer/internal/model"

// Snapshot holds one analysis run for a symbol.
type Snapshot struct {
	Analysis *model.Analysis
	Outlook  *model.Outlook
}

// Recorder persists analysis history for later review (Grafana, backtests).
type Recorder interface {
	RecordSnapshot(snap *Snapshot) error
	RecordFundamentals(report *model.FundamentalReport) error
	RecordHolders(symbol string, holders []model.InstitutionalHolder) error
	Close() error
}
