package recorder

import "StockAnalyzer/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSnapshot(_ *Snapshot) error                            { return nil }
func (n *NoopRecorder) RecordFundamentals(_ *model.FundamentalReport) error         { return nil }
func (n *NoopRecorder) RecordHolders(_ string, _ []model.InstitutionalHolder) error { return nil }
func (n *NoopRecorder) Close() error                                                { return nil }
