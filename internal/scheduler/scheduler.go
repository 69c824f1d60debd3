package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/outlook"
	"StockAnalyzer/internal/recorder"
	"StockAnalyzer/internal/watchlist"

	"github.com/robfig/cron/v3"
)

// Scheduler runs periodic analysis over the watchlist.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Watchlist *watchlist.Manager
	Recorder  recorder.Recorder
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, wl *watchlist.Manager, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Watchlist: wl,
		Recorder:  rec,
		Ctx:       ctx,
	}
}

// Register registers the refresh task on the given cron expression.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the refresh task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	symbols := s.Watchlist.Symbols()
	if len(symbols) == 0 {
		log.Println("[WARN] refresh task: watchlist is empty")
		return
	}
	log.Printf("[INFO] refreshing %d watchlist symbols", len(symbols))

	for _, symbol := range symbols {
		select {
		case <-s.Ctx.Done():
			log.Println("[INFO] refresh task cancelled")
			return
		default:
		}
		s.analyzeOne(symbol)
	}
}

func (s *Scheduler) analyzeOne(symbol string) {
	analysis, err := s.Collector.Analyze(symbol)
	if err != nil {
		log.Printf("[ERROR] analyze %s: %v", symbol, err)
		return
	}

	out := outlook.Summarize(analysis.Indicators)
	log.Printf("[INFO] %s: price=%.2f score=%+.3f rating=%s",
		symbol, analysis.Indicators.CurrentPrice, out.TotalScore, out.Rating)
	if out.Warning != "" {
		log.Printf("[WARN] %s: %s", symbol, out.Warning)
	}

	if err := s.Recorder.RecordSnapshot(&recorder.Snapshot{Analysis: analysis, Outlook: out}); err != nil {
		log.Printf("[ERROR] record snapshot for %s: %v", symbol, err)
	}
	if analysis.Fundamentals != nil {
		if err := s.Recorder.RecordFundamentals(analysis.Fundamentals); err != nil {
			log.Printf("[ERROR] record fundamentals for %s: %v", symbol, err)
		}
	}
	if len(analysis.Holders) > 0 {
		if err := s.Recorder.RecordHolders(symbol, analysis.Holders); err != nil {
			log.Printf("[ERROR] record holders for %s: %v", symbol, err)
		}
	}

	s.Watchlist.MarkAnalyzed(symbol, time.Now())
}
