package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/config"
	"StockAnalyzer/internal/outlook"
	"StockAnalyzer/internal/recorder"
	"StockAnalyzer/internal/report"
	"StockAnalyzer/internal/scheduler"
	"StockAnalyzer/internal/watchlist"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfgPath := flag.String("config", defaultConfigPath(), "path to config file")
	watch := flag.Bool("watch", false, "run the cron scheduler over the watchlist")
	record := flag.Bool("record", false, "persist one-shot analyses to SQLite")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	col := collector.NewCollector(fetcher)
	tickers := flag.Args()

	if *watch {
		runWatch(cfg, col, tickers)
		return
	}

	if len(tickers) == 0 {
		fmt.Fprintln(os.Stderr, "usage: analyzer [flags] TICKER...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	rec := openRecorder(cfg, *record)
	defer rec.Close()

	exitCode := 0
	for _, symbol := range tickers {
		analysis, err := col.Analyze(symbol)
		if err != nil {
			log.Printf("[ERROR] analyze %s: %v", symbol, err)
			exitCode = 1
			continue
		}
		out := outlook.Summarize(analysis.Indicators)
		fmt.Println(report.FormatAnalysis(analysis, out))

		if err := rec.RecordSnapshot(&recorder.Snapshot{Analysis: analysis, Outlook: out}); err != nil {
			log.Printf("[ERROR] record snapshot for %s: %v", symbol, err)
		}
		if analysis.Fundamentals != nil {
			if err := rec.RecordFundamentals(analysis.Fundamentals); err != nil {
				log.Printf("[ERROR] record fundamentals for %s: %v", symbol, err)
			}
		}
		if len(analysis.Holders) > 0 {
			if err := rec.RecordHolders(symbol, analysis.Holders); err != nil {
				log.Printf("[ERROR] record holders for %s: %v", symbol, err)
			}
		}
	}
	os.Exit(exitCode)
}

func runWatch(cfg *config.Config, col *collector.Collector, tickers []string) {
	log.Println("[INFO] StockAnalyzer starting in watch mode...")

	seed := append(append([]string(nil), cfg.DataSource.Symbols...), tickers...)
	wl, err := watchlist.NewManager(cfg.Watchlist.StateFile, seed)
	if err != nil {
		log.Fatalf("[FATAL] init watchlist: %v", err)
	}
	if len(wl.Symbols()) == 0 {
		log.Fatalf("[FATAL] watchlist is empty: pass tickers or set data_source.symbols")
	}

	rec := openRecorder(cfg, true)
	defer rec.Close()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, col, wl, rec)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, refreshing now")
		go sched.RunNow()
	}

	log.Println("[INFO] StockAnalyzer is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] StockAnalyzer stopped")
}

func openRecorder(cfg *config.Config, persist bool) recorder.Recorder {
	if !persist || cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}

func defaultConfigPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}
