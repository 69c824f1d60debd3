package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"StockAnalyzer/internal/model"
)

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read
	// while the scheduler writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_snapshots (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			symbol        TEXT NOT NULL,
			current_price REAL,
			ma20          REAL,
			ma50          REAL,
			ma200         REAL,
			ma20w         REAL,
			ma50w         REAL,
			daily_rsi     REAL,
			weekly_rsi    REAL,
			boll_upper    REAL,
			boll_middle   REAL,
			boll_lower    REAL,
			high_52w      REAL,
			low_52w       REAL,
			position_52w  REAL,
			total_score   REAL,
			rating        TEXT,
			warning       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_sym_ts ON analysis_snapshots(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS fundamental_snapshots (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			symbol    TEXT NOT NULL,
			category  TEXT NOT NULL,
			key       TEXT NOT NULL,
			value     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fundamental_sym_ts ON fundamental_snapshots(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS institutional_holders (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			symbol      TEXT NOT NULL,
			holder      TEXT NOT NULL,
			shares      INTEGER,
			reported_at INTEGER,
			pct_held    REAL,
			value       INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_holders_sym_ts ON institutional_holders(symbol, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSnapshot(snap *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ind := snap.Analysis.Indicators
	out := snap.Outlook

	_, err := r.db.Exec(`INSERT INTO analysis_snapshots
		(timestamp, symbol, current_price, ma20, ma50, ma200, ma20w, ma50w,
		 daily_rsi, weekly_rsi, boll_upper, boll_middle, boll_lower,
		 high_52w, low_52w, position_52w, total_score, rating, warning)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), snap.Analysis.Symbol,
		ind.CurrentPrice, ind.MA20, ind.MA50, ind.MA200, ind.MA20w, ind.MA50w,
		ind.DailyRSI, ind.WeeklyRSI, ind.BollUpper, ind.BollMiddle, ind.BollLower,
		ind.High52w, ind.Low52w, ind.Position52w,
		out.TotalScore, string(out.Rating), out.Warning,
	)
	return err
}

func (r *SQLiteRecorder) RecordFundamentals(report *model.FundamentalReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	stmt, err := tx.Prepare(`INSERT INTO fundamental_snapshots
		(timestamp, symbol, category, key, value) VALUES (?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, category := range model.CategoryOrder {
		for key, value := range report.Categories[category] {
			if _, err := stmt.Exec(now, report.Symbol, category, key, fmt.Sprintf("%v", value)); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordHolders(symbol string, holders []model.InstitutionalHolder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	stmt, err := tx.Prepare(`INSERT INTO institutional_holders
		(timestamp, symbol, holder, shares, reported_at, pct_held, value)
		VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, h := range holders {
		if _, err := stmt.Exec(now, symbol, h.Holder, h.Shares, h.DateReported.Unix(), h.PctHeld, h.Value); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
