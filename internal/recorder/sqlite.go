package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists scan history to a SQLite database.
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

	// WAL mode for better concurrent read performance.
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
		`CREATE TABLE IF NOT EXISTS scans (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			trigger_type    TEXT,
			symbols_scanned INTEGER,
			results         INTEGER,
			duration_ms     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scans_ts ON scans(timestamp)`,

		`CREATE TABLE IF NOT EXISTS opportunities (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			scan_id      INTEGER,
			timestamp    INTEGER NOT NULL,
			symbol       TEXT,
			name         TEXT,
			direction    TEXT,
			price        REAL,
			target_price REAL,
			stop_loss    REAL,
			risk_reward  REAL,
			confidence   INTEGER,
			rationale    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_opps_ts ON opportunities(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_opps_symbol ON opportunities(symbol)`,

		`CREATE TABLE IF NOT EXISTS broadcasts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			chat_id    INTEGER,
			symbol     TEXT,
			direction  TEXT,
			confidence INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_broadcasts_ts ON broadcasts(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordScan(rec *ScanRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	res, err := r.db.Exec(`INSERT INTO scans
		(timestamp, trigger_type, symbols_scanned, results, duration_ms)
		VALUES (?,?,?,?,?)`,
		now, rec.Trigger, rec.SymbolsScanned, len(rec.Opportunities),
		rec.Duration.Milliseconds(),
	)
	if err != nil {
		return err
	}
	scanID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for _, opp := range rec.Opportunities {
		if _, err := r.db.Exec(`INSERT INTO opportunities
			(scan_id, timestamp, symbol, name, direction, price,
			 target_price, stop_loss, risk_reward, confidence, rationale)
			VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
			scanID, now, opp.Symbol, opp.Name, string(opp.Direction), opp.Price,
			opp.TargetPrice, opp.StopLoss, opp.RiskReward, opp.Confidence, opp.Rationale,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordBroadcast(evt *BroadcastEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO broadcasts
		(timestamp, chat_id, symbol, direction, confidence)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), evt.ChatID, evt.Symbol, string(evt.Direction), evt.Confidence,
	)
	return err
}

func (r *SQLiteRecorder) RecentOpportunities(limit int) ([]OpportunityRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT timestamp, symbol, direction, price,
		target_price, stop_loss, risk_reward, confidence
		FROM opportunities ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OpportunityRecord
	for rows.Next() {
		var rec OpportunityRecord
		var ts int64
		if err := rows.Scan(&ts, &rec.Symbol, &rec.Direction, &rec.Price,
			&rec.TargetPrice, &rec.StopLoss, &rec.RiskReward, &rec.Confidence); err != nil {
			return nil, err
		}
		rec.Time = time.Unix(ts, 0)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
