package recorder

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"SwapBoard/internal/model"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// SQLRecorder persists snapshots to SQLite or PostgreSQL.
type SQLRecorder struct {
	db     *sqlx.DB
	driver string
	mu     sync.Mutex
}

type snapshotRow struct {
	ID        int64   `db:"id"`
	Timestamp int64   `db:"timestamp"`
	Base      string  `db:"base"`
	Quote     string  `db:"quote"`
	Period    string  `db:"period"`
	Samples   string  `db:"samples"`
	MinValue  float64 `db:"min_value"`
	MaxValue  float64 `db:"max_value"`
	LastValue float64 `db:"last_value"`
}

// NewSQLRecorder opens (or creates) the database and runs migrations.
func NewSQLRecorder(driver, dsn string) (*SQLRecorder, error) {
	switch driver {
	case DriverSQLite:
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
		}
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		// WAL lets readers work while the scheduler writes.
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("set WAL mode: %w", err)
		}
	}

	r := &SQLRecorder{db: db, driver: driver}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] %s recorder opened", driver)
	return r, nil
}

func (r *SQLRecorder) migrate() error {
	id := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if r.driver == DriverPostgres {
		id = "BIGSERIAL PRIMARY KEY"
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS series_snapshots (
			id          ` + id + `,
			timestamp   BIGINT NOT NULL,
			base        TEXT NOT NULL,
			quote       TEXT NOT NULL,
			period      TEXT NOT NULL,
			samples     TEXT NOT NULL,
			min_value   DOUBLE PRECISION,
			max_value   DOUBLE PRECISION,
			last_value  DOUBLE PRECISION
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_pair ON series_snapshots(base, quote, period, timestamp)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLRecorder) RecordSeries(ctx context.Context, snap *SeriesSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	samples, err := json.Marshal(snap.Series)
	if err != nil {
		return fmt.Errorf("encode samples: %w", err)
	}
	var last float64
	if s, ok := snap.Series.Last(); ok {
		last = s.Value
	}
	ts := snap.FetchedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err = r.db.ExecContext(ctx, r.db.Rebind(`INSERT INTO series_snapshots
		(timestamp, base, quote, period, samples, min_value, max_value, last_value)
		VALUES (?,?,?,?,?,?,?,?)`),
		ts.UnixMilli(), snap.Pair.Base, snap.Pair.Quote, string(snap.Period),
		string(samples), snap.MinValue, snap.MaxValue, last,
	)
	return err
}

func (r *SQLRecorder) LatestSnapshot(ctx context.Context, pair model.Pair, period model.Period) (*SeriesSnapshot, error) {
	var row snapshotRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`SELECT id, timestamp, base, quote, period, samples,
		min_value, max_value, last_value
		FROM series_snapshots
		WHERE base = ? AND quote = ? AND period = ?
		ORDER BY timestamp DESC, id DESC LIMIT 1`),
		pair.Base, pair.Quote, string(period),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	var series model.Series
	if err := json.Unmarshal([]byte(row.Samples), &series); err != nil {
		return nil, fmt.Errorf("decode samples: %w", err)
	}
	return &SeriesSnapshot{
		Pair:      model.Pair{Base: row.Base, Quote: row.Quote},
		Period:    model.Period(row.Period),
		Series:    series,
		MinValue:  row.MinValue,
		MaxValue:  row.MaxValue,
		FetchedAt: time.UnixMilli(row.Timestamp),
	}, nil
}

func (r *SQLRecorder) Close() error {
	log.Printf("[INFO] closing %s recorder", r.driver)
	return r.db.Close()
}
