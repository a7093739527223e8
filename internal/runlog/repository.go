// Package runlog keeps a history of pipeline runs so successive
// simulations of the same plot can be compared after the fact.
package runlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Record is one completed (or failed) pipeline run.
type Record struct {
	ID           int64
	Pipeline     string // "synthetic" | "sensor"
	From         time.Time
	To           time.Time
	Status       string // "ok" | "failed"
	Error        string
	FinalBiomass float64 // Mg/ha, stand total at the last step
	FinalCarbon  float64 // short tons on the plot
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Repository persists run records.
type Repository interface {
	Save(rec Record) (int64, error)
	Recent(limit int) ([]Record, error)
	Close() error
}

// SQLiteRepository implements Repository on a local SQLite file.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dbPath == "" {
		dir := "data"
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		dbPath = filepath.Join(dir, "runlog.db")
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		pipeline TEXT NOT NULL,
		from_month TEXT NOT NULL,
		to_month TEXT NOT NULL,
		status TEXT NOT NULL,
		error TEXT,
		final_biomass REAL,
		final_carbon REAL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_pipeline ON runs(pipeline);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

const monthLayout = "2006-01"

func (r *SQLiteRepository) Save(rec Record) (int64, error) {
	res, err := r.db.Exec(`
		INSERT INTO runs (pipeline, from_month, to_month, status, error,
			final_biomass, final_carbon, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Pipeline, rec.From.Format(monthLayout), rec.To.Format(monthLayout),
		rec.Status, rec.Error, rec.FinalBiomass, rec.FinalCarbon,
		rec.StartedAt.UTC(), rec.FinishedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("save run: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(`
		SELECT id, pipeline, from_month, to_month, status, error,
			final_biomass, final_carbon, started_at, finished_at
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var from, to string
		if err := rows.Scan(&rec.ID, &rec.Pipeline, &from, &to, &rec.Status, &rec.Error,
			&rec.FinalBiomass, &rec.FinalCarbon, &rec.StartedAt, &rec.FinishedAt); err != nil {
			return nil, err
		}
		if rec.From, err = time.Parse(monthLayout, from); err != nil {
			return nil, fmt.Errorf("bad from_month %q: %w", from, err)
		}
		if rec.To, err = time.Parse(monthLayout, to); err != nil {
			return nil, fmt.Errorf("bad to_month %q: %w", to, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) Close() error { return r.db.Close() }
