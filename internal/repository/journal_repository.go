// Package repository provides data access implementations
package repository

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/abelzeko/fishing-bot/internal/entities"
	_ "github.com/mattn/go-sqlite3"
)

// timestampLayout is how journal timestamps are stored (always UTC), so that
// string comparison in SQL orders them correctly
const timestampLayout = "2006-01-02 15:04:05"

// JournalRepository defines persistence of report outcomes
type JournalRepository interface {
	RecordOutcome(outcome entities.ReportOutcome) error
	GetOutcomeStats(since time.Time) ([]entities.OutcomeStat, error)
	PruneBefore(cutoff time.Time) (int64, error)
	Close() error
}

// SQLiteJournalRepository implements JournalRepository using SQLite
type SQLiteJournalRepository struct {
	db     *sql.DB
	DBPath string
}

// NewSQLiteJournalRepository creates and initializes a new SQLite journal
func NewSQLiteJournalRepository(dbPath string) (*SQLiteJournalRepository, error) {
	if dbPath == "" {
		// Set default path if not specified
		dbDir := "data"
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %v", err)
		}
		dbPath = filepath.Join(dbDir, "journal.db")
	}

	log.Printf("Opening database at %s", dbPath)
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS report_journal (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		water_body TEXT NOT NULL,
		outcome TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_journal_water_body ON report_journal(water_body);
	CREATE INDEX IF NOT EXISTS idx_journal_created_at ON report_journal(created_at);`

	_, err = db.Exec(createTableSQL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %v", err)
	}

	return &SQLiteJournalRepository{
		db:     db,
		DBPath: dbPath,
	}, nil
}

// Close closes the database connection
func (r *SQLiteJournalRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// RecordOutcome stores a single report outcome
func (r *SQLiteJournalRepository) RecordOutcome(outcome entities.ReportOutcome) error {
	createdAt := outcome.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO report_journal(water_body, outcome, created_at) VALUES(?, ?, ?)`,
		outcome.WaterBody,
		string(outcome.Outcome),
		createdAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to record outcome for %s: %v", outcome.WaterBody, err)
	}
	return nil
}

// GetOutcomeStats aggregates outcomes per water body since the given time
func (r *SQLiteJournalRepository) GetOutcomeStats(since time.Time) ([]entities.OutcomeStat, error) {
	query := `
		SELECT water_body,
			SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
			SUM(CASE WHEN outcome != ? THEN 1 ELSE 0 END),
			COUNT(*),
			MAX(created_at)
		FROM report_journal
		WHERE created_at >= ?
		GROUP BY water_body
		ORDER BY water_body`

	rows, err := r.db.Query(query,
		string(entities.OutcomeOK),
		string(entities.OutcomeOK),
		since.UTC().Format(timestampLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query outcome stats: %v", err)
	}
	defer rows.Close()

	var result []entities.OutcomeStat
	for rows.Next() {
		var stat entities.OutcomeStat
		var lastRequest string
		if err := rows.Scan(
			&stat.WaterBody,
			&stat.Successes,
			&stat.Failures,
			&stat.Total,
			&lastRequest,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %v", err)
		}

		stat.LastRequest, err = time.ParseInLocation(timestampLayout, lastRequest, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp '%s': %v", lastRequest, err)
		}
		result = append(result, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %v", err)
	}

	return result, nil
}

// PruneBefore deletes journal entries older than the cutoff and returns how many were removed
func (r *SQLiteJournalRepository) PruneBefore(cutoff time.Time) (int64, error) {
	res, err := r.db.Exec(
		`DELETE FROM report_journal WHERE created_at < ?`,
		cutoff.UTC().Format(timestampLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune journal: %v", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned rows: %v", err)
	}

	log.Printf("Pruned %d journal entries older than %s", removed, cutoff.Format(time.RFC3339))
	return removed, nil
}
