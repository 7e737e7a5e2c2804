// Package store records scorecard runs in Postgres.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/values"
)

// Timeout bounds one store call.
const Timeout = 12 * time.Second

var validSchema = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Config locates the database.
type Config struct {
	URL    string
	Schema string
	Tag    string
}

// Store writes runs to one schema.
type Store struct {
	db     *sql.DB
	schema string
	tag    string
}

// Open connects to Postgres and creates the schema and tables when missing.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	schema, err := SanitizeSchema(cfg.Schema)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("db url is required")
	}

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := ensureSchema(ctx, db, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema %s: %w", schema, err)
	}
	return New(db, schema, cfg.Tag), nil
}

// New wraps an open database. schema must already be sanitized.
func New(db *sql.DB, schema, tag string) *Store {
	return &Store{db: db, schema: schema, tag: tag}
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SanitizeSchema trims value and rejects anything but a plain SQL identifier.
func SanitizeSchema(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errors.New("db schema is required")
	}
	if !validSchema.MatchString(value) {
		return "", fmt.Errorf("invalid schema name: %s", value)
	}
	return value, nil
}

// SaveRun stores the headline metrics and status tallies of a summary in one
// transaction and returns the run id.
func (s *Store) SaveRun(ctx context.Context, sum models.Summary) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	runID := uuid.New()
	asOf, err := time.Parse(values.DateLayout, sum.AsOf)
	if err != nil {
		return "", fmt.Errorf("invalid as_of %q: %w", sum.AsOf, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}

	_, err = tx.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s.scorecard_runs (
			id, source, as_of, lookahead_days, active_initiatives,
			at_risk_count, watch_count, hold_count, avg_progress,
			budget_total, actual_total, budget_burn, overdue_count,
			upcoming_count, critical_risks, run_tag
		) VALUES (
			$1,$2,$3,$4,$5,
			$6,$7,$8,$9,
			$10,$11,$12,$13,
			$14,$15,$16
		)`, s.schema),
		runID,
		nullString(sum.SourceName),
		asOf,
		sum.LookaheadDays,
		sum.ActiveInitiatives,
		sum.AtRiskCount,
		sum.WatchCount,
		sum.HoldCount,
		nullFloat(sum.AvgProgress),
		sum.BudgetTotal,
		sum.ActualTotal,
		nullFloat(sum.BudgetBurn),
		sum.OverdueCount,
		sum.UpcomingCount,
		sum.CriticalRisks,
		nullString(s.tag),
	)
	if err != nil {
		_ = tx.Rollback()
		return "", err
	}

	insertCountSQL := fmt.Sprintf(`
		INSERT INTO %s.scorecard_status_counts (
			id, run_id, table_name, status, count
		) VALUES ($1,$2,$3,$4,$5)`, s.schema)
	for _, c := range statusRows(sum.Status) {
		if _, err = tx.ExecContext(ctx, insertCountSQL, uuid.New(), runID, c.table, c.status, c.count); err != nil {
			_ = tx.Rollback()
			return "", err
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return runID.String(), nil
}

type statusRow struct {
	table  string
	status string
	count  int
}

// statusRows flattens the per-table tallies in a stable order.
func statusRows(report models.StatusReport) []statusRow {
	var rows []statusRow
	for table, tally := range report.ByTable {
		for label, n := range tally {
			rows = append(rows, statusRow{table: table, status: string(label), count: n})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].table != rows[j].table {
			return rows[i].table < rows[j].table
		}
		return rows[i].status < rows[j].status
	})
	return rows
}

func ensureSchema(ctx context.Context, db *sql.DB, schema string) error {
	if _, err := db.ExecContext(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, schema)); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.scorecard_runs (
			id uuid PRIMARY KEY,
			source text,
			as_of date NOT NULL,
			lookahead_days integer NOT NULL,
			active_initiatives integer NOT NULL,
			at_risk_count integer NOT NULL,
			watch_count integer NOT NULL,
			hold_count integer NOT NULL,
			avg_progress double precision,
			budget_total double precision NOT NULL,
			actual_total double precision NOT NULL,
			budget_burn double precision,
			overdue_count integer NOT NULL,
			upcoming_count integer NOT NULL,
			critical_risks integer NOT NULL,
			run_tag text,
			created_at timestamptz NOT NULL DEFAULT now()
		)`, schema))
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.scorecard_status_counts (
			id uuid PRIMARY KEY,
			run_id uuid NOT NULL REFERENCES %s.scorecard_runs(id) ON DELETE CASCADE,
			table_name text NOT NULL,
			status text NOT NULL,
			count integer NOT NULL
		)`, schema, schema))
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_scorecard_status_counts_run_idx ON %s.scorecard_status_counts (run_id)`, schema, schema))
	return err
}

func nullString(value string) sql.NullString {
	if strings.TrimSpace(value) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func nullFloat(value *float64) sql.NullFloat64 {
	if value == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *value, Valid: true}
}
