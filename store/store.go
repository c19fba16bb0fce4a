// Package store keeps a history of solve runs in a SQL database.
//
// SQLite (pure Go, no CGO) is the default; PostgreSQL and MySQL are
// available for shared history.
package store

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	// Database drivers, registered with database/sql by side effect.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/sambeau/distress/pkg/packet/solve"
)

// Run is one recorded solve.
type Run struct {
	ID           string
	CreatedAt    time.Time
	Source       string // input path, or "<stdin>"
	Fingerprint  string // blake2b-256 of the input text, hex
	Packets      int
	InOrderSum   int
	DecoderKey   int
	Undetermined int
	Elapsed      time.Duration
}

// NewRun builds a Run from a solve report.
func NewRun(source, text string, report *solve.Report) Run {
	return Run{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Source:       source,
		Fingerprint:  Fingerprint(text),
		Packets:      report.Packets,
		InOrderSum:   report.InOrderSum,
		DecoderKey:   report.DecoderKey,
		Undetermined: report.Undetermined,
		Elapsed:      report.Elapsed,
	}
}

// Fingerprint returns the hex blake2b-256 digest of text.
func Fingerprint(text string) string {
	sum := blake2b.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Store records and lists runs.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	driver string
}

// driverNames maps config driver names to database/sql driver names.
var driverNames = map[string]string{
	"sqlite":   "sqlite",
	"postgres": "postgres",
	"mysql":    "mysql",
}

// Open connects to the history database and creates the schema if needed.
func Open(driver, dsn string) (*Store, error) {
	name, ok := driverNames[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}

	if driver == "sqlite" {
		if dsn != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
				return nil, fmt.Errorf("creating history directory: %w", err)
			}
			dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
		}
	}

	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to history database: %w", err)
	}

	if driver == "sqlite" {
		// A second connection to :memory: would be a different database.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}

	s := &Store{db: db, driver: driver}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// createSchema creates the runs table if it doesn't exist.
func (s *Store) createSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id VARCHAR(36) PRIMARY KEY,
			created_at BIGINT NOT NULL,
			source TEXT NOT NULL,
			fingerprint VARCHAR(64) NOT NULL,
			packets INTEGER NOT NULL,
			in_order_sum BIGINT NOT NULL,
			decoder_key BIGINT NOT NULL,
			undetermined INTEGER NOT NULL,
			elapsed_ns BIGINT NOT NULL
		)`,
	}
	if s.driver != "mysql" {
		// MySQL has no IF NOT EXISTS for indexes; the table scan is fine there.
		stmts = append(stmts, `CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`)
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Record inserts a run.
func (s *Store) Record(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO runs (id, created_at, source, fingerprint, packets, in_order_sum, decoder_key, undetermined, elapsed_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), run.ID, run.CreatedAt.UnixNano(), run.Source, run.Fingerprint, run.Packets,
		run.InOrderSum, run.DecoderKey, run.Undetermined, int64(run.Elapsed))
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// List returns runs created at or after since, newest first. A limit of
// zero or less returns every match.
func (s *Store) List(ctx context.Context, since time.Time, limit int) ([]Run, error) {
	query := `
		SELECT id, created_at, source, fingerprint, packets, in_order_sum, decoder_key, undetermined, elapsed_ns
		FROM runs
		WHERE created_at >= ?
		ORDER BY created_at DESC`
	args := []any{since.UnixNano()}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			createdAt int64
			elapsed   int64
		)
		if err := rows.Scan(&r.ID, &createdAt, &r.Source, &r.Fingerprint, &r.Packets,
			&r.InOrderSum, &r.DecoderKey, &r.Undetermined, &elapsed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.CreatedAt = time.Unix(0, createdAt).UTC()
		r.Elapsed = time.Duration(elapsed)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LastByFingerprint returns the most recent run for the given input digest.
func (s *Store) LastByFingerprint(ctx context.Context, fingerprint string) (*Run, bool, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT id, created_at, source, packets, in_order_sum, decoder_key, undetermined, elapsed_ns
		FROM runs WHERE fingerprint = ?
		ORDER BY created_at DESC LIMIT 1`), fingerprint)

	var (
		r         Run
		createdAt int64
		elapsed   int64
	)
	err := row.Scan(&r.ID, &createdAt, &r.Source, &r.Packets, &r.InOrderSum, &r.DecoderKey, &r.Undetermined, &elapsed)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("looking up run: %w", err)
	}
	r.Fingerprint = fingerprint
	r.CreatedAt = time.Unix(0, createdAt).UTC()
	r.Elapsed = time.Duration(elapsed)
	return &r, true, nil
}

// rebind rewrites ? placeholders as $1, $2, ... for PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}
