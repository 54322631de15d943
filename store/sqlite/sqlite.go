// Package sqlite persists reflector run reports.
//
// The database is opened in WAL mode with foreign keys enforced. All
// queries use prepared statements, compiled once at open time.
// SaveReport is the only multi-statement operation and runs inside an
// explicit transaction: a run row and its per-second series commit
// together or not at all.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	reflector "github.com/i-rong/l2-reflector"
)

//go:embed schema.sql
var schemaSQL string

// ErrRunNotFound is returned by GetRun for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// Run is one persisted run report row.
type Run struct {
	ID            int64
	Device        string
	StartedAt     time.Time
	FinishedAt    time.Time
	WindowSeconds int
	TotalPackets  uint64
	AvgPPS        float64
	Interrupted   bool
}

// Store is a SQLite-backed run history.
type Store struct {
	db     *sql.DB
	logger *slog.Logger

	stmtInsertRun    *sql.Stmt
	stmtInsertSecond *sql.Stmt
	stmtGetRun       *sql.Stmt
	stmtListRuns     *sql.Stmt
	stmtGetSeconds   *sql.Stmt
}

// New opens (creating if necessary) the run history at dbPath.
func New(ctx context.Context, dbPath string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "store", "db", dbPath)

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open(driverName, dsn(dbPath, [][2]string{{"journal_mode", "WAL"}, {"foreign_keys", "1"}}))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s := &Store{db: db, logger: logger}
	if err := s.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("opened run history", "path", dbPath)
	return s, nil
}

// NewInMemory creates an in-memory run history for testing.
func NewInMemory(ctx context.Context, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "store", "db", ":memory:")

	db, err := sql.Open(driverName, dsn(":memory:", [][2]string{{"foreign_keys", "1"}}))
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	s := &Store{db: db, logger: logger}
	if err := s.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	if err := s.migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := s.prepareStatements(ctx); err != nil {
		return fmt.Errorf("failed to prepare statements: %w", err)
	}
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

func (s *Store) prepareStatements(ctx context.Context) error {
	var err error

	const sqlInsertRun = `
		INSERT INTO runs
		(device, started_at, finished_at, window_seconds, total_packets, avg_pps, interrupted)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	if s.stmtInsertRun, err = s.db.PrepareContext(ctx, sqlInsertRun); err != nil {
		return fmt.Errorf("prepare InsertRun: %w", err)
	}

	const sqlInsertSecond = "INSERT INTO run_seconds (run_id, second, packets) VALUES (?, ?, ?)"
	if s.stmtInsertSecond, err = s.db.PrepareContext(ctx, sqlInsertSecond); err != nil {
		return fmt.Errorf("prepare InsertSecond: %w", err)
	}

	const sqlGetRun = `
		SELECT id, device, started_at, finished_at, window_seconds, total_packets, avg_pps, interrupted
		FROM runs WHERE id = ?`
	if s.stmtGetRun, err = s.db.PrepareContext(ctx, sqlGetRun); err != nil {
		return fmt.Errorf("prepare GetRun: %w", err)
	}

	const sqlListRuns = `
		SELECT id, device, started_at, finished_at, window_seconds, total_packets, avg_pps, interrupted
		FROM runs ORDER BY started_at DESC, id DESC`
	if s.stmtListRuns, err = s.db.PrepareContext(ctx, sqlListRuns); err != nil {
		return fmt.Errorf("prepare ListRuns: %w", err)
	}

	const sqlGetSeconds = "SELECT second, packets FROM run_seconds WHERE run_id = ? ORDER BY second"
	if s.stmtGetSeconds, err = s.db.PrepareContext(ctx, sqlGetSeconds); err != nil {
		return fmt.Errorf("prepare GetSeconds: %w", err)
	}

	return nil
}

// Close closes all prepared statements and the database connection.
func (s *Store) Close() error {
	for _, stmt := range []*sql.Stmt{
		s.stmtInsertRun,
		s.stmtInsertSecond,
		s.stmtGetRun,
		s.stmtListRuns,
		s.stmtGetSeconds,
	} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return s.db.Close()
}

// SaveReport stores a run report and its per-second series atomically
// and returns the new run id.
func (s *Store) SaveReport(ctx context.Context, rep reflector.Report) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.StmtContext(ctx, s.stmtInsertRun).ExecContext(ctx,
		rep.Device,
		rep.StartedAt.UnixNano(),
		rep.FinishedAt.UnixNano(),
		rep.WindowSeconds,
		int64(rep.TotalPackets),
		rep.Average(),
		rep.Interrupted,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	insertSecond := tx.StmtContext(ctx, s.stmtInsertSecond)
	for sec, pkts := range rep.PerSecond {
		if _, err := insertSecond.ExecContext(ctx, id, sec, int64(pkts)); err != nil {
			return 0, fmt.Errorf("insert second %d: %w", sec, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	s.logger.Debug("saved run report", "run_id", id, "device", rep.Device, "total_packets", rep.TotalPackets)
	return id, nil
}

// GetRun returns one run row and its per-second series.
func (s *Store) GetRun(ctx context.Context, id int64) (Run, []uint64, error) {
	run, err := scanRun(s.stmtGetRun.QueryRowContext(ctx, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, nil, fmt.Errorf("run %d: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, nil, fmt.Errorf("get run %d: %w", id, err)
	}

	rows, err := s.stmtGetSeconds.QueryContext(ctx, id)
	if err != nil {
		return Run{}, nil, fmt.Errorf("get run %d series: %w", id, err)
	}
	defer rows.Close()

	var series []uint64
	for rows.Next() {
		var sec int
		var pkts int64
		if err := rows.Scan(&sec, &pkts); err != nil {
			return Run{}, nil, fmt.Errorf("scan run %d series: %w", id, err)
		}
		for len(series) <= sec {
			series = append(series, 0)
		}
		series[sec] = uint64(pkts)
	}
	if err := rows.Err(); err != nil {
		return Run{}, nil, fmt.Errorf("iterate run %d series: %w", id, err)
	}
	return run, series, nil
}

// ListRuns returns all run rows, most recent first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.stmtListRuns.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run               Run
		started, finished int64
		totalPackets      int64
	)
	if err := row.Scan(&run.ID, &run.Device, &started, &finished,
		&run.WindowSeconds, &totalPackets, &run.AvgPPS, &run.Interrupted); err != nil {
		return Run{}, err
	}
	run.StartedAt = time.Unix(0, started)
	run.FinishedAt = time.Unix(0, finished)
	run.TotalPackets = uint64(totalPackets)
	return run, nil
}
