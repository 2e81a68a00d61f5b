package runner

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/eduforge/eduforge/internal/config"
	"github.com/eduforge/eduforge/internal/store"
)

// memConn counts committed statements per table and can fail every
// transaction touching one table name.
type memConn struct {
	mu        sync.Mutex
	execs     map[string]int // leading keyword + table -> count
	failTable string
	resets    int
	sessions  int
}

type memTx struct {
	c       *memConn
	pending []string
}

func newMemConn() *memConn {
	return &memConn{execs: make(map[string]int)}
}

func stmtKey(query string) string {
	fields := strings.Fields(query)
	if len(fields) < 3 {
		return query
	}
	switch fields[0] {
	case "INSERT":
		return "INSERT " + fields[2]
	case "UPDATE":
		return "UPDATE " + fields[1]
	case "TRUNCATE", "DELETE":
		return "RESET"
	}
	return fields[0]
}

func (c *memConn) Exec(ctx context.Context, query string, args ...any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if stmtKey(query) == "RESET" {
		c.resets++
	}
	return nil
}

func (c *memConn) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, errors.New("not implemented")
}

func (c *memConn) Begin(ctx context.Context) (store.Tx, error) {
	return &memTx{c: c}, nil
}

func (c *memConn) Session(ctx context.Context) (store.Session, error) {
	c.mu.Lock()
	c.sessions++
	c.mu.Unlock()
	return &memSession{c: c}, nil
}

func (c *memConn) Close() error { return nil }

type memSession struct {
	c *memConn
}

func (s *memSession) Exec(ctx context.Context, query string, args ...any) error {
	return s.c.Exec(ctx, query, args...)
}

func (s *memSession) Close() error { return nil }

func (t *memTx) Exec(ctx context.Context, query string, args ...any) error {
	if t.c.failTable != "" && strings.Contains(query, t.c.failTable) {
		return errors.New("table is locked")
	}
	t.pending = append(t.pending, stmtKey(query))
	return nil
}

func (t *memTx) Commit() error {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	for _, k := range t.pending {
		t.c.execs[k]++
	}
	t.pending = nil
	return nil
}

func (t *memTx) Rollback() error {
	t.pending = nil
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{
		Counts: config.Counts{
			Departments: 3,
			Teachers:    20,
			Students:    300,
			Grades:      1000,
		},
		Seed:        42,
		BatchSize:   100,
		Workers:     4,
		MaxAttempts: 1000,
		AcademicYear: config.AcademicYear{
			Start: "2024-09-01",
			End:   "2025-06-30",
		},
	}
	cfg.Database.Provider = "mysql"
	return cfg
}

func TestRunCompletesAllStages(t *testing.T) {
	conn := newMemConn()
	r, err := New(testConfig(), config.DefaultPolicy(), conn)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	report, err := r.Run(context.Background(), false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.State != StateCompleted {
		t.Errorf("expected completed state, got %s", report.State)
	}
	if len(report.Stages) != 11 {
		t.Fatalf("expected 11 stages, got %d", len(report.Stages))
	}
	if report.RunID == "" {
		t.Error("run id should be set")
	}
	if conn.resets != 0 {
		t.Errorf("reset should not run without the flag, got %d statements", conn.resets)
	}

	for _, sr := range report.Stages {
		if sr.Err != nil {
			t.Errorf("stage %s failed: %v", sr.Stage, sr.Err)
		}
		if sr.Attempted != sr.Committed {
			t.Errorf("stage %s: %d attempted but %d committed", sr.Stage, sr.Attempted, sr.Committed)
		}
	}

	if got := report.Stages[0].Committed; got != 3 {
		t.Errorf("expected 3 departments, got %d", got)
	}
	if got := report.Stages[1].Committed; got != 20 {
		t.Errorf("expected 20 teachers, got %d", got)
	}
	if report.Stages[2].Stage != "assign_heads" || report.Stages[2].Committed != 3 {
		t.Errorf("head backfill should cover every department: %+v", report.Stages[2])
	}
	if got := report.Stages[3].Committed; got != 300 {
		t.Errorf("expected 300 students, got %d", got)
	}

	if conn.execs["UPDATE departments"] != 3 {
		t.Errorf("expected 3 head updates, got %d", conn.execs["UPDATE departments"])
	}
	if conn.execs["INSERT teachers"] == 0 {
		t.Error("teacher inserts never committed")
	}
}

func TestRunWithResetTruncatesFirst(t *testing.T) {
	conn := newMemConn()
	r, err := New(testConfig(), config.DefaultPolicy(), conn)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := r.Run(context.Background(), true); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if conn.resets != 10 {
		t.Errorf("expected one truncate per table, got %d", conn.resets)
	}
	if conn.sessions != 1 {
		t.Errorf("reset should pin a single session, acquired %d", conn.sessions)
	}
}

func TestRunAbortsOnStageFailure(t *testing.T) {
	conn := newMemConn()
	conn.failTable = "courses"
	r, err := New(testConfig(), config.DefaultPolicy(), conn)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	report, err := r.Run(context.Background(), false)
	if err == nil {
		t.Fatal("expected the run to abort")
	}
	if report.State != StateAborted {
		t.Errorf("expected aborted state, got %s", report.State)
	}

	last := report.Stages[len(report.Stages)-1]
	if last.Stage != "courses" {
		t.Errorf("run should stop at the failing stage, stopped at %s", last.Stage)
	}
	if last.Err == nil {
		t.Error("failing stage should carry its error")
	}
	if last.Committed != 0 {
		t.Errorf("no course chunk should commit, got %d", last.Committed)
	}

	// Earlier stages stay committed: non-atomic by design.
	if conn.execs["INSERT students"] == 0 {
		t.Error("student rows committed before the failure should remain")
	}
	if conn.execs["INSERT courses"] != 0 {
		t.Errorf("failed stage should leave no committed rows, got %d", conn.execs["INSERT courses"])
	}
}

func TestRunIsDeterministicAcrossWorkerCounts(t *testing.T) {
	run := func(workers int) map[string]int {
		cfg := testConfig()
		cfg.Workers = workers
		conn := newMemConn()
		r, err := New(cfg, config.DefaultPolicy(), conn)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if _, err := r.Run(context.Background(), false); err != nil {
			t.Fatalf("Run: %v", err)
		}
		return conn.execs
	}

	one := run(1)
	eight := run(8)
	for k, v := range one {
		if eight[k] != v {
			t.Errorf("statement counts differ for %s: %d with 1 worker, %d with 8", k, v, eight[k])
		}
	}
}
