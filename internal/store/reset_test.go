package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/Masterminds/squirrel"

	"github.com/eduforge/eduforge/internal/model"
)

// sessionConn hands out numbered sessions and records which session ran
// each statement.
type sessionConn struct {
	sessions int
	stmts    []sessionStmt
	last     *recordSession
}

type sessionStmt struct {
	session int
	query   string
}

type recordSession struct {
	c      *sessionConn
	id     int
	closed bool
}

func (c *sessionConn) Exec(ctx context.Context, query string, args ...any) error {
	c.stmts = append(c.stmts, sessionStmt{session: 0, query: query})
	return nil
}

func (c *sessionConn) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, errors.New("not implemented")
}

func (c *sessionConn) Begin(ctx context.Context) (Tx, error) {
	return nil, errors.New("not implemented")
}

func (c *sessionConn) Session(ctx context.Context) (Session, error) {
	c.sessions++
	c.last = &recordSession{c: c, id: c.sessions}
	return c.last, nil
}

func (c *sessionConn) Close() error { return nil }

func (s *recordSession) Exec(ctx context.Context, query string, args ...any) error {
	s.c.stmts = append(s.c.stmts, sessionStmt{session: s.id, query: query})
	return nil
}

func (s *recordSession) Close() error {
	s.closed = true
	return nil
}

func TestResetStatementsReverseDependencyOrder(t *testing.T) {
	stmts := ResetStatements("mysql")
	if len(stmts) != len(model.TablesInOrder) {
		t.Fatalf("expected %d statements, got %d", len(model.TablesInOrder), len(stmts))
	}
	if stmts[0] != "TRUNCATE TABLE assignment_grades" {
		t.Errorf("deepest child should clear first, got %q", stmts[0])
	}
	if stmts[len(stmts)-1] != "TRUNCATE TABLE departments" {
		t.Errorf("root parent should clear last, got %q", stmts[len(stmts)-1])
	}
	for i, table := range model.TablesInOrder {
		stmt := stmts[len(stmts)-1-i]
		if !strings.Contains(stmt, table.Name) {
			t.Errorf("statement %q does not match table %s", stmt, table.Name)
		}
	}
}

func TestResetStatementsPerProvider(t *testing.T) {
	pg := ResetStatements("postgresql")
	if !strings.HasSuffix(pg[0], "RESTART IDENTITY CASCADE") {
		t.Errorf("postgres should cascade and restart identities: %q", pg[0])
	}
	lite := ResetStatements("sqlite")
	if !strings.HasPrefix(lite[0], "DELETE FROM") {
		t.Errorf("sqlite has no TRUNCATE, expected DELETE: %q", lite[0])
	}
}

func TestResetRunsOnOnePinnedSession(t *testing.T) {
	conn := &sessionConn{}
	if err := Reset(context.Background(), conn, "mysql"); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	if conn.sessions != 1 {
		t.Fatalf("expected one pinned session, acquired %d", conn.sessions)
	}
	// FOREIGN_KEY_CHECKS is session state: every statement of the pass,
	// toggles included, must run on that session.
	for _, st := range conn.stmts {
		if st.session != 1 {
			t.Fatalf("statement %q ran outside the pinned session", st.query)
		}
	}

	if len(conn.stmts) != len(model.TablesInOrder)+2 {
		t.Fatalf("expected FK toggles bracketing %d truncates, got %d statements",
			len(model.TablesInOrder), len(conn.stmts))
	}
	if conn.stmts[0].query != "SET FOREIGN_KEY_CHECKS=0" {
		t.Errorf("pass should open with checks off, got %q", conn.stmts[0].query)
	}
	if last := conn.stmts[len(conn.stmts)-1].query; last != "SET FOREIGN_KEY_CHECKS=1" {
		t.Errorf("pass should close with checks back on, got %q", last)
	}
	if !conn.last.closed {
		t.Error("the pinned session must be released after the pass")
	}
}

func TestResetWithoutSessionStateForPostgres(t *testing.T) {
	conn := &sessionConn{}
	if err := Reset(context.Background(), conn, "postgresql"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if len(conn.stmts) != len(model.TablesInOrder) {
		t.Fatalf("postgres pass should be truncates only, got %d statements", len(conn.stmts))
	}
	for _, st := range conn.stmts {
		if strings.Contains(st.query, "FOREIGN_KEY_CHECKS") {
			t.Errorf("postgres pass must not toggle mysql session state: %q", st.query)
		}
	}
}

func TestDriverNames(t *testing.T) {
	cases := map[string]string{
		"postgresql": "pgx",
		"postgres":   "pgx",
		"mysql":      "mysql",
		"sqlite":     "sqlite3",
		"sqlite3":    "sqlite3",
	}
	for provider, want := range cases {
		if got := driverName(provider); got != want {
			t.Errorf("driverName(%q) = %q, want %q", provider, got, want)
		}
	}
}

func TestPlaceholderPerProvider(t *testing.T) {
	if Placeholder("postgresql") != squirrel.PlaceholderFormat(squirrel.Dollar) {
		t.Error("postgres should use dollar placeholders")
	}
	if Placeholder("mysql") != squirrel.PlaceholderFormat(squirrel.Question) {
		t.Error("mysql should use question mark placeholders")
	}
	if Placeholder("sqlite") != squirrel.PlaceholderFormat(squirrel.Question) {
		t.Error("sqlite should use question mark placeholders")
	}
}
