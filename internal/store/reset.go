package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/eduforge/eduforge/internal/model"
)

// ResetStatements returns the truncation plan: one statement per table in
// reverse dependency order so children are cleared before their parents.
func ResetStatements(provider string) []string {
	tables := model.TablesInOrder
	stmts := make([]string, 0, len(tables))
	for i := len(tables) - 1; i >= 0; i-- {
		name := tables[i].Name
		switch provider {
		case "postgresql", "postgres":
			stmts = append(stmts, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", name))
		case "mysql":
			stmts = append(stmts, fmt.Sprintf("TRUNCATE TABLE %s", name))
		default:
			stmts = append(stmts, fmt.Sprintf("DELETE FROM %s", name))
		}
	}
	return stmts
}

// Reset truncates every target table. Running it against already-empty
// tables is a no-op, so the step is idempotent.
func Reset(ctx context.Context, conn Conn, provider string) error {
	color.Yellow("Truncating tables...")

	// The whole pass runs on one pinned session: FOREIGN_KEY_CHECKS is
	// MySQL session state, so the toggle and the truncates must not be
	// spread across pooled connections.
	sess, err := conn.Session(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	// MySQL refuses to truncate a table referenced by a foreign key even
	// when the child is already empty, so checks are off for the pass.
	if provider == "mysql" {
		if err := sess.Exec(ctx, "SET FOREIGN_KEY_CHECKS=0"); err != nil {
			return fmt.Errorf("failed to disable foreign key checks: %w", err)
		}
		defer sess.Exec(ctx, "SET FOREIGN_KEY_CHECKS=1")
	}

	var errs []string
	for _, stmt := range ResetStatements(provider) {
		if err := sess.Exec(ctx, stmt); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", stmt, err))
			color.Yellow("  failed: %s: %v", stmt, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("reset errors: %s", strings.Join(errs, "; "))
	}

	color.Green("Tables truncated")
	return nil
}
