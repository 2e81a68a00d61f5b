package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/fatih/color"

	"github.com/eduforge/eduforge/internal/model"
	"github.com/eduforge/eduforge/internal/store"
)

// DumpTables exports every target table from the store into one CSV per
// table with a header row, and returns the directory it wrote.
func DumpTables(ctx context.Context, conn store.Conn, exportPath string) (string, error) {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	dir := filepath.Join(exportPath, fmt.Sprintf("export_%s", timestamp))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	for _, table := range model.TablesInOrder {
		if err := dumpTable(ctx, conn, table, dir); err != nil {
			return "", fmt.Errorf("failed to export table %s: %w", table.Name, err)
		}
		color.Green("  exported %s", table.Name)
	}
	return dir, nil
}

func dumpTable(ctx context.Context, conn store.Conn, table model.Table, dir string) error {
	query, args, err := squirrel.Select(table.Columns...).From(table.Name).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build select: %w", err)
	}

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	f, err := os.Create(filepath.Join(dir, table.Name+".csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(table.Columns); err != nil {
		return err
	}

	values := make([]any, len(table.Columns))
	ptrs := make([]any, len(table.Columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = FormatValue(v)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
