// Package export writes entity rows to flat CSV files: a per-run mirror
// sink fed chunk by chunk from the batch writer, and a standalone
// full-table export that dumps an existing database.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/eduforge/eduforge/internal/model"
)

// CSVSink appends committed chunks to one file per table under dir. The
// header row is written when a table's file is first created; later
// appends within the run never rewrite it.
type CSVSink struct {
	dir     string
	started map[string]bool
}

func NewCSVSink(dir string) (*CSVSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &CSVSink{
		dir:     dir,
		started: make(map[string]bool),
	}, nil
}

func (s *CSVSink) Append(table model.Table, rows [][]any) error {
	path := filepath.Join(s.dir, table.Name+".csv")

	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if !s.started[table.Name] {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to open csv file for %s: %w", table.Name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if !s.started[table.Name] {
		if err := w.Write(table.Columns); err != nil {
			return fmt.Errorf("failed to write csv header for %s: %w", table.Name, err)
		}
		s.started[table.Name] = true
	}
	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = FormatValue(v)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", table.Name, err)
		}
	}
	w.Flush()
	return w.Error()
}

// FormatValue renders a cell the same way on every run so seeded output
// is byte-identical.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case model.Date:
		return t.String()
	case time.Time:
		return t.Format("2006-01-02 15:04:05")
	case float64:
		return formatFloat(t)
	case float32:
		return formatFloat(float64(t))
	case []byte:
		return string(t)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatFloat(f float64) string {
	// One decimal place matches the generated score precision.
	return fmt.Sprintf("%.1f", f)
}
