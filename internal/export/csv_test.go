package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eduforge/eduforge/internal/model"
)

func TestSinkWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewCSVSink(dir)
	if err != nil {
		t.Fatalf("NewCSVSink: %v", err)
	}

	first := [][]any{
		{int64(1), "Engineering", nil},
		{int64(2), "Medicine", nil},
	}
	second := [][]any{
		{int64(3), "Law", int64(7)},
	}
	if err := sink.Append(model.TableDepartments, first); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if err := sink.Append(model.TableDepartments, second); err != nil {
		t.Fatalf("second append: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "departments.csv"))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "department_id,department_name,head_teacher_id" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != "1,Engineering," {
		t.Errorf("nil should render empty: %q", lines[1])
	}
	if lines[3] != "3,Law,7" {
		t.Errorf("appended row malformed: %q", lines[3])
	}
	if strings.Count(string(data), "department_id") != 1 {
		t.Error("header written more than once")
	}
}

func TestSinkSeparatesTables(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewCSVSink(dir)
	if err != nil {
		t.Fatalf("NewCSVSink: %v", err)
	}

	if err := sink.Append(model.TableDepartments, [][]any{{int64(1), "Engineering", nil}}); err != nil {
		t.Fatalf("append departments: %v", err)
	}
	if err := sink.Append(model.TableEnrollments, [][]any{{int64(1), int64(2), int64(3), model.NewDate(time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC))}}); err != nil {
		t.Fatalf("append enrollments: %v", err)
	}

	for _, name := range []string{"departments.csv", "enrollments.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

func TestFormatValue(t *testing.T) {
	date := model.NewDate(time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC))
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{date, "2024-09-01"},
		{ts, "2025-03-14 09:26:53"},
		{4.5, "4.5"},
		{float64(3), "3.0"},
		{int64(42), "42"},
		{"hello", "hello"},
		{[]byte("raw"), "raw"},
	}
	for _, tc := range cases {
		if got := FormatValue(tc.in); got != tc.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
