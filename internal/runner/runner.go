// Package runner sequences the generation stages in dependency order,
// hands every row set to the batch writer, and aborts the run on the
// first stage failure.
package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/eduforge/eduforge/internal/config"
	"github.com/eduforge/eduforge/internal/export"
	"github.com/eduforge/eduforge/internal/gen"
	"github.com/eduforge/eduforge/internal/model"
	"github.com/eduforge/eduforge/internal/store"
	"github.com/eduforge/eduforge/internal/writer"
)

type State string

const (
	StateCompleted State = "completed"
	StateAborted   State = "aborted"
)

type StageReport struct {
	Stage     string
	Attempted int
	Committed int
	Err       error
}

type Report struct {
	RunID   string
	State   State
	Stages  []StageReport
	Elapsed time.Duration
}

type Runner struct {
	cfg    *config.Config
	policy *config.Policy
	conn   store.Conn
	w      *writer.BatchWriter
}

func New(cfg *config.Config, policy *config.Policy, conn store.Conn) (*Runner, error) {
	w := writer.New(conn, cfg.BatchSize, store.Placeholder(cfg.Database.Provider))
	return &Runner{cfg: cfg, policy: policy, conn: conn, w: w}, nil
}

// Run executes the full pipeline. With reset set, every table is
// truncated in reverse dependency order first.
func (r *Runner) Run(ctx context.Context, reset bool) (*Report, error) {
	started := time.Now()
	report := &Report{
		RunID: uuid.NewString(),
		State: StateAborted,
	}

	if r.cfg.Export.Enabled {
		sink, err := export.NewCSVSink(filepath.Join(r.cfg.Export.Path, "run_"+report.RunID[:8]))
		if err != nil {
			return report, err
		}
		r.w.Mirror(sink)
	}

	if reset {
		if err := store.Reset(ctx, r.conn, r.cfg.Database.Provider); err != nil {
			return report, fmt.Errorf("reset failed: %w", err)
		}
	}

	gctx, err := gen.NewContext(r.cfg, r.policy)
	if err != nil {
		return report, err
	}

	pool := gen.NewPool(r.cfg.Workers)
	defer pool.Close()

	stages := []struct {
		name string
		run  func() (model.Table, [][]any, error)
	}{
		{"departments", func() (model.Table, [][]any, error) {
			rows, err := gctx.GenerateDepartments()
			return model.TableDepartments, gen.Rows(rows), err
		}},
		{"teachers", func() (model.Table, [][]any, error) {
			rows, err := gctx.GenerateTeachers()
			return model.TableTeachers, gen.Rows(rows), err
		}},
		{"assign_heads", nil}, // handled below, it is an update not an insert
		{"students", func() (model.Table, [][]any, error) {
			rows, err := gctx.GenerateStudents()
			return model.TableStudents, gen.Rows(rows), err
		}},
		{"courses", func() (model.Table, [][]any, error) {
			rows, err := gctx.GenerateCourses()
			return model.TableCourses, gen.Rows(rows), err
		}},
		{"schedule", func() (model.Table, [][]any, error) {
			rows, err := gctx.GenerateSchedule()
			return model.TableSchedule, gen.Rows(rows), err
		}},
		{"enrollments", func() (model.Table, [][]any, error) {
			rows, err := gctx.GenerateEnrollments(pool)
			return model.TableEnrollments, gen.Rows(rows), err
		}},
		{"grades", func() (model.Table, [][]any, error) {
			rows, err := gctx.GenerateGrades()
			return model.TableGrades, gen.Rows(rows), err
		}},
		{"attendance", func() (model.Table, [][]any, error) {
			rows, err := gctx.GenerateAttendance(pool)
			return model.TableAttendance, gen.Rows(rows), err
		}},
		{"assignments", func() (model.Table, [][]any, error) {
			rows, err := gctx.GenerateAssignments()
			return model.TableAssignments, gen.Rows(rows), err
		}},
		{"assignment_grades", func() (model.Table, [][]any, error) {
			rows, err := gctx.GenerateAssignmentGrades(pool)
			return model.TableAssignmentGrades, gen.Rows(rows), err
		}},
	}

	color.Cyan("Starting dataset generation (seed %d, run %s)", r.cfg.Seed, report.RunID[:8])
	bar := progressbar.Default(int64(len(stages)), "stages")

	for _, stage := range stages {
		var sr StageReport
		if stage.name == "assign_heads" {
			sr = r.assignHeads(ctx, gctx)
		} else {
			sr = r.insertStage(ctx, stage.name, stage.run)
		}
		report.Stages = append(report.Stages, sr)
		bar.Add(1)

		if sr.Err != nil {
			report.Elapsed = time.Since(started)
			return report, fmt.Errorf("stage %s failed: %w", sr.Stage, sr.Err)
		}
	}

	report.State = StateCompleted
	report.Elapsed = time.Since(started)
	return report, nil
}

func (r *Runner) insertStage(ctx context.Context, name string, run func() (model.Table, [][]any, error)) StageReport {
	sr := StageReport{Stage: name}

	table, rows, err := run()
	if err != nil {
		sr.Err = err
		return sr
	}

	res, err := r.w.Write(ctx, table, rows)
	sr.Attempted = res.Attempted
	sr.Committed = res.Committed
	sr.Err = err
	return sr
}

// assignHeads back-fills departments.head_teacher_id in one transaction,
// the only post-insert mutation in a run.
func (r *Runner) assignHeads(ctx context.Context, gctx *gen.Context) StageReport {
	sr := StageReport{Stage: "assign_heads"}

	deps, err := gctx.AssignHeads()
	if err != nil {
		sr.Err = err
		return sr
	}
	sr.Attempted = len(deps)

	tx, err := r.conn.Begin(ctx)
	if err != nil {
		sr.Err = fmt.Errorf("failed to begin transaction: %w", err)
		return sr
	}
	placeholder := store.Placeholder(r.cfg.Database.Provider)
	for _, d := range deps {
		query, args, err := squirrel.Update(model.TableDepartments.Name).
			Set("head_teacher_id", *d.HeadTeacherID).
			Where(squirrel.Eq{"department_id": d.ID}).
			PlaceholderFormat(placeholder).
			ToSql()
		if err != nil {
			tx.Rollback()
			sr.Err = fmt.Errorf("failed to build head update: %w", err)
			return sr
		}
		if err := tx.Exec(ctx, query, args...); err != nil {
			tx.Rollback()
			sr.Err = err
			return sr
		}
	}
	if err := tx.Commit(); err != nil {
		tx.Rollback()
		sr.Err = fmt.Errorf("failed to commit head updates: %w", err)
		return sr
	}
	sr.Committed = len(deps)
	return sr
}

// PrintSummary writes the per-stage attempted/committed table and the
// terminal state, matching what aborted runs need for triage.
func (rep *Report) PrintSummary() {
	fmt.Println()
	color.Cyan("Run %s: %s in %s", rep.RunID[:8], rep.State, rep.Elapsed.Round(time.Millisecond))
	for _, sr := range rep.Stages {
		if sr.Err != nil {
			color.Red("  %-18s attempted %-8d committed %-8d FAILED: %v", sr.Stage, sr.Attempted, sr.Committed, sr.Err)
			continue
		}
		color.Green("  %-18s attempted %-8d committed %-8d", sr.Stage, sr.Attempted, sr.Committed)
	}
}
