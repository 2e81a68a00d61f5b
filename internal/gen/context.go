// Package gen holds the entity generators. All state for one run lives
// on a Context value passed down explicitly; nothing is package-level, so
// two runs never share caches.
package gen

import (
	"sync"
	"time"

	"github.com/eduforge/eduforge/internal/config"
	"github.com/eduforge/eduforge/internal/model"
	"github.com/eduforge/eduforge/internal/registry"
	"github.com/eduforge/eduforge/internal/synth"
)

// Context carries the per-run configuration, the value source, the
// uniqueness registry, and the in-memory row/id caches later stages read.
// Parent lookups never go back to the store.
type Context struct {
	Cfg    *config.Config
	Policy *config.Policy
	Source *synth.Source
	Reg    *registry.Registry

	YearStart time.Time
	YearEnd   time.Time

	Departments []model.Department
	Teachers    []model.Teacher
	Students    []model.Student
	Courses     []model.Course
	Slots       []model.ScheduleSlot
	Enrollments []model.Enrollment
	Assignments []model.Assignment

	teachersByDept   map[int64][]int64
	studentsByDept   map[int64][]int64
	enrolledByCourse map[int64][]int64

	next map[string]int64

	mu      sync.Mutex
	skipped map[string]int
}

func NewContext(cfg *config.Config, policy *config.Policy) (*Context, error) {
	start, end, err := cfg.Window()
	if err != nil {
		return nil, err
	}
	return &Context{
		Cfg:              cfg,
		Policy:           policy,
		Source:           synth.New(cfg.Seed),
		Reg:              registry.New(cfg.MaxAttempts),
		YearStart:        start,
		YearEnd:          end,
		teachersByDept:   make(map[int64][]int64),
		studentsByDept:   make(map[int64][]int64),
		enrolledByCourse: make(map[int64][]int64),
		next:             make(map[string]int64),
		skipped:          make(map[string]int),
	}, nil
}

func (c *Context) nextID(table string) int64 {
	c.next[table]++
	return c.next[table]
}

func (c *Context) recordSkip(stage string) {
	c.mu.Lock()
	c.skipped[stage]++
	c.mu.Unlock()
}

// Skipped returns how many fan-out units a stage skipped for lack of
// parent candidates.
func (c *Context) Skipped(stage string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.skipped[stage]
}

// EnrolledStudents exposes the (course -> enrolled student ids) cache.
func (c *Context) EnrolledStudents(courseID int64) []int64 {
	return c.enrolledByCourse[courseID]
}

// Rows converts a generated slice into the writer's flat row form.
func Rows[T interface{ Values() []any }](items []T) [][]any {
	rows := make([][]any, len(items))
	for i, it := range items {
		rows[i] = it.Values()
	}
	return rows
}
