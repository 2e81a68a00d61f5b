package gen

import (
	"fmt"

	"github.com/eduforge/eduforge/internal/model"
	"github.com/eduforge/eduforge/internal/synth"
)

// GenerateDepartments takes the first N names from the curated catalog.
// Department names are fixed, never synthesized.
func (c *Context) GenerateDepartments() ([]model.Department, error) {
	count := c.Cfg.Counts.Departments
	if count > len(c.Policy.DepartmentNames) {
		return nil, fmt.Errorf("requested %d departments but the catalog has only %d names", count, len(c.Policy.DepartmentNames))
	}

	deps := make([]model.Department, 0, count)
	for i := 0; i < count; i++ {
		deps = append(deps, model.Department{
			ID:   c.nextID(model.TableDepartments.Name),
			Name: c.Policy.DepartmentNames[i],
		})
	}
	c.Departments = deps
	return deps, nil
}

// AssignHeads back-fills each department's head once teachers exist. A
// department with no teachers of its own falls back to the global pool.
func (c *Context) AssignHeads() ([]model.Department, error) {
	if len(c.Teachers) == 0 {
		return nil, fmt.Errorf("cannot assign department heads: %w", ErrNoCandidates)
	}
	for i := range c.Departments {
		pool := c.teachersByDept[c.Departments[i].ID]
		var head int64
		if len(pool) > 0 {
			head = synth.Pick(c.Source, pool)
		} else {
			head = synth.Pick(c.Source, c.Teachers).ID
		}
		c.Departments[i].HeadTeacherID = &head
	}
	return c.Departments, nil
}
