package gen

import (
	"fmt"

	"github.com/eduforge/eduforge/internal/model"
	"github.com/eduforge/eduforge/internal/registry"
	"github.com/eduforge/eduforge/internal/synth"
)

const categoryGrade = "grade_entry"

// GenerateGrades samples grade entries over existing enrollment pairs.
// The dedup key is (student, course, exam type): with E exam types a pair
// can carry at most E grades, so the target is capped at E*len(pairs)
// up front. Individual collisions regenerate the pick, bounded by the
// registry ceiling.
func (c *Context) GenerateGrades() ([]model.Grade, error) {
	if len(c.Enrollments) == 0 {
		return nil, fmt.Errorf("cannot generate grades: %w", ErrNoCandidates)
	}

	max := len(c.Enrollments) * len(c.Policy.ExamTypes)
	target := c.Cfg.Counts.Grades
	if target > max {
		c.recordSkip("grades:target_capped")
		target = max
	}

	// Rejection sampling stalls when the target covers most of the
	// keyspace, so the dense regime enumerates every free combination
	// and shuffle-samples instead.
	if target*2 >= max {
		return c.generateGradesDense(target)
	}

	grades := make([]model.Grade, 0, target)
	for len(grades) < target {
		g, err := c.generateGrade()
		if err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, nil
}

func (c *Context) generateGradesDense(target int) ([]model.Grade, error) {
	type combo struct {
		student, course int64
		examType        string
	}
	combos := make([]combo, 0, len(c.Enrollments)*len(c.Policy.ExamTypes))
	for _, e := range c.Enrollments {
		for _, et := range c.Policy.ExamTypes {
			key := fmt.Sprintf("%d:%d:%s", e.StudentID, e.CourseID, et)
			if c.Reg.TryReserve(categoryGrade, key) {
				combos = append(combos, combo{e.StudentID, e.CourseID, et})
			}
		}
	}
	if target > len(combos) {
		target = len(combos)
	}

	picked := synth.Sample(c.Source, combos, target)
	grades := make([]model.Grade, 0, target)
	for _, cb := range picked {
		var value float64
		if c.Policy.GradeUniform {
			value = c.Source.FloatBetween(c.Policy.GradeMin, c.Policy.GradeMax, 1)
		} else {
			value = c.Source.WeightedFloat(c.Policy.GradeScale, c.Policy.GradeScaleWeights)
		}
		grades = append(grades, model.Grade{
			ID:        c.nextID(model.TableGrades.Name),
			StudentID: cb.student,
			CourseID:  cb.course,
			Grade:     value,
			GradeDate: model.NewDate(c.Source.DateBetween(c.YearStart, c.YearEnd)),
			ExamType:  cb.examType,
		})
	}
	return grades, nil
}

func (c *Context) generateGrade() (model.Grade, error) {
	for attempt := 0; attempt < c.Reg.MaxAttempts(); attempt++ {
		e := synth.Pick(c.Source, c.Enrollments)
		examType := synth.Pick(c.Source, c.Policy.ExamTypes)
		key := fmt.Sprintf("%d:%d:%s", e.StudentID, e.CourseID, examType)
		if !c.Reg.TryReserve(categoryGrade, key) {
			continue
		}

		var value float64
		if c.Policy.GradeUniform {
			value = c.Source.FloatBetween(c.Policy.GradeMin, c.Policy.GradeMax, 1)
		} else {
			value = c.Source.WeightedFloat(c.Policy.GradeScale, c.Policy.GradeScaleWeights)
		}
		return model.Grade{
			ID:        c.nextID(model.TableGrades.Name),
			StudentID: e.StudentID,
			CourseID:  e.CourseID,
			Grade:     value,
			GradeDate: model.NewDate(c.Source.DateBetween(c.YearStart, c.YearEnd)),
			ExamType:  examType,
		}, nil
	}
	return model.Grade{}, &registry.ExhaustionError{Category: categoryGrade, Attempts: c.Reg.MaxAttempts()}
}
