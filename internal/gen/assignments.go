package gen

import (
	"fmt"

	"github.com/eduforge/eduforge/internal/model"
	"github.com/eduforge/eduforge/internal/synth"
)

// GenerateAssignments creates a handful of assignments per course. Due
// dates always land inside the owning course's active window.
func (c *Context) GenerateAssignments() ([]model.Assignment, error) {
	if len(c.Courses) == 0 {
		return nil, fmt.Errorf("cannot generate assignments: %w", ErrNoCandidates)
	}

	var assignments []model.Assignment
	for _, course := range c.Courses {
		n := c.Source.IntBetween(c.Policy.AssignmentsPerCourseMin, c.Policy.AssignmentsPerCourseMax)
		for i := 0; i < n; i++ {
			assignments = append(assignments, model.Assignment{
				ID:             c.nextID(model.TableAssignments.Name),
				CourseID:       course.ID,
				AssignmentType: synth.Pick(c.Source, c.Policy.AssignmentTypes),
				Title:          fmt.Sprintf("Assignment %d", i+1),
				Description:    c.Source.Paragraph(3),
				MaxScore:       c.Source.IntBetween(c.Policy.MaxScoreMin/5, c.Policy.MaxScoreMax/5) * 5,
				DueDate:        model.NewDate(c.Source.DateBetween(course.StartDate.Time, course.EndDate.Time)),
			})
		}
	}
	c.Assignments = assignments
	return assignments, nil
}

// GenerateAssignmentGrades is a fan-out stage: one job per assignment,
// grading up to K students enrolled in the assignment's course. Students
// outside the course never receive a score. Submission lands before the
// due date, grading one to seven days after submission.
func (c *Context) GenerateAssignmentGrades(pool *Pool) ([]model.AssignmentGrade, error) {
	results := make([][]model.AssignmentGrade, len(c.Assignments))

	err := pool.Map(len(c.Assignments), func(i int) error {
		assignment := c.Assignments[i]
		candidates := c.enrolledByCourse[assignment.CourseID]
		if len(candidates) == 0 {
			c.recordSkip("assignment_grades:course_without_enrollments")
			return nil
		}

		src := c.Source.Derive("assignment_grades", i)
		due := assignment.DueDate.Time

		picked := synth.Sample(src, candidates, c.Policy.SubmissionsPerAssignment)
		rows := make([]model.AssignmentGrade, 0, len(picked))
		for _, studentID := range picked {
			submitted := src.DateTimeBetween(due.AddDate(0, 0, -14), due)
			rows = append(rows, model.AssignmentGrade{
				AssignmentID: assignment.ID,
				StudentID:    studentID,
				Score:        src.FloatBetween(0, float64(assignment.MaxScore), 1),
				SubmittedAt:  submitted,
				GradedAt:     submitted.AddDate(0, 0, src.IntBetween(1, 7)),
				Feedback:     src.Sentence(6, 12),
			})
		}
		results[i] = rows
		return nil
	})
	if err != nil {
		return nil, err
	}

	var grades []model.AssignmentGrade
	for i := range results {
		for _, g := range results[i] {
			g.ID = c.nextID(model.TableAssignmentGrades.Name)
			grades = append(grades, g)
		}
	}
	return grades, nil
}
