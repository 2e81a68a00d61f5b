package gen

import (
	"fmt"

	"github.com/eduforge/eduforge/internal/model"
	"github.com/eduforge/eduforge/internal/synth"
)

// GenerateCourses spawns a policy-defined number of courses per
// department. The teacher is drawn from the course's own department when
// it has any; otherwise the pick falls back to the global teacher pool so
// an unstaffed department still gets a referentially valid course.
func (c *Context) GenerateCourses() ([]model.Course, error) {
	if len(c.Teachers) == 0 {
		return nil, fmt.Errorf("cannot generate courses: %w", ErrNoCandidates)
	}

	var courses []model.Course
	for _, dept := range c.Departments {
		n := c.Source.IntBetween(c.Policy.CoursesPerDeptMin, c.Policy.CoursesPerDeptMax)
		for i := 0; i < n; i++ {
			weeks := c.Source.IntBetween(c.Policy.CourseMinWeeks, c.Policy.CourseMaxWeeks)
			latestStart := c.YearEnd.AddDate(0, 0, -weeks*7)
			if latestStart.Before(c.YearStart) {
				latestStart = c.YearStart
			}
			start := c.Source.DateBetween(c.YearStart, latestStart)
			end := start.AddDate(0, 0, weeks*7)
			if end.After(c.YearEnd) {
				end = c.YearEnd
			}

			courses = append(courses, model.Course{
				ID:           c.nextID(model.TableCourses.Name),
				Name:         fmt.Sprintf("%s %d", synth.Pick(c.Source, c.Policy.CourseNameCatalog), c.Source.IntBetween(100, 999)),
				Description:  c.Source.Sentence(6, 12),
				Credits:      c.Source.IntBetween(c.Policy.CourseCreditsMin, c.Policy.CourseCreditsMax),
				TeacherID:    c.pickCourseTeacher(dept.ID),
				DepartmentID: dept.ID,
				StartDate:    model.NewDate(start),
				EndDate:      model.NewDate(end),
			})
		}
	}
	c.Courses = courses
	return courses, nil
}

func (c *Context) pickCourseTeacher(deptID int64) int64 {
	if pool := c.teachersByDept[deptID]; len(pool) > 0 {
		return synth.Pick(c.Source, pool)
	}
	c.recordSkip("courses:department_teacher_fallback")
	return synth.Pick(c.Source, c.Teachers).ID
}
