package gen

import (
	"github.com/eduforge/eduforge/internal/model"
	"github.com/eduforge/eduforge/internal/synth"
)

// GenerateEnrollments is a fan-out stage: one job per course, each
// sampling up to the per-course cap from the course's own department.
// Students never enroll across departments. A department with no
// students skips its courses' units; the skip shows up in the report.
//
// Jobs derive their own value source from (seed, stage, course index) and
// write into a pre-sized results slice, so the concatenated output is the
// same no matter how the pool schedules them. Ids are allocated after the
// barrier, in course order, for the same reason.
func (c *Context) GenerateEnrollments(pool *Pool) ([]model.Enrollment, error) {
	results := make([][]model.Enrollment, len(c.Courses))
	window := c.Policy.EnrollmentWindowDays

	err := pool.Map(len(c.Courses), func(i int) error {
		course := c.Courses[i]
		candidates := c.studentsByDept[course.DepartmentID]
		if len(candidates) == 0 {
			c.recordSkip("enrollments:empty_department")
			return nil
		}

		src := c.Source.Derive("enrollments", i)
		date := model.NewDate(src.DateBetween(
			c.YearStart.AddDate(0, 0, -window),
			c.YearStart.AddDate(0, 0, window),
		))

		picked := synth.Sample(src, candidates, c.Policy.EnrollmentsPerCourse)
		rows := make([]model.Enrollment, 0, len(picked))
		for _, studentID := range picked {
			rows = append(rows, model.Enrollment{
				StudentID:      studentID,
				CourseID:       course.ID,
				EnrollmentDate: date,
			})
		}
		results[i] = rows
		return nil
	})
	if err != nil {
		return nil, err
	}

	var enrollments []model.Enrollment
	for i := range results {
		for _, e := range results[i] {
			e.ID = c.nextID(model.TableEnrollments.Name)
			enrollments = append(enrollments, e)
			c.enrolledByCourse[e.CourseID] = append(c.enrolledByCourse[e.CourseID], e.StudentID)
		}
	}
	c.Enrollments = enrollments
	return enrollments, nil
}
