package gen

import (
	"time"

	"github.com/eduforge/eduforge/internal/model"
	"github.com/eduforge/eduforge/internal/synth"
)

func minutesDuration(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

// GenerateAttendance is a fan-out stage: one job per schedule slot,
// marking up to K students who are enrolled in the slot's course. A slot
// whose course has no enrollments is skipped. Check-in times exist only
// for present students; notes only for absences.
func (c *Context) GenerateAttendance(pool *Pool) ([]model.Attendance, error) {
	results := make([][]model.Attendance, len(c.Slots))

	err := pool.Map(len(c.Slots), func(i int) error {
		slot := c.Slots[i]
		candidates := c.enrolledByCourse[slot.CourseID]
		if len(candidates) == 0 {
			c.recordSkip("attendance:course_without_enrollments")
			return nil
		}

		src := c.Source.Derive("attendance", i)
		date := model.NewDate(slot.ClassTime)

		picked := synth.Sample(src, candidates, c.Policy.AttendancePerSlot)
		rows := make([]model.Attendance, 0, len(picked))
		for _, studentID := range picked {
			status := src.Weighted(c.Policy.AttendanceStatuses, c.Policy.AttendanceWeights)
			a := model.Attendance{
				StudentID:      studentID,
				ScheduleID:     slot.ID,
				Status:         status,
				AttendanceDate: date,
			}
			switch status {
			case "present":
				check := slot.ClassTime.Add(-minutesDuration(src.IntBetween(0, 10))).Format("15:04:05")
				a.CheckTime = &check
			case "absent":
				note := src.Sentence(4, 8)
				a.Notes = &note
			}
			rows = append(rows, a)
		}
		results[i] = rows
		return nil
	})
	if err != nil {
		return nil, err
	}

	var attendance []model.Attendance
	for i := range results {
		for _, a := range results[i] {
			a.ID = c.nextID(model.TableAttendance.Name)
			attendance = append(attendance, a)
		}
	}
	return attendance, nil
}
