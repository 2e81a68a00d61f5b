package gen

import (
	"fmt"
	"time"

	"github.com/eduforge/eduforge/internal/model"
	"github.com/eduforge/eduforge/internal/registry"
	"github.com/eduforge/eduforge/internal/synth"
)

const categorySlot = "schedule_slot"

// GenerateSchedule creates class slots per course. The (classroom, class
// time) pair is fingerprinted through the registry; on a collision the
// whole slot is regenerated, bounded by the registry's attempt ceiling.
func (c *Context) GenerateSchedule() ([]model.ScheduleSlot, error) {
	if len(c.Courses) == 0 {
		return nil, fmt.Errorf("cannot generate schedule: %w", ErrNoCandidates)
	}

	var slots []model.ScheduleSlot
	for _, course := range c.Courses {
		n := c.Source.IntBetween(c.Policy.SlotsPerCourseMin, c.Policy.SlotsPerCourseMax)
		for i := 0; i < n; i++ {
			slot, err := c.generateSlot(course)
			if err != nil {
				return nil, err
			}
			slots = append(slots, slot)
		}
	}
	c.Slots = slots
	return slots, nil
}

func (c *Context) generateSlot(course model.Course) (model.ScheduleSlot, error) {
	for attempt := 0; attempt < c.Reg.MaxAttempts(); attempt++ {
		day, ok := c.weekday(course.StartDate.Time, course.EndDate.Time)
		if !ok {
			return model.ScheduleSlot{}, fmt.Errorf("course %d window %s to %s has no weekdays: %w",
				course.ID, course.StartDate, course.EndDate, ErrNoCandidates)
		}
		ts := synth.Pick(c.Source, c.Policy.TimeSlots)
		start, err := time.Parse("15:04", ts.Start)
		if err != nil {
			return model.ScheduleSlot{}, fmt.Errorf("invalid time slot %q in policy: %w", ts.Start, err)
		}
		classTime := time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), 0, 0, time.UTC)
		classroom := fmt.Sprintf("Building %d Room %d",
			c.Source.IntBetween(1, c.Policy.BuildingCount),
			c.Source.IntBetween(c.Policy.RoomMin, c.Policy.RoomMax))

		key := fmt.Sprintf("%s|%s", classroom, classTime.Format("2006-01-02 15:04"))
		if c.Reg.TryReserve(categorySlot, key) {
			return model.ScheduleSlot{
				ID:              c.nextID(model.TableSchedule.Name),
				CourseID:        course.ID,
				TeacherID:       course.TeacherID,
				Classroom:       classroom,
				ClassTime:       classTime,
				DurationMinutes: ts.Minutes,
			}, nil
		}
	}
	return model.ScheduleSlot{}, &registry.ExhaustionError{Category: categorySlot, Attempts: c.Reg.MaxAttempts()}
}

// weekday samples a date in [start, end] and rolls it forward past
// weekends, wrapping to the window start if the roll overshoots. The
// scan is bounded by the window length, so a window made entirely of
// weekend days reports failure instead of looping.
func (c *Context) weekday(start, end time.Time) (time.Time, bool) {
	d := c.Source.DateBetween(start, end)
	days := int(end.Sub(start).Hours()/24) + 1
	for i := 0; i < days; i++ {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			return d, true
		}
		d = d.AddDate(0, 0, 1)
		if d.After(end) {
			d = start
		}
	}
	return time.Time{}, false
}
