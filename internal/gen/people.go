package gen

import (
	"fmt"
	"strings"
	"time"

	"github.com/eduforge/eduforge/internal/model"
	"github.com/eduforge/eduforge/internal/synth"
)

const (
	categoryEmail = "email"
	categoryPhone = "phone"
)

func (c *Context) uniqueEmail(first, last, domain string) (string, error) {
	candidate := fmt.Sprintf("%s.%s@%s",
		strings.ToLower(first[:1]), strings.ToLower(last), domain)
	return c.Reg.Reserve(categoryEmail, candidate)
}

func (c *Context) uniquePhone() (string, error) {
	return c.Reg.Reserve(categoryPhone, c.Source.Phone())
}

// GenerateTeachers produces the teacher roster. Emails and phones are
// resolved through the registry so they stay unique across the whole run,
// students included.
func (c *Context) GenerateTeachers() ([]model.Teacher, error) {
	if len(c.Departments) == 0 {
		return nil, fmt.Errorf("cannot generate teachers: %w", ErrNoCandidates)
	}

	teachers := make([]model.Teacher, 0, c.Cfg.Counts.Teachers)
	for i := 0; i < c.Cfg.Counts.Teachers; i++ {
		gender := c.Source.Gender()
		first := c.Source.FirstName(gender)
		last := c.Source.LastName()

		email, err := c.uniqueEmail(first, last, c.Policy.FacultyEmailDomain)
		if err != nil {
			return nil, fmt.Errorf("failed to generate teacher email: %w", err)
		}
		phone, err := c.uniquePhone()
		if err != nil {
			return nil, fmt.Errorf("failed to generate teacher phone: %w", err)
		}

		dept := synth.Pick(c.Source, c.Departments)
		t := model.Teacher{
			ID:              c.nextID(model.TableTeachers.Name),
			FirstName:       first,
			LastName:        last,
			Email:           email,
			Phone:           phone,
			Qualification:   c.Source.Weighted(c.Policy.Qualifications, c.Policy.QualificationWeights),
			ExperienceYears: c.Source.IntBetween(3, 35),
			HireDate:        model.NewDate(c.Source.DateBetween(c.YearStart.AddDate(-30, 0, 0), c.YearStart.AddDate(-1, 0, 0))),
			DepartmentID:    dept.ID,
		}
		teachers = append(teachers, t)
		c.teachersByDept[dept.ID] = append(c.teachersByDept[dept.ID], t.ID)
	}
	c.Teachers = teachers
	return teachers, nil
}

// GenerateStudents produces the student body. A birth date is sampled for
// the configured age band and then clamped so every student is at least
// sixteen on their enrollment date and never born before the configured
// floor.
func (c *Context) GenerateStudents() ([]model.Student, error) {
	if len(c.Departments) == 0 {
		return nil, fmt.Errorf("cannot generate students: %w", ErrNoCandidates)
	}

	earliestBirth, err := time.Parse("2006-01-02", c.Policy.EarliestBirthDate)
	if err != nil {
		return nil, fmt.Errorf("invalid earliest_birth_date in policy: %w", err)
	}
	window := c.Policy.EnrollmentWindowDays

	students := make([]model.Student, 0, c.Cfg.Counts.Students)
	for i := 0; i < c.Cfg.Counts.Students; i++ {
		gender := c.Source.Gender()
		first := c.Source.FirstName(gender)
		last := c.Source.LastName()

		email, err := c.uniqueEmail(first, last, c.Policy.StudentEmailDomain)
		if err != nil {
			return nil, fmt.Errorf("failed to generate student email: %w", err)
		}
		phone, err := c.uniquePhone()
		if err != nil {
			return nil, fmt.Errorf("failed to generate student phone: %w", err)
		}

		enrollment := c.Source.DateBetween(
			c.YearStart.AddDate(0, 0, -window),
			c.YearStart.AddDate(0, 0, window),
		)
		birth := c.birthDate(enrollment, earliestBirth)

		dept := synth.Pick(c.Source, c.Departments)
		s := model.Student{
			ID:             c.nextID(model.TableStudents.Name),
			FirstName:      first,
			LastName:       last,
			DateOfBirth:    model.NewDate(birth),
			Email:          email,
			Phone:          phone,
			EnrollmentDate: model.NewDate(enrollment),
			DepartmentID:   dept.ID,
		}
		students = append(students, s)
		c.studentsByDept[dept.ID] = append(c.studentsByDept[dept.ID], s.ID)
	}
	c.Students = students
	return students, nil
}

func (c *Context) birthDate(enrollment, earliest time.Time) time.Time {
	age := c.Source.IntBetween(c.Policy.StudentMinAgeYears, c.Policy.StudentMaxAgeYears)
	birth := enrollment.AddDate(-age, 0, -c.Source.IntBetween(0, 364))

	// Never younger than 16 at enrollment, never before the floor.
	latest := enrollment.AddDate(-16, 0, 0)
	if birth.After(latest) {
		birth = latest.AddDate(0, 0, -c.Source.IntBetween(1, 365))
	}
	if birth.Before(earliest) {
		birth = earliest
	}
	return birth
}
