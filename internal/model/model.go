package model

import (
	"database/sql/driver"
	"time"
)

// Date is a day-granularity value. It renders without a time component in
// CSV output while still satisfying driver.Valuer for DATE columns.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Table describes one target table: its name and column order. Column
// order is fixed so that inserts and CSV headers always agree.
type Table struct {
	Name    string
	Columns []string
}

type Department struct {
	ID            int64
	Name          string
	HeadTeacherID *int64
}

func (d Department) Values() []any {
	var head any
	if d.HeadTeacherID != nil {
		head = *d.HeadTeacherID
	}
	return []any{d.ID, d.Name, head}
}

type Teacher struct {
	ID              int64
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Qualification   string
	ExperienceYears int
	HireDate        Date
	DepartmentID    int64
}

func (t Teacher) Values() []any {
	return []any{t.ID, t.FirstName, t.LastName, t.Email, t.Phone, t.Qualification, t.ExperienceYears, t.HireDate, t.DepartmentID}
}

type Student struct {
	ID             int64
	FirstName      string
	LastName       string
	DateOfBirth    Date
	Email          string
	Phone          string
	EnrollmentDate Date
	DepartmentID   int64
}

func (s Student) Values() []any {
	return []any{s.ID, s.FirstName, s.LastName, s.DateOfBirth, s.Email, s.Phone, s.EnrollmentDate, s.DepartmentID}
}

type Course struct {
	ID           int64
	Name         string
	Description  string
	Credits      int
	TeacherID    int64
	DepartmentID int64
	StartDate    Date
	EndDate      Date
}

func (c Course) Values() []any {
	return []any{c.ID, c.Name, c.Description, c.Credits, c.TeacherID, c.DepartmentID, c.StartDate, c.EndDate}
}

type ScheduleSlot struct {
	ID              int64
	CourseID        int64
	TeacherID       int64
	Classroom       string
	ClassTime       time.Time
	DurationMinutes int
}

func (s ScheduleSlot) Values() []any {
	return []any{s.ID, s.CourseID, s.TeacherID, s.Classroom, s.ClassTime, s.DurationMinutes}
}

type Enrollment struct {
	ID             int64
	StudentID      int64
	CourseID       int64
	EnrollmentDate Date
}

func (e Enrollment) Values() []any {
	return []any{e.ID, e.StudentID, e.CourseID, e.EnrollmentDate}
}

type Grade struct {
	ID        int64
	StudentID int64
	CourseID  int64
	Grade     float64
	GradeDate Date
	ExamType  string
}

func (g Grade) Values() []any {
	return []any{g.ID, g.StudentID, g.CourseID, g.Grade, g.GradeDate, g.ExamType}
}

type Attendance struct {
	ID             int64
	StudentID      int64
	ScheduleID     int64
	Status         string
	AttendanceDate Date
	CheckTime      *string
	Notes          *string
}

func (a Attendance) Values() []any {
	var check, notes any
	if a.CheckTime != nil {
		check = *a.CheckTime
	}
	if a.Notes != nil {
		notes = *a.Notes
	}
	return []any{a.ID, a.StudentID, a.ScheduleID, a.Status, a.AttendanceDate, check, notes}
}

type Assignment struct {
	ID             int64
	CourseID       int64
	AssignmentType string
	Title          string
	Description    string
	MaxScore       int
	DueDate        Date
}

func (a Assignment) Values() []any {
	return []any{a.ID, a.CourseID, a.AssignmentType, a.Title, a.Description, a.MaxScore, a.DueDate}
}

type AssignmentGrade struct {
	ID           int64
	AssignmentID int64
	StudentID    int64
	Score        float64
	SubmittedAt  time.Time
	GradedAt     time.Time
	Feedback     string
}

func (g AssignmentGrade) Values() []any {
	return []any{g.ID, g.AssignmentID, g.StudentID, g.Score, g.SubmittedAt, g.GradedAt, g.Feedback}
}

var (
	TableDepartments = Table{
		Name:    "departments",
		Columns: []string{"department_id", "department_name", "head_teacher_id"},
	}
	TableTeachers = Table{
		Name:    "teachers",
		Columns: []string{"teacher_id", "first_name", "last_name", "email", "phone", "qualification", "experience_years", "hire_date", "department_id"},
	}
	TableStudents = Table{
		Name:    "students",
		Columns: []string{"student_id", "first_name", "last_name", "date_of_birth", "email", "phone", "enrollment_date", "department_id"},
	}
	TableCourses = Table{
		Name:    "courses",
		Columns: []string{"course_id", "course_name", "description", "credits", "teacher_id", "department_id", "start_date", "end_date"},
	}
	TableSchedule = Table{
		Name:    "schedule",
		Columns: []string{"schedule_id", "course_id", "teacher_id", "classroom", "class_time", "duration_minutes"},
	}
	TableEnrollments = Table{
		Name:    "enrollments",
		Columns: []string{"enrollment_id", "student_id", "course_id", "enrollment_date"},
	}
	TableGrades = Table{
		Name:    "grades",
		Columns: []string{"grade_id", "student_id", "course_id", "grade", "grade_date", "exam_type"},
	}
	TableAttendance = Table{
		Name:    "attendance",
		Columns: []string{"attendance_id", "student_id", "schedule_id", "status", "attendance_date", "check_time", "notes"},
	}
	TableAssignments = Table{
		Name:    "assignments",
		Columns: []string{"assignment_id", "course_id", "assignment_type", "title", "description", "max_score", "due_date"},
	}
	TableAssignmentGrades = Table{
		Name:    "assignment_grades",
		Columns: []string{"assignment_grade_id", "assignment_id", "student_id", "score", "submitted_at", "graded_at", "feedback"},
	}
)

// TablesInOrder lists every target table in FK dependency order. Inserts
// walk it forward, truncation walks it backward.
var TablesInOrder = []Table{
	TableDepartments,
	TableTeachers,
	TableStudents,
	TableCourses,
	TableSchedule,
	TableEnrollments,
	TableGrades,
	TableAttendance,
	TableAssignments,
	TableAssignmentGrades,
}
