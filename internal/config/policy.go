package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Policy holds the per-entity distribution knobs: weights, catalogs and
// per-parent ranges. Differences between entities live here as data, so a
// staging profile can be swapped in through a YAML file without touching
// the generators.
type Policy struct {
	DepartmentNames []string `yaml:"department_names"`

	Qualifications       []string `yaml:"qualifications"`
	QualificationWeights []int    `yaml:"qualification_weights"`

	FacultyEmailDomain string `yaml:"faculty_email_domain"`
	StudentEmailDomain string `yaml:"student_email_domain"`

	StudentMinAgeYears int    `yaml:"student_min_age_years"`
	StudentMaxAgeYears int    `yaml:"student_max_age_years"`
	EarliestBirthDate  string `yaml:"earliest_birth_date"`

	CoursesPerDeptMin  int `yaml:"courses_per_dept_min"`
	CoursesPerDeptMax  int `yaml:"courses_per_dept_max"`
	CourseMinWeeks     int `yaml:"course_min_weeks"`
	CourseMaxWeeks     int `yaml:"course_max_weeks"`
	CourseCreditsMin   int `yaml:"course_credits_min"`
	CourseCreditsMax   int `yaml:"course_credits_max"`
	CourseNameCatalog  []string `yaml:"course_name_catalog"`

	SlotsPerCourseMin int        `yaml:"slots_per_course_min"`
	SlotsPerCourseMax int        `yaml:"slots_per_course_max"`
	TimeSlots         []TimeSlot `yaml:"time_slots"`
	BuildingCount     int        `yaml:"building_count"`
	RoomMin           int        `yaml:"room_min"`
	RoomMax           int        `yaml:"room_max"`

	EnrollmentsPerCourse int `yaml:"enrollments_per_course"`
	EnrollmentWindowDays int `yaml:"enrollment_window_days"`

	GradeScale        []float64 `yaml:"grade_scale"`
	GradeScaleWeights []int     `yaml:"grade_scale_weights"`
	GradeUniform      bool      `yaml:"grade_uniform"`
	GradeMin          float64   `yaml:"grade_min"`
	GradeMax          float64   `yaml:"grade_max"`
	ExamTypes         []string  `yaml:"exam_types"`

	AttendancePerSlot       int      `yaml:"attendance_per_slot"`
	AttendanceStatuses      []string `yaml:"attendance_statuses"`
	AttendanceWeights       []int    `yaml:"attendance_weights"`

	AssignmentsPerCourseMin int      `yaml:"assignments_per_course_min"`
	AssignmentsPerCourseMax int      `yaml:"assignments_per_course_max"`
	AssignmentTypes         []string `yaml:"assignment_types"`
	MaxScoreMin             int      `yaml:"max_score_min"`
	MaxScoreMax             int      `yaml:"max_score_max"`

	SubmissionsPerAssignment int `yaml:"submissions_per_assignment"`
}

// DefaultPolicy mirrors the distributions of the reference dataset.
func DefaultPolicy() *Policy {
	return &Policy{
		DepartmentNames: []string{
			"Faculty of Information Technology",
			"Faculty of Economics",
			"Faculty of Humanities",
			"Faculty of Engineering",
			"Faculty of Medicine",
			"Faculty of Law",
			"Faculty of Natural Sciences",
			"Faculty of Education",
			"Faculty of Social Sciences",
			"Faculty of Arts",
		},
		Qualifications:       []string{"Professor", "Associate Professor", "Senior Lecturer", "Lecturer"},
		QualificationWeights: []int{20, 15, 50, 15},
		FacultyEmailDomain:   "faculty.uni.edu",
		StudentEmailDomain:   "student.uni.edu",
		StudentMinAgeYears:   17,
		StudentMaxAgeYears:   25,
		EarliestBirthDate:    "1980-01-01",
		CoursesPerDeptMin:    8,
		CoursesPerDeptMax:    12,
		CourseMinWeeks:       10,
		CourseMaxWeeks:       18,
		CourseCreditsMin:     1,
		CourseCreditsMax:     6,
		CourseNameCatalog: []string{
			"Calculus", "Linear Algebra", "Programming Fundamentals",
			"Databases", "Machine Learning", "Microeconomics",
			"Financial Management", "World History", "Philosophy",
			"Organic Chemistry", "Human Anatomy", "Biochemistry",
			"Theoretical Mechanics", "Materials Science",
			"Constitutional Law", "General Psychology", "Statistics",
			"Academic Writing", "Discrete Mathematics", "Operating Systems",
		},
		SlotsPerCourseMin: 5,
		SlotsPerCourseMax: 8,
		TimeSlots: []TimeSlot{
			{Start: "09:00", Minutes: 90},
			{Start: "11:00", Minutes: 90},
			{Start: "13:30", Minutes: 90},
			{Start: "15:30", Minutes: 90},
			{Start: "17:30", Minutes: 90},
		},
		BuildingCount:        3,
		RoomMin:              100,
		RoomMax:              500,
		EnrollmentsPerCourse: 200,
		EnrollmentWindowDays: 30,
		GradeScale:           []float64{2.0, 3.0, 3.5, 4.0, 4.5, 5.0},
		GradeScaleWeights:    []int{5, 15, 20, 30, 20, 10},
		GradeUniform:         false,
		GradeMin:             2.0,
		GradeMax:             5.0,
		ExamTypes:            []string{"exam", "credit", "coursework"},
		AttendancePerSlot:    40,
		AttendanceStatuses:   []string{"present", "absent", "excused"},
		AttendanceWeights:    []int{85, 10, 5},
		AssignmentsPerCourseMin:  3,
		AssignmentsPerCourseMax:  8,
		AssignmentTypes:          []string{"lab", "homework", "essay", "quiz", "project"},
		MaxScoreMin:              10,
		MaxScoreMax:              100,
		SubmissionsPerAssignment: 50,
	}
}

type TimeSlot struct {
	Start   string `yaml:"start"`
	Minutes int    `yaml:"minutes"`
}

// LoadPolicy reads a YAML policy file over the defaults. An empty path
// returns the defaults unchanged.
func LoadPolicy(path string) (*Policy, error) {
	p := DefaultPolicy()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse policy file %s: %w", path, err)
	}
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("invalid policy file %s: %w", path, err)
	}
	return p, nil
}

func (p *Policy) validate() error {
	if len(p.Qualifications) != len(p.QualificationWeights) {
		return fmt.Errorf("qualification_weights must match qualifications (%d vs %d)", len(p.QualificationWeights), len(p.Qualifications))
	}
	if len(p.GradeScale) != len(p.GradeScaleWeights) {
		return fmt.Errorf("grade_scale_weights must match grade_scale (%d vs %d)", len(p.GradeScaleWeights), len(p.GradeScale))
	}
	if len(p.AttendanceStatuses) != len(p.AttendanceWeights) {
		return fmt.Errorf("attendance_weights must match attendance_statuses (%d vs %d)", len(p.AttendanceWeights), len(p.AttendanceStatuses))
	}
	// Every catalog the generators pick from must hold at least one
	// entry, otherwise the pick panics mid-run instead of failing here.
	catalogs := map[string]int{
		"department_names":    len(p.DepartmentNames),
		"qualifications":      len(p.Qualifications),
		"course_name_catalog": len(p.CourseNameCatalog),
		"time_slots":          len(p.TimeSlots),
		"grade_scale":         len(p.GradeScale),
		"exam_types":          len(p.ExamTypes),
		"attendance_statuses": len(p.AttendanceStatuses),
		"assignment_types":    len(p.AssignmentTypes),
	}
	for name, n := range catalogs {
		if n == 0 {
			return fmt.Errorf("%s cannot be empty", name)
		}
	}
	return nil
}
