package domain

import "fmt"

// Occurrence is one scheduled pair of a discipline
type Occurrence struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

// DisciplineOccurrences groups the pairs of one discipline within a group
type DisciplineOccurrences struct {
	Name        string       `json:"name"`
	Count       int          `json:"count"`
	Occurrences []Occurrence `json:"occurrences"`
}

// GroupSchedule holds the disciplines taught to one group
type GroupSchedule struct {
	Name        string                  `json:"name"`
	Disciplines []DisciplineOccurrences `json:"disciplines"`
	Total       int                     `json:"total"`
}

// ScheduleStats summarizes a schedule report
type ScheduleStats struct {
	TotalPairs  int `json:"total_pairs"`
	TotalGroups int `json:"total_groups"`
}

// ScheduleReport counts pairs per discipline for every group
type ScheduleReport struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Groups      []GroupSchedule `json:"groups"`
	TotalPairs  int             `json:"total_pairs"`
	Stats       ScheduleStats   `json:"stats"`
}

func (ScheduleReport) Kind() ReportKind  { return ReportKindSchedule }
func (r ScheduleReport) Count() int      { return r.TotalPairs }
func (r ScheduleReport) Summary() string { return fmt.Sprintf("Найдено %d пар", r.TotalPairs) }
func (ScheduleReport) sealed()           {}

// CellRef locates a cell by spreadsheet row number and column label
type CellRef struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
}

// TopicEntry is a distinct topic text with every place it occurs
type TopicEntry struct {
	Text        string    `json:"text"`
	Reason      string    `json:"reason,omitempty"`
	Count       int       `json:"count"`
	Occurrences []CellRef `json:"occurrences"`
}

// TopicsStats counts topic occurrences, not distinct texts
type TopicsStats struct {
	ValidCount   int `json:"valid_count"`
	InvalidCount int `json:"invalid_count"`
}

// TopicsReport checks lesson topics against the "Урок № _. Тема: _" format
type TopicsReport struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Valid       []TopicEntry `json:"valid"`
	Invalid     []TopicEntry `json:"invalid"`
	Stats       TopicsStats  `json:"stats"`
}

func (TopicsReport) Kind() ReportKind { return ReportKindTopics }
func (r TopicsReport) Count() int     { return r.Stats.ValidCount + r.Stats.InvalidCount }
func (r TopicsReport) Summary() string {
	return fmt.Sprintf("Верных: %d, неверных: %d", r.Stats.ValidCount, r.Stats.InvalidCount)
}
func (TopicsReport) sealed() {}

// FoundStats is shared by the reports that only count matches
type FoundStats struct {
	TotalFound int `json:"total_found"`
}

// ThresholdStats counts matches below a fixed threshold
type ThresholdStats struct {
	TotalFound int `json:"total_found"`
	Threshold  int `json:"threshold"`
}

// StudentIssue is a student with a failing homework or classwork grade
type StudentIssue struct {
	Name       string   `json:"name"`
	HWGrade    *float64 `json:"hw_grade"`
	ClassGrade *float64 `json:"class_grade"`
	Issues     []string `json:"issues"`
}

// StudentsReport lists students with homework grade 1 or classwork below 3
type StudentsReport struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Students    []StudentIssue `json:"students"`
	Stats       FoundStats     `json:"stats"`
}

func (StudentsReport) Kind() ReportKind  { return ReportKindStudents }
func (r StudentsReport) Count() int      { return len(r.Students) }
func (r StudentsReport) Summary() string { return fmt.Sprintf("Найдено %d студентов", len(r.Students)) }
func (StudentsReport) sealed()           {}

// TeacherAttendance is a teacher whose pair attendance is below threshold
type TeacherAttendance struct {
	Name       string  `json:"name"`
	Attendance float64 `json:"attendance"`
	Status     string  `json:"status"`
}

// AttendanceReport lists teachers with attendance under 40%
type AttendanceReport struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Teachers    []TeacherAttendance `json:"teachers"`
	Stats       ThresholdStats      `json:"stats"`
}

func (AttendanceReport) Kind() ReportKind { return ReportKindAttendance }
func (r AttendanceReport) Count() int     { return len(r.Teachers) }
func (r AttendanceReport) Summary() string {
	return fmt.Sprintf("Найдено %d преподавателей", len(r.Teachers))
}
func (AttendanceReport) sealed() {}

// TeacherHomework is a teacher whose homework check rate is below threshold
type TeacherHomework struct {
	Name         string  `json:"name"`
	CheckPercent float64 `json:"check_percent"`
	Issued       int     `json:"issued"`
	Checked      int     `json:"checked"`
	Status       string  `json:"status"`
	Message      string  `json:"message"`
}

// HomeworkReport lists teachers checking under 70% of issued homework
type HomeworkReport struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Teachers    []TeacherHomework `json:"teachers"`
	Stats       ThresholdStats    `json:"stats"`
	Period      Period            `json:"period"`
}

func (HomeworkReport) Kind() ReportKind { return ReportKindHomework }
func (r HomeworkReport) Count() int     { return len(r.Teachers) }
func (r HomeworkReport) Summary() string {
	return fmt.Sprintf("Найдено %d преподавателей", len(r.Teachers))
}
func (HomeworkReport) sealed() {}

// StudentCompletion is a student who handed in less than 70% of homework
type StudentCompletion struct {
	Name              string  `json:"name"`
	CompletionPercent float64 `json:"completion_percent"`
}

// StudentHomeworkReport lists students by homework completion
type StudentHomeworkReport struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Students    []StudentCompletion `json:"students"`
	Stats       ThresholdStats      `json:"stats"`
}

func (StudentHomeworkReport) Kind() ReportKind { return ReportKindStudentHomework }
func (r StudentHomeworkReport) Count() int     { return len(r.Students) }
func (r StudentHomeworkReport) Summary() string {
	return fmt.Sprintf("Найдено %d студентов", len(r.Students))
}
func (StudentHomeworkReport) sealed() {}
