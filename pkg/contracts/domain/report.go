package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ReportKind identifies one of the six report pipelines
type ReportKind string

const (
	ReportKindSchedule        ReportKind = "schedule"
	ReportKindTopics          ReportKind = "topics"
	ReportKindStudents        ReportKind = "students"
	ReportKindAttendance      ReportKind = "attendance"
	ReportKindHomework        ReportKind = "homework"
	ReportKindStudentHomework ReportKind = "student_homework"
)

// ReportKinds lists every kind in presentation order
var ReportKinds = []ReportKind{
	ReportKindSchedule,
	ReportKindTopics,
	ReportKindStudents,
	ReportKindAttendance,
	ReportKindHomework,
	ReportKindStudentHomework,
}

var reportLabels = map[ReportKind]string{
	ReportKindSchedule:        "Расписание: кол-во пар по дисциплинам",
	ReportKindTopics:          "Темы занятий: проверка формата",
	ReportKindStudents:        "Студенты: ДЗ=1 или кл.работа<3",
	ReportKindAttendance:      "Посещаемость: преподаватели <40%",
	ReportKindHomework:        "Проверка ДЗ: преподаватели <70%",
	ReportKindStudentHomework: "Сдача ДЗ: студенты <70%",
}

// Label returns the human readable report name shown in history listings
func (k ReportKind) Label() string {
	if label, ok := reportLabels[k]; ok {
		return label
	}
	return string(k)
}

// IsValid reports whether k is one of the known kinds
func (k ReportKind) IsValid() bool {
	_, ok := reportLabels[k]
	return ok
}

// AcceptsPeriod reports whether the kind takes a period parameter
func (k ReportKind) AcceptsPeriod() bool {
	return k == ReportKindHomework
}

// Period is the aggregation window of the homework report
type Period string

const (
	PeriodMonth Period = "month"
	PeriodWeek  Period = "week"
	PeriodDay   Period = "day"
)

var periodLabels = map[Period]string{
	PeriodMonth: "за месяц",
	PeriodWeek:  "за неделю",
	PeriodDay:   "за день",
}

// Anchor is the exact column label that starts the period block
func (p Period) Anchor() string {
	switch p {
	case PeriodWeek:
		return "Неделя"
	case PeriodDay:
		return "День"
	default:
		return "Месяц"
	}
}

// Label returns the period phrase used in report titles
func (p Period) Label() string {
	if label, ok := periodLabels[p]; ok {
		return label
	}
	return string(p)
}

// IsValid reports whether p is a known period
func (p Period) IsValid() bool {
	_, ok := periodLabels[p]
	return ok
}

// Report is the result of one extraction. The set of implementations is closed.
type Report interface {
	Kind() ReportKind
	// Count is the number of payload records (pairs for schedule)
	Count() int
	// Summary is the one-line history description
	Summary() string
	sealed()
}

// StoredReport is a persisted extraction result with its upload metadata
type StoredReport struct {
	ID             string     `json:"id"`
	ReportType     ReportKind `json:"report_type"`
	Filename       string     `json:"filename"`
	Result         Report     `json:"result"`
	Timestamp      time.Time  `json:"timestamp"`
	CreatedBy      string     `json:"created_by"`
	CreatedByEmail string     `json:"created_by_email"`
}

// UnmarshalJSON decodes the result into the variant named by report_type
func (s *StoredReport) UnmarshalJSON(data []byte) error {
	type alias StoredReport
	var raw struct {
		alias
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = StoredReport(raw.alias)
	if len(raw.Result) == 0 || string(raw.Result) == "null" {
		s.Result = nil
		return nil
	}
	result, err := DecodeReport(s.ReportType, raw.Result)
	if err != nil {
		return err
	}
	s.Result = result
	return nil
}

// HistoryItem is the listing view of a stored report
type HistoryItem struct {
	ID             string     `json:"id"`
	ReportType     ReportKind `json:"report_type"`
	ReportLabel    string     `json:"report_label"`
	Filename       string     `json:"filename"`
	Timestamp      time.Time  `json:"timestamp"`
	CreatedBy      string     `json:"created_by"`
	CreatedByEmail string     `json:"created_by_email"`
	Summary        string     `json:"summary"`
}

// NewHistoryItem builds the listing view of r
func NewHistoryItem(r *StoredReport) HistoryItem {
	item := HistoryItem{
		ID:             r.ID,
		ReportType:     r.ReportType,
		ReportLabel:    r.ReportType.Label(),
		Filename:       r.Filename,
		Timestamp:      r.Timestamp,
		CreatedBy:      r.CreatedBy,
		CreatedByEmail: r.CreatedByEmail,
	}
	if r.Result != nil {
		item.Summary = r.Result.Summary()
	}
	return item
}

// DecodeReport unmarshals a stored result payload for the given kind
func DecodeReport(kind ReportKind, data []byte) (Report, error) {
	var target Report
	switch kind {
	case ReportKindSchedule:
		target = &ScheduleReport{}
	case ReportKindTopics:
		target = &TopicsReport{}
	case ReportKindStudents:
		target = &StudentsReport{}
	case ReportKindAttendance:
		target = &AttendanceReport{}
	case ReportKindHomework:
		target = &HomeworkReport{}
	case ReportKindStudentHomework:
		target = &StudentHomeworkReport{}
	default:
		return nil, fmt.Errorf("unknown report type %q", kind)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return nil, fmt.Errorf("decode %s report: %w", kind, err)
	}
	return target, nil
}
