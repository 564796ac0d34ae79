package exporter

import (
	"fmt"
	"strings"

	"acadreports/pkg/contracts/domain"
)

// Sheet is a report flattened to a header and rows. Cells are strings, ints
// or float64s so the xlsx writer can keep numbers numeric.
type Sheet struct {
	Title  string
	Header []string
	Rows   [][]interface{}
}

// Flatten converts any report into a single sheet
func Flatten(report domain.Report) (*Sheet, error) {
	switch r := report.(type) {
	case *domain.ScheduleReport:
		return flattenSchedule(r), nil
	case domain.ScheduleReport:
		return flattenSchedule(&r), nil
	case *domain.TopicsReport:
		return flattenTopics(r), nil
	case domain.TopicsReport:
		return flattenTopics(&r), nil
	case *domain.StudentsReport:
		return flattenStudents(r), nil
	case domain.StudentsReport:
		return flattenStudents(&r), nil
	case *domain.AttendanceReport:
		return flattenAttendance(r), nil
	case domain.AttendanceReport:
		return flattenAttendance(&r), nil
	case *domain.HomeworkReport:
		return flattenHomework(r), nil
	case domain.HomeworkReport:
		return flattenHomework(&r), nil
	case *domain.StudentHomeworkReport:
		return flattenStudentHomework(r), nil
	case domain.StudentHomeworkReport:
		return flattenStudentHomework(&r), nil
	case nil:
		return nil, fmt.Errorf("report is empty")
	default:
		return nil, fmt.Errorf("no export layout for %T", report)
	}
}

func flattenSchedule(r *domain.ScheduleReport) *Sheet {
	s := &Sheet{
		Title:  r.Title,
		Header: []string{"Группа", "Дисциплина", "Количество пар", "Занятия"},
	}
	for _, g := range r.Groups {
		for _, d := range g.Disciplines {
			slots := make([]string, 0, len(d.Occurrences))
			for _, o := range d.Occurrences {
				slots = append(slots, strings.TrimSpace(o.Day+" "+o.Time))
			}
			s.Rows = append(s.Rows, []interface{}{g.Name, d.Name, d.Count, strings.Join(slots, "; ")})
		}
	}
	return s
}

func flattenTopics(r *domain.TopicsReport) *Sheet {
	s := &Sheet{
		Title:  r.Title,
		Header: []string{"Статус", "Тема", "Причина", "Количество", "Ячейки"},
	}
	add := func(status string, entries []domain.TopicEntry) {
		for _, e := range entries {
			s.Rows = append(s.Rows, []interface{}{status, e.Text, e.Reason, e.Count, formatRefs(e.Occurrences)})
		}
	}
	add("Верно", r.Valid)
	add("Неверно", r.Invalid)
	return s
}

func flattenStudents(r *domain.StudentsReport) *Sheet {
	s := &Sheet{
		Title:  r.Title,
		Header: []string{"Студент", "Оценка ДЗ", "Классная работа", "Проблемы"},
	}
	for _, st := range r.Students {
		s.Rows = append(s.Rows, []interface{}{st.Name, optional(st.HWGrade), optional(st.ClassGrade), strings.Join(st.Issues, "; ")})
	}
	return s
}

func flattenAttendance(r *domain.AttendanceReport) *Sheet {
	s := &Sheet{
		Title:  r.Title,
		Header: []string{"Преподаватель", "Посещаемость, %", "Статус"},
	}
	for _, t := range r.Teachers {
		s.Rows = append(s.Rows, []interface{}{t.Name, t.Attendance, t.Status})
	}
	return s
}

func flattenHomework(r *domain.HomeworkReport) *Sheet {
	s := &Sheet{
		Title:  r.Title,
		Header: []string{"Преподаватель", "Проверено, %", "Выдано", "Проверено", "Статус", "Комментарий"},
	}
	for _, t := range r.Teachers {
		s.Rows = append(s.Rows, []interface{}{t.Name, t.CheckPercent, t.Issued, t.Checked, t.Status, t.Message})
	}
	return s
}

func flattenStudentHomework(r *domain.StudentHomeworkReport) *Sheet {
	s := &Sheet{
		Title:  r.Title,
		Header: []string{"Студент", "Выполнение ДЗ, %"},
	}
	for _, st := range r.Students {
		s.Rows = append(s.Rows, []interface{}{st.Name, st.CompletionPercent})
	}
	return s
}

func formatRefs(refs []domain.CellRef) string {
	parts := make([]string, 0, len(refs))
	for _, ref := range refs {
		parts = append(parts, fmt.Sprintf("%s:%d", ref.Column, ref.Row))
	}
	return strings.Join(parts, ", ")
}

// optional renders a missing grade as an empty cell
func optional(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
