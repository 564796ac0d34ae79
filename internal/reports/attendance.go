package reports

import (
	"acadreports/internal/table"
	"acadreports/pkg/contracts/domain"
)

const (
	attendanceTitle       = "Отчет по посещаемости"
	attendanceDescription = "Преподаватели, посещаемость пар у которых ниже 40%"

	attendanceThreshold = 40
	attendanceCritical  = 20

	statusCritical = "critical"
	statusWarning  = "warning"
)

var teacherNameKeywords = []string{"фио", "преподаватель", "учитель", "педагог", "name"}

var attendanceRules = []RoleRule{
	{Role: RolePersonName, Any: teacherNameKeywords, DefaultFirst: true},
	{Role: RoleAttendance, Any: []string{"посещаемость", "attendance", "%", "процент"}},
}

func extractAttendance(t *table.Table, tr *Trace) *domain.AttendanceReport {
	labels := t.Columns()
	binding := Classify(labels, attendanceRules)
	tr.bind(binding, labels, RolePersonName, RoleAttendance)

	report := &domain.AttendanceReport{
		Title:       attendanceTitle,
		Description: attendanceDescription,
		Teachers:    []domain.TeacherAttendance{},
		Stats:       domain.ThresholdStats{Threshold: attendanceThreshold},
	}

	nameCol, _ := binding.Column(RolePersonName)

	for _, row := range t.Rows() {
		name, ok := table.Identity(row.Cell(nameCol))
		if !ok {
			tr.Skipped++
			continue
		}
		tr.Scanned++

		value, ok := firstNumber(row, binding.Candidates(RoleAttendance))
		if !ok {
			value, ok = firstInRange(row, t.Width(), 0, 100)
		}
		if !ok || value >= attendanceThreshold {
			continue
		}

		status := statusWarning
		if value < attendanceCritical {
			status = statusCritical
		}
		report.Teachers = append(report.Teachers, domain.TeacherAttendance{
			Name:       name,
			Attendance: round1(value),
			Status:     status,
		})
		tr.Matched++
	}

	sortAscending(report.Teachers, func(m domain.TeacherAttendance) float64 { return m.Attendance })
	report.Stats.TotalFound = len(report.Teachers)
	return report
}

// firstInRange scans a row left to right for the first number within [lo, hi]
func firstInRange(row table.Row, width int, lo, hi float64) (float64, bool) {
	for col := 0; col < width; col++ {
		v, ok := table.NumberOf(row.Cell(col))
		if ok && v >= lo && v <= hi {
			return v, true
		}
	}
	return 0, false
}
