package reports

import (
	"fmt"

	"acadreports/internal/table"
	"acadreports/pkg/contracts/domain"
)

const (
	studentsTitle       = "Отчет по студентам"
	studentsDescription = "Студенты со средней оценкой за ДЗ = 1 или оценкой за классную работу ниже 3"

	failingHomeworkGrade = 1.0
	passingClassGrade    = 3.0
	maxGrade             = 5.0
)

var studentRules = []RoleRule{
	{Role: RolePersonName, Any: []string{"фио", "студент", "имя", "name", "ученик"}, DefaultFirst: true},
	{Role: RoleHomeworkGrade, Any: []string{"домашн", "дз", "homework", "hw"}},
	{Role: RoleClassGrade, Any: []string{"классн", "урок", "class", "работа"}},
}

// firstNumber returns the first numeric value among the candidate columns
func firstNumber(row table.Row, cols []int) (float64, bool) {
	for _, col := range cols {
		if v, ok := table.NumberOf(row.Cell(col)); ok {
			return v, true
		}
	}
	return 0, false
}

// rowLabel names a row that has no identity cell, using spreadsheet numbering
func rowLabel(idx int) string {
	return fmt.Sprintf("Строка %d", idx+2)
}

func extractStudents(t *table.Table, tr *Trace) *domain.StudentsReport {
	labels := t.Columns()
	binding := Classify(labels, studentRules)
	tr.bind(binding, labels, RolePersonName, RoleHomeworkGrade, RoleClassGrade)

	report := &domain.StudentsReport{
		Title:       studentsTitle,
		Description: studentsDescription,
		Students:    []domain.StudentIssue{},
	}

	nameCol, _ := binding.Column(RolePersonName)

	for idx, row := range t.Rows() {
		name := row.Cell(nameCol).String()
		if row.Cell(nameCol).IsMissing() {
			name = rowLabel(idx)
		}

		hw, hwOK := firstNumber(row, binding.Candidates(RoleHomeworkGrade))
		class, classOK := firstNumber(row, binding.Candidates(RoleClassGrade))

		if !hwOK || !classOK {
			// any in-range value fills the grades still unset, homework first
			for col := 0; col < t.Width(); col++ {
				v, ok := table.NumberOf(row.Cell(col))
				if !ok || v < 0 || v > maxGrade {
					continue
				}
				if !hwOK {
					hw, hwOK = v, true
				} else if !classOK {
					class, classOK = v, true
				}
			}
		}
		tr.Scanned++

		var issues []string
		if hwOK && hw == failingHomeworkGrade {
			issues = append(issues, "Средняя оценка за ДЗ = "+formatGrade(hw))
		}
		if classOK && class < passingClassGrade {
			issues = append(issues, "Оценка за классную работу = "+formatGrade(class))
		}
		if len(issues) == 0 {
			continue
		}

		issue := domain.StudentIssue{Name: name, Issues: issues}
		if hwOK {
			issue.HWGrade = &hw
		}
		if classOK {
			issue.ClassGrade = &class
		}
		report.Students = append(report.Students, issue)
		tr.Matched++
	}

	report.Stats.TotalFound = len(report.Students)
	return report
}
