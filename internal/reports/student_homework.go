package reports

import (
	"acadreports/internal/table"
	"acadreports/pkg/contracts/domain"
)

const (
	studentHomeworkTitle       = "Отчет по сданным домашним заданиям студентами"
	studentHomeworkDescription = "Студенты с процентом выполненных заданий ниже 70%"

	completionThreshold = 70
)

var studentHomeworkRules = []RoleRule{
	{Role: RolePersonName, Any: []string{"fio", "фио", "студент", "имя", "name", "ученик"}, DefaultFirst: true},
	{
		Role: RoleCompletion,
		All:  []string{"percentage", "homework"},
		Any:  []string{"процент", "% дз", "percent hw", "completion"},
	},
}

var summaryRowSentinels = []string{"всего", "итого", "total"}

func extractStudentHomework(t *table.Table, tr *Trace) *domain.StudentHomeworkReport {
	labels := t.Columns()
	binding := Classify(labels, studentHomeworkRules)
	tr.bind(binding, labels, RolePersonName, RoleCompletion)

	report := &domain.StudentHomeworkReport{
		Title:       studentHomeworkTitle,
		Description: studentHomeworkDescription,
		Students:    []domain.StudentCompletion{},
		Stats:       domain.ThresholdStats{Threshold: completionThreshold},
	}

	nameCol, _ := binding.Column(RolePersonName)
	percentCol, hasPercent := binding.Column(RoleCompletion)

	for idx, row := range t.Rows() {
		cell := row.Cell(nameCol)
		name := cell.String()
		if cell.IsMissing() {
			name = rowLabel(idx)
		}
		if table.IsSentinel(name, summaryRowSentinels...) {
			tr.Skipped++
			continue
		}
		tr.Scanned++

		if !hasPercent {
			continue
		}
		percent, ok := table.NormalizePercent(row.Cell(percentCol)).Float()
		if !ok || percent >= completionThreshold {
			continue
		}

		report.Students = append(report.Students, domain.StudentCompletion{
			Name:              name,
			CompletionPercent: round1(percent),
		})
		tr.Matched++
	}

	sortAscending(report.Students, func(m domain.StudentCompletion) float64 { return m.CompletionPercent })
	report.Stats.TotalFound = len(report.Students)
	return report
}
