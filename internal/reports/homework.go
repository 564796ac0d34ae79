package reports

import (
	"fmt"
	"strings"

	"acadreports/internal/table"
	"acadreports/pkg/contracts/domain"
)

const (
	homeworkTitleFormat = "Отчет по проверке домашних заданий (%s)"
	homeworkDescription = "Преподаватели, чей процент проверки заданий ниже 70%"

	homeworkThreshold = 70
	homeworkCritical  = 50
	// anchorWindow is how many columns after the period anchor may hold its counts
	anchorWindow = 4

	statusCriticalRu = "критично"
	statusLowRu      = "низкий"
)

var homeworkNameRules = []RoleRule{
	{Role: RolePersonName, Any: teacherNameKeywords, DefaultFirst: true},
}

// anchorRules resolve counts inside the period block
var anchorRules = []RoleRule{
	{Role: RoleIssued, Any: []string{"выдано", "выдан"}},
	{Role: RoleChecked, Any: []string{"проверено", "проверен"}},
}

// globalCountRules resolve counts anywhere when the period block is absent
var globalCountRules = []RoleRule{
	{Role: RoleIssued, Any: []string{"выдано", "выдан", "задано", "issued"}},
	{Role: RoleChecked, Any: []string{"проверено", "проверен", "checked", "оценено"}},
}

// subHeader reads the first data row as lowercased per-column labels
func subHeader(t *table.Table) ([]string, bool) {
	texts := make([]string, t.Width())
	if t.Len() == 0 {
		return texts, false
	}
	present := false
	first := t.Row(0)
	for col := range texts {
		cell := first.Cell(col)
		if cell.IsMissing() {
			continue
		}
		texts[col] = strings.ToLower(cell.String())
		present = true
	}
	return texts, present
}

// countColumns locates the issued and checked columns for a period
func countColumns(labels, sub []string, period domain.Period, tr *Trace) (issued, checked int, issuedOK, checkedOK bool) {
	anchor := -1
	for i, label := range labels {
		if label == period.Anchor() {
			anchor = i
			break
		}
	}

	if anchor >= 0 {
		end := min(anchor+1+anchorWindow, len(labels))
		window := make([]string, len(sub))
		copy(window[anchor+1:end], sub[anchor+1:end])

		b := ClassifyExclusive(window, anchorRules)
		issued, issuedOK = b.Last(RoleIssued)
		checked, checkedOK = b.Last(RoleChecked)
		tr.notef("period anchor %q at column %d", period.Anchor(), anchor)
	} else {
		tr.notef("period anchor %q not found", period.Anchor())
	}

	if anchor < 0 || (!issuedOK && !checkedOK) {
		b := ClassifyExclusive(sub, globalCountRules)
		issued, issuedOK = b.Column(RoleIssued)
		checked, checkedOK = b.Column(RoleChecked)
		tr.bind(b, labels, RoleIssued, RoleChecked)
		tr.notef("counts resolved by global sub-header scan")
	} else {
		if issuedOK {
			tr.Bindings[RoleIssued] = []string{labels[issued]}
		}
		if checkedOK {
			tr.Bindings[RoleChecked] = []string{labels[checked]}
		}
	}
	return issued, checked, issuedOK, checkedOK
}

func extractHomework(t *table.Table, period domain.Period, tr *Trace) *domain.HomeworkReport {
	labels := t.Columns()
	binding := Classify(labels, homeworkNameRules)
	tr.bind(binding, labels, RolePersonName)

	report := &domain.HomeworkReport{
		Title:       fmt.Sprintf(homeworkTitleFormat, period.Label()),
		Description: homeworkDescription,
		Teachers:    []domain.TeacherHomework{},
		Stats:       domain.ThresholdStats{Threshold: homeworkThreshold},
		Period:      period,
	}

	sub, hasSub := subHeader(t)
	issuedCol, checkedCol, issuedOK, checkedOK := countColumns(labels, sub, period, tr)
	nameCol, _ := binding.Column(RolePersonName)

	start := 0
	if hasSub {
		start = 1
	}

	rows := t.Rows()
	for idx := start; idx < len(rows); idx++ {
		row := rows[idx]
		name, ok := table.Identity(row.Cell(nameCol), "всего")
		if !ok {
			tr.Skipped++
			continue
		}
		tr.Scanned++

		if !issuedOK {
			continue
		}
		issued, ok := table.NumberOf(row.Cell(issuedCol))
		if !ok || issued <= 0 {
			continue
		}
		if !checkedOK {
			continue
		}
		checked, ok := table.NumberOf(row.Cell(checkedCol))
		if !ok {
			continue
		}

		percent := checked / issued * 100
		if percent >= homeworkThreshold {
			continue
		}

		status := statusLowRu
		if percent < homeworkCritical {
			status = statusCriticalRu
		}
		rounded := round1(percent)
		report.Teachers = append(report.Teachers, domain.TeacherHomework{
			Name:         name,
			CheckPercent: rounded,
			Issued:       int(issued),
			Checked:      int(checked),
			Status:       status,
			Message: fmt.Sprintf("Проверено %d из %d заданий (%s%%)",
				int(checked), int(issued), formatGrade(rounded)),
		})
		tr.Matched++
	}

	sortAscending(report.Teachers, func(m domain.TeacherHomework) float64 { return m.CheckPercent })
	report.Stats.TotalFound = len(report.Teachers)
	return report
}
