package reports

import (
	"regexp"
	"sort"
	"strings"

	"acadreports/internal/table"
	"acadreports/pkg/contracts/domain"
)

const (
	scheduleTitle       = "Отчет по расписанию групп"
	scheduleDescription = "Количество пар по каждой дисциплине"

	// noTime marks an occurrence whose preceding column holds no time
	noTime = "—"
)

// weekdays is the day-order map used for chronological sorting
var weekdays = []struct {
	name  string
	order int
}{
	{"понедельник", 1},
	{"вторник", 2},
	{"среда", 3},
	{"четверг", 4},
	{"пятница", 5},
	{"суббота", 6},
	{"воскресенье", 7},
}

const unknownDayOrder = 99

var scheduleRules = []RoleRule{
	{Role: RoleGroup, Any: []string{"группа", "group"}},
}

var subjectPattern = regexp.MustCompile(`(?i)предмет:\s*(.+?)(?:\n|\\n|$)`)

func dayOrder(day string) int {
	lower := strings.ToLower(day)
	for _, d := range weekdays {
		if d.name == lower {
			return d.order
		}
	}
	return unknownDayOrder
}

type dayColumn struct {
	col   int
	day   string
	order int
}

// dayColumns finds every column whose label names a weekday, in table order
func dayColumns(labels []string) []dayColumn {
	var cols []dayColumn
	for i, label := range labels {
		lower := strings.ToLower(label)
		for _, d := range weekdays {
			if strings.Contains(lower, d.name) {
				cols = append(cols, dayColumn{col: i, day: d.name, order: d.order})
				break
			}
		}
	}
	return cols
}

// subjectOf recovers the discipline name written in a timetable cell
func subjectOf(cell string) string {
	if strings.Contains(strings.ToLower(cell), "предмет:") {
		m := subjectPattern.FindStringSubmatch(cell)
		if m == nil {
			return ""
		}
		return strings.TrimSpace(m[1])
	}
	first, _, _ := strings.Cut(cell, "\n")
	return strings.TrimSpace(first)
}

type occurrence struct {
	domain.Occurrence
	order int
}

type groupAccumulator struct {
	name        string
	order       []string
	disciplines map[string][]occurrence
	total       int
}

func extractSchedule(t *table.Table, tr *Trace) *domain.ScheduleReport {
	labels := t.Columns()
	binding := Classify(labels, scheduleRules)
	tr.bind(binding, labels, RoleGroup)

	days := dayColumns(labels)
	for _, d := range days {
		tr.notef("day column %q -> %s", labels[d.col], d.day)
	}

	report := &domain.ScheduleReport{
		Title:       scheduleTitle,
		Description: scheduleDescription,
		Groups:      []domain.GroupSchedule{},
	}

	groupCol, ok := binding.Column(RoleGroup)
	if !ok {
		tr.notef("no group column, every row skipped")
		tr.Skipped = t.Len()
		return report
	}

	groups := make(map[string]*groupAccumulator)
	var groupOrder []string

	for _, row := range t.Rows() {
		name, ok := table.Identity(row.Cell(groupCol))
		if !ok {
			tr.Skipped++
			continue
		}

		acc, exists := groups[name]
		if !exists {
			acc = &groupAccumulator{name: name, disciplines: make(map[string][]occurrence)}
			groups[name] = acc
			groupOrder = append(groupOrder, name)
		}

		for _, d := range days {
			cell := strings.TrimSpace(row.Cell(d.col).String())
			if cell == "" {
				continue
			}
			tr.Scanned++

			subject := subjectOf(cell)
			if subject == "" {
				continue
			}
			tr.Matched++

			if _, seen := acc.disciplines[subject]; !seen {
				acc.order = append(acc.order, subject)
			}
			acc.disciplines[subject] = append(acc.disciplines[subject], occurrence{
				Occurrence: domain.Occurrence{Day: capitalize(d.day), Time: timeBefore(t, row, d.col)},
				order:      d.order,
			})
			acc.total++
			report.TotalPairs++
		}
	}

	for _, name := range groupOrder {
		report.Groups = append(report.Groups, groups[name].build())
	}
	sort.SliceStable(report.Groups, func(i, j int) bool {
		return report.Groups[i].Name < report.Groups[j].Name
	})

	report.Stats = domain.ScheduleStats{TotalPairs: report.TotalPairs, TotalGroups: len(report.Groups)}
	return report
}

// timeBefore reads the pair time from the column left of a day column
func timeBefore(t *table.Table, row table.Row, col int) string {
	prev, ok := t.Preceding(col)
	if !ok {
		return noTime
	}
	cell := row.Cell(prev)
	if cell.IsMissing() || !strings.Contains(cell.String(), ":") {
		return noTime
	}
	return cell.String()
}

func (g *groupAccumulator) build() domain.GroupSchedule {
	out := domain.GroupSchedule{
		Name:        g.name,
		Disciplines: make([]domain.DisciplineOccurrences, 0, len(g.order)),
		Total:       g.total,
	}

	for _, subject := range g.order {
		occs := g.disciplines[subject]
		sortOccurrences(occs)

		list := make([]domain.Occurrence, len(occs))
		for i, o := range occs {
			list[i] = o.Occurrence
		}
		out.Disciplines = append(out.Disciplines, domain.DisciplineOccurrences{
			Name:        subject,
			Count:       len(occs),
			Occurrences: list,
		})
	}

	sortDisciplines(out.Disciplines)
	return out
}
