package reports

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"acadreports/internal/table"
	"acadreports/pkg/contracts/domain"
)

const (
	topicsTitle        = "Отчет по темам занятий"
	topicsDescription  = "Проверка формата записи тем: 'Урок № _. Тема: _'"
	topicInvalidReason = "Неверный формат. Ожидается: 'Урок № _. Тема: _'"

	// topicMinLength excludes short cells such as grades and marks
	topicMinLength = 3
	topicTextLimit = 100
)

var topicPattern = regexp.MustCompile(`(?i)^Урок[\s\p{Zs}]*№?[\s\p{Zs}]*\d+\.?[\s\p{Zs}]*Тема:?[\s\p{Zs}]*.+`)

// topicKeywords mark text that is meant to be a lesson topic
var topicKeywords = []string{
	"урок", "тема", "занятие", "лекция", "практика",
	"лабораторная", "семинар", "контрольная", "самостоятельная",
	"работа", "задание", "повторение", "изучение", "введение",
	"основы", "понятие", "определение", "раздел", "глава",
}

type topicVerdict int

const (
	topicIgnored topicVerdict = iota
	topicValid
	topicInvalid
)

// classifyTopic decides whether trimmed cell text is a well formed topic,
// a malformed one, or not a topic at all
func classifyTopic(text string) topicVerdict {
	if topicPattern.MatchString(text) {
		return topicValid
	}
	if containsAny(strings.ToLower(text), topicKeywords) {
		return topicInvalid
	}
	return topicIgnored
}

// topicGroups accumulates occurrences per display text in first-seen order
type topicGroups struct {
	order   []string
	entries map[string]*domain.TopicEntry
	reason  string
}

func newTopicGroups(reason string) *topicGroups {
	return &topicGroups{entries: make(map[string]*domain.TopicEntry), reason: reason}
}

func (g *topicGroups) add(text string, ref domain.CellRef) {
	entry, ok := g.entries[text]
	if !ok {
		entry = &domain.TopicEntry{Text: text, Reason: g.reason, Occurrences: []domain.CellRef{}}
		g.entries[text] = entry
		g.order = append(g.order, text)
	}
	entry.Occurrences = append(entry.Occurrences, ref)
	entry.Count++
}

func (g *topicGroups) list() []domain.TopicEntry {
	out := make([]domain.TopicEntry, 0, len(g.order))
	for _, text := range g.order {
		entry := *g.entries[text]
		sortRefs(entry.Occurrences)
		out = append(out, entry)
	}
	sortByFirstRow(out)
	return out
}

func extractTopics(t *table.Table, tr *Trace) *domain.TopicsReport {
	report := &domain.TopicsReport{
		Title:       topicsTitle,
		Description: topicsDescription,
	}

	valid := newTopicGroups("")
	invalid := newTopicGroups(topicInvalidReason)
	rows := t.Rows()

	for col, label := range t.Columns() {
		for idx, row := range rows {
			cell := row.Cell(col)
			if cell.IsMissing() {
				continue
			}
			text := strings.TrimSpace(cell.String())
			if utf8.RuneCountInString(text) <= topicMinLength {
				continue
			}
			tr.Scanned++

			ref := domain.CellRef{Row: idx + 2, Column: label}
			display := truncateRunes(text, topicTextLimit)

			switch classifyTopic(text) {
			case topicValid:
				valid.add(display, ref)
				report.Stats.ValidCount++
			case topicInvalid:
				invalid.add(display, ref)
				report.Stats.InvalidCount++
				tr.Matched++
			}
		}
	}

	report.Valid = valid.list()
	report.Invalid = invalid.list()
	tr.notef("valid=%d invalid=%d distinct_valid=%d distinct_invalid=%d",
		report.Stats.ValidCount, report.Stats.InvalidCount, len(report.Valid), len(report.Invalid))
	return report
}
