package reports

import (
	"cmp"
	"slices"

	"acadreports/pkg/contracts/domain"
)

// sortOccurrences orders pairs chronologically by (day order, time)
func sortOccurrences(occs []occurrence) {
	slices.SortStableFunc(occs, func(a, b occurrence) int {
		if c := cmp.Compare(a.order, b.order); c != 0 {
			return c
		}
		return cmp.Compare(a.Time, b.Time)
	})
}

// sortDisciplines orders disciplines by the day and time of their first pair
func sortDisciplines(ds []domain.DisciplineOccurrences) {
	key := func(d domain.DisciplineOccurrences) (int, string) {
		if len(d.Occurrences) == 0 {
			return unknownDayOrder, "99:99"
		}
		first := d.Occurrences[0]
		return dayOrder(first.Day), first.Time
	}
	slices.SortStableFunc(ds, func(a, b domain.DisciplineOccurrences) int {
		ao, at := key(a)
		bo, bt := key(b)
		if c := cmp.Compare(ao, bo); c != 0 {
			return c
		}
		return cmp.Compare(at, bt)
	})
}

// sortByFirstRow orders topic entries by the row they first appear on
func sortByFirstRow(entries []domain.TopicEntry) {
	first := func(e domain.TopicEntry) int {
		if len(e.Occurrences) == 0 {
			return 0
		}
		return e.Occurrences[0].Row
	}
	slices.SortStableFunc(entries, func(a, b domain.TopicEntry) int {
		return cmp.Compare(first(a), first(b))
	})
}

// sortRefs orders the occurrences of one topic by row
func sortRefs(refs []domain.CellRef) {
	slices.SortStableFunc(refs, func(a, b domain.CellRef) int {
		return cmp.Compare(a.Row, b.Row)
	})
}

// sortAscending stable-sorts items by a metric, lowest first
func sortAscending[T any](items []T, metric func(T) float64) {
	slices.SortStableFunc(items, func(a, b T) int {
		return cmp.Compare(metric(a), metric(b))
	})
}
