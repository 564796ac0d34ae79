package reports

import (
	"fmt"
	"log/slog"
	"sort"

	"acadreports/pkg/contracts/domain"
)

// Trace records how one extraction resolved its columns. It is returned to the
// caller instead of being logged from inside the engine.
type Trace struct {
	Kind     domain.ReportKind `json:"kind"`
	Columns  []string          `json:"columns"`
	Bindings map[Role][]string `json:"bindings"`
	Rows     int               `json:"rows"`
	Scanned  int               `json:"scanned"`
	Matched  int               `json:"matched"`
	Skipped  int               `json:"skipped"`
	Notes    []string          `json:"notes,omitempty"`
}

func newTrace(kind domain.ReportKind, columns []string) *Trace {
	return &Trace{
		Kind:     kind,
		Columns:  columns,
		Bindings: make(map[Role][]string),
	}
}

// bind records the labels of every candidate column of role
func (t *Trace) bind(b Binding, labels []string, roles ...Role) {
	for _, role := range roles {
		cols := b.Candidates(role)
		names := make([]string, 0, len(cols))
		for _, c := range cols {
			if c < len(labels) {
				names = append(names, labels[c])
			}
		}
		t.Bindings[role] = names
		if b.Defaulted(role) {
			t.notef("%s defaulted to first column", role)
		}
	}
}

func (t *Trace) notef(format string, args ...any) {
	t.Notes = append(t.Notes, fmt.Sprintf(format, args...))
}

// LogValue renders the trace as a structured log group
func (t *Trace) LogValue() slog.Value {
	roles := make([]string, 0, len(t.Bindings))
	for role := range t.Bindings {
		roles = append(roles, string(role))
	}
	sort.Strings(roles)

	bindings := make([]slog.Attr, 0, len(roles))
	for _, role := range roles {
		bindings = append(bindings, slog.Any(role, t.Bindings[Role(role)]))
	}

	return slog.GroupValue(
		slog.String("kind", string(t.Kind)),
		slog.Int("columns", len(t.Columns)),
		slog.Int("rows", t.Rows),
		slog.Int("scanned", t.Scanned),
		slog.Int("matched", t.Matched),
		slog.Int("skipped", t.Skipped),
		slog.Attr{Key: "bindings", Value: slog.GroupValue(bindings...)},
		slog.Any("notes", t.Notes),
	)
}
