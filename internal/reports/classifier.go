package reports

import "strings"

// Role is a semantic slot an extractor needs bound to a column
type Role string

const (
	RoleGroup         Role = "group"
	RolePersonName    Role = "person_name"
	RoleHomeworkGrade Role = "homework_grade"
	RoleClassGrade    Role = "class_grade"
	RoleAttendance    Role = "attendance_percent"
	RoleCompletion    Role = "completion_percent"
	RoleIssued        Role = "issued"
	RoleChecked       Role = "checked"
)

// RoleRule describes how a role is recognized in a column label. A label
// matches when, lowercased, it contains every All keyword (if All is set) or
// any Any keyword. DefaultFirst binds the first column when nothing matches.
type RoleRule struct {
	Role         Role
	Any          []string
	All          []string
	DefaultFirst bool
}

// Matches reports whether label satisfies the rule
func (r RoleRule) Matches(label string) bool {
	lower := strings.ToLower(label)
	if len(r.All) > 0 && containsAll(lower, r.All) {
		return true
	}
	return containsAny(lower, r.Any)
}

// Binding is the outcome of classifying a set of labels
type Binding struct {
	candidates map[Role][]int
	defaulted  map[Role]bool
}

// Classify binds each rule's role to every matching column, left to right.
// Roles are evaluated independently, so one column may serve several roles.
func Classify(labels []string, rules []RoleRule) Binding {
	b := newBinding()
	for _, rule := range rules {
		for col, label := range labels {
			if rule.Matches(label) {
				b.candidates[rule.Role] = append(b.candidates[rule.Role], col)
			}
		}
		b.applyDefault(rule, len(labels))
	}
	return b
}

// ClassifyExclusive assigns each column to the first rule, in priority order,
// that matches it. A column claimed by an earlier rule is not offered to later ones.
func ClassifyExclusive(labels []string, rules []RoleRule) Binding {
	b := newBinding()
	for col, label := range labels {
		for _, rule := range rules {
			if rule.Matches(label) {
				b.candidates[rule.Role] = append(b.candidates[rule.Role], col)
				break
			}
		}
	}
	for _, rule := range rules {
		b.applyDefault(rule, len(labels))
	}
	return b
}

func newBinding() Binding {
	return Binding{
		candidates: make(map[Role][]int),
		defaulted:  make(map[Role]bool),
	}
}

func (b Binding) applyDefault(rule RoleRule, width int) {
	if !rule.DefaultFirst || width == 0 || len(b.candidates[rule.Role]) > 0 {
		return
	}
	b.candidates[rule.Role] = []int{0}
	b.defaulted[rule.Role] = true
}

// Column returns the first column bound to role
func (b Binding) Column(role Role) (int, bool) {
	cols := b.candidates[role]
	if len(cols) == 0 {
		return 0, false
	}
	return cols[0], true
}

// Last returns the right-most column bound to role
func (b Binding) Last(role Role) (int, bool) {
	cols := b.candidates[role]
	if len(cols) == 0 {
		return 0, false
	}
	return cols[len(cols)-1], true
}

// Candidates returns every column bound to role in table order
func (b Binding) Candidates(role Role) []int {
	return b.candidates[role]
}

// Defaulted reports whether role fell back to the first column
func (b Binding) Defaulted(role Role) bool {
	return b.defaulted[role]
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func containsAll(s string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(s, kw) {
			return false
		}
	}
	return true
}
