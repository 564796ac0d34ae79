package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	labels := []string{"№", "ФИО студента", "ДЗ (средняя)", "Классная работа", "Домашняя работа"}

	b := Classify(labels, studentRules)

	name, ok := b.Column(RolePersonName)
	assert.True(t, ok)
	assert.Equal(t, 1, name)
	assert.False(t, b.Defaulted(RolePersonName))

	assert.Equal(t, []int{2, 4}, b.Candidates(RoleHomeworkGrade))
	// "Домашняя работа" also satisfies the class role through "работа"
	assert.Equal(t, []int{3, 4}, b.Candidates(RoleClassGrade))
}

func TestClassifyDefaultsToFirstColumn(t *testing.T) {
	b := Classify([]string{"Кто", "Сколько"}, attendanceRules)

	col, ok := b.Column(RolePersonName)
	assert.True(t, ok)
	assert.Equal(t, 0, col)
	assert.True(t, b.Defaulted(RolePersonName))

	_, ok = b.Column(RoleAttendance)
	assert.False(t, ok)
}

func TestClassifyEmptyLabels(t *testing.T) {
	b := Classify(nil, studentRules)

	_, ok := b.Column(RolePersonName)
	assert.False(t, ok)
	assert.Empty(t, b.Candidates(RoleHomeworkGrade))
}

func TestClassifyExclusive(t *testing.T) {
	labels := []string{"выдано/проверено", "проверено", "выдано"}

	shared := Classify(labels, globalCountRules)
	assert.Equal(t, []int{0, 2}, shared.Candidates(RoleIssued))
	assert.Equal(t, []int{0, 1}, shared.Candidates(RoleChecked))

	exclusive := ClassifyExclusive(labels, globalCountRules)
	assert.Equal(t, []int{0, 2}, exclusive.Candidates(RoleIssued))
	assert.Equal(t, []int{1}, exclusive.Candidates(RoleChecked))

	last, ok := exclusive.Last(RoleIssued)
	assert.True(t, ok)
	assert.Equal(t, 2, last)
}

func TestRoleRuleAllKeywords(t *testing.T) {
	rule := studentHomeworkRules[1]

	assert.True(t, rule.Matches("Homework Percentage"))
	assert.True(t, rule.Matches("Процент выполнения"))
	assert.True(t, rule.Matches("Completion"))
	assert.False(t, rule.Matches("Percentage"))
	assert.False(t, rule.Matches("Homework"))
}
