package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acadreports/internal/table"
	"acadreports/pkg/contracts/domain"
)

func TestStudentsIssues(t *testing.T) {
	tbl := table.FromStrings(
		[]string{"ФИО", "ДЗ", "Классная работа"},
		[][]string{
			{"Оба", "1", "2.5"},
			{"Хорошист", "4", "4"},
			{"", "1", "5"},
			{"Почти", "1.5", "3"},
		},
	)

	r := extractStudents(tbl, newTrace(domain.ReportKindStudents, tbl.Columns()))

	require.Len(t, r.Students, 2)
	assert.Equal(t, 2, r.Stats.TotalFound)

	both := r.Students[0]
	assert.Equal(t, "Оба", both.Name)
	assert.Equal(t, []string{
		"Средняя оценка за ДЗ = 1.0",
		"Оценка за классную работу = 2.5",
	}, both.Issues)
	require.NotNil(t, both.HWGrade)
	assert.Equal(t, 1.0, *both.HWGrade)
	require.NotNil(t, both.ClassGrade)
	assert.Equal(t, 2.5, *both.ClassGrade)

	assert.Equal(t, "Строка 4", r.Students[1].Name)
}

func TestStudentsFallbackFillsGradesInOrder(t *testing.T) {
	tbl := table.FromStrings(
		[]string{"Ученик", "Оценка 1", "Оценка 2", "Баллы"},
		[][]string{
			{"Петров", "1", "4", "87"},
			{"Иванов", "95", "5", "2"},
			{"Сидоров", "", "", ""},
		},
	)

	r := extractStudents(tbl, newTrace(domain.ReportKindStudents, tbl.Columns()))

	require.Len(t, r.Students, 2)

	assert.Equal(t, "Петров", r.Students[0].Name)
	assert.Equal(t, []string{"Средняя оценка за ДЗ = 1.0"}, r.Students[0].Issues)

	ivanov := r.Students[1]
	assert.Equal(t, "Иванов", ivanov.Name)
	assert.Equal(t, 5.0, *ivanov.HWGrade)
	assert.Equal(t, 2.0, *ivanov.ClassGrade)
	assert.Equal(t, []string{"Оценка за классную работу = 2.0"}, ivanov.Issues)
}

func TestStudentsFallbackReusesClassworkValue(t *testing.T) {
	tbl := table.FromStrings(
		[]string{"Студент", "Классная работа"},
		[][]string{{"Только класс", "1"}},
	)

	r := extractStudents(tbl, newTrace(domain.ReportKindStudents, tbl.Columns()))

	require.Len(t, r.Students, 1)
	// the fallback reuses the classwork value for the unset homework grade
	require.NotNil(t, r.Students[0].HWGrade)
	assert.Equal(t, 1.0, *r.Students[0].HWGrade)
	assert.Len(t, r.Students[0].Issues, 2)
}

func TestStudentHomework(t *testing.T) {
	tbl := table.FromStrings(
		[]string{"Имя", "Группа", "Homework percentage"},
		[][]string{
			{"Антонов", "А-1", "65%"},
			{"Борисов", "А-1", "70"},
			{"Итого", "", "12"},
			{"TOTAL", "", "12"},
			{"", "А-1", "-45-"},
			{"Васильев", "А-1", "нет"},
			{"Григорьев", "А-1", "12.34"},
		},
	)

	r := extractStudentHomework(tbl, newTrace(domain.ReportKindStudentHomework, tbl.Columns()))

	require.Len(t, r.Students, 3)
	assert.Equal(t, 70, r.Stats.Threshold)
	assert.Equal(t, []domain.StudentCompletion{
		{Name: "Григорьев", CompletionPercent: 12.3},
		{Name: "Строка 6", CompletionPercent: 45},
		{Name: "Антонов", CompletionPercent: 65},
	}, r.Students)
}

func TestStudentHomeworkWithoutPercentColumn(t *testing.T) {
	tbl := table.FromStrings(
		[]string{"ФИО", "Оценка"},
		[][]string{{"Антонов", "10"}},
	)

	r := extractStudentHomework(tbl, newTrace(domain.ReportKindStudentHomework, tbl.Columns()))

	assert.Empty(t, r.Students)
	assert.Zero(t, r.Stats.TotalFound)
}
