package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acadreports/internal/table"
	"acadreports/pkg/contracts/domain"
)

func TestStudentHomeworkDropsDashesFromNumbers(t *testing.T) {
	tbl := table.New(
		[]string{"ФИО студента", "Процент выполнения ДЗ"},
		[][]table.CellValue{
			{table.TextCell("Числом"), table.NumberCell(-50)},
			{table.TextCell("Текстом"), table.TextCell("-35-%")},
			{table.TextCell("Выше порога"), table.NumberCell(-85)},
		},
	)

	r := extractStudentHomework(tbl, newTrace(domain.ReportKindStudentHomework, tbl.Columns()))

	require.Len(t, r.Students, 2)
	assert.Equal(t, domain.StudentCompletion{Name: "Текстом", CompletionPercent: 35}, r.Students[0])
	assert.Equal(t, domain.StudentCompletion{Name: "Числом", CompletionPercent: 50}, r.Students[1])
	assert.Equal(t, 2, r.Stats.TotalFound)
}
