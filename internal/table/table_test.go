package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRaw(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind Kind
		text string
	}{
		{"empty", "", Missing, ""},
		{"whitespace", "  \t", Missing, ""},
		{"integer", "10", Number, "10"},
		{"padded number", " 4.5 ", Number, "4.5"},
		{"percent stays text", "30%", Text, "30%"},
		{"time stays text", "09:00", Text, "09:00"},
		{"name", "Студент 1", Text, "Студент 1"},
		{"nan literal is text", "nan", Text, "nan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ParseRaw(tt.raw)
			assert.Equal(t, tt.kind, c.Kind())
			assert.Equal(t, tt.text, c.String())
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		in     CellValue
		want   float64
		wantOK bool
	}{
		{"percent string", TextCell("30%"), 30, true},
		{"trailing dash", TextCell("45-"), 45, true},
		{"padded percent", TextCell(" 19.9 % "), 19.9, true},
		{"number passes through", NumberCell(4), 4, true},
		{"words", TextCell("нет данных"), 0, false},
		{"only dashes", TextCell("--"), 0, false},
		{"nan text", TextCell("nan"), 0, false},
		{"missing", MissingCell(), 0, false},
		{"comma decimal", TextCell("30,5"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.in).Float()
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestNormalizePercentDropsInnerDashes(t *testing.T) {
	got, ok := NormalizePercent(TextCell("6-5%")).Float()
	require.True(t, ok)
	assert.Equal(t, 65.0, got)

	_, ok = Normalize(TextCell("6-5%")).Float()
	assert.False(t, ok)

	got, ok = NormalizePercent(NumberCell(-50)).Float()
	require.True(t, ok)
	assert.Equal(t, 50.0, got)

	got, ok = Normalize(NumberCell(-50)).Float()
	require.True(t, ok)
	assert.Equal(t, -50.0, got)
}

func TestIdentity(t *testing.T) {
	name, ok := Identity(TextCell("Иванов"))
	assert.True(t, ok)
	assert.Equal(t, "Иванов", name)

	for _, c := range []CellValue{MissingCell(), TextCell("NaN"), TextCell("None")} {
		_, ok := Identity(c)
		assert.False(t, ok, c.String())
	}

	_, ok = Identity(TextCell("Всего"), "всего")
	assert.False(t, ok)
	_, ok = Identity(TextCell("Всего"))
	assert.True(t, ok)
}

func TestNewLabelsAndPadding(t *testing.T) {
	tbl := FromStrings(
		[]string{"ФИО", "", "ФИО"},
		[][]string{
			{"Петров", "1", "x", "extra"},
			{"Сидоров"},
		},
	)

	assert.Equal(t, []string{"ФИО", "Unnamed: 1", "ФИО.1", "Unnamed: 3"}, tbl.Columns())
	assert.Equal(t, 4, tbl.Width())
	require.Equal(t, 2, tbl.Len())

	second := tbl.Row(1)
	assert.Equal(t, "Сидоров", second.Get("ФИО").String())
	assert.True(t, second.Get("ФИО.1").IsMissing())
	assert.True(t, second.Cell(3).IsMissing())
	assert.True(t, second.Get("nope").IsMissing())

	first := tbl.Row(0)
	v, ok := first.Get("Unnamed: 1").Float()
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)
	assert.Equal(t, "extra", first.Cell(3).String())
}

func TestPreceding(t *testing.T) {
	tbl := FromStrings([]string{"Время", "Понедельник"}, nil)

	prev, ok := tbl.Preceding(1)
	require.True(t, ok)
	assert.Equal(t, "Время", tbl.Label(prev))

	_, ok = tbl.Preceding(0)
	assert.False(t, ok)
	_, ok = tbl.Preceding(5)
	assert.False(t, ok)
}
