package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportKind(t *testing.T) {
	assert.Len(t, ReportKinds, 6)
	for _, k := range ReportKinds {
		assert.True(t, k.IsValid(), k)
		assert.NotEqual(t, string(k), k.Label(), "label for %s", k)
	}

	assert.False(t, ReportKind("grades").IsValid())
	assert.Equal(t, "grades", ReportKind("grades").Label())

	assert.True(t, ReportKindHomework.AcceptsPeriod())
	assert.False(t, ReportKindStudentHomework.AcceptsPeriod())
}

func TestPeriod(t *testing.T) {
	tests := []struct {
		period Period
		anchor string
		label  string
	}{
		{PeriodMonth, "Месяц", "за месяц"},
		{PeriodWeek, "Неделя", "за неделю"},
		{PeriodDay, "День", "за день"},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			assert.True(t, tt.period.IsValid())
			assert.Equal(t, tt.anchor, tt.period.Anchor())
			assert.Equal(t, tt.label, tt.period.Label())
		})
	}
	assert.False(t, Period("year").IsValid())
}

func TestNewHistoryItemSummary(t *testing.T) {
	tests := []struct {
		name   string
		result Report
		want   string
	}{
		{"schedule", &ScheduleReport{TotalPairs: 12}, "Найдено 12 пар"},
		{"topics", &TopicsReport{Stats: TopicsStats{ValidCount: 3, InvalidCount: 1}}, "Верных: 3, неверных: 1"},
		{"students", &StudentsReport{Students: []StudentIssue{{}, {}}}, "Найдено 2 студентов"},
		{"attendance", &AttendanceReport{Teachers: []TeacherAttendance{{Name: "Иванов"}}}, "Найдено 1 преподавателей"},
		{"homework", &HomeworkReport{}, "Найдено 0 преподавателей"},
		{"student homework", &StudentHomeworkReport{Students: []StudentCompletion{{Name: "Кузнецова"}}}, "Найдено 1 студентов"},
		{"no result", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := &StoredReport{ID: "r1", ReportType: ReportKindAttendance, Filename: "a.xlsx", Result: tt.result}
			if tt.result != nil {
				stored.ReportType = tt.result.Kind()
			}
			item := NewHistoryItem(stored)
			assert.Equal(t, "r1", item.ID)
			assert.Equal(t, stored.ReportType.Label(), item.ReportLabel)
			assert.Equal(t, tt.want, item.Summary)
		})
	}
}

func TestStoredReportJSON(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	in := StoredReport{
		ID:         "abc",
		ReportType: ReportKindStudentHomework,
		Filename:   "hw.xlsx",
		Result: &StudentHomeworkReport{
			Title:    "Отчет по сданным домашним заданиям студентами",
			Students: []StudentCompletion{{Name: "Кузнецова А.", CompletionPercent: 45}},
		},
		Timestamp: ts,
		CreatedBy: "anonymous",
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"report_type":"student_homework"`)
	assert.Contains(t, string(data), `"completion_percent":45`)

	var out StoredReport
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "abc", out.ID)
	assert.True(t, ts.Equal(out.Timestamp))

	result, ok := out.Result.(*StudentHomeworkReport)
	require.True(t, ok)
	require.Len(t, result.Students, 1)
	assert.Equal(t, "Кузнецова А.", result.Students[0].Name)
}

func TestStoredReportJSONErrors(t *testing.T) {
	var out StoredReport
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","report_type":"topics","result":null}`), &out))
	assert.Nil(t, out.Result)

	err := json.Unmarshal([]byte(`{"id":"x","report_type":"grades","result":{}}`), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown report type")

	_, err = DecodeReport(ReportKindTopics, []byte(`{"stats":"oops"}`))
	require.Error(t, err)
}
