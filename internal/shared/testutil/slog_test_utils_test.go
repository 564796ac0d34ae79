package testutil

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLogCapture(t *testing.T) {
	logger, capture := NewTestLogger()

	logger.With(slog.String("service", "reports")).Info("report created", slog.String("report_id", "r1"))
	logger.WithGroup("trace").Debug("columns", slog.Int("resolved", 3))
	logger.Warn("slow query")

	records := capture.Records()
	require.Len(t, records, 3)

	r := AssertLogged(t, capture, slog.LevelInfo, "report created")
	assert.Equal(t, "reports", r.Attrs["service"])
	assert.Equal(t, "r1", r.Attrs["report_id"])

	r = AssertLogged(t, capture, slog.LevelDebug, "columns")
	assert.EqualValues(t, 3, r.Attrs["trace.resolved"])

	_, ok := capture.Find(slog.LevelError, "slow")
	assert.False(t, ok)
	AssertNoErrors(t, capture)
}

func TestWorkbook(t *testing.T) {
	data := Workbook(t, StudentHomeworkRows()...)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Кузнецова А.", "45"}, rows[1])

	path := WriteWorkbook(t, t.TempDir(), "hw.xlsx", StudentHomeworkRows()...)
	assert.FileExists(t, path)
}
