// Package reports turns a decoded table into one of the six academic reports.
//
// Every extraction is a pure function of the table and its options. Column
// meaning is recovered from free-form labels through keyword rules, cells are
// read through the table normalizer, and sparse or malformed input yields an
// empty but well formed report rather than an error.
package reports

import (
	"fmt"

	"acadreports/internal/table"
	"acadreports/pkg/contracts/domain"
)

// Options carries the per-call parameters of an extraction
type Options struct {
	// Period applies to the homework report only. Empty means month.
	Period domain.Period
}

// Extract runs the pipeline for kind over t. The returned trace describes how
// columns were resolved and is never nil.
func Extract(kind domain.ReportKind, t *table.Table, opts Options) (domain.Report, *Trace, error) {
	if t == nil {
		t = table.New(nil, nil)
	}
	tr := newTrace(kind, t.Columns())
	tr.Rows = t.Len()

	switch kind {
	case domain.ReportKindSchedule:
		return extractSchedule(t, tr), tr, nil
	case domain.ReportKindTopics:
		return extractTopics(t, tr), tr, nil
	case domain.ReportKindStudents:
		return extractStudents(t, tr), tr, nil
	case domain.ReportKindAttendance:
		return extractAttendance(t, tr), tr, nil
	case domain.ReportKindHomework:
		period, err := ParsePeriod(string(opts.Period))
		if err != nil {
			return nil, tr, err
		}
		return extractHomework(t, period, tr), tr, nil
	case domain.ReportKindStudentHomework:
		return extractStudentHomework(t, tr), tr, nil
	default:
		return nil, tr, fmt.Errorf("%w: %s", ErrUnknownReportKind, kind)
	}
}
