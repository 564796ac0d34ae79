package reports

import (
	"errors"
	"fmt"
	"strings"

	"acadreports/pkg/contracts/domain"
)

var (
	// ErrUnknownReportKind is returned for a kind outside the six supported reports
	ErrUnknownReportKind = errors.New("Неизвестный тип отчета")
	// ErrInvalidPeriod is returned for a homework period other than month, week or day
	ErrInvalidPeriod = errors.New("Неизвестный период")
)

// ParseKind validates a report kind identifier
func ParseKind(s string) (domain.ReportKind, error) {
	kind := domain.ReportKind(strings.TrimSpace(s))
	if !kind.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrUnknownReportKind, s)
	}
	return kind, nil
}

// ParsePeriod validates a homework period. An empty value means month.
func ParsePeriod(s string) (domain.Period, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.PeriodMonth, nil
	}
	period := domain.Period(s)
	if !period.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidPeriod, s)
	}
	return period, nil
}
