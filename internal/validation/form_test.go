package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorUploadForm(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name       string
		form       UploadForm
		wantFields []string
	}{
		{
			name: "valid homework upload",
			form: UploadForm{ReportType: "homework", Period: "week", Filename: "hw.xlsx"},
		},
		{
			name: "unknown kind is left to the engine",
			form: UploadForm{ReportType: "grades", Filename: "a.xlsx"},
		},
		{
			name:       "missing type",
			form:       UploadForm{Filename: "a.xlsx"},
			wantFields: []string{"report_type"},
		},
		{
			name: "period is left to the report service",
			form: UploadForm{ReportType: "schedule", Period: "year", Filename: "a.xlsx"},
		},
		{
			name:       "overlong period",
			form:       UploadForm{ReportType: "homework", Period: "fortnight-and-a-half", Filename: "a.xlsx"},
			wantFields: []string{"period"},
		},
		{
			name:       "path in filename",
			form:       UploadForm{ReportType: "topics", Filename: "../etc/passwd"},
			wantFields: []string{"filename"},
		},
		{
			name:       "everything wrong",
			form:       UploadForm{Period: "fortnight-and-a-half"},
			wantFields: []string{"report_type", "period", "filename"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.form)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var errs Errors
			require.ErrorAs(t, err, &errs)
			var fields []string
			for _, fe := range errs {
				fields = append(fields, fe.Field)
				assert.NotEmpty(t, fe.Message)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestErrorsMessage(t *testing.T) {
	errs := Errors{
		{Field: "report_type", Message: "report_type is required"},
		{Field: "period", Message: "period must be at most 16 characters"},
	}
	assert.Equal(t, "report_type is required; period must be at most 16 characters", errs.Error())
}
