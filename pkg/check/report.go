package check

import (
	"fmt"
	"io"

	"keephy-check/pkg/model"
)

// Report is the shared output shape of the batch checkers. Success means no
// hard errors; warnings never fail a run.
type Report struct {
	Results  []model.CheckResult `json:"results,omitempty"`
	Errors   []string            `json:"errors"`
	Warnings []string            `json:"warnings"`
	Success  bool                `json:"success"`
}

// Severity levels for report lines.
const (
	sevInfo    = "info"
	sevSuccess = "success"
	sevWarning = "warning"
	sevError   = "error"
)

// logf prints one report line with the severity marker the web repo's
// checker scripts used.
func logf(w io.Writer, severity, format string, args ...interface{}) {
	prefix := "✅"
	switch severity {
	case sevError:
		prefix = "❌"
	case sevWarning:
		prefix = "⚠️"
	}
	fmt.Fprintf(w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}

// printFindings renders the errors/warnings tail shared by all reports.
func printFindings(w io.Writer, title string, errors, warnings []string) {
	logf(w, sevInfo, "\n📊 %s", title)
	if len(errors) > 0 {
		logf(w, sevError, "Total Errors: %d", len(errors))
	} else {
		logf(w, sevSuccess, "Total Errors: 0")
	}
	if len(warnings) > 0 {
		logf(w, sevWarning, "Total Warnings: %d", len(warnings))
	} else {
		logf(w, sevSuccess, "Total Warnings: 0")
	}

	if len(errors) > 0 {
		logf(w, sevError, "\n❌ ERRORS:")
		for i, e := range errors {
			logf(w, sevError, "%d. %s", i+1, e)
		}
	}
	if len(warnings) > 0 {
		logf(w, sevWarning, "\n⚠️ WARNINGS:")
		for i, warn := range warnings {
			logf(w, sevWarning, "%d. %s", i+1, warn)
		}
	}
	if len(errors) == 0 && len(warnings) == 0 {
		logf(w, sevSuccess, "\n🎉 All validations passed!")
	}
}
