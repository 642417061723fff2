// Package types holds the shared diagnostic types produced by the check
// pipeline, the policy linter and the live probe, and consumed by reporters.
package types

import "fmt"

// Severity classifies how serious an Issue is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Code identifies the kind of discrepancy an Issue reports.
// The set is closed: reporters may switch over it exhaustively.
type Code string

const (
	CodeFileMissing   Code = "file_missing"
	CodeFileEmpty     Code = "file_empty"
	CodeFileMismatch  Code = "file_mismatch"
	CodeForbiddenTerm Code = "forbidden_term"
	CodeDuplicateURL  Code = "duplicate_url"
	CodeEmptySection  Code = "empty_section"
	CodeInvalidURL    Code = "invalid_url"
	CodeProbeFailed   Code = "probe_failed"
)

// Issue is one discrepancy or policy violation. Issues are reported, never
// retried or mutated; the pipeline keeps going after producing one.
type Issue struct {
	Severity Severity `json:"severity"`
	Code     Code     `json:"code"`
	Message  string   `json:"message"`
	Path     string   `json:"path,omitempty"`
	Line     int      `json:"line,omitempty"`
	Context  []string `json:"context,omitempty"`
}

func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("%s[%s] %s:%d: %s", i.Severity, i.Code, i.Path, i.Line, i.Message)
	}
	if i.Path != "" {
		return fmt.Sprintf("%s[%s] %s: %s", i.Severity, i.Code, i.Path, i.Message)
	}
	return fmt.Sprintf("%s[%s] %s", i.Severity, i.Code, i.Message)
}

// Disposition is the terminal state of one check run.
type Disposition string

const (
	DispositionPass Disposition = "pass"
	DispositionWarn Disposition = "warn"
	DispositionFail Disposition = "fail"
)

// Count tallies issues by severity.
func Count(issues []Issue) (errors, warnings, infos int) {
	for _, is := range issues {
		switch is.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		case SeverityInfo:
			infos++
		}
	}
	return errors, warnings, infos
}
