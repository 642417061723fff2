package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"llmsbeacon/internal/types"
)

func sampleIssues() []types.Issue {
	return []types.Issue{
		{Severity: types.SeverityInfo, Code: types.CodeEmptySection, Message: "section has no content", Path: "llms.txt", Line: 12},
		{Severity: types.SeverityError, Code: types.CodeFileMismatch, Message: "content diverges", Path: "llms.txt", Line: 2,
			Context: []string{"Expected line 2: B", "Actual line 2: X"}},
		{Severity: types.SeverityWarning, Code: types.CodeForbiddenTerm, Message: "forbidden term", Path: "llms-full.txt", Line: 7},
	}
}

func TestIssues_PlainGroupsBySeverity(t *testing.T) {
	out := NewStyles(true).Issues(sampleIssues())
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	assert.Contains(t, lines[0], "ERROR")
	assert.Contains(t, lines[0], "llms.txt:2")
	assert.Contains(t, lines[1], "Expected line 2: B")
	assert.Contains(t, lines[2], "Actual line 2: X")
	assert.Contains(t, lines[3], "WARN")
	assert.Contains(t, lines[4], "INFO")
}

func TestIssues_PlainHasNoEscapeCodes(t *testing.T) {
	out := NewStyles(true).Issues(sampleIssues())
	assert.NotContains(t, out, "\x1b[")
}

func TestSummary(t *testing.T) {
	s := NewStyles(true)
	assert.Equal(t, "PASS  0 errors, 0 warnings, 0 infos", s.Summary(types.DispositionPass, 0, 0, 0))
	assert.Equal(t, "FAIL  2 errors, 1 warnings, 0 infos", s.Summary(types.DispositionFail, 2, 1, 0))
	assert.Contains(t, s.Summary(types.DispositionWarn, 0, 3, 1), "WARN")
}
