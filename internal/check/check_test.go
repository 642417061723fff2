package check

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"llmsbeacon/internal/artifact"
	"llmsbeacon/internal/canonical"
	"llmsbeacon/internal/config"
	"llmsbeacon/internal/manifest"
	"llmsbeacon/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fixedNow() time.Time {
	return time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
}

func checkConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Site.BaseURL = "https://example.com"
	cfg.Brand.Name = "Example"
	cfg.Manifests = map[string]manifest.Section{
		"blog": {
			Name:        "Blog",
			SectionPath: "/blog",
			Items: []manifest.Item{
				{Slug: "/first", Title: "First", Priority: 50},
			},
		},
	}
	return cfg
}

// renderAll produces the exact on-disk state generate would write.
func renderAll(t *testing.T, cfg *config.Config) map[string]string {
	t.Helper()
	bundle, err := canonical.Assemble(cfg)
	require.NoError(t, err)
	citations, err := artifact.RenderCitations(cfg, bundle, artifact.CitationOptions{Now: fixedNow})
	require.NoError(t, err)
	return map[string]string{
		cfg.Output.Paths.LLMSTxt:     artifact.RenderBrief(cfg, bundle),
		cfg.Output.Paths.LLMSFullTxt: artifact.RenderFull(cfg, bundle),
		cfg.Output.Paths.Citations:   citations,
	}
}

func readerFor(files map[string]string) ReadFunc {
	return func(path string) (string, bool, error) {
		content, ok := files[path]
		return content, ok, nil
	}
}

func codes(issues []types.Issue) []types.Code {
	out := make([]types.Code, 0, len(issues))
	for _, is := range issues {
		out = append(out, is.Code)
	}
	return out
}

func TestRun_PassWhenFilesMatch(t *testing.T) {
	cfg := checkConfig(t)
	files := renderAll(t, cfg)

	report, err := Run(cfg, Options{Read: readerFor(files), Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, types.DispositionPass, report.Disposition, "issues: %v", report.Issues)
	assert.Zero(t, report.Errors)
	assert.NotEmpty(t, report.RunID)
}

func TestRun_MissingFile(t *testing.T) {
	cfg := checkConfig(t)
	files := renderAll(t, cfg)
	delete(files, cfg.Output.Paths.LLMSFullTxt)

	report, err := Run(cfg, Options{Read: readerFor(files), Now: fixedNow})
	require.NoError(t, err)

	assert.Equal(t, types.DispositionFail, report.Disposition)
	assert.Contains(t, codes(report.Issues), types.CodeFileMissing)
	// The diff is skipped wholesale when a required file is missing.
	assert.NotContains(t, codes(report.Issues), types.CodeFileMismatch)
}

func TestRun_EmptyFileWarns(t *testing.T) {
	cfg := checkConfig(t)
	files := renderAll(t, cfg)
	files[cfg.Output.Paths.LLMSTxt] = ""

	report, err := Run(cfg, Options{Read: readerFor(files), Now: fixedNow})
	require.NoError(t, err)
	assert.Contains(t, codes(report.Issues), types.CodeFileEmpty)
}

func TestRun_MismatchWithContext(t *testing.T) {
	cfg := checkConfig(t)
	files := renderAll(t, cfg)
	path := cfg.Output.Paths.LLMSTxt
	files[path] = strings.Replace(files[path], "# Example", "# Tampered", 1)

	report, err := Run(cfg, Options{Read: readerFor(files), Now: fixedNow})
	require.NoError(t, err)

	var mismatch *types.Issue
	for i := range report.Issues {
		if report.Issues[i].Code == types.CodeFileMismatch {
			mismatch = &report.Issues[i]
			break
		}
	}
	require.NotNil(t, mismatch, "expected a file_mismatch issue, got %v", report.Issues)
	assert.Equal(t, path, mismatch.Path)
	joined := strings.Join(mismatch.Context, "\n")
	assert.Contains(t, joined, "Expected line 1")
	assert.Contains(t, joined, "Actual line 1")
	assert.Equal(t, types.DispositionFail, report.Disposition)
}

func TestDivergence_ReportsFirstDifferingLine(t *testing.T) {
	line, context, differs := divergence("A\nB\nC\n", "A\nX\nC\n", 5)
	require.True(t, differs)
	assert.Equal(t, 2, line)
	joined := strings.Join(context, "\n")
	assert.Contains(t, joined, "Expected line 2: B")
	assert.Contains(t, joined, "Actual line 2: X")
}

func TestDivergence_Identical(t *testing.T) {
	_, _, differs := divergence("A\nB\n", "A\nB\n", 5)
	assert.False(t, differs)
}

func TestDivergence_BoundsContext(t *testing.T) {
	expected := "a\n1\n2\n3\n4\n5\n6\n7\n"
	actual := "a\nX\nY\nZ\nQ\nR\nS\nT\n"
	_, context, differs := divergence(expected, actual, 2)
	require.True(t, differs)
	assert.Len(t, context, 4, "2 pairs = 4 context lines")
}

func TestRun_LintIssuesSurface(t *testing.T) {
	cfg := checkConfig(t)
	cfg.Policy.ForbiddenTerms = []string{"tampered"}
	files := renderAll(t, cfg)
	path := cfg.Output.Paths.LLMSTxt
	files[path] = strings.Replace(files[path], "# Example", "# Tampered", 1)

	report, err := Run(cfg, Options{Read: readerFor(files), Now: fixedNow})
	require.NoError(t, err)
	assert.Contains(t, codes(report.Issues), types.CodeForbiddenTerm,
		"lint must run even when content mismatches")
}

func TestDisposition(t *testing.T) {
	assert.Equal(t, types.DispositionPass, disposition(0, 0, ""))
	assert.Equal(t, types.DispositionPass, disposition(0, 2, ""))
	assert.Equal(t, types.DispositionWarn, disposition(0, 2, "warn"))
	assert.Equal(t, types.DispositionFail, disposition(1, 2, "warn"))
	assert.Equal(t, types.DispositionFail, disposition(3, 0, ""))
}

func TestRun_CitationsTimestampFromDisk(t *testing.T) {
	// Without an injected Now, check pins the expected citation index to
	// the generated_at recorded on disk, so an older artifact verifies.
	cfg := checkConfig(t)
	files := renderAll(t, cfg)

	report, err := Run(cfg, Options{Read: readerFor(files)})
	require.NoError(t, err)
	assert.Equal(t, types.DispositionPass, report.Disposition, "issues: %v", report.Issues)
}

func TestRun_InvalidOverrideURLFlagged(t *testing.T) {
	cfg := checkConfig(t)
	sec := cfg.Manifests["blog"]
	sec.Items = append(sec.Items, manifest.Item{Slug: "/bad", CanonicalOverride: "not-a-url"})
	cfg.Manifests["blog"] = sec
	files := renderAll(t, cfg)

	report, err := Run(cfg, Options{Read: readerFor(files), Now: fixedNow})
	require.NoError(t, err)
	assert.Contains(t, codes(report.Issues), types.CodeInvalidURL)
}
