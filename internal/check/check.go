// Package check re-derives the expected artifacts from the site description
// and verifies the files on disk against them. Verification never throws for
// expected-content problems: everything degrades to an Issue with a severity
// the caller can threshold on.
package check

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"llmsbeacon/internal/artifact"
	"llmsbeacon/internal/canonical"
	"llmsbeacon/internal/config"
	"llmsbeacon/internal/fsio"
	"llmsbeacon/internal/lint"
	"llmsbeacon/internal/logging"
	"llmsbeacon/internal/types"
)

const defaultContextPairs = 5

// ReadFunc is the injectable file reader; missing files return ok=false.
type ReadFunc func(path string) (content string, ok bool, err error)

// Options configures one check run.
type Options struct {
	// FailThreshold is "error" (default) or "warn". With "warn", a run
	// that has only warnings ends in the Warn disposition.
	FailThreshold string

	// MaxContextPairs bounds the paired expected/actual lines attached to
	// a mismatch issue. Zero means the default of 5.
	MaxContextPairs int

	// Read replaces the filesystem reader; nil uses fsio.ReadText.
	Read ReadFunc

	// Now pins the citation timestamp so expected content matches what
	// generate wrote. Nil uses the wall clock, which only matches files
	// whose timestamp field is ignored; the CLI persists the generation
	// timestamp comparison by normalizing, see expectedCitations.
	Now func() time.Time
}

// Report is the outcome of one check run.
type Report struct {
	RunID       string            `json:"run_id"`
	Disposition types.Disposition `json:"disposition"`
	Issues      []types.Issue     `json:"issues"`
	Errors      int               `json:"errors"`
	Warnings    int               `json:"warnings"`
	Infos       int               `json:"infos"`
	StartedAt   time.Time         `json:"started_at"`
	Elapsed     time.Duration     `json:"elapsed"`
}

// Run executes the verification state machine: presence checks, policy
// lint, expected-vs-actual diff, severity aggregation. A config-level
// failure (invalid base URL) aborts before verification and is returned as
// an error; everything else becomes an Issue on the report.
func Run(cfg *config.Config, opts Options) (*Report, error) {
	started := time.Now()
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: started,
	}
	read := opts.Read
	if read == nil {
		read = fsio.ReadText
	}

	logging.Check("check run %s starting", report.RunID)

	bundle, err := canonical.Assemble(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve bundle: %w", err)
	}

	report.Issues = append(report.Issues, validateBundleURLs(bundle)...)

	expected := map[string]string{
		cfg.Output.Paths.LLMSTxt:     artifact.RenderBrief(cfg, bundle),
		cfg.Output.Paths.LLMSFullTxt: artifact.RenderFull(cfg, bundle),
	}
	textPaths := []string{cfg.Output.Paths.LLMSTxt, cfg.Output.Paths.LLMSFullTxt}

	actual := make(map[string]string, len(textPaths))
	anyMissing := false
	for _, path := range cfg.Output.Paths.All() {
		content, ok, err := read(path)
		if err != nil {
			return nil, fmt.Errorf("read artifact: %w", err)
		}
		if !ok {
			anyMissing = true
			report.Issues = append(report.Issues, types.Issue{
				Severity: types.SeverityError,
				Code:     types.CodeFileMissing,
				Message:  "required artifact is missing",
				Path:     path,
			})
			continue
		}
		if content == "" {
			report.Issues = append(report.Issues, types.Issue{
				Severity: types.SeverityWarning,
				Code:     types.CodeFileEmpty,
				Message:  "artifact file exists but is empty",
				Path:     path,
			})
		}
		actual[path] = content
	}

	// Policy lint runs on whatever text content exists, regardless of
	// match state.
	rules := lint.Rules{
		ForbiddenTerms: cfg.Policy.ForbiddenTerms,
		AllowedPhrases: cfg.Policy.AllowedPhrases,
	}
	for _, path := range textPaths {
		if content, ok := actual[path]; ok {
			report.Issues = append(report.Issues, lint.Scan(path, content, rules)...)
		}
	}

	// The diff is skipped entirely when any required file is missing:
	// one missing-file error should not fan out into mismatch noise.
	if !anyMissing {
		for _, path := range textPaths {
			report.Issues = append(report.Issues, diffArtifact(path, expected[path], actual[path], opts.MaxContextPairs)...)
		}
		report.Issues = append(report.Issues, diffCitations(cfg, bundle, actual, opts)...)
	}

	report.Errors, report.Warnings, report.Infos = types.Count(report.Issues)
	report.Disposition = disposition(report.Errors, report.Warnings, opts.FailThreshold)
	report.Elapsed = time.Since(started)

	logging.Check("check run %s finished: %s (%d errors, %d warnings, %d infos)",
		report.RunID, report.Disposition, report.Errors, report.Warnings, report.Infos)
	return report, nil
}

func validateBundleURLs(bundle *canonical.Bundle) []types.Issue {
	var issues []types.Issue
	for _, raw := range bundle.URLs {
		u, err := url.Parse(raw)
		if err != nil || !u.IsAbs() || u.Host == "" {
			issues = append(issues, types.Issue{
				Severity: types.SeverityError,
				Code:     types.CodeInvalidURL,
				Message:  fmt.Sprintf("canonical URL %q is not absolute", raw),
			})
		}
	}
	return issues
}

func diffArtifact(path, expected, actual string, maxPairs int) []types.Issue {
	line, context, differs := divergence(expected, actual, maxPairs)
	if !differs {
		return nil
	}
	return []types.Issue{{
		Severity: types.SeverityError,
		Code:     types.CodeFileMismatch,
		Message:  fmt.Sprintf("content differs from the site description at line %d", line),
		Path:     path,
		Line:     line,
		Context:  context,
	}}
}

// diffCitations compares the citation index with the generation timestamp
// pinned to the one recorded in the on-disk file, so a content-identical
// index from an earlier run still verifies.
func diffCitations(cfg *config.Config, bundle *canonical.Bundle, actual map[string]string, opts Options) []types.Issue {
	path := cfg.Output.Paths.Citations
	content, ok := actual[path]
	if !ok {
		return nil
	}

	now := opts.Now
	if now == nil {
		if recorded, err := recordedTimestamp(content); err == nil {
			now = func() time.Time { return recorded }
		} else {
			now = time.Now
		}
	}

	expected, err := artifact.RenderCitations(cfg, bundle, artifact.CitationOptions{Now: now})
	if err != nil {
		return []types.Issue{{
			Severity: types.SeverityError,
			Code:     types.CodeFileMismatch,
			Message:  fmt.Sprintf("could not derive expected citation index: %v", err),
			Path:     path,
		}}
	}
	return diffArtifact(path, expected, content, opts.MaxContextPairs)
}

func disposition(errors, warnings int, failThreshold string) types.Disposition {
	if errors > 0 {
		return types.DispositionFail
	}
	if warnings > 0 && failThreshold == "warn" {
		return types.DispositionWarn
	}
	return types.DispositionPass
}
