// Package lint scans rendered artifact text for content-policy problems:
// forbidden terms, empty markdown sections and duplicate links. The three
// scans are independent; none halts the others, and none of their findings
// ever blocks generation.
package lint

import (
	"fmt"
	"regexp"
	"strings"

	"llmsbeacon/internal/types"
)

// Rules configures the linter. Zero-value rules lint nothing but the
// structural scans (empty sections, duplicate links).
type Rules struct {
	// ForbiddenTerms are matched case-insensitively as substrings of each
	// non-blank line.
	ForbiddenTerms []string

	// AllowedPhrases suppress a forbidden-term match when a phrase
	// containing the term appears on the same line.
	AllowedPhrases []string

	// PolicyLinePrefixes mark lines that themselves define the policy
	// (e.g. the rendered "Forbidden terms:" list); they are skipped to
	// avoid self-flagging.
	PolicyLinePrefixes []string
}

// DefaultPolicyLinePrefixes covers the lines the full document renders from
// the policy config.
var DefaultPolicyLinePrefixes = []string{"Forbidden terms:", "Allowed phrases:"}

var linkPattern = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]+)\)`)

var headingPattern = regexp.MustCompile(`^(#+)\s+(.*)$`)

// Scan runs all three scans over rendered text and returns their issues.
// path is attached to every issue for reporting.
func Scan(path, text string, rules Rules) []types.Issue {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var issues []types.Issue
	issues = append(issues, scanForbiddenTerms(path, lines, rules)...)
	issues = append(issues, scanEmptySections(path, lines)...)
	issues = append(issues, scanDuplicateLinks(path, lines)...)
	return issues
}

func scanForbiddenTerms(path string, lines []string, rules Rules) []types.Issue {
	if len(rules.ForbiddenTerms) == 0 {
		return nil
	}
	prefixes := rules.PolicyLinePrefixes
	if prefixes == nil {
		prefixes = DefaultPolicyLinePrefixes
	}

	var issues []types.Issue
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isPolicyLine(trimmed, prefixes) {
			continue
		}
		lower := strings.ToLower(line)
		for _, term := range rules.ForbiddenTerms {
			term = strings.TrimSpace(term)
			if term == "" || !strings.Contains(lower, strings.ToLower(term)) {
				continue
			}
			if whitelisted(lower, strings.ToLower(term), rules.AllowedPhrases) {
				continue
			}
			issues = append(issues, types.Issue{
				Severity: types.SeverityWarning,
				Code:     types.CodeForbiddenTerm,
				Message:  fmt.Sprintf("forbidden term %q", term),
				Path:     path,
				Line:     i + 1,
				Context:  []string{trimmed},
			})
		}
	}
	return issues
}

func isPolicyLine(line string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// whitelisted reports whether an allowed phrase containing the term also
// appears on the line.
func whitelisted(lowerLine, lowerTerm string, allowed []string) bool {
	for _, phrase := range allowed {
		p := strings.ToLower(strings.TrimSpace(phrase))
		if p == "" || !strings.Contains(p, lowerTerm) {
			continue
		}
		if strings.Contains(lowerLine, p) {
			return true
		}
	}
	return false
}

// scanEmptySections walks markdown headings. A heading whose content, up to
// the next heading of equal or shallower depth, has no non-blank text is
// flagged. The document title (first heading) is exempt; a nested
// subheading counts as content for its parent.
func scanEmptySections(path string, lines []string) []types.Issue {
	type heading struct {
		line  int
		depth int
		title string
	}
	var headings []heading
	for i, line := range lines {
		if m := headingPattern.FindStringSubmatch(line); m != nil {
			headings = append(headings, heading{line: i, depth: len(m[1]), title: strings.TrimSpace(m[2])})
		}
	}

	var issues []types.Issue
	for hi, h := range headings {
		if hi == 0 {
			continue
		}

		end := len(lines)
		for _, next := range headings[hi+1:] {
			if next.depth <= h.depth {
				end = next.line
				break
			}
		}

		hasContent := false
		for _, line := range lines[h.line+1 : end] {
			if strings.TrimSpace(line) != "" {
				hasContent = true
				break
			}
		}
		if !hasContent {
			issues = append(issues, types.Issue{
				Severity: types.SeverityInfo,
				Code:     types.CodeEmptySection,
				Message:  fmt.Sprintf("section %q has no content", h.title),
				Path:     path,
				Line:     h.line + 1,
			})
		}
	}
	return issues
}

func scanDuplicateLinks(path string, lines []string) []types.Issue {
	firstSeen := make(map[string]int)
	var issues []types.Issue
	for i, line := range lines {
		for _, m := range linkPattern.FindAllStringSubmatch(line, -1) {
			url := m[2]
			if first, ok := firstSeen[url]; ok {
				issues = append(issues, types.Issue{
					Severity: types.SeverityWarning,
					Code:     types.CodeDuplicateURL,
					Message:  fmt.Sprintf("duplicate link %s (first at line %d)", url, first),
					Path:     path,
					Line:     i + 1,
				})
				continue
			}
			firstSeen[url] = i + 1
		}
	}
	return issues
}
