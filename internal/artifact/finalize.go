// Package artifact renders the resolved bundle into the three deterministic
// artifacts: the brief document (llms.txt), the full document
// (llms-full.txt) and the citation index (citations.json). Generators are
// pure functions of (config, bundle); byte-stable output is the contract.
package artifact

import (
	"regexp"
	"strings"
)

var spaceRun = regexp.MustCompile("  +")

// Finalize applies the cross-cutting output rules as the last step, after
// content is fully assembled: trailing spaces trimmed, runs of spaces
// collapsed, at most a single blank line between sections, one trailing
// newline, then conversion to the target line ending.
func Finalize(text, lineEndings string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		line = spaceRun.ReplaceAllString(line, " ")
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}

	// Drop leading and trailing blank lines, keep exactly one final newline.
	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}

	result := strings.Join(out, "\n") + "\n"
	if lineEndings == "crlf" {
		result = strings.ReplaceAll(result, "\n", "\r\n")
	}
	return result
}

// FinalizeEOL converts line endings only. Used for the citation index,
// whose JSON indentation must survive untouched.
func FinalizeEOL(text, lineEndings string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if lineEndings == "crlf" {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	return text
}
