package check

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// divergence locates the first line where expected and actual content part
// ways and builds up to maxPairs paired context lines. Line-level reduction
// through the diff engine avoids newline boundary artifacts.
func divergence(expected, actual string, maxPairs int) (line int, context []string, differs bool) {
	if expected == actual {
		return 0, nil, false
	}
	if maxPairs <= 0 {
		maxPairs = defaultContextPairs
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(expected, actual)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	line = 1
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			line += countLines(d.Text)
			continue
		}
		break
	}

	expLines := strings.Split(strings.TrimSuffix(expected, "\n"), "\n")
	actLines := strings.Split(strings.TrimSuffix(actual, "\n"), "\n")

	for k := line; k < line+maxPairs; k++ {
		e, eok := lineAt(expLines, k)
		g, gok := lineAt(actLines, k)
		if !eok && !gok {
			break
		}
		context = append(context,
			fmt.Sprintf("Expected line %d: %s", k, e),
			fmt.Sprintf("Actual line %d: %s", k, g),
		)
	}
	return line, context, true
}

func countLines(s string) int {
	return strings.Count(s, "\n")
}

func lineAt(lines []string, n int) (string, bool) {
	if n < 1 || n > len(lines) {
		return "<missing>", false
	}
	return lines[n-1], true
}
