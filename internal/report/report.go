// Package report renders verification issues for the terminal. Styled output
// uses the lipgloss palette; plain mode emits the same text without escape
// codes so output stays grep-friendly when piped.
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"llmsbeacon/internal/types"
)

var (
	errColor  = lipgloss.Color("#e53935")
	warnColor = lipgloss.Color("#FFC107")
	infoColor = lipgloss.Color("#2196F3")
	okColor   = lipgloss.Color("#8BC34A")
	dimColor  = lipgloss.Color("#808080")
)

// Styles holds the rendering styles for one writer.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Pass    lipgloss.Style
	Muted   lipgloss.Style
	plain   bool
}

// NewStyles returns styled or plain rendering.
func NewStyles(plain bool) Styles {
	if plain {
		return Styles{plain: true}
	}
	return Styles{
		Error:   lipgloss.NewStyle().Foreground(errColor).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(warnColor).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(infoColor),
		Pass:    lipgloss.NewStyle().Foreground(okColor).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(dimColor),
	}
}

// AutoStyles picks plain mode when stdout is not a terminal or NO_COLOR is
// set.
func AutoStyles() Styles {
	if os.Getenv("NO_COLOR") != "" {
		return NewStyles(true)
	}
	stat, err := os.Stdout.Stat()
	if err != nil || stat.Mode()&os.ModeCharDevice == 0 {
		return NewStyles(true)
	}
	return NewStyles(false)
}

func (s Styles) render(style lipgloss.Style, text string) string {
	if s.plain {
		return text
	}
	return style.Render(text)
}

func (s Styles) severityLabel(sev types.Severity) string {
	switch sev {
	case types.SeverityError:
		return s.render(s.Error, "ERROR")
	case types.SeverityWarning:
		return s.render(s.Warning, "WARN ")
	default:
		return s.render(s.Info, "INFO ")
	}
}

// Issues renders every issue grouped by severity, errors first. Context
// lines are indented under their issue.
func (s Styles) Issues(issues []types.Issue) string {
	var b strings.Builder
	for _, sev := range []types.Severity{types.SeverityError, types.SeverityWarning, types.SeverityInfo} {
		for _, is := range issues {
			if is.Severity != sev {
				continue
			}
			location := is.Path
			if is.Line > 0 {
				location = fmt.Sprintf("%s:%d", is.Path, is.Line)
			}
			fmt.Fprintf(&b, "%s %s %s  %s\n",
				s.severityLabel(sev),
				s.render(s.Muted, "["+string(is.Code)+"]"),
				location,
				is.Message)
			for _, line := range is.Context {
				fmt.Fprintf(&b, "    %s\n", s.render(s.Muted, line))
			}
		}
	}
	return b.String()
}

// Summary renders the one-line run verdict.
func (s Styles) Summary(disposition types.Disposition, errors, warnings, infos int) string {
	verdict := string(disposition)
	switch disposition {
	case types.DispositionPass:
		verdict = s.render(s.Pass, "PASS")
	case types.DispositionWarn:
		verdict = s.render(s.Warning, "WARN")
	case types.DispositionFail:
		verdict = s.render(s.Error, "FAIL")
	}
	return fmt.Sprintf("%s  %d errors, %d warnings, %d infos", verdict, errors, warnings, infos)
}
