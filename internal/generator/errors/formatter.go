package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	errHeader  = color.New(color.FgRed, color.Bold)
	warnHeader = color.New(color.FgYellow, color.Bold)
	hintColor  = color.New(color.FgCyan)
)

// Format returns a human-readable rendering of a single diagnostic.
func Format(e *GenError) string {
	var b strings.Builder

	header := errHeader
	label := "error"
	if e.Severity == SeverityWarning {
		header = warnHeader
		label = "warning"
	}

	loc := "<source>"
	if e.Pos.File != "" {
		loc = e.Pos.File
		if e.Pos.Line > 0 {
			loc = fmt.Sprintf("%s:%d:%d", e.Pos.File, e.Pos.Line, e.Pos.Column)
		}
	}

	fmt.Fprintf(&b, "%s %s\n", header.Sprintf("%s[%s]:", label, e.Code), loc)
	fmt.Fprintf(&b, "  %s\n", e.Message)

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s\n", hintColor.Sprintf("hint: %s", e.Suggestion))
	}

	return b.String()
}

// FormatList returns a rendering of every diagnostic in the list, followed
// by a summary line.
func FormatList(l List) string {
	if len(l) == 0 {
		return "no diagnostics"
	}

	var b strings.Builder
	for _, e := range l {
		b.WriteString(Format(e))
		b.WriteString("\n")
	}

	errs, warns := l.Counts()
	if errs > 0 {
		fmt.Fprintf(&b, "generation failed with %d error(s), %d warning(s)\n", errs, warns)
	} else {
		fmt.Fprintf(&b, "generation finished with %d warning(s)\n", warns)
	}

	return b.String()
}
