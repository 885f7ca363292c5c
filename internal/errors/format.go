package errors

import (
	"fmt"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// output styles error text for the terminal; it degrades to plain text
// when stderr is not a color terminal or NO_COLOR is set.
var output = termenv.NewOutput(os.Stderr)

// colorEnabled controls whether ANSI colors are used.
var colorEnabled = !termenv.EnvNoColor() && output.Profile != termenv.Ascii

// DisableColors disables ANSI color output.
func DisableColors() {
	colorEnabled = false
}

// EnableColors enables ANSI color output.
func EnableColors() {
	colorEnabled = true
}

// paint styles text with an ANSI color if colors are enabled.
func paint(text string, c termenv.ANSIColor, isBold bool) string {
	if !colorEnabled {
		return text
	}
	s := termenv.String(text).Foreground(c)
	if isBold {
		s = s.Bold()
	}
	return s.String()
}

func red(text string) string   { return paint(text, termenv.ANSIRed, true) }
func white(text string) string { return paint(text, termenv.ANSIWhite, true) }
func blue(text string) string  { return paint(text, termenv.ANSIBlue, false) }
func cyan(text string) string  { return paint(text, termenv.ANSICyan, false) }
func gray(text string) string  { return paint(text, termenv.ANSIBrightBlack, false) }

// Format returns a multi-line error message for terminal display.
func (e *VnestError) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	if e.Code != "" {
		b.WriteString(red("ERROR "))
		b.WriteString(white(e.Code + ": " + e.Message))
	} else {
		b.WriteString(red("ERROR: "))
		b.WriteString(white(e.Message))
	}
	b.WriteString("\n\n")

	if e.Location != nil {
		b.WriteString("  ")
		b.WriteString(cyan(e.Location.String()))
		b.WriteString("\n\n")
	}

	detail := e.Detail
	if detail == "" {
		if t, ok := registry[e.Code]; ok {
			detail = t.Detail
		}
	}
	if detail != "" {
		for _, line := range wrapText(detail, 70) {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if e.Wrapped != nil {
		b.WriteString("  ")
		b.WriteString(gray("Cause: "))
		b.WriteString(e.Wrapped.Error())
		b.WriteString("\n\n")
	}

	if e.Suggestion != "" {
		b.WriteString("  ")
		b.WriteString(cyan("Hint: "))
		b.WriteString(e.Suggestion)
		b.WriteString("\n\n")
	}

	if e.DocURL != "" {
		b.WriteString("  ")
		b.WriteString(gray("Learn more: "))
		b.WriteString(blue(e.DocURL))
		b.WriteString("\n")
	}

	return b.String()
}

// FormatCompact returns a compact single-line error format.
func (e *VnestError) FormatCompact() string {
	var b strings.Builder

	if e.Location != nil {
		b.WriteString(e.Location.String())
		b.WriteString(": ")
	}
	b.WriteString(e.Error())

	return b.String()
}

// wrapText wraps text to the specified width.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= width {
		return []string{text}
	}

	var lines []string
	var current strings.Builder

	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && current.Len()+len(word)+1 > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}

	return lines
}

// PrintError prints a formatted error to stderr.
func PrintError(err error) {
	var ve *VnestError
	if As(err, &ve) {
		fmt.Fprint(os.Stderr, ve.Format())
		return
	}
	fmt.Fprintf(os.Stderr, "\n%s %s\n\n", red("ERROR:"), err.Error())
}
