package testing

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes escape sequences so views can be compared as plain text.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// ContainsInOrder reports whether every part appears in output, each after the
// end of the previous one.
func ContainsInOrder(output string, parts ...string) bool {
	rest := output
	for _, part := range parts {
		_, after, found := strings.Cut(rest, part)
		if !found {
			return false
		}
		rest = after
	}
	return true
}

// VisibleWidth returns the widest line of a rendered view in terminal cells.
func VisibleWidth(view string) int {
	widest := 0
	for _, line := range strings.Split(view, "\n") {
		widest = max(widest, ansi.StringWidth(line))
	}
	return widest
}
