package styles

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "…"

// Truncate shortens s to at most maxWidth terminal cells, ending with an
// ellipsis when anything was cut. Styled strings are truncated ANSI-aware.
func Truncate(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	if ansi.Strip(s) != s {
		return ansi.Truncate(s, maxWidth, Ellipsis)
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}
