// Package overlay composites a foreground block on top of a rendered view
// without clearing what is underneath.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies where the foreground is anchored.
type Position int

const (
	Center Position = iota
	Bottom
)

// Config controls placement.
type Config struct {
	Width    int // viewport width
	Height   int // viewport height
	Position Position
	PadY     int // rows kept free below a Bottom overlay
}

// Place draws fg over bg. Styling on both sides is preserved; background
// cells covered by fg are replaced, the rest are left intact.
func Place(cfg Config, fg, bg string) string {
	rows := strings.Split(bg, "\n")
	for len(rows) < cfg.Height {
		rows = append(rows, "")
	}

	block := strings.Split(fg, "\n")
	x, y := origin(cfg, lipgloss.Width(fg), len(block))

	for i, line := range block {
		if y+i >= len(rows) {
			break
		}
		rows[y+i] = splice(rows[y+i], line, x)
	}
	return strings.Join(rows, "\n")
}

// splice replaces the cells of row starting at column x with line.
func splice(row, line string, x int) string {
	left := ansi.Truncate(row, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	var right string
	if end := x + ansi.StringWidth(line); end < ansi.StringWidth(row) {
		right = ansi.TruncateLeft(row, end, "")
	}
	return left + line + right
}

func origin(cfg Config, w, h int) (x, y int) {
	x = max((cfg.Width-w)/2, 0)
	switch cfg.Position {
	case Bottom:
		y = cfg.Height - h - cfg.PadY
	default:
		y = (cfg.Height - h) / 2
	}
	return x, max(y, 0)
}
