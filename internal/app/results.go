package app

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/favnpm/internal/ui/styles"
)

// packageItem wraps a package name for the list component.
type packageItem struct {
	name string
}

// FilterValue implements list.Item interface.
func (i packageItem) FilterValue() string { return i.name }

// resultDelegate renders one radio row per package: "> (•) name".
type resultDelegate struct {
	selected string
}

// Height returns the height of a single list item.
func (d resultDelegate) Height() int { return 1 }

// Spacing returns the spacing between list items.
func (d resultDelegate) Spacing() int { return 0 }

// Update is a no-op; the app handles selection.
func (d resultDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render renders a single list item.
func (d resultDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	pkg, ok := item.(packageItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = styles.CursorStyle.Render(">") + " "
	}

	radio := styles.RadioUnselectedStyle.Render("( )")
	if pkg.name == d.selected {
		radio = styles.RadioSelectedStyle.Render("(•)")
	}

	// cursor and radio take 6 cells
	name := styles.ResultStyle.Render(styles.Truncate(pkg.name, max(m.Width()-6, 1)))
	_, _ = fmt.Fprint(w, zone.Mark(resultZoneID(index), cursor+radio+" "+name))
}

func resultZoneID(index int) string {
	return fmt.Sprintf("result-%d", index)
}

// clickedResult returns the list index under a click on the visible page.
func (m Model) clickedResult(msg tea.MouseMsg) (int, bool) {
	items := m.results.Items()
	start, end := m.results.Paginator.GetSliceBounds(len(items))
	for i := start; i < end; i++ {
		if z := zone.Get(resultZoneID(i)); z != nil && z.InBounds(msg) {
			return i, true
		}
	}
	return 0, false
}
