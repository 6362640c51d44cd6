// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// FormKeys are the bindings active while editing the form.
type FormKeys struct {
	NextField key.Binding
	PrevField key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Submit    key.Binding
	Quit      key.Binding
}

// ConfirmKeys are the bindings active while the confirmation prompt is open.
type ConfirmKeys struct {
	Yes    key.Binding
	No     key.Binding
	Toggle key.Binding
	Press  key.Binding
}

// Form is the form keymap.
var Form = FormKeys{
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev field"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter/space", "select"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "submit"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// Confirm is the confirmation prompt keymap.
var Confirm = ConfirmKeys{
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n/esc", "no"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"),
		key.WithHelp("←/→", "switch"),
	),
	Press: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "choose"),
	),
}

// ShortHelp returns keybindings for the footer.
func (k FormKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Select, k.Submit, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k FormKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Up, k.Down},
		{k.Select, k.Submit, k.Quit},
	}
}

// ShortHelp returns keybindings for the footer while confirming.
func (k ConfirmKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Yes, k.No, k.Toggle}
}

// FullHelp returns keybindings for the expanded help view.
func (k ConfirmKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Yes, k.No, k.Toggle, k.Press}}
}
