// Package selection tracks the single package chosen from the results.
package selection

// State holds at most one selected package name. The zero value has nothing
// selected.
type State struct {
	name string
}

// Select replaces any prior selection with name.
func (s State) Select(name string) State {
	s.name = name
	return s
}

// Clear drops the selection.
func (s State) Clear() State {
	return State{}
}

// Selected returns the selected name, or "" when nothing is selected.
func (s State) Selected() string { return s.name }

// HasSelection reports whether a package is selected.
func (s State) HasSelection() bool { return s.name != "" }

// IsSelected reports whether name is the selected package.
func (s State) IsSelected(name string) bool {
	return s.name != "" && s.name == name
}

// Reconcile clears the selection when names no longer contains it.
func (s State) Reconcile(names []string) State {
	if s.name == "" {
		return s
	}
	for _, n := range names {
		if n == s.name {
			return s
		}
	}
	return State{}
}
