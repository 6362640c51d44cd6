package modal

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func newConfirm() Model {
	m := New(Config{Title: "Confirm", Message: "Are you sure you want to submit?"})
	m.SetSize(60, 20)
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_Defaults(t *testing.T) {
	m := New(Config{})
	require.Equal(t, "Yes", m.config.ConfirmLabel)
	require.Equal(t, "No", m.config.CancelLabel)
	require.Equal(t, ButtonConfirm, m.Focused())
}

func TestUpdate_Shortcuts(t *testing.T) {
	tests := []struct {
		key  string
		want tea.Msg
	}{
		{"y", ConfirmMsg{}},
		{"Y", ConfirmMsg{}},
		{"n", CancelMsg{}},
		{"esc", CancelMsg{}},
		{"enter", ConfirmMsg{}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, cmd := newConfirm().Update(keyMsg(tt.key))
			require.NotNil(t, cmd)
			require.Equal(t, tt.want, cmd())
		})
	}
}

func TestUpdate_ToggleThenEnterCancels(t *testing.T) {
	m, cmd := newConfirm().Update(keyMsg("tab"))
	require.Nil(t, cmd)
	require.Equal(t, ButtonCancel, m.Focused())

	_, cmd = m.Update(keyMsg("enter"))
	require.Equal(t, CancelMsg{}, cmd())
}

func TestUpdate_IgnoresOtherKeys(t *testing.T) {
	m, cmd := newConfirm().Update(keyMsg("x"))
	require.Nil(t, cmd)
	require.Equal(t, ButtonConfirm, m.Focused())
}

func TestView_ContainsPromptAndButtons(t *testing.T) {
	out := ansi.Strip(zone.Scan(newConfirm().View()))
	require.Contains(t, out, "Confirm")
	require.Contains(t, out, "Are you sure you want to submit?")
	require.Contains(t, out, "Yes")
	require.Contains(t, out, "No")
}

func TestView_WrapsLongMessage(t *testing.T) {
	m := New(Config{Title: "T", Message: strings.Repeat("lorem ", 20), Width: 20})
	for _, line := range strings.Split(ansi.Strip(zone.Scan(m.View())), "\n") {
		require.LessOrEqual(t, ansi.StringWidth(line), 26)
	}
}

func TestOverlay_Centers(t *testing.T) {
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(" ", 60)+"\n", 20), "\n")
	out := zone.Scan(newConfirm().Overlay(bg))
	require.Len(t, strings.Split(out, "\n"), 20)
	require.Contains(t, ansi.Strip(out), "Are you sure")
}

func TestMouse_ClickCancel(t *testing.T) {
	m := newConfirm()

	var z *zone.ZoneInfo
	for retries := 0; retries < 10; retries++ {
		_ = zone.Scan(m.View())
		z = zone.Get(zoneCancel)
		if z != nil && !z.IsZero() {
			break
		}
		time.Sleep(time.Millisecond)
	}
	require.NotNil(t, z)
	require.False(t, z.IsZero())

	m, cmd := m.Update(tea.MouseMsg{
		X:      z.StartX,
		Y:      z.StartY,
		Action: tea.MouseActionRelease,
		Button: tea.MouseButtonLeft,
	})
	require.NotNil(t, cmd)
	require.Equal(t, CancelMsg{}, cmd())
	require.Equal(t, ButtonCancel, m.Focused())
}
