package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestForm_Submit_KeyAssignment(t *testing.T) {
	require.Equal(t, []string{"ctrl+s"}, Form.Submit.Keys())
	require.Equal(t, "submit", Form.Submit.Help().Desc)
}

func TestForm_SelectMatchesEnterAndSpace(t *testing.T) {
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, Form.Select))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, Form.Select))
}

func TestConfirm_EscMeansNo(t *testing.T) {
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEsc}, Confirm.No))
	require.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyEsc}, Confirm.Yes))
}

func TestHelpBindingsHaveText(t *testing.T) {
	groups := append(Form.FullHelp(), Confirm.FullHelp()...)
	for _, group := range groups {
		for _, b := range group {
			require.NotEmpty(t, b.Help().Key)
			require.NotEmpty(t, b.Help().Desc)
		}
	}
	require.Len(t, Form.ShortHelp(), 4)
	require.Len(t, Confirm.ShortHelp(), 3)
}
