// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1F1F1F", Dark: "#CCCCCC"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#8C8C8C", Dark: "#696969"} // Hints, help text
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"}

	// Borders
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#B5B5B5", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#54A0FF"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#FF8787"}
	StatusInfoColor    = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#54A0FF"}

	// Buttons
	ButtonTextColor             = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonPrimaryBgColor        = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#1A5276"}
	ButtonPrimaryFocusBgColor   = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#3498DB"}
	ButtonSecondaryBgColor      = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#2D3436"}
	ButtonSecondaryFocusBgColor = lipgloss.AdaptiveColor{Light: "#636E72", Dark: "#636E72"}

	// Overlay
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#1F1F1F", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#B5B5B5", Dark: "#8C8C8C"}

	// Results list: "(•)" marks the selected package, ">" the cursor row.
	RadioSelectedStyle   = lipgloss.NewStyle().Bold(true).Foreground(BorderFocusColor)
	RadioUnselectedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	CursorStyle          = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	ResultStyle          = lipgloss.NewStyle().Foreground(TextPrimaryColor)

	baseButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	PrimaryButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonPrimaryBgColor)

	PrimaryButtonFocusedStyle = baseButtonStyle.
					Foreground(ButtonTextColor).
					Background(ButtonPrimaryFocusBgColor).
					Underline(true).
					UnderlineSpaces(true)

	SecondaryButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonSecondaryBgColor)

	SecondaryButtonFocusedStyle = baseButtonStyle.
					Foreground(ButtonTextColor).
					Background(ButtonSecondaryFocusBgColor).
					Underline(true).
					UnderlineSpaces(true)

	// Inline validation error under the form
	ErrorTextStyle = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)

	// Muted status line (loading, search failures)
	StatusLineStyle = lipgloss.NewStyle().Foreground(TextMutedColor).Italic(true)

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
)
