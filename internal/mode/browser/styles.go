package browser

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names
	textPrimaryColor   = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	textMutedColor     = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"}
	borderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	borderFocusedColor = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#54A0FF"}
	titleColor         = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#89B4FA"}
	successColor       = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	errorColor         = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	searchColor        = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#F9E2AF"}
	tagColor           = lipgloss.AdaptiveColor{Light: "#179299", Dark: "#94E2D5"}

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderDefaultColor).
			Padding(0, 1)

	focusedPaneStyle = paneStyle.
				BorderForeground(borderFocusedColor)

	paneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(titleColor)

	cursorRowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"})

	rowStyle = lipgloss.NewStyle().
			Foreground(textPrimaryColor)

	detailStyle = lipgloss.NewStyle().
			Foreground(textMutedColor)

	tagStyle = lipgloss.NewStyle().
			Foreground(tagColor)

	searchBarStyle = lipgloss.NewStyle().
			Foreground(searchColor).
			Bold(true)

	feedbackStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(textMutedColor)

	unavailableStyle = lipgloss.NewStyle().
				Strikethrough(true).
				Foreground(textMutedColor)
)
