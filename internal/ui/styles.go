package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
)

var (
	cPurple     = lipgloss.Color("99")
	cCyan       = lipgloss.Color("39")
	cBlue       = lipgloss.Color("33")
	cRed        = lipgloss.Color("203")
	cOrange     = lipgloss.Color("208")
	cGold       = lipgloss.Color("220")
	cGray       = lipgloss.Color("240")
	cDimGray    = lipgloss.Color("236")
	cBrightGray = lipgloss.Color("246")
	cLightGray  = lipgloss.Color("250")
	cWhite      = lipgloss.Color("255")
	cHighlight  = lipgloss.Color("57")
	cField      = lipgloss.Color("63")
	cGreen      = lipgloss.Color("#00FF00")

	styleNormalText = lipgloss.NewStyle().Foreground(cWhite)
	styleMatchText  = lipgloss.NewStyle().Foreground(cGold).Bold(true)
	styleStatsDim   = lipgloss.NewStyle().Foreground(cBrightGray)
	styleMarker     = lipgloss.NewStyle().Foreground(cCyan)

	// styleUnprocessed marks rows without a processed capture.
	styleUnprocessed = lipgloss.NewStyle().Background(cDimGray).Foreground(cLightGray)

	styleSelected = lipgloss.NewStyle().
			Background(cHighlight).
			Foreground(cWhite).
			Bold(true)

	styleAppHeader = lipgloss.NewStyle().
			Foreground(cWhite).
			Background(cPurple).
			Bold(true).
			Padding(0, 1)

	styleFilterInfo = lipgloss.NewStyle().
			Foreground(cLightGray).
			Background(cPurple)

	stylePane = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(cGray)

	stylePaneFocused = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder()).
				BorderForeground(cPurple)

	styleColumnHeader = lipgloss.NewStyle().
				Foreground(cGold).
				Bold(true)

	styleColumnRule = lipgloss.NewStyle().Foreground(cOrange)

	styleColumnSeparator = lipgloss.NewStyle().Foreground(cGray)

	styleBadgeWarning = lipgloss.NewStyle().
				Foreground(cWhite).
				Background(cOrange).
				Padding(0, 1).
				Bold(true)

	styleBadgeInfo = lipgloss.NewStyle().
			Foreground(cWhite).
			Background(cBlue).
			Padding(0, 1).
			Bold(true)

	styleEmptyState = lipgloss.NewStyle().
			Foreground(cBrightGray).
			Italic(true)

	styleErrorText = lipgloss.NewStyle().
			Foreground(cRed).
			Bold(true)

	styleErrorToast = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cRed).
			Foreground(cWhite).
			Padding(0, 1)

	styleErrorIndicator = lipgloss.NewStyle().
				Foreground(cRed).
				Bold(true)

	styleSuccessToast = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(cGreen).
				Foreground(cWhite).
				Padding(0, 1)

	// Help overlay styles
	styleHelpOverlay = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(cPurple).
				Padding(1, 2)

	styleHelpTitle = lipgloss.NewStyle().
			Foreground(cGold).
			Bold(true)

	styleHelpDivider = lipgloss.NewStyle().
				Foreground(cPurple)

	styleHelpSectionHeader = lipgloss.NewStyle().
				Foreground(cField).
				Bold(true)

	styleHelpUnderline = lipgloss.NewStyle().
				Foreground(cField)

	styleHelpKey = lipgloss.NewStyle().
			Foreground(cCyan).
			Bold(true)

	styleHelpDesc = lipgloss.NewStyle().
			Foreground(cLightGray)

	styleHelpFooter = lipgloss.NewStyle().
			Foreground(cBrightGray).
			Italic(true)

	// Footer bar styles
	styleKeyPill = lipgloss.NewStyle().
			Background(cPurple).
			Foreground(cWhite).
			Bold(true)

	styleKeyDesc = lipgloss.NewStyle().
			Foreground(cBrightGray)

	styleFooterMuted = lipgloss.NewStyle().
				Foreground(cBrightGray)
)

func badgeStyle(warning bool) lipgloss.Style {
	if warning {
		return styleBadgeWarning
	}
	return styleBadgeInfo
}

// markdownStyle maps an output.format value onto a glamour standard style.
// "auto" asks the terminal for its background.
func markdownStyle(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "plain":
		return "plain"
	case "light":
		return "light"
	case "auto":
		if termenv.HasDarkBackground() {
			return "dark"
		}
		return "light"
	default:
		return "dark"
	}
}

func buildMarkdownRenderer(format string, width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := markdownStyle(format)
	if style == "plain" {
		return fallback
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
