package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleWarning = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	styleCombat = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleDenial = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindWarning
	kindCombat
	kindDenial
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "ATTENZIONE"):
		return kindWarning
	case strings.HasPrefix(line, "Colpisci"),
		strings.HasPrefix(line, "Colpo critico"),
		strings.Contains(line, "ti colpisce"),
		strings.HasPrefix(line, "Il combattimento"),
		strings.HasPrefix(line, "Hai vinto"):
		return kindCombat
	case strings.HasPrefix(line, "Non puoi"),
		strings.HasPrefix(line, "Non ti capisco"),
		strings.HasPrefix(line, "Non c'è"),
		strings.HasPrefix(line, "Non succede"):
		return kindDenial
	default:
		return kindNarrative
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindWarning:
		return styleWarning.Render(line)
	case kindCombat:
		return styleCombat.Render(line)
	case kindDenial:
		return styleDenial.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
