package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/avolpe/maniero/types"
)

// renderStatusBar builds the one-line status bar: room on the left,
// HP / exits / inventory on the right, padded to the full width.
func (m Model) renderStatusBar() string {
	w := m.eng.World
	room := w.Current()

	left := fmt.Sprintf(" %s (%d)", room.Name, room.ID)

	var exits []string
	for _, dir := range types.Directions {
		if _, ok := room.Neighbor(dir); ok {
			exits = append(exits, dir.String())
		}
	}
	exitStr := "-"
	if len(exits) > 0 {
		exitStr = strings.Join(exits, "/")
	}

	invStr := "-"
	if n := len(w.Inventory); n > 0 {
		names := make([]string, 0, n)
		for _, o := range w.Inventory {
			names = append(names, o.Name)
		}
		invStr = strings.Join(names, ", ")
	}

	right := fmt.Sprintf("PV %d/%d | uscite: %s | zaino: %s ",
		w.Player.HP, w.Player.MaxHP, exitStr, invStr)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		// Drop the inventory detail first when the terminal is narrow.
		right = fmt.Sprintf("PV %d/%d | uscite: %s ", w.Player.HP, w.Player.MaxHP, exitStr)
		gap = m.width - lipgloss.Width(left) - lipgloss.Width(right)
		if gap < 1 {
			gap = 1
		}
	}

	return styleStatusBar.Render(left + strings.Repeat(" ", gap) + right)
}
