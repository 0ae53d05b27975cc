// Package tui provides a Bubble Tea terminal UI for the Maniero engine.
package tui

// History keeps the player's recent commands for arrow-key recall. The
// cursor counts backwards from the newest entry: 0 means fresh input,
// len(cmds) means pinned at the oldest command.
type History struct {
	cmds []string
	max  int
	back int
}

// NewHistory creates a history buffer holding at most max commands.
func NewHistory(max int) *History {
	return &History{max: max}
}

// Push records a submitted command. Repeating the previous command adds
// nothing; older entries are evicted past the buffer limit.
func (h *History) Push(cmd string) {
	if n := len(h.cmds); n > 0 && h.cmds[n-1] == cmd {
		return
	}
	h.cmds = append(h.cmds, cmd)
	if len(h.cmds) > h.max {
		h.cmds = h.cmds[1:]
	}
}

// Prev steps towards older commands, pinning at the oldest.
// Returns ("", false) when nothing has been recorded yet.
func (h *History) Prev() (string, bool) {
	if len(h.cmds) == 0 {
		return "", false
	}
	if h.back < len(h.cmds) {
		h.back++
	}
	return h.cmds[len(h.cmds)-h.back], true
}

// Next steps back towards newer commands. Stepping past the newest entry
// returns ("", false) and leaves the cursor on fresh input.
func (h *History) Next() (string, bool) {
	if h.back <= 1 {
		h.back = 0
		return "", false
	}
	h.back--
	return h.cmds[len(h.cmds)-h.back], true
}

// ResetCursor returns the cursor to fresh input.
func (h *History) ResetCursor() {
	h.back = 0
}
