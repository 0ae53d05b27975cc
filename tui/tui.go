package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avolpe/maniero/engine"
	"github.com/avolpe/maniero/engine/save"
)

const historySize = 100

// styledLine keeps the raw text together with its classification so the
// transcript can be re-wrapped and re-styled on terminal resize.
type styledLine struct {
	text string
	kind lineKind
	raw  bool // pre-styled (system/echo), do not classify
}

// Model is the Bubble Tea model for the game screen: a scrollback
// viewport, a one-line status bar, and a text input.
type Model struct {
	eng     *engine.Engine
	vp      viewport.Model
	input   textinput.Model
	history *History
	saveDir string
	lastCmd string

	lines  []styledLine
	width  int
	height int
	ready  bool
}

// New creates the TUI model wired to the given engine.
func New(eng *engine.Engine) Model {
	ti := textinput.New()
	ti.Prompt = styleInputPrompt.Render("> ")
	ti.Placeholder = "cosa fai?"
	ti.Focus()
	ti.CharLimit = 120

	home, _ := os.UserHomeDir()

	m := Model{
		eng:     eng,
		input:   ti,
		history: NewHistory(historySize),
		saveDir: filepath.Join(home, ".maniero", "saves"),
	}

	if intro := eng.Info.Intro; intro != "" {
		m.pushText(intro)
		m.pushText("")
	}
	room := eng.World.Current()
	m.pushText(room.Name)
	m.pushText(room.Description)
	return m
}

// Run starts the TUI event loop and blocks until the player quits.
func Run(eng *engine.Engine) error {
	p := tea.NewProgram(New(eng), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - 2 // status bar + input line
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = vpHeight
		}
		m.input.Width = msg.Width - 4
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleEnter()
		case tea.KeyUp:
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil
		case tea.KeyDown:
			next, _ := m.history.Next()
			m.input.SetValue(next)
			m.input.CursorEnd()
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "caricamento..."
	}
	return m.renderStatusBar() + "\n" + m.vp.View() + "\n" + m.input.View()
}

// handleEnter processes one submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	m.history.ResetCursor()
	if raw == "" {
		return m, nil
	}
	m.history.Push(raw)
	m.pushRaw(stylePlayerInput.Render("> " + raw))

	if strings.HasPrefix(raw, "/") {
		return m.handleMeta(raw)
	}

	lower := strings.ToLower(raw)
	if lower == "ripeti" || lower == "g" {
		if m.lastCmd == "" {
			m.pushText("Non c'è nulla da ripetere.")
			m.refreshViewport()
			return m, nil
		}
		raw = m.lastCmd
	} else {
		m.lastCmd = raw
	}

	if out := m.eng.Step(raw); out != "" {
		m.pushText(out)
	}
	m.refreshViewport()
	return m, nil
}

func (m Model) handleMeta(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return m, tea.Quit

	case "/save":
		m.metaSave(arg)

	case "/load":
		m.metaLoad(arg)

	case "/help":
		for _, line := range helpLines {
			m.pushRaw(styleSystem.Render(line))
		}

	default:
		m.pushRaw(styledSystemMsg(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)))
	}

	m.refreshViewport()
	return m, nil
}

func (m *Model) metaSave(name string) {
	if name == "" {
		name = "quicksave"
	}
	data, err := save.Marshal(save.Capture(m.eng))
	if err == nil {
		err = os.MkdirAll(m.saveDir, 0o755)
	}
	if err == nil {
		err = os.WriteFile(filepath.Join(m.saveDir, name+".json"), data, 0o644)
	}
	if err != nil {
		m.pushRaw(styledSystemMsg(fmt.Sprintf("Save failed: %v", err)))
		return
	}
	m.pushRaw(styledSystemMsg(fmt.Sprintf("Game saved to %s.", name)))
}

func (m *Model) metaLoad(name string) {
	if name == "" {
		name = "quicksave"
	}
	data, err := os.ReadFile(filepath.Join(m.saveDir, name+".json"))
	if err != nil {
		m.pushRaw(styledSystemMsg(fmt.Sprintf("Load failed: %v", err)))
		return
	}
	snap, err := save.Load(data)
	if err == nil {
		err = save.Restore(m.eng, snap)
	}
	if err != nil {
		m.pushRaw(styledSystemMsg(fmt.Sprintf("Load failed: %v", err)))
		return
	}
	m.pushRaw(styledSystemMsg(fmt.Sprintf("Game loaded from %s.", name)))
	room := m.eng.World.Current()
	m.pushText(room.Name)
	m.pushText(room.Description)
}

var helpLines = []string{
	"System:",
	"  /save [name]  — Save game (default: quicksave)",
	"  /load [name]  — Load game (default: quicksave)",
	"  /quit         — Exit game",
	"  /help         — Show this help",
	"Comandi di gioco: nord/sud/est/ovest, osserva, raccogli, apri, usa, combatti, ripeti (g).",
}

// pushText appends engine output, splitting on newlines and classifying
// each line for styling.
func (m *Model) pushText(text string) {
	for _, line := range strings.Split(text, "\n") {
		m.lines = append(m.lines, styledLine{text: line, kind: classifyLine(line)})
	}
}

// pushRaw appends a pre-styled line verbatim.
func (m *Model) pushRaw(line string) {
	m.lines = append(m.lines, styledLine{text: line, raw: true})
}

// refreshViewport re-wraps and re-styles the transcript at the current
// width and scrolls to the bottom.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	var out []string
	for _, sl := range m.lines {
		if sl.raw {
			out = append(out, sl.text)
			continue
		}
		for _, wrapped := range wordWrap(sl.text, m.vp.Width) {
			out = append(out, renderLineKind(wrapped, sl.kind))
		}
	}
	m.vp.SetContent(strings.Join(out, "\n"))
	m.vp.GotoBottom()
}

// wordWrap breaks a line on word boundaries at the given width.
func wordWrap(line string, width int) []string {
	if width <= 0 || len(line) <= width {
		return []string{line}
	}
	var out []string
	words := strings.Fields(line)
	cur := ""
	for _, w := range words {
		switch {
		case cur == "":
			cur = w
		case len(cur)+1+len(w) <= width:
			cur += " " + w
		default:
			out = append(out, cur)
			cur = w
		}
	}
	if cur != "" {
		out = append(out, cur)
	}
	if len(out) == 0 {
		out = []string{""}
	}
	return out
}
