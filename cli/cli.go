// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the Maniero engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/avolpe/maniero/engine"
	"github.com/avolpe/maniero/engine/save"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "ripeti"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	home, _ := os.UserHomeDir()
	return &CLI{
		Engine:  eng,
		In:      os.Stdin,
		Out:     os.Stdout,
		SaveDir: filepath.Join(home, ".maniero", "saves"),
	}
}

// Run starts the game loop. It shows the intro and the starting room, then
// loops: prompt → input → dispatch → output. One command is resolved at a
// time; the loop blocks on Step.
func (c *CLI) Run() {
	if intro := c.Engine.Info.Intro; intro != "" {
		c.printLine(intro)
		c.printLine("")
	}
	room := c.Engine.World.Current()
	c.printLine(room.Name)
	c.printLine(room.Description)

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "ripeti" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "ripeti" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Non c'è nulla da ripetere.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		if msg := c.Engine.Step(input); msg != "" {
			c.printLine(msg)
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Alla prossima.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}

	data, err := save.Marshal(save.Capture(c.Engine))
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	if err := os.MkdirAll(c.SaveDir, 0o755); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	path := filepath.Join(c.SaveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Game saved to %s.", name))
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = "quicksave"
	}

	data, err := os.ReadFile(filepath.Join(c.SaveDir, name+".json"))
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	snap, err := save.Load(data)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	if err := save.Restore(c.Engine, snap); err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Game loaded from %s.", name))

	room := c.Engine.World.Current()
	c.printLine(room.Name)
	c.printLine(room.Description)
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [name]  — Save game (default: quicksave)",
		"  /load [name]  — Load game (default: quicksave)",
		"  /quit         — Exit game",
		"  /help         — Show this help",
		"  /state        — Debug: dump current state",
		"",
		"Comandi di gioco:",
		"  nord / sud / est / ovest — muoviti tra le stanze",
		"  osserva                  — guardati intorno",
		"  raccogli <oggetto>       — raccogli un oggetto",
		"  apri <oggetto>           — apri casse e porte",
		"  usa <oggetto>            — usa un oggetto (anche in combattimento)",
		"  combatti                 — affronta i nemici della stanza",
		"  ripeti (g)               — ripeti l'ultimo comando",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	w := c.Engine.World
	c.printSystem(fmt.Sprintf("Room: %d (%s)", w.CurrentID, w.Current().Name))
	c.printSystem(fmt.Sprintf("HP: %d/%d", w.Player.HP, w.Player.MaxHP))
	var inv []string
	for _, o := range w.Inventory {
		inv = append(inv, fmt.Sprintf("%d:%s", o.ID, o.Name))
	}
	c.printSystem(fmt.Sprintf("Inventory: [%s]", strings.Join(inv, ", ")))
	if c.Engine.Combat.Active {
		c.printSystem(fmt.Sprintf("Combat: active, %d engaged", len(c.Engine.Combat.Enemies)))
	}
	c.printSystem(fmt.Sprintf("Play time: %ds", c.Engine.PlaySeconds()))
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
