// Maniero is a deterministic, data-driven engine for Italian text adventures.
// Usage: maniero [--version] [--plain] [--script <file>] [--seed <n>] [--journal <file>] [game_directory]
package main

import (
	"fmt"
	"os"
	"strconv"

	isatty "github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/avolpe/maniero/cli"
	"github.com/avolpe/maniero/engine"
	"github.com/avolpe/maniero/engine/notify"
	"github.com/avolpe/maniero/loader"
	"github.com/avolpe/maniero/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// settings are optional defaults read from maniero.yaml in the working
// directory. Command-line flags override them.
type settings struct {
	GameDir string `yaml:"game_dir"`
	SaveDir string `yaml:"save_dir"`
	Seed    int64  `yaml:"seed"`
	Plain   bool   `yaml:"plain"`
	Journal string `yaml:"journal"`
}

func loadSettings() settings {
	var s settings
	data, err := os.ReadFile("maniero.yaml")
	if err != nil {
		return s
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring maniero.yaml: %v\n", err)
		return settings{}
	}
	return s
}

func main() {
	cfg := loadSettings()
	var scriptFile string
	var seed = cfg.Seed

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("maniero %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			cfg.Plain = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		case "--seed":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--seed requires a number\n")
				os.Exit(1)
			}
			i++
			n, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "--seed: %v\n", err)
				os.Exit(1)
			}
			seed = n
		case "--journal":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--journal requires a file path\n")
				os.Exit(1)
			}
			i++
			cfg.Journal = args[i]
		default:
			// Positional game directory overrides the yaml setting.
			cfg.GameDir = args[i]
		}
	}

	if cfg.GameDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: maniero [--version] [--plain] [--script <file>] [--seed <n>] [--journal <file>] <game_directory>\n")
		os.Exit(1)
	}

	// Load and compile Lua game content.
	game, err := loader.Load(cfg.GameDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game: %v\n", err)
		os.Exit(1)
	}

	var sink notify.Sink = notify.Nop{}
	if cfg.Journal != "" {
		f, err := os.OpenFile(cfg.Journal, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening journal: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		sink = &notify.Journal{W: f}
	}

	eng := engine.New(engine.Config{
		World:     game.World,
		Info:      game.Info,
		Commands:  game.Commands,
		Stopwords: game.Stopwords,
		Rules:     game.Rules,
		Doors:     game.Doors,
		Sink:      sink,
		Seed:      seed,
	})

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		printBanner(eng)
		c := newCLI(eng, cfg)
		c.In = f
		c.EchoInput = true
		c.Run()
		return
	}

	// Use plain CLI if --plain, a plain setting, or stdout is not a terminal.
	if cfg.Plain || !isatty.IsTerminal(os.Stdout.Fd()) {
		printBanner(eng)
		newCLI(eng, cfg).Run()
		return
	}

	if err := tui.Run(eng); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCLI(eng *engine.Engine, cfg settings) *cli.CLI {
	c := cli.New(eng)
	if cfg.SaveDir != "" {
		c.SaveDir = cfg.SaveDir
	}
	return c
}

func printBanner(eng *engine.Engine) {
	fmt.Printf("%s v%s di %s\n\n", eng.Info.Title, eng.Info.Version, eng.Info.Author)
}
