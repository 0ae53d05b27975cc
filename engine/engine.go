// Package engine drives one game turn: it resolves raw player text into an
// intent and offers it to a fixed, ordered list of handlers. Every handler
// sees every intent and self-filters on the command type; their non-empty
// outputs are concatenated in invocation order. The order is a design
// constant, not configuration: combat must see "usa spada" before the
// generic use handler does.
package engine

import (
	"strings"
	"time"

	"github.com/avolpe/maniero/engine/doors"
	"github.com/avolpe/maniero/engine/notify"
	"github.com/avolpe/maniero/engine/parser"
	"github.com/avolpe/maniero/engine/resolve"
	"github.com/avolpe/maniero/engine/rules"
	"github.com/avolpe/maniero/engine/world"
	"github.com/avolpe/maniero/types"
)

// Handler is one stage of the resolution pipeline. An empty return means
// "not applicable to this intent"; anything else is this handler's
// contribution to the turn's output.
type Handler interface {
	Resolve(e *Engine, in *resolve.Intent) string
}

// Config wires an Engine from loaded game content.
type Config struct {
	World     *world.World
	Info      types.GameInfo
	Commands  []types.Command
	Stopwords parser.Stopwords
	Rules     *rules.Ruleset
	Doors     *doors.Table
	Sink      notify.Sink
	Seed      int64 // 0 means derive from the clock
}

// Engine holds the game state and the turn pipeline.
type Engine struct {
	World     *world.World
	Info      types.GameInfo
	Commands  []types.Command
	Stopwords parser.Stopwords
	Rules     *rules.Ruleset
	Doors     *doors.Table
	RNG       *RNG
	Combat    Session

	sink     notify.Sink
	handlers []Handler
	started  time.Time

	// useClaimed marks the current intent as resolved by the combat
	// handler. It outlives the session state for the rest of the turn:
	// a weapon swing that ends the fight must still silence the generic
	// use handler further down the pipeline.
	useClaimed bool
}

// New creates an engine. The handler order below is load-bearing.
func New(cfg Config) *Engine {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sink := cfg.Sink
	if sink == nil {
		sink = notify.Nop{}
	}
	rs := cfg.Rules
	if rs == nil {
		rs = rules.New()
	}
	dt := cfg.Doors
	if dt == nil {
		dt = doors.NewTable()
	}
	return &Engine{
		World:     cfg.World,
		Info:      cfg.Info,
		Commands:  cfg.Commands,
		Stopwords: cfg.Stopwords,
		Rules:     rs,
		Doors:     dt,
		RNG:       NewRNG(seed),
		sink:      sink,
		started:   time.Now(),
		handlers: []Handler{
			combatHandler{},
			moveHandler{},
			lookHandler{},
			pickupHandler{},
			openHandler{},
			useHandler{},
		},
	}
}

// Step resolves one player command and returns the message to display.
// Exactly one Step runs at a time; the calling surface blocks on it.
func (e *Engine) Step(input string) string {
	if e.World.Complete {
		return msgComplete
	}
	if e.World.GameOver {
		return msgGameOver
	}

	in, ok := resolve.Resolve(input, e.Stopwords, e.Commands, e.World.Current().Objects, e.World.Inventory)
	if !ok {
		return "" // no tokens, no intent
	}
	if in.Command == nil {
		return msgNotUnderstood
	}

	e.useClaimed = false
	var parts []string
	for _, h := range e.handlers {
		if msg := h.Resolve(e, in); msg != "" {
			parts = append(parts, msg)
		}
	}
	if len(parts) == 0 {
		return msgNothingHappens
	}
	return strings.Join(parts, "\n")
}

// PlaySeconds returns the accumulated play time, including previous
// sessions restored from a save.
func (e *Engine) PlaySeconds() int64 {
	return e.World.PlaySeconds + int64(time.Since(e.started).Seconds())
}

// ResetClock restarts the session clock; the save layer calls it after a
// restore so previous play time is not double counted.
func (e *Engine) ResetClock() {
	e.started = time.Now()
}

// RestoreRNG re-creates the RNG from seed and advances to the saved position.
func (e *Engine) RestoreRNG(seed, position int64) {
	e.RNG = RestoreRNG(seed, position)
}

// notifyChange reports a state mutation to the persistence sink.
// Fire-and-forget: whatever the sink does cannot affect the turn.
func (e *Engine) notifyChange(typ string, data map[string]any) {
	e.sink.Record(notify.Change{Type: typ, Data: data})
}

func (e *Engine) notifyHP(c *world.Character) {
	e.notifyChange(notify.CharacterHP, map[string]any{
		"id": c.ID, "hp": c.HP, "alive": c.Alive,
	})
}

func (e *Engine) notifyObjectMoved(o *world.Object, where string, roomID int) {
	data := map[string]any{"id": o.ID, "where": where}
	if where == "room" {
		data["room"] = roomID
	}
	e.notifyChange(notify.ObjectMoved, data)
}

func (e *Engine) notifyConsumed(o *world.Object) {
	e.notifyChange(notify.ObjectConsumed, map[string]any{"id": o.ID})
}

func (e *Engine) notifyOpened(o *world.Object) {
	e.notifyChange(notify.ObjectOpened, map[string]any{"id": o.ID, "open": o.Open})
}

func (e *Engine) notifyPlayerMoved(roomID int) {
	e.notifyChange(notify.PlayerMoved, map[string]any{"room": roomID})
}

func (e *Engine) notifyDoorUnlocked(roomID int, dir types.Direction) {
	e.notifyChange(notify.DoorUnlocked, map[string]any{"room": roomID, "direction": dir.String()})
}
