// Package notify carries state-change notifications from the engine to the
// external persistence collaborator. Notifications are fire-and-forget: a
// sink can never fail the turn that produced the change.
package notify

import (
	"encoding/json"
	"io"
)

// Change types emitted by the engine.
const (
	ObjectMoved    = "object_moved" // object changed location (room/inventory/container)
	ObjectOpened   = "object_opened"
	ObjectConsumed = "object_consumed"
	CharacterHP    = "character_hp" // HP and alive after a damage/heal
	PlayerMoved    = "player_moved"
	DoorUnlocked   = "door_unlocked"
)

// Change is one state mutation report.
type Change struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// Sink receives change notifications. Implementations must not block the
// caller on failure; there is nothing to return because nothing the sink
// does can affect the game state that already changed.
type Sink interface {
	Record(Change)
}

// Nop discards every change.
type Nop struct{}

func (Nop) Record(Change) {}

// Memory accumulates changes in order. Useful in tests.
type Memory struct {
	Changes []Change
}

func (m *Memory) Record(c Change) {
	m.Changes = append(m.Changes, c)
}

// ByType returns the recorded changes of one type, in order.
func (m *Memory) ByType(t string) []Change {
	var out []Change
	for _, c := range m.Changes {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// Journal writes each change as one JSON line. Write errors are dropped:
// persistence failures are the collaborator's problem, never the game's.
type Journal struct {
	W io.Writer
}

func (j *Journal) Record(c Change) {
	line, err := json.Marshal(c)
	if err != nil {
		return
	}
	line = append(line, '\n')
	j.W.Write(line) //nolint:errcheck // fire-and-forget by contract
}
