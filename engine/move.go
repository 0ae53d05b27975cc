package engine

import (
	"fmt"
	"strings"

	"github.com/avolpe/maniero/engine/resolve"
)

// moveHandler resolves the four directional commands. Preconditions are
// checked in a fixed order: escort state, living enemies in the room,
// active combat, exit existence, then the door guard.
type moveHandler struct{}

func (moveHandler) Resolve(e *Engine, in *resolve.Intent) string {
	dir, ok := in.Command.Type.Direction()
	if !ok {
		return ""
	}
	w := e.World
	room := w.Current()

	if esc := w.Escort; esc != nil && dir != esc.Direction {
		return esc.Refusal
	}
	// Living enemies gate all movement, regardless of doors or exits.
	if len(room.LivingEnemies()) > 0 {
		return msgEnemiesBlock
	}
	if e.Combat.Active {
		return msgCombatBlock
	}
	next, ok := room.Neighbor(dir)
	if !ok {
		return msgNoWay
	}

	doorMsg, allowed := e.Doors.AttemptPassage(w, room.ID, dir)
	if !allowed {
		return doorMsg
	}

	var parts []string
	if doorMsg != "" {
		parts = append(parts, doorMsg)
		e.notifyDoorUnlocked(room.ID, dir)
	}

	w.MoveTo(next)
	e.notifyPlayerMoved(next)
	dest := w.Current()
	parts = append(parts, dest.Name, dest.Description)

	if living := dest.LivingEnemies(); len(living) == 1 {
		parts = append(parts, fmt.Sprintf("C'è %s ad attenderti: preparati a combattere!", living[0].Name))
	} else if len(living) > 1 {
		parts = append(parts, fmt.Sprintf("Ci sono %d nemici in questa stanza: preparati a combattere!", len(living)))
	}

	// Escorted out: reaching the final room completes the adventure.
	if w.Escort != nil && dest.ID == e.Rules.FinalRoom {
		w.Escort = nil
		w.Complete = true
		if e.Rules.Completion != "" {
			parts = append(parts, e.Rules.Completion)
		}
	}

	return strings.Join(parts, "\n")
}
