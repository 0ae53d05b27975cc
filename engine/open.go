package engine

import (
	"fmt"
	"strings"

	"github.com/avolpe/maniero/engine/resolve"
	"github.com/avolpe/maniero/types"
)

// openHandler opens containers and other openable objects. Container
// contents transfer into the context the container was found in — the room
// for room objects, the inventory for carried ones — atomically with the
// message that names them.
type openHandler struct{}

func (openHandler) Resolve(e *Engine, in *resolve.Intent) string {
	if in.Command.Type != types.CommandOpen {
		return ""
	}

	obj := in.Object
	inRoom := true
	if obj == nil {
		obj = in.Carried
		inRoom = false
	}
	if obj == nil {
		return msgNothingToOpen
	}

	// Containers are recognized by the behavior table as well as by the
	// object itself: content may tag an id container without the flag.
	if obj.Container || e.Rules.IsContainer(obj.ID) {
		if obj.Open {
			return msgAlreadyOpen
		}
		contents := obj.TakeContents()
		obj.Open = true
		e.notifyOpened(obj)

		var names []string
		for _, c := range contents {
			if inRoom {
				e.World.Current().AddObject(c)
				e.notifyObjectMoved(c, "room", e.World.CurrentID)
			} else {
				e.World.AddToInventory(c)
				e.notifyObjectMoved(c, "inventory", 0)
			}
			names = append(names, c.Name)
		}
		if len(names) == 0 {
			return fmt.Sprintf("Apri %s: è vuoto.", obj.Name)
		}
		return fmt.Sprintf("Apri %s. All'interno trovi: %s.", obj.Name, strings.Join(names, ", "))
	}

	if !obj.Openable {
		return msgCannotOpen
	}
	if obj.Open {
		return msgAlreadyOpen
	}
	obj.Open = true
	e.notifyOpened(obj)
	return fmt.Sprintf("Hai aperto %s.", obj.Name)
}
