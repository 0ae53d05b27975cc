package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/avolpe/maniero/engine/resolve"
	"github.com/avolpe/maniero/engine/world"
	"github.com/avolpe/maniero/types"
)

// pickupHandler moves room objects into the inventory.
type pickupHandler struct{}

func (pickupHandler) Resolve(e *Engine, in *resolve.Intent) string {
	if in.Command.Type != types.CommandPickup {
		return ""
	}
	room := e.World.Current()

	obj := in.Object
	if obj == nil {
		obj = fallbackSearch(room, in.Rest)
	}
	if obj == nil {
		return msgNothingToPick
	}
	if !obj.Pickupable {
		return msgCannotPick
	}

	room.RemoveObject(obj.ID)
	e.World.AddToInventory(obj)
	e.notifyObjectMoved(obj, "inventory", 0)
	return fmt.Sprintf("Hai raccolto: %s.", obj.Name)
}

// fallbackSearch retries the room list directly when the resolver came up
// empty: a leftover token may be an object id or a partial name.
func fallbackSearch(room *world.Room, tokens []string) *world.Object {
	for _, tok := range tokens {
		if id, err := strconv.Atoi(tok); err == nil {
			if o := room.FindObject(id); o != nil {
				return o
			}
			continue
		}
		for _, o := range room.Objects {
			if strings.Contains(strings.ToLower(o.Name), strings.ToLower(tok)) {
				return o
			}
		}
	}
	return nil
}
