package engine

import (
	"github.com/avolpe/maniero/engine/resolve"
	"github.com/avolpe/maniero/types"
)

// lookHandler answers look commands with the room's look text.
type lookHandler struct{}

func (lookHandler) Resolve(e *Engine, in *resolve.Intent) string {
	if in.Command.Type != types.CommandLook {
		return ""
	}
	if look := e.World.Current().Look; look != "" {
		return look
	}
	return msgNothingInteresting
}
