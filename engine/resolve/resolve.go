// Package resolve turns raw player text into a structured Intent: a matched
// command plus up to two object references (one from the room, one from the
// inventory).
package resolve

import (
	"strings"

	"github.com/avolpe/maniero/engine/parser"
	"github.com/avolpe/maniero/engine/world"
	"github.com/avolpe/maniero/types"
)

// Intent is the structured result of parsing one player command.
type Intent struct {
	Command *types.Command // nil means the first token matched no command
	Object  *world.Object  // match from the current room, may be nil
	Carried *world.Object  // match from the inventory, may be nil
	Rest    []string       // tokens after the command word
	Text    string         // compound fallback for use-class commands, e.g. "usa cura"
}

// Resolve parses input against the command vocabulary and the objects
// visible to the player. The second return is false when the input produced
// no tokens at all — distinct from an Intent with a nil Command.
func Resolve(input string, stop parser.Stopwords, commands []types.Command, room, inventory []*world.Object) (*Intent, bool) {
	tokens := parser.Tokenize(input, stop)
	if len(tokens) == 0 {
		return nil, false
	}

	intent := &Intent{Command: parser.MatchCommand(tokens[0], commands)}
	if intent.Command == nil {
		return intent, true
	}

	rest := tokens[1:]
	intent.Rest = rest
	if len(rest) == 0 {
		return intent, true
	}

	intent.Object = matchObject(rest, room)
	intent.Carried = matchObject(rest, inventory)

	// Use-class commands act on carried items by default: an inventory
	// match wins outright and any room match is discarded. When neither
	// list matched, keep the raw second token as a compound phrase so the
	// use handler can dispatch on text ("usa cura").
	if intent.Command.Type == types.CommandUse {
		switch {
		case intent.Carried != nil:
			intent.Object = nil
		case intent.Object != nil:
			// keep the room match
		default:
			intent.Text = intent.Command.Name + " " + rest[0]
		}
	}

	return intent, true
}

// matchObject scans tokens against an object list. For each token the list
// is tried in order, each candidate through three tiers: exact name
// equality, alias membership, then case-insensitive substring containment
// of the token within the object's name. The first token that satisfies any
// candidate ends the scan; matching is not exhaustive across tokens.
func matchObject(tokens []string, objects []*world.Object) *world.Object {
	for _, tok := range tokens {
		for _, o := range objects {
			if matches(tok, o) {
				return o
			}
		}
	}
	return nil
}

func matches(token string, o *world.Object) bool {
	if strings.EqualFold(o.Name, token) {
		return true
	}
	if o.MatchesAlias(token) {
		return true
	}
	return strings.Contains(strings.ToLower(o.Name), token)
}
