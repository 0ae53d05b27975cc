// Package rules holds the declarative object-behavior tables: what a given
// object id does when used or opened. Handlers consult these tables instead
// of hardcoding object ids, so behavior lives in content, not code.
package rules

import "github.com/avolpe/maniero/types"

// Tag names the behavior class of an object.
type Tag string

const (
	TagContainer Tag = "container" // open transfers contents into context
	TagHeal      Tag = "heal"      // consumable, restores HP (Amount, 0 = full)
	TagPoison    Tag = "poison"    // consumable, coats the first carried weapon
	TagScroll    Tag = "scroll"    // readable, prints Text, not consumed
	TagKey       Tag = "key"       // opens a door via the door guard, not "use"
	TagAltar     Tag = "altar"     // fixed narrative effect, prints Text
	TagEndgame   Tag = "endgame"   // starts the escort-out sequence
)

// Behavior is the declarative effect bound to an object id.
type Behavior struct {
	Tag       Tag
	Amount    int             // heal points or poison per-hit damage
	Text      string          // narrative text, where the tag uses one
	Room      int             // the room the use is restricted to, when RoomBound
	RoomBound bool            // false means usable anywhere; room ids start at 0
	Dir       types.Direction // endgame: the forced escort direction
	Refusal   string          // endgame: shown when the player strays off the escort
}

// Recipe is a crafting combination: all components carried at once are
// consumed and replaced by the result object.
type Recipe struct {
	Components []int
	Result     int
	Text       string
}

// Ruleset is the full behavior configuration for a game.
type Ruleset struct {
	Behaviors map[int]Behavior
	Recipes   []Recipe
	Phrases   map[string]string // compound use phrases → fixed responses

	FinalRoom  int    // reaching it while escorted completes the game
	Completion string // message shown on completion
}

// New returns an empty ruleset.
func New() *Ruleset {
	return &Ruleset{
		Behaviors: map[int]Behavior{},
		Phrases:   map[string]string{},
	}
}

// Behavior returns the behavior bound to an object id.
func (rs *Ruleset) Behavior(id int) (Behavior, bool) {
	b, ok := rs.Behaviors[id]
	return b, ok
}

// IsContainer reports whether the id is tagged as a container.
func (rs *Ruleset) IsContainer(id int) bool {
	b, ok := rs.Behaviors[id]
	return ok && b.Tag == TagContainer
}

// RecipeWith returns the first recipe that uses the given object id as a
// component and whose components are all satisfied by has.
func (rs *Ruleset) RecipeWith(id int, has func(int) bool) (Recipe, bool) {
	for _, r := range rs.Recipes {
		uses := false
		complete := true
		for _, c := range r.Components {
			if c == id {
				uses = true
			}
			if !has(c) {
				complete = false
				break
			}
		}
		if uses && complete {
			return r, true
		}
	}
	return Recipe{}, false
}

// Phrase returns the fixed response for a compound use phrase.
func (rs *Ruleset) Phrase(text string) (string, bool) {
	msg, ok := rs.Phrases[text]
	return msg, ok
}
