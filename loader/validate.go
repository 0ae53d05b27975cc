package loader

import (
	"fmt"
	"strings"

	"github.com/avolpe/maniero/engine/rules"
	"github.com/avolpe/maniero/types"
)

// ValidationError collects every cross-reference problem found in one pass,
// so content authors fix a batch at a time instead of one per run.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) addf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

var validTags = map[rules.Tag]bool{
	rules.TagContainer: true,
	rules.TagHeal:      true,
	rules.TagPoison:    true,
	rules.TagScroll:    true,
	rules.TagKey:       true,
	rules.TagAltar:     true,
	rules.TagEndgame:   true,
}

// validate checks the compiled game for referential integrity.
func validate(coll *collector, game *Game) error {
	ve := &ValidationError{}
	w := game.World

	if game.Info.Title == "" {
		ve.addf("Game.title is required")
	}
	if _, ok := w.Rooms[w.CurrentID]; !ok {
		ve.addf("start room %d not found in defined rooms", w.CurrentID)
	}
	if len(game.Commands) == 0 {
		ve.addf("content defines no commands")
	}

	// Neighbor references must resolve: a dangling exit is a content bug,
	// not a runtime condition.
	for id, room := range w.Rooms {
		for dir, target := range room.Neighbors {
			if _, ok := w.Rooms[target]; !ok {
				ve.addf("room %d exit %s points to undefined room %d", id, dir, target)
			}
		}
	}

	// Door locks: rooms, directions against actual exits, keys.
	for _, tbl := range coll.doors {
		roomID := getInt(tbl, "room")
		room, ok := w.Rooms[roomID]
		if !ok {
			ve.addf("door in undefined room %d", roomID)
			continue
		}
		dir, _ := types.ParseDirection(getString(tbl, "direction"))
		if _, ok := room.Neighbor(dir); !ok {
			ve.addf("door in room %d gates direction %s, which has no exit", roomID, dir)
		}
		keyID := getInt(tbl, "key")
		if _, ok := w.Catalog[keyID]; !ok {
			ve.addf("door in room %d requires undefined key object %d", roomID, keyID)
		}
	}

	// Behavior tags must bind to defined objects and known tag names.
	for _, rt := range coll.tags {
		if _, ok := w.Catalog[rt.id]; !ok {
			ve.addf("tag %q bound to undefined object %d", rt.tag, rt.id)
		}
		if !validTags[rules.Tag(rt.tag)] {
			ve.addf("object %d has unknown tag %q", rt.id, rt.tag)
		}
	}

	// Recipes: components and results must exist.
	for i, r := range game.Rules.Recipes {
		if len(r.Components) == 0 {
			ve.addf("recipe %d has no components", i)
		}
		for _, c := range r.Components {
			if _, ok := w.Catalog[c]; !ok {
				ve.addf("recipe %d uses undefined component %d", i, c)
			}
		}
		if _, ok := w.Catalog[r.Result]; !ok {
			ve.addf("recipe %d produces undefined object %d", i, r.Result)
		}
	}

	// Weapon stats must stay in range.
	for id, obj := range w.Catalog {
		if obj.Weapon == nil {
			continue
		}
		if obj.Weapon.CritChance < 0 || obj.Weapon.CritChance > 100 {
			ve.addf("weapon %d has crit chance %d outside [0, 100]", id, obj.Weapon.CritChance)
		}
		if obj.Weapon.CritMult < 1 {
			ve.addf("weapon %d has critical multiplier %d below 1", id, obj.Weapon.CritMult)
		}
	}

	// The endgame needs a final room when content uses the escort tag.
	for _, rt := range coll.tags {
		if rules.Tag(rt.tag) == rules.TagEndgame && game.Rules.FinalRoom < 0 {
			ve.addf("content uses the endgame tag but Game.final_room is not set")
		}
	}
	if game.Rules.FinalRoom >= 0 {
		if _, ok := w.Rooms[game.Rules.FinalRoom]; !ok {
			ve.addf("Game.final_room %d not found in defined rooms", game.Rules.FinalRoom)
		}
	}

	if w.Player.MaxHP <= 0 {
		ve.addf("player must have positive hp")
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}
