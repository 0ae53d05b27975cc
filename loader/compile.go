package loader

import (
	"fmt"

	"github.com/avolpe/maniero/engine/doors"
	"github.com/avolpe/maniero/engine/parser"
	"github.com/avolpe/maniero/engine/rules"
	"github.com/avolpe/maniero/engine/world"
	"github.com/avolpe/maniero/types"
	lua "github.com/yuin/gopher-lua"
)

// Game is the compiled, validated output of the loader: everything the
// engine needs to start a session.
type Game struct {
	Info      types.GameInfo
	World     *world.World
	Commands  []types.Command
	Stopwords parser.Stopwords
	Rules     *rules.Ruleset
	Doors     *doors.Table
}

// rawDef holds an id-keyed definition table before compilation.
type rawDef struct {
	id    int
	table *lua.LTable
}

// rawObject holds an object table plus its constructor kind.
type rawObject struct {
	id    int
	kind  string // "object", "container", "weapon"
	table *lua.LTable
}

// rawTag holds a behavior tag binding before compilation.
type rawTag struct {
	id     int
	tag    string
	params *lua.LTable // may be nil
}

func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func getBool(tbl *lua.LTable, key string, def bool) bool {
	if b, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return def
}

func getInt(tbl *lua.LTable, key string) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// getIntDef returns an int field or a default when the field is absent.
func getIntDef(tbl *lua.LTable, key string, def int) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return def
}

// hasField reports whether the table defines the key at all.
func hasField(tbl *lua.LTable, key string) bool {
	return tbl.RawGetString(key) != lua.LNil
}

func getStringList(tbl *lua.LTable, key string) []string {
	t, ok := tbl.RawGetString(key).(*lua.LTable)
	if !ok {
		return nil
	}
	var out []string
	t.ForEach(func(_, v lua.LValue) {
		if s, ok := v.(lua.LString); ok {
			out = append(out, string(s))
		}
	})
	return out
}

func getIntList(tbl *lua.LTable, key string) []int {
	t, ok := tbl.RawGetString(key).(*lua.LTable)
	if !ok {
		return nil
	}
	var out []int
	t.ForEach(func(_, v lua.LValue) {
		if n, ok := v.(lua.LNumber); ok {
			out = append(out, int(n))
		}
	})
	return out
}

// compile turns the collected raw tables into a Game. Structural problems
// (bad direction names, unknown command types, duplicate ids) fail here;
// cross-reference checks live in validate.
func compile(coll *collector) (*Game, error) {
	if coll.game == nil {
		return nil, fmt.Errorf("content defines no Game block")
	}
	if coll.player == nil {
		return nil, fmt.Errorf("content defines no Player block")
	}

	game := &Game{
		Info: types.GameInfo{
			Title:   getString(coll.game, "title"),
			Author:  getString(coll.game, "author"),
			Version: getString(coll.game, "version"),
			Intro:   getString(coll.game, "intro"),
		},
		Stopwords: parser.NewStopwords(coll.stopwords),
		Rules:     rules.New(),
		Doors:     doors.NewTable(),
	}
	game.Rules.FinalRoom = getIntDef(coll.game, "final_room", -1)
	game.Rules.Completion = getString(coll.game, "completion")

	// Commands, in declaration order (matching scans in this order).
	for _, tbl := range coll.commands {
		typeName := getString(tbl, "type")
		ct, ok := types.ParseCommandType(typeName)
		if !ok {
			return nil, fmt.Errorf("command %q has unknown type %q", getString(tbl, "name"), typeName)
		}
		game.Commands = append(game.Commands, types.Command{
			Type:    ct,
			Name:    getString(tbl, "name"),
			Aliases: getStringList(tbl, "aliases"),
		})
	}

	// Player.
	maxHP := getIntDef(coll.player, "maxhp", getInt(coll.player, "hp"))
	player := &world.Character{
		ID:          0,
		Name:        getString(coll.player, "name"),
		Description: getString(coll.player, "description"),
		MaxHP:       maxHP,
		HP:          getIntDef(coll.player, "hp", maxHP),
		Attack:      getInt(coll.player, "attack"),
		Defense:     getInt(coll.player, "defense"),
		Kind:        world.KindPlayer,
		Alive:       true,
	}
	w := world.New(player)
	game.World = w

	// Objects: catalog first, placement after, so containers can reference
	// contents declared later in the file.
	type placement struct {
		roomID   int
		placed   bool
		contents []int
	}
	placements := map[int]placement{}
	for _, ro := range coll.objects {
		if _, dup := w.Catalog[ro.id]; dup {
			return nil, fmt.Errorf("duplicate object id %d", ro.id)
		}
		obj := &world.Object{
			ID:          ro.id,
			Name:        getString(ro.table, "name"),
			Description: getString(ro.table, "description"),
			Aliases:     getStringList(ro.table, "aliases"),
			Openable:    getBool(ro.table, "openable", ro.kind == "container"),
			Pickupable:  getBool(ro.table, "pickup", ro.kind == "weapon"),
			Pushable:    getBool(ro.table, "pushable", false),
		}
		if ro.kind == "container" {
			obj.Container = true
			game.Rules.Behaviors[ro.id] = rules.Behavior{Tag: rules.TagContainer}
		}
		if ro.kind == "weapon" {
			obj.Weapon = &world.WeaponStats{
				Attack:     getInt(ro.table, "attack"),
				CritChance: getInt(ro.table, "crit"),
				CritMult:   getIntDef(ro.table, "critmult", 2),
				Category:   getString(ro.table, "category"),
			}
		}
		w.Catalog[ro.id] = obj
		placements[ro.id] = placement{
			roomID:   getInt(ro.table, "room"),
			placed:   hasField(ro.table, "room"),
			contents: getIntList(ro.table, "contents"),
		}
	}

	// Rooms.
	for _, rr := range coll.rooms {
		if _, dup := w.Rooms[rr.id]; dup {
			return nil, fmt.Errorf("duplicate room id %d", rr.id)
		}
		room := &world.Room{
			ID:          rr.id,
			Name:        getString(rr.table, "name"),
			Description: getString(rr.table, "description"),
			Look:        getString(rr.table, "look"),
			Neighbors:   map[types.Direction]int{},
		}
		for _, dir := range types.Directions {
			if hasField(rr.table, dir.String()) {
				room.Neighbors[dir] = getInt(rr.table, dir.String())
			}
		}
		w.Rooms[rr.id] = room
	}

	// Place objects into rooms in declaration order; attach container
	// contents; objects in containers or the starting inventory must not
	// also claim a room.
	contained := map[int]int{} // object id → container id
	for _, ro := range coll.objects {
		for _, cid := range placements[ro.id].contents {
			if prev, dup := contained[cid]; dup {
				return nil, fmt.Errorf("object %d appears in containers %d and %d", cid, prev, ro.id)
			}
			contained[cid] = ro.id
		}
	}
	startInv := map[int]bool{}
	for _, id := range getIntList(coll.player, "inventory") {
		startInv[id] = true
	}
	for _, ro := range coll.objects {
		obj := w.Catalog[ro.id]
		p := placements[ro.id]
		for _, cid := range p.contents {
			c, ok := w.Catalog[cid]
			if !ok {
				return nil, fmt.Errorf("container %d references undefined object %d", ro.id, cid)
			}
			obj.Contents = append(obj.Contents, c)
		}
		_, isContained := contained[ro.id]
		switch {
		case !p.placed:
			// unplaced: crafting result or carried/contained
		case isContained || startInv[ro.id]:
			return nil, fmt.Errorf("object %d is placed in a room and carried or contained", ro.id)
		default:
			room, ok := w.Rooms[p.roomID]
			if !ok {
				return nil, fmt.Errorf("object %d placed in undefined room %d", ro.id, p.roomID)
			}
			room.AddObject(obj)
		}
	}
	for _, id := range getIntList(coll.player, "inventory") {
		obj, ok := w.Catalog[id]
		if !ok {
			return nil, fmt.Errorf("player inventory references undefined object %d", id)
		}
		w.AddToInventory(obj)
	}

	// Enemies, in declaration order per room.
	seenEnemies := map[int]bool{}
	for _, re := range coll.enemies {
		if seenEnemies[re.id] {
			return nil, fmt.Errorf("duplicate enemy id %d", re.id)
		}
		seenEnemies[re.id] = true
		maxHP := getIntDef(re.table, "maxhp", getInt(re.table, "hp"))
		enemy := &world.Character{
			ID:          re.id,
			Name:        getString(re.table, "name"),
			Description: getString(re.table, "description"),
			MaxHP:       maxHP,
			HP:          getIntDef(re.table, "hp", maxHP),
			Attack:      getInt(re.table, "attack"),
			Defense:     getInt(re.table, "defense"),
			Kind:        world.Kind(getString(re.table, "kind")),
			Alive:       getBool(re.table, "alive", true),
		}
		room, ok := w.Rooms[getInt(re.table, "room")]
		if !ok {
			return nil, fmt.Errorf("enemy %d placed in undefined room %d", re.id, getInt(re.table, "room"))
		}
		room.Enemies = append(room.Enemies, enemy)
	}

	// Doors.
	for _, tbl := range coll.doors {
		dirName := getString(tbl, "direction")
		dir, ok := types.ParseDirection(dirName)
		if !ok {
			return nil, fmt.Errorf("door has invalid direction %q", dirName)
		}
		game.Doors.Add(getInt(tbl, "room"), dir, getInt(tbl, "key"))
	}

	// Behavior tags.
	for _, rt := range coll.tags {
		b := rules.Behavior{Tag: rules.Tag(rt.tag)}
		if rt.params != nil {
			b.Amount = getInt(rt.params, "amount")
			b.Text = getString(rt.params, "text")
			if hasField(rt.params, "room") {
				b.Room = getInt(rt.params, "room")
				b.RoomBound = true
			}
			b.Refusal = getString(rt.params, "refusal")
			if dirName := getString(rt.params, "direction"); dirName != "" {
				dir, ok := types.ParseDirection(dirName)
				if !ok {
					return nil, fmt.Errorf("tag on object %d has invalid direction %q", rt.id, dirName)
				}
				b.Dir = dir
			}
		}
		game.Rules.Behaviors[rt.id] = b
	}

	// Recipes.
	for _, tbl := range coll.recipes {
		game.Rules.Recipes = append(game.Rules.Recipes, rules.Recipe{
			Components: getIntList(tbl, "components"),
			Result:     getInt(tbl, "result"),
			Text:       getString(tbl, "text"),
		})
	}

	// Phrases.
	for phrase, text := range coll.phrases {
		game.Rules.Phrases[phrase] = text
	}

	w.CurrentID = getInt(coll.game, "start")
	return game, nil
}
