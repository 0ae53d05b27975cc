package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// collector accumulates Lua definitions during file execution.
// Declaration order is preserved everywhere it matters: command matching,
// room object lists, enemy lists.
type collector struct {
	game      *lua.LTable
	player    *lua.LTable
	stopwords []string
	commands  []*lua.LTable
	rooms     []rawDef
	objects   []rawObject
	enemies   []rawDef
	doors     []*lua.LTable
	tags      []rawTag
	recipes   []*lua.LTable
	phrases   map[string]string
}

func newCollector() *collector {
	return &collector{phrases: map[string]string{}}
}

// registerAPI registers the content constructors as Lua globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Game { title = "...", start = 0, ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Player { name = "...", hp = 100, inventory = {2} }
	L.SetGlobal("Player", L.NewFunction(func(L *lua.LState) int {
		coll.player = L.CheckTable(1)
		return 0
	}))

	// Stopwords { "il", "la", "di" }
	L.SetGlobal("Stopwords", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		tbl.ForEach(func(_, v lua.LValue) {
			if s, ok := v.(lua.LString); ok {
				coll.stopwords = append(coll.stopwords, string(s))
			}
		})
		return 0
	}))

	// Command { name = "nord", type = "north", aliases = {"n"} }
	L.SetGlobal("Command", L.NewFunction(func(L *lua.LState) int {
		coll.commands = append(coll.commands, L.CheckTable(1))
		return 0
	}))

	// Room(0) { name = "...", north = 1 } — curried: Room(id) returns a
	// function that takes the definition table.
	L.SetGlobal("Room", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckInt(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.rooms = append(coll.rooms, rawDef{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Object(1) { name = "...", pickup = true, room = 0 } — curried.
	L.SetGlobal("Object", L.NewFunction(objectConstructor(coll, "object")))

	// Container(100) { contents = {2, 3}, room = 1 } — curried.
	L.SetGlobal("Container", L.NewFunction(objectConstructor(coll, "container")))

	// Weapon(12) { attack = 5, crit = 20, critmult = 2 } — curried.
	L.SetGlobal("Weapon", L.NewFunction(objectConstructor(coll, "weapon")))

	// Enemy(50) { name = "Goblin", hp = 40, room = 3 } — curried.
	L.SetGlobal("Enemy", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckInt(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.enemies = append(coll.enemies, rawDef{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Door { room = 0, direction = "north", key = 1 }
	L.SetGlobal("Door", L.NewFunction(func(L *lua.LState) int {
		coll.doors = append(coll.doors, L.CheckTable(1))
		return 0
	}))

	// Tag(2, "heal", { amount = 25, text = "..." }) — params optional.
	L.SetGlobal("Tag", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckInt(1)
		tag := L.CheckString(2)
		var params *lua.LTable
		if t, ok := L.Get(3).(*lua.LTable); ok {
			params = t
		}
		coll.tags = append(coll.tags, rawTag{id: id, tag: tag, params: params})
		return 0
	}))

	// Recipe { components = {20, 21, 22}, result = 23, text = "..." }
	L.SetGlobal("Recipe", L.NewFunction(func(L *lua.LState) int {
		coll.recipes = append(coll.recipes, L.CheckTable(1))
		return 0
	}))

	// Phrase("usa cura", "Non hai nulla per curarti.")
	L.SetGlobal("Phrase", L.NewFunction(func(L *lua.LState) int {
		coll.phrases[L.CheckString(1)] = L.CheckString(2)
		return 0
	}))
}

func objectConstructor(coll *collector, kind string) lua.LGFunction {
	return func(L *lua.LState) int {
		id := L.CheckInt(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.objects = append(coll.objects, rawObject{id: id, kind: kind, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}
}
