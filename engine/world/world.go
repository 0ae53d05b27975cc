// Package world holds the authoritative in-memory game state: the room
// arena, the object catalog, the player and the inventory. It is pure data
// plus invariants; only the turn pipeline mutates it, one command at a time.
package world

import "github.com/avolpe/maniero/types"

// Escort is the post-victory state in which only one direction is accepted.
type Escort struct {
	Direction types.Direction
	Refusal   string // shown when the player tries any other direction
}

// World is the complete mutable game state.
type World struct {
	Rooms   map[int]*Room
	Catalog map[int]*Object // every object by id, placed or not

	Player    *Character
	Inventory []*Object

	CurrentID int

	Escort   *Escort
	GameOver bool // defeat: play is frozen until restore/restart
	Complete bool // victory: the adventure has been finished

	PlaySeconds int64 // accumulated play time from previous sessions
}

// New creates an empty world with the given player.
func New(player *Character) *World {
	return &World{
		Rooms:   map[int]*Room{},
		Catalog: map[int]*Object{},
		Player:  player,
	}
}

// Current returns the room the player is in. The loader guarantees the
// current id always resolves; a nil return indicates corrupt content.
func (w *World) Current() *Room {
	return w.Rooms[w.CurrentID]
}

// MoveTo reassigns the player's current room.
func (w *World) MoveTo(roomID int) {
	w.CurrentID = roomID
}

// HasItem reports whether the inventory contains the object id.
func (w *World) HasItem(id int) bool {
	return w.FindInventory(id) != nil
}

// FindInventory returns the inventory object with the given id, or nil.
func (w *World) FindInventory(id int) *Object {
	for _, o := range w.Inventory {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// AddToInventory appends an object to the inventory.
func (w *World) AddToInventory(o *Object) {
	w.Inventory = append(w.Inventory, o)
}

// RemoveFromInventory removes and returns the object with the given id,
// preserving order. Returns nil if not carried.
func (w *World) RemoveFromInventory(id int) *Object {
	for i, o := range w.Inventory {
		if o.ID == id {
			w.Inventory = append(w.Inventory[:i], w.Inventory[i+1:]...)
			return o
		}
	}
	return nil
}

// FirstWeapon returns the first weapon in the inventory, or nil.
func (w *World) FirstWeapon() *Object {
	for _, o := range w.Inventory {
		if o.IsWeapon() {
			return o
		}
	}
	return nil
}

// FindEnemy returns the enemy with the given id from any room, or nil.
func (w *World) FindEnemy(id int) *Character {
	for _, r := range w.Rooms {
		for _, e := range r.Enemies {
			if e.ID == id {
				return e
			}
		}
	}
	return nil
}
