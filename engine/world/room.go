package world

import "github.com/avolpe/maniero/types"

// Room is a node of the world graph. Neighbors store room ids, not live
// references; an absent direction simply has no entry. The graph may be
// asymmetric: an exit north does not imply a way back south.
type Room struct {
	ID          int
	Name        string
	Description string
	Look        string // optional "look around" text

	Neighbors map[types.Direction]int

	Objects []*Object
	Enemies []*Character
}

// Neighbor returns the room id in the given direction, if any.
func (r *Room) Neighbor(d types.Direction) (int, bool) {
	id, ok := r.Neighbors[d]
	return id, ok
}

// LivingEnemies returns the enemies in the room that are still alive,
// in list order.
func (r *Room) LivingEnemies() []*Character {
	var alive []*Character
	for _, e := range r.Enemies {
		if e.Alive {
			alive = append(alive, e)
		}
	}
	return alive
}

// FindObject returns the object with the given id, or nil.
func (r *Room) FindObject(id int) *Object {
	for _, o := range r.Objects {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// RemoveObject removes and returns the object with the given id, preserving
// the order of the remaining objects. Returns nil if not present.
func (r *Room) RemoveObject(id int) *Object {
	for i, o := range r.Objects {
		if o.ID == id {
			r.Objects = append(r.Objects[:i], r.Objects[i+1:]...)
			return o
		}
	}
	return nil
}

// AddObject appends an object to the room's contents.
func (r *Room) AddObject(o *Object) {
	r.Objects = append(r.Objects, o)
}
