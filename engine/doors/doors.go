// Package doors implements the rule table gating room transitions behind
// key possession. Entries are static content; the unlocked set is the only
// mutable part and unlocking is monotonic for the rest of the session.
package doors

import (
	"fmt"

	"github.com/avolpe/maniero/engine/world"
	"github.com/avolpe/maniero/types"
)

// Passage identifies a lockable exit: a room id plus a direction.
type Passage struct {
	Room int
	Dir  types.Direction
}

// Table maps passages to the required key object id.
type Table struct {
	locks    map[Passage]int
	unlocked map[Passage]bool
}

// NewTable returns an empty door table.
func NewTable() *Table {
	return &Table{
		locks:    map[Passage]int{},
		unlocked: map[Passage]bool{},
	}
}

// Add registers a locked passage requiring the given key object id.
func (t *Table) Add(roomID int, dir types.Direction, keyID int) {
	t.locks[Passage{roomID, dir}] = keyID
}

// IsLocked reports whether the passage has a lock that has not yet been
// opened this session.
func (t *Table) IsLocked(roomID int, dir types.Direction) bool {
	p := Passage{roomID, dir}
	_, locked := t.locks[p]
	return locked && !t.unlocked[p]
}

// KeyFor returns the key object id required by a passage.
func (t *Table) KeyFor(roomID int, dir types.Direction) (int, bool) {
	id, ok := t.locks[Passage{roomID, dir}]
	return id, ok
}

// AttemptPassage checks a movement against the table. It returns the
// message to show (empty when the passage is not locked) and whether the
// movement may proceed. A successful key check marks the passage unlocked
// for good: removing the key afterwards does not re-lock it.
func (t *Table) AttemptPassage(w *world.World, roomID int, dir types.Direction) (msg string, allowed bool) {
	p := Passage{roomID, dir}
	keyID, locked := t.locks[p]
	if !locked || t.unlocked[p] {
		return "", true
	}
	keyName := "una chiave"
	if key, ok := w.Catalog[keyID]; ok {
		keyName = key.Name
	}
	if !w.HasItem(keyID) {
		return fmt.Sprintf("La porta è chiusa a chiave. Ti serve: %s.", keyName), false
	}
	t.unlocked[p] = true
	return fmt.Sprintf("Usi %s per aprire la porta.", keyName), true
}

// ForceUnlock marks a passage unlocked without a key check. Used by save
// restore.
func (t *Table) ForceUnlock(roomID int, dir types.Direction) {
	t.unlocked[Passage{roomID, dir}] = true
}

// Unlocked returns the passages unlocked so far, in no particular order.
func (t *Table) Unlocked() []Passage {
	var out []Passage
	for p, open := range t.unlocked {
		if open {
			out = append(out, p)
		}
	}
	return out
}
