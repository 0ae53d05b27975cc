package world

import "strings"

// WeaponStats holds the combat properties of a weapon object.
type WeaponStats struct {
	Attack       int    // flat bonus added to the wielder's base damage
	CritChance   int    // percentage in [0, 100], single draw per attack
	CritMult     int    // damage multiplier on a critical hit
	Category     string // e.g. "lama", "contundente"
	Poisoned     bool
	PoisonDamage int // extra per-hit damage when poisoned and not critting
}

// Object is a game object: anything the player can see, carry, open or use.
// Containers carry a Contents list; weapons carry WeaponStats. Both are
// capability extensions of the same base, mirroring how content declares them.
type Object struct {
	ID          int
	Name        string
	Description string
	Aliases     []string

	Openable   bool
	Pickupable bool
	Pushable   bool

	Open   bool
	Pushed bool

	Container bool
	Contents  []*Object // only meaningful when Container is true

	Weapon *WeaponStats // nil for non-weapons
}

// IsWeapon reports whether the object carries weapon stats.
func (o *Object) IsWeapon() bool { return o.Weapon != nil }

// MatchesAlias reports whether word is one of the object's aliases
// (case-insensitive).
func (o *Object) MatchesAlias(word string) bool {
	for _, a := range o.Aliases {
		if strings.EqualFold(a, word) {
			return true
		}
	}
	return false
}

// TakeContents empties the container and returns what it held.
// The transfer into the surrounding context is the caller's job.
func (o *Object) TakeContents() []*Object {
	contents := o.Contents
	o.Contents = nil
	return contents
}
