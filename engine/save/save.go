// Package save implements JSON snapshot and restore of a running game.
// A snapshot is flat: it references content by id and never duplicates the
// immutable definitions, so restoring requires the same game content the
// snapshot was taken from.
package save

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/avolpe/maniero/engine"
)

// ItemRef is an inventory entry: id plus display name, in carry order.
type ItemRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ObjectState records where one object currently lives and its mutable flags.
// Entries are ordered: restore replays them to rebuild room and container
// lists in their original order.
type ObjectState struct {
	ID           int    `json:"id"`
	Where        string `json:"where"` // "room", "inventory", "container", "gone"
	Room         int    `json:"room,omitempty"`
	Container    int    `json:"container,omitempty"`
	Open         bool   `json:"open,omitempty"`
	Pushed       bool   `json:"pushed,omitempty"`
	Poisoned     bool   `json:"poisoned,omitempty"`
	PoisonDamage int    `json:"poison_damage,omitempty"`
}

// EnemyState records an enemy's mutable combat stats.
type EnemyState struct {
	HP    int  `json:"hp"`
	Alive bool `json:"alive"`
}

// RoomOverride records the mutable narrative text of a room.
type RoomOverride struct {
	Description string `json:"description"`
	Look        string `json:"look,omitempty"`
}

// DoorRef names an unlocked passage.
type DoorRef struct {
	Room      int    `json:"room"`
	Direction string `json:"direction"`
}

// EscortRef records an active escort-out state.
type EscortRef struct {
	Direction string `json:"direction"`
	Refusal   string `json:"refusal,omitempty"`
}

// Snapshot is the JSON-serializable save format.
type Snapshot struct {
	Version string `json:"version"`
	Title   string `json:"title"`

	RoomID      int  `json:"room_id"`
	PlayerHP    int  `json:"player_hp"`
	PlayerMaxHP int  `json:"player_max_hp"`
	PlayerAlive bool `json:"player_alive"`

	Inventory []ItemRef            `json:"inventory"`
	Objects   []ObjectState        `json:"objects"`
	Enemies   map[int]EnemyState   `json:"enemies"`
	Rooms     map[int]RoomOverride `json:"rooms"`
	Doors     []DoorRef            `json:"doors_unlocked"`

	CombatActive  bool  `json:"combat_active"`
	CombatEnemies []int `json:"combat_enemies,omitempty"`
	CombatRounds  int   `json:"combat_rounds,omitempty"`

	Escort   *EscortRef `json:"escort,omitempty"`
	GameOver bool       `json:"game_over,omitempty"`
	Complete bool       `json:"complete,omitempty"`

	PlaySeconds int64 `json:"play_seconds"`
	RNGSeed     int64 `json:"rng_seed"`
	RNGPosition int64 `json:"rng_position"`
}

// Capture builds a snapshot of the engine's current state.
func Capture(e *engine.Engine) *Snapshot {
	w := e.World
	snap := &Snapshot{
		Version:       e.Info.Version,
		Title:         e.Info.Title,
		RoomID:        w.CurrentID,
		PlayerHP:      w.Player.HP,
		PlayerMaxHP:   w.Player.MaxHP,
		PlayerAlive:   w.Player.Alive,
		Enemies:       map[int]EnemyState{},
		Rooms:         map[int]RoomOverride{},
		CombatActive:  e.Combat.Active,
		CombatEnemies: e.Combat.EnemyIDs(),
		CombatRounds:  e.Combat.Rounds,
		GameOver:      w.GameOver,
		Complete:      w.Complete,
		PlaySeconds:   e.PlaySeconds(),
		RNGSeed:       e.RNG.Seed(),
		RNGPosition:   e.RNG.Position(),
	}

	for _, o := range w.Inventory {
		snap.Inventory = append(snap.Inventory, ItemRef{ID: o.ID, Name: o.Name})
	}

	placed := map[int]bool{}
	record := func(st ObjectState) {
		snap.Objects = append(snap.Objects, st)
		placed[st.ID] = true
	}
	objState := func(o ObjectState, id int) ObjectState {
		if obj, ok := w.Catalog[id]; ok {
			o.Open = obj.Open
			o.Pushed = obj.Pushed
			if obj.Weapon != nil {
				o.Poisoned = obj.Weapon.Poisoned
				o.PoisonDamage = obj.Weapon.PoisonDamage
			}
		}
		return o
	}

	roomIDs := make([]int, 0, len(w.Rooms))
	for id := range w.Rooms {
		roomIDs = append(roomIDs, id)
	}
	sort.Ints(roomIDs)

	for _, rid := range roomIDs {
		room := w.Rooms[rid]
		snap.Rooms[rid] = RoomOverride{Description: room.Description, Look: room.Look}
		for _, o := range room.Objects {
			record(objState(ObjectState{ID: o.ID, Where: "room", Room: rid}, o.ID))
			for _, c := range o.Contents {
				record(objState(ObjectState{ID: c.ID, Where: "container", Container: o.ID}, c.ID))
			}
		}
		for _, en := range room.Enemies {
			snap.Enemies[en.ID] = EnemyState{HP: en.HP, Alive: en.Alive}
		}
	}
	for _, o := range w.Inventory {
		record(objState(ObjectState{ID: o.ID, Where: "inventory"}, o.ID))
		for _, c := range o.Contents {
			record(objState(ObjectState{ID: c.ID, Where: "container", Container: o.ID}, c.ID))
		}
	}

	catalogIDs := make([]int, 0, len(w.Catalog))
	for id := range w.Catalog {
		catalogIDs = append(catalogIDs, id)
	}
	sort.Ints(catalogIDs)
	for _, id := range catalogIDs {
		if !placed[id] {
			record(objState(ObjectState{ID: id, Where: "gone"}, id))
		}
	}

	for _, p := range e.Doors.Unlocked() {
		snap.Doors = append(snap.Doors, DoorRef{Room: p.Room, Direction: p.Dir.String()})
	}

	if w.Escort != nil {
		snap.Escort = &EscortRef{
			Direction: w.Escort.Direction.String(),
			Refusal:   w.Escort.Refusal,
		}
	}

	return snap
}

// Marshal serializes a snapshot to indented JSON.
func Marshal(s *Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Load deserializes snapshot JSON.
func Load(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding save data: %w", err)
	}
	return &s, nil
}
