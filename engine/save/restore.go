package save

import (
	"fmt"

	"github.com/avolpe/maniero/engine"
	"github.com/avolpe/maniero/engine/world"
	"github.com/avolpe/maniero/types"
)

// Restore applies a snapshot onto an engine built from the same game
// content. Object placement is rebuilt from scratch in snapshot order.
func Restore(e *engine.Engine, s *Snapshot) error {
	w := e.World

	for _, room := range w.Rooms {
		room.Objects = nil
	}
	w.Inventory = nil
	for _, o := range w.Catalog {
		if o.Container {
			o.Contents = nil
		}
	}

	for _, st := range s.Objects {
		obj, ok := w.Catalog[st.ID]
		if !ok {
			return fmt.Errorf("save references unknown object id %d", st.ID)
		}
		obj.Open = st.Open
		obj.Pushed = st.Pushed
		if obj.Weapon != nil {
			obj.Weapon.Poisoned = st.Poisoned
			obj.Weapon.PoisonDamage = st.PoisonDamage
		}
		switch st.Where {
		case "room":
			room, ok := w.Rooms[st.Room]
			if !ok {
				return fmt.Errorf("save places object %d in unknown room %d", st.ID, st.Room)
			}
			room.AddObject(obj)
		case "inventory":
			w.AddToInventory(obj)
		case "container":
			parent, ok := w.Catalog[st.Container]
			if !ok {
				return fmt.Errorf("save places object %d in unknown container %d", st.ID, st.Container)
			}
			parent.Contents = append(parent.Contents, obj)
		case "gone":
			// consumed; stays out of play
		default:
			return fmt.Errorf("save has unknown placement %q for object %d", st.Where, st.ID)
		}
	}

	for rid, ov := range s.Rooms {
		if room, ok := w.Rooms[rid]; ok {
			room.Description = ov.Description
			room.Look = ov.Look
		}
	}

	for id, st := range s.Enemies {
		if en := w.FindEnemy(id); en != nil {
			en.HP = st.HP
			en.Alive = st.Alive
		}
	}

	if _, ok := w.Rooms[s.RoomID]; !ok {
		return fmt.Errorf("save references unknown room id %d", s.RoomID)
	}
	w.CurrentID = s.RoomID
	w.Player.HP = s.PlayerHP
	w.Player.MaxHP = s.PlayerMaxHP
	w.Player.Alive = s.PlayerAlive
	w.GameOver = s.GameOver
	w.Complete = s.Complete
	w.PlaySeconds = s.PlaySeconds

	w.Escort = nil
	if s.Escort != nil {
		dir, ok := types.ParseDirection(s.Escort.Direction)
		if !ok {
			return fmt.Errorf("save has invalid escort direction %q", s.Escort.Direction)
		}
		w.Escort = &world.Escort{Direction: dir, Refusal: s.Escort.Refusal}
	}

	for _, d := range s.Doors {
		dir, ok := types.ParseDirection(d.Direction)
		if !ok {
			return fmt.Errorf("save has invalid door direction %q", d.Direction)
		}
		e.Doors.ForceUnlock(d.Room, dir)
	}

	e.Combat = engine.Session{}
	if s.CombatActive {
		session := engine.Session{Active: true, Rounds: s.CombatRounds}
		for _, id := range s.CombatEnemies {
			en := w.FindEnemy(id)
			if en == nil {
				return fmt.Errorf("save engages unknown enemy id %d", id)
			}
			session.Enemies = append(session.Enemies, en)
		}
		e.Combat = session
	}

	e.RestoreRNG(s.RNGSeed, s.RNGPosition)
	e.ResetClock()
	return nil
}
