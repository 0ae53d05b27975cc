package engine

import (
	"fmt"

	"github.com/avolpe/maniero/engine/resolve"
	"github.com/avolpe/maniero/engine/rules"
	"github.com/avolpe/maniero/engine/world"
	"github.com/avolpe/maniero/types"
)

// useHandler resolves generic item use through the declarative behavior
// table: potions, poison, scrolls, altars, crafting combinations and the
// endgame chain. Weapon and potion use during combat never reaches this
// handler; the combat handler marks those intents claimed first, and the
// mark holds even when the round just ended the session.
type useHandler struct{}

func (useHandler) Resolve(e *Engine, in *resolve.Intent) string {
	if in.Command.Type != types.CommandUse {
		return ""
	}
	if e.useClaimed {
		return ""
	}

	target := in.Carried
	carried := true
	if target == nil {
		target = in.Object
		carried = false
	}
	if target == nil {
		if in.Text != "" {
			if msg, ok := e.Rules.Phrase(in.Text); ok {
				return msg
			}
		}
		return msgCannotUse
	}

	// Crafting first: if the target completes a combination, the components
	// are consumed together and replaced by the result.
	if rec, ok := e.Rules.RecipeWith(target.ID, e.World.HasItem); ok {
		return e.craft(rec)
	}

	b, ok := e.Rules.Behavior(target.ID)
	if !ok {
		return msgCannotUse
	}
	if b.RoomBound && b.Room != e.World.CurrentID {
		return msgCannotUse
	}

	switch b.Tag {
	case rules.TagHeal:
		return e.useHeal(target, carried, b)
	case rules.TagPoison:
		return e.usePoison(target, carried, b)
	case rules.TagScroll, rules.TagAltar:
		return b.Text
	case rules.TagKey:
		if b.Text != "" {
			return b.Text
		}
		return "Forse andrebbe usata sulla porta giusta."
	case rules.TagEndgame:
		return e.useEndgame(target, carried, b)
	}
	return msgCannotUse
}

func (e *Engine) useHeal(potion *world.Object, carried bool, b rules.Behavior) string {
	player := e.World.Player
	if player.HP == player.MaxHP {
		return msgAlreadyHealthy
	}
	healed := player.Heal(b.Amount)
	e.consume(potion, carried)
	e.notifyHP(player)
	msg := fmt.Sprintf("Recuperi %d punti vita (%d/%d).", healed, player.HP, player.MaxHP)
	if b.Text != "" {
		msg = b.Text + "\n" + msg
	}
	return msg
}

func (e *Engine) usePoison(poison *world.Object, carried bool, b rules.Behavior) string {
	weapon := e.World.FirstWeapon()
	if weapon == nil {
		return msgNoWeaponForPoison
	}
	weapon.Weapon.Poisoned = true
	weapon.Weapon.PoisonDamage = b.Amount
	e.consume(poison, carried)
	if b.Text != "" {
		return b.Text
	}
	return fmt.Sprintf("Spalmi il veleno su %s. Ogni colpo farà più male.", weapon.Name)
}

func (e *Engine) useEndgame(relic *world.Object, carried bool, b rules.Behavior) string {
	e.World.Escort = &world.Escort{Direction: b.Dir, Refusal: b.Refusal}
	e.consume(relic, carried)
	return b.Text
}

// craft consumes the recipe components from the inventory and grants the
// composite result.
func (e *Engine) craft(rec rules.Recipe) string {
	for _, id := range rec.Components {
		if o := e.World.RemoveFromInventory(id); o != nil {
			e.notifyConsumed(o)
		}
	}
	if result, ok := e.World.Catalog[rec.Result]; ok {
		e.World.AddToInventory(result)
		e.notifyObjectMoved(result, "inventory", 0)
	}
	return rec.Text
}

// consume removes a one-shot object from wherever the player found it.
func (e *Engine) consume(o *world.Object, carried bool) {
	if carried {
		e.World.RemoveFromInventory(o.ID)
	} else {
		e.World.Current().RemoveObject(o.ID)
	}
	e.notifyConsumed(o)
}
