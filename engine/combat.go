package engine

import (
	"fmt"
	"strings"

	"github.com/avolpe/maniero/engine/resolve"
	"github.com/avolpe/maniero/engine/rules"
	"github.com/avolpe/maniero/engine/world"
	"github.com/avolpe/maniero/types"
)

// Session is the transient combat state: a snapshot of the enemies engaged
// when the fight started. Enemies entering the room later do not join.
type Session struct {
	Active  bool
	Enemies []*world.Character
	Rounds  int
}

// EnemyIDs returns the ids of the still-engaged enemies, in order.
func (s *Session) EnemyIDs() []int {
	ids := make([]int, 0, len(s.Enemies))
	for _, e := range s.Enemies {
		ids = append(ids, e.ID)
	}
	return ids
}

// combatHandler starts fights and resolves combat rounds. It runs first in
// the pipeline so that, mid-combat, "usa spada" is an attack and not a
// generic item use.
type combatHandler struct{}

func (combatHandler) Resolve(e *Engine, in *resolve.Intent) string {
	switch in.Command.Type {
	case types.CommandFight:
		if !e.Combat.Active {
			return e.startCombat()
		}
		return e.resolveRound(nil, nil)

	case types.CommandUse:
		if !e.Combat.Active {
			return ""
		}
		if in.Carried != nil && in.Carried.IsWeapon() {
			e.useClaimed = true
			return e.resolveRound(in.Carried, nil)
		}
		if in.Carried != nil {
			if b, ok := e.Rules.Behavior(in.Carried.ID); ok && b.Tag == rules.TagHeal {
				e.useClaimed = true
				return e.resolveRound(nil, in.Carried)
			}
		}
		// Anything else falls through to the generic use handler, so
		// narrative items stay usable mid-combat.
		return ""
	}
	return ""
}

// startCombat snapshots the living enemies of the current room.
func (e *Engine) startCombat() string {
	living := e.World.Current().LivingEnemies()
	if len(living) == 0 {
		return msgNothingToFight
	}
	e.Combat = Session{
		Active:  true,
		Enemies: append([]*world.Character(nil), living...),
	}
	names := make([]string, len(living))
	for i, en := range living {
		names[i] = en.Name
	}
	return fmt.Sprintf("Il combattimento ha inizio! Affronti: %s.", strings.Join(names, ", "))
}

// resolveRound plays one full combat round. Exactly one of weapon and
// potion may be non-nil: weapon augments the attack, potion replaces it
// with a heal that consumes the player's action. Enemies only counter when
// at least one survives the player's action.
func (e *Engine) resolveRound(weapon, potion *world.Object) string {
	var lines []string
	player := e.World.Player

	if potion != nil {
		lines = append(lines, e.drinkPotion(potion))
	} else {
		lines = append(lines, e.playerAttack(weapon)...)
	}

	// Prune the fallen.
	var remaining []*world.Character
	for _, en := range e.Combat.Enemies {
		if en.Alive {
			remaining = append(remaining, en)
		}
	}
	e.Combat.Enemies = remaining

	if len(remaining) == 0 {
		e.Combat = Session{}
		lines = append(lines, "Hai vinto il combattimento!")
		return strings.Join(lines, "\n")
	}

	// Every surviving enemy strikes back, in list order.
	for _, en := range remaining {
		raw := en.Attack + e.RNG.Jitter()
		dmg := player.ApplyDamage(raw)
		e.notifyHP(player)
		lines = append(lines, fmt.Sprintf("%s ti colpisce per %d danni (%d/%d).",
			en.Name, dmg, player.HP, player.MaxHP))
		if !player.Alive {
			e.Combat = Session{}
			e.World.GameOver = true
			lines = append(lines, "Cadi a terra esausto. Sei stato sconfitto...")
			return strings.Join(lines, "\n")
		}
	}

	e.Combat.Rounds++
	return strings.Join(lines, "\n")
}

// playerAttack resolves the player's action against the first living enemy
// of the snapshot. A critical hit is a single independent draw against the
// weapon's percentage chance; poison adds its per-hit damage only on
// non-critical hits.
func (e *Engine) playerAttack(weapon *world.Object) []string {
	target := e.Combat.Enemies[0]
	raw := e.World.Player.Attack
	crit := false
	poisoned := false

	if weapon != nil {
		ws := weapon.Weapon
		raw += ws.Attack
		if e.RNG.Percent(ws.CritChance) {
			raw *= ws.CritMult
			crit = true
		} else if ws.Poisoned {
			raw += ws.PoisonDamage
			poisoned = true
		}
	}

	dmg := target.ApplyDamage(raw)
	e.notifyHP(target)

	var lines []string
	switch {
	case crit:
		lines = append(lines, fmt.Sprintf("Colpo critico! Infliggi %d danni a %s.", dmg, target.Name))
	case poisoned:
		lines = append(lines, fmt.Sprintf("Colpisci %s per %d danni. Il veleno brucia la ferita.", target.Name, dmg))
	default:
		lines = append(lines, fmt.Sprintf("Colpisci %s per %d danni.", target.Name, dmg))
	}
	if !target.Alive {
		lines = append(lines, fmt.Sprintf("%s è stato sconfitto!", target.Name))
	}
	return lines
}

// drinkPotion heals the player and consumes the potion and the round.
func (e *Engine) drinkPotion(potion *world.Object) string {
	player := e.World.Player
	b, _ := e.Rules.Behavior(potion.ID)
	healed := player.Heal(b.Amount)
	e.World.RemoveFromInventory(potion.ID)
	e.notifyConsumed(potion)
	e.notifyHP(player)
	return fmt.Sprintf("Bevi %s e recuperi %d punti vita (%d/%d).",
		potion.Name, healed, player.HP, player.MaxHP)
}
