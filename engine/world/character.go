package world

// Kind tags a character as the player or one of the enemy families.
type Kind string

const (
	KindPlayer   Kind = "player"
	KindGoblin   Kind = "goblin"
	KindSkeleton Kind = "skeleton"
	KindSpider   Kind = "spider"
	KindBoss     Kind = "boss"
)

// Character is the player or an enemy. HP is always within [0, MaxHP];
// reaching 0 flips Alive to false and only Revive flips it back.
type Character struct {
	ID          int
	Name        string
	Description string
	MaxHP       int
	HP          int
	Attack      int
	Defense     int
	Kind        Kind
	Alive       bool
}

// ApplyDamage applies raw damage reduced by defense, with a floor of 1:
// at least one point always lands. Returns the damage actually dealt.
func (c *Character) ApplyDamage(raw int) int {
	dmg := raw - c.Defense
	if dmg < 1 {
		dmg = 1
	}
	c.HP -= dmg
	if c.HP <= 0 {
		c.HP = 0
		c.Alive = false
	}
	return dmg
}

// Heal restores amount HP, clamped to MaxHP. An amount <= 0 restores to
// full. Healing a dead character raises HP but does not revive it.
// Returns the HP actually restored.
func (c *Character) Heal(amount int) int {
	before := c.HP
	if amount <= 0 {
		c.HP = c.MaxHP
	} else {
		c.HP += amount
		if c.HP > c.MaxHP {
			c.HP = c.MaxHP
		}
	}
	return c.HP - before
}

// Revive restores a dead character to life with the given HP (clamped).
func (c *Character) Revive(hp int) {
	if hp < 1 {
		hp = 1
	}
	if hp > c.MaxHP {
		hp = c.MaxHP
	}
	c.HP = hp
	c.Alive = true
}
