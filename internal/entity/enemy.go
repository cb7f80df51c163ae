package entity

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/samdwyer/dicecrawl/internal/gamedata"
)

// Entity types reported by enemies.
const (
	TypeEnemy = "enemy"
	TypeBoss  = "boss"
)

// Enemy is a hostile creature for the duration of one encounter.
type Enemy struct {
	Def    *gamedata.EnemyDef // Template this instance was cloned from
	ID     string
	Name   string
	Icon   string
	Symbol rune
	HP     int
	MaxHP  int // Starting HP, fixed at instantiation
}

// NewEnemy creates a live enemy from a template with MaxHP equal to its starting HP.
func NewEnemy(id string, def *gamedata.EnemyDef) *Enemy {
	return &Enemy{
		Def:    def,
		ID:     id,
		Name:   def.Name,
		Icon:   def.Icon,
		Symbol: def.GlyphRune(),
		HP:     def.HP,
		MaxHP:  def.HP,
	}
}

// GetID returns the enemy's entity id.
func (e *Enemy) GetID() string { return e.ID }

// GetType returns TypeBoss for the boss and TypeEnemy otherwise.
func (e *Enemy) GetType() string {
	if e.IsBoss() {
		return TypeBoss
	}
	return TypeEnemy
}

// IsAlive returns true if the enemy has HP remaining.
func (e *Enemy) IsAlive() bool { return e.HP > 0 }

// IsBoss reports whether this is the final-cell boss.
func (e *Enemy) IsBoss() bool { return e.Def.Boss }

// DisplayHP returns HP clamped at zero.
func (e *Enemy) DisplayHP() int { return max(0, e.HP) }

// Attack returns the enemy's attack power.
func (e *Enemy) Attack() int { return e.Def.Attack }

// Defense returns the enemy's defense value.
func (e *Enemy) Defense() int { return e.Def.Defense }

// GoldReward returns the gold granted for defeating the enemy.
func (e *Enemy) GoldReward() int { return e.Def.Gold }

// TakeDamage subtracts amount from HP without clamping and returns it.
func (e *Enemy) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	e.HP -= amount
	return amount
}

// Ensure Enemy implements core.Entity
var _ core.Entity = (*Enemy)(nil)
