// Package entity provides the live player and enemy instances cloned from
// catalog templates.
package entity

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/samdwyer/dicecrawl/internal/gamedata"
)

// TypePlayer is the core.Entity type reported by players.
const TypePlayer = "player"

// Player is the live character for one run. HP is stored raw and may drop
// below zero on the hit that kills; use DisplayHP for presentation.
type Player struct {
	ID      string // Run-scoped entity id
	ClassID string // Catalog class id (e.g., "warrior")
	Name    string // Class display name
	Icon    string
	Glyph   rune

	HP, MaxHP int
	MP, MaxMP int
	Attack    int
	Defense   int
	Magic     int

	// Defending halves exactly the next incoming enemy attack, then clears.
	Defending bool
}

// NewPlayer clones a class template into a fresh player at full hp and mana.
func NewPlayer(id string, def *gamedata.ClassDef) *Player {
	return &Player{
		ID:      id,
		ClassID: def.ID,
		Name:    def.Name,
		Icon:    def.Icon,
		Glyph:   def.GlyphRune(),
		HP:      def.HP,
		MaxHP:   def.HP,
		MP:      def.Mana,
		MaxMP:   def.Mana,
		Attack:  def.Attack,
		Defense: def.Defense,
		Magic:   def.Magic,
	}
}

// GetID returns the player's entity id.
func (p *Player) GetID() string { return p.ID }

// GetType returns TypePlayer.
func (p *Player) GetType() string { return TypePlayer }

// IsAlive returns true if the player has HP remaining.
func (p *Player) IsAlive() bool { return p.HP > 0 }

// DisplayHP returns HP clamped at zero.
func (p *Player) DisplayHP() int { return max(0, p.HP) }

// TakeDamage subtracts amount from HP without clamping and returns it.
func (p *Player) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	p.HP -= amount
	return amount
}

// Heal restores HP up to MaxHP and returns the amount actually restored.
func (p *Player) Heal(amount int) int {
	if amount <= 0 || p.HP >= p.MaxHP {
		return 0
	}
	actual := amount
	if p.HP+actual > p.MaxHP {
		actual = p.MaxHP - p.HP
	}
	p.HP += actual
	return actual
}

// SpendMP reduces MP and returns false, leaving MP untouched, if insufficient.
func (p *Player) SpendMP(amount int) bool {
	if p.MP < amount {
		return false
	}
	p.MP -= amount
	return true
}

// ConsumeDefend reports whether the player was defending and clears the flag.
func (p *Player) ConsumeDefend() bool {
	was := p.Defending
	p.Defending = false
	return was
}

// Ensure Player implements core.Entity
var _ core.Entity = (*Player)(nil)
