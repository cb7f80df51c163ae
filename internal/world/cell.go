// Package world provides the linear board the player travels along.
package world

// Category classifies a board cell and decides what happens on landing.
type Category string

const (
	CategoryEmpty    Category = "empty"
	CategoryEnemy    Category = "enemy"
	CategoryBoss     Category = "boss"
	CategoryTreasure Category = "treasure"
	CategoryTrap     Category = "trap"
	// CategoryStart marks cell 0, where every run begins.
	CategoryStart Category = "player"
)

// Symbol returns the board glyph for a category.
func (c Category) Symbol() rune {
	switch c {
	case CategoryEnemy:
		return 'E'
	case CategoryBoss:
		return 'D'
	case CategoryTreasure:
		return '$'
	case CategoryTrap:
		return '^'
	case CategoryStart:
		return '@'
	default:
		return '.'
	}
}

// OneShot reports whether the category clears to empty once resolved.
func (c Category) OneShot() bool {
	return c == CategoryTreasure || c == CategoryTrap
}

// Cell is a single board position.
type Cell struct {
	Category Category
	Visited  bool
}
