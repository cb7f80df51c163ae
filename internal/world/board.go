package world

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dicecrawl/internal/errors"
	"github.com/samdwyer/dicecrawl/internal/telemetry"
)

const (
	// Size is the number of cells on every board.
	Size = 64
	// Start is the index every run begins on.
	Start = 0
	// Last is the boss cell and the end of the board.
	Last = Size - 1

	// Cumulative thresholds for interior cells, applied to one uniform sample.
	enemyThreshold    = 0.15
	treasureThreshold = 0.25
	trapThreshold     = 0.30
)

// Sampler produces uniform samples in [0, 1).
type Sampler interface {
	Float64() float64
}

// Board is the ordered sequence of cells for one run.
type Board struct {
	Cells [Size]Cell
	rng   Sampler
}

// NewBoard creates an empty board that draws its layout from rng.
func NewBoard(rng Sampler) *Board {
	return &Board{rng: rng}
}

// Generate lays out the board: cell 0 is the visited start, cell 63 the
// boss, and each interior cell draws one sample to pick its category.
func (b *Board) Generate(ctx context.Context) {
	_, span := telemetry.Start(ctx, "world", "board.generate")
	defer span.End()

	startTime := time.Now()

	b.Cells[Start] = Cell{Category: CategoryStart, Visited: true}
	for i := Start + 1; i < Last; i++ {
		b.Cells[i] = Cell{Category: categoryFor(b.rng.Float64())}
	}
	b.Cells[Last] = Cell{Category: CategoryBoss}

	span.SetAttributes(
		attribute.Int("board.size", Size),
		attribute.Int("board.enemies", b.Count(CategoryEnemy)),
		attribute.Int("board.treasures", b.Count(CategoryTreasure)),
		attribute.Int("board.traps", b.Count(CategoryTrap)),
		attribute.Int64("board.generation_us", time.Since(startTime).Microseconds()),
	)
}

func categoryFor(r float64) Category {
	switch {
	case r < enemyThreshold:
		return CategoryEnemy
	case r < treasureThreshold:
		return CategoryTreasure
	case r < trapThreshold:
		return CategoryTrap
	default:
		return CategoryEmpty
	}
}

// InBounds reports whether i is a valid cell index.
func InBounds(i int) bool {
	return i >= Start && i <= Last
}

// Cell returns the cell at index i.
func (b *Board) Cell(i int) (*Cell, error) {
	if !InBounds(i) {
		return nil, errors.OutOfBoundsf("position %d outside board [%d, %d]", i, Start, Last)
	}
	return &b.Cells[i], nil
}

// Clear turns the cell at i into an empty cell, keeping its visited flag.
// The start and boss cells are never cleared.
func (b *Board) Clear(i int) error {
	c, err := b.Cell(i)
	if err != nil {
		return err
	}
	if i == Start || i == Last {
		return nil
	}
	c.Category = CategoryEmpty
	return nil
}

// Visit marks the cell at i visited.
func (b *Board) Visit(i int) error {
	c, err := b.Cell(i)
	if err != nil {
		return err
	}
	c.Visited = true
	return nil
}

// Count returns the number of cells with the given category.
func (b *Board) Count(category Category) int {
	n := 0
	for i := range b.Cells {
		if b.Cells[i].Category == category {
			n++
		}
	}
	return n
}
