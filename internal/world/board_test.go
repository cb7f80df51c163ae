package world

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	dcerrors "github.com/samdwyer/dicecrawl/internal/errors"
	"github.com/samdwyer/dicecrawl/internal/rng"
)

func TestBoardInvariants(t *testing.T) {
	ctx := context.Background()

	for seed := int64(1); seed <= 200; seed++ {
		b := NewBoard(rand.New(rand.NewSource(seed)))
		b.Generate(ctx)

		if b.Cells[Start].Category != CategoryStart || !b.Cells[Start].Visited {
			t.Fatalf("seed %d: start cell = %+v", seed, b.Cells[Start])
		}
		if b.Cells[Last].Category != CategoryBoss {
			t.Fatalf("seed %d: last cell = %+v", seed, b.Cells[Last])
		}
		if n := b.Count(CategoryBoss); n != 1 {
			t.Fatalf("seed %d: %d boss cells, want 1", seed, n)
		}
		if n := b.Count(CategoryStart); n != 1 {
			t.Fatalf("seed %d: %d start cells, want 1", seed, n)
		}
		for i := Start + 1; i <= Last; i++ {
			if b.Cells[i].Visited {
				t.Fatalf("seed %d: cell %d visited before play", seed, i)
			}
		}
	}
}

func TestBoardDistribution(t *testing.T) {
	ctx := context.Background()
	counts := make(map[Category]int)

	const boards = 2000
	src := rand.New(rand.NewSource(99))
	for i := 0; i < boards; i++ {
		b := NewBoard(src)
		b.Generate(ctx)
		for j := Start + 1; j < Last; j++ {
			counts[b.Cells[j].Category]++
		}
	}

	interior := float64(boards * (Size - 2))
	tests := []struct {
		category Category
		want     float64
	}{
		{CategoryEnemy, 0.15},
		{CategoryTreasure, 0.10},
		{CategoryTrap, 0.05},
		{CategoryEmpty, 0.70},
	}

	for _, tt := range tests {
		got := float64(counts[tt.category]) / interior
		if got < tt.want-0.01 || got > tt.want+0.01 {
			t.Errorf("%s frequency = %.4f, want %.2f ± 0.01", tt.category, got, tt.want)
		}
	}
}

func TestCategoryThresholds(t *testing.T) {
	tests := []struct {
		sample   float64
		expected Category
	}{
		{0, CategoryEnemy},
		{0.1499, CategoryEnemy},
		{0.15, CategoryTreasure},
		{0.2499, CategoryTreasure},
		{0.25, CategoryTrap},
		{0.2999, CategoryTrap},
		{0.30, CategoryEmpty},
		{0.99, CategoryEmpty},
	}

	for _, tt := range tests {
		if got := categoryFor(tt.sample); got != tt.expected {
			t.Errorf("categoryFor(%v) = %s, want %s", tt.sample, got, tt.expected)
		}
	}
}

func TestScriptedLayout(t *testing.T) {
	// Cell 1 enemy, 2 treasure, 3 trap, the rest empty.
	b := NewBoard(rng.NewScripted(0.05, 0.2, 0.27, 0.5))
	b.Generate(context.Background())

	want := []Category{CategoryStart, CategoryEnemy, CategoryTreasure, CategoryTrap, CategoryEmpty}
	for i, c := range want {
		if b.Cells[i].Category != c {
			t.Errorf("cell %d = %s, want %s", i, b.Cells[i].Category, c)
		}
	}
	if b.Count(CategoryEmpty) != Size-5 {
		t.Errorf("empty count = %d, want %d", b.Count(CategoryEmpty), Size-5)
	}
}

func TestBoardReproducibility(t *testing.T) {
	ctx := context.Background()
	b1 := NewBoard(rng.NewSeeded(12345))
	b2 := NewBoard(rng.NewSeeded(12345))
	b1.Generate(ctx)
	b2.Generate(ctx)

	if b1.Cells != b2.Cells {
		t.Error("boards with the same seed should be identical")
	}
}

func TestCellOutOfBounds(t *testing.T) {
	b := NewBoard(rng.NewScripted())
	b.Generate(context.Background())

	for _, i := range []int{-1, Size, 100} {
		_, err := b.Cell(i)
		if !errors.Is(err, dcerrors.ErrOutOfBounds) {
			t.Errorf("Cell(%d) error = %v, want out of bounds", i, err)
		}
	}
	if _, err := b.Cell(Last); err != nil {
		t.Errorf("Cell(%d) unexpected error: %v", Last, err)
	}
}

func TestClear(t *testing.T) {
	b := NewBoard(rng.NewScripted(0.2))
	b.Generate(context.Background())

	if err := b.Visit(5); err != nil {
		t.Fatal(err)
	}
	if err := b.Clear(5); err != nil {
		t.Fatal(err)
	}
	if b.Cells[5].Category != CategoryEmpty || !b.Cells[5].Visited {
		t.Errorf("cleared cell = %+v, want empty and visited", b.Cells[5])
	}

	_ = b.Clear(Last)
	_ = b.Clear(Start)
	if b.Cells[Last].Category != CategoryBoss || b.Cells[Start].Category != CategoryStart {
		t.Error("start and boss cells must never be cleared")
	}
	if err := b.Clear(Size); err == nil {
		t.Error("Clear out of bounds should fail")
	}
}

func TestCategorySymbols(t *testing.T) {
	seen := make(map[rune]Category)
	for _, c := range []Category{CategoryEmpty, CategoryEnemy, CategoryBoss, CategoryTreasure, CategoryTrap, CategoryStart} {
		s := c.Symbol()
		if prev, dup := seen[s]; dup {
			t.Errorf("%s and %s share symbol %c", prev, c, s)
		}
		seen[s] = c
	}
	if !CategoryTrap.OneShot() || !CategoryTreasure.OneShot() || CategoryEnemy.OneShot() {
		t.Error("only treasure and trap are one-shot")
	}
}
