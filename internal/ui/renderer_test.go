package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dicecrawl/internal/game"
	"github.com/samdwyer/dicecrawl/internal/rng"
	"github.com/samdwyer/dicecrawl/internal/world"
)

func rowText(sim tcell.SimulationScreen, y int) string {
	w, _ := sim.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := sim.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestRenderClassSelect(t *testing.T) {
	app, sim, _ := newTestApp(t, Options{})
	app.render()

	text := screenText(sim)
	for _, want := range []string{"Choose your character:", "1)", "Warrior", "Mage", "Rogue", "Cleric", "1-4: choose class"} {
		if !strings.Contains(text, want) {
			t.Errorf("class select screen missing %q", want)
		}
	}
	if !strings.Contains(rowText(sim, 0), "[idle]") {
		t.Errorf("header = %q, want idle status", rowText(sim, 0))
	}
}

func TestRenderBoard(t *testing.T) {
	app, sim, _ := newTestApp(t, Options{})
	app.handleEvent(context.Background(), key('1'))

	board := app.session.Board()
	board.Cells[9].Category = world.CategoryTreasure
	board.Cells[10].Category = world.CategoryTrap
	board.Cells[11].Category = world.CategoryEnemy
	app.render()

	tests := []struct {
		index    int
		expected rune
	}{
		{0, app.session.Player().Glyph},
		{9, '$'},
		{10, '^'},
		{11, 'E'},
		{12, '.'},
		{world.Last, 'D'},
	}

	for _, tt := range tests {
		x := boardX + (tt.index%boardCols)*cellWidth + 1
		y := boardY + tt.index/boardCols
		got, _, _, _ := sim.GetContent(x, y)
		if got != tt.expected {
			t.Errorf("cell %d rendered %q, want %q", tt.index, got, tt.expected)
		}
	}

	text := screenText(sim)
	for _, want := range []string{"HP [", "120/120", "MP [", "Gold 0", "Cell 1/64"} {
		if !strings.Contains(text, want) {
			t.Errorf("stats panel missing %q", want)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	app, sim, src := newTestApp(t, Options{})
	ctx := context.Background()
	app.handleEvent(ctx, key('2'))

	// A trap that kills the mage.
	app.session.Player().HP = 1
	app.session.Board().Cells[1].Category = world.CategoryTrap
	src.Push(0.0) // dice 1
	src.Push(0.0) // trap 5
	app.handleEvent(ctx, key('r'))

	if app.session.Status() != game.StatusDefeated {
		t.Fatalf("status = %s, want defeated", app.session.Status())
	}
	app.render()

	text := screenText(sim)
	for _, want := range []string{"DEFEATED at cell 2.", "Mage", "HP: 0/80", "Choose your character:"} {
		if !strings.Contains(text, want) {
			t.Errorf("summary screen missing %q", want)
		}
	}
}

func TestRenderSummaryShowsLastFight(t *testing.T) {
	app, sim, src := newTestApp(t, Options{})
	ctx := context.Background()
	app.handleEvent(ctx, key('1'))

	app.session.Player().HP = 1
	app.session.Board().Cells[1].Category = world.CategoryEnemy
	src.Push(rng.SampleFor(1, 6, 1), 0) // dice 1, goblin
	app.handleEvent(ctx, key('r'))

	// The warrior's hit leaves the goblin standing; its reply of 1 kills.
	src.Push(0, 0)
	app.handleEvent(ctx, key('a'))
	if app.session.Status() != game.StatusDefeated {
		t.Fatalf("status = %s, want defeated", app.session.Status())
	}
	app.render()

	text := screenText(sim)
	for _, want := range []string{"DEFEATED at cell 2.", "Goblin attacks for 1 damage", "You have been defeated...", "Choose your character:"} {
		if !strings.Contains(text, want) {
			t.Errorf("summary screen missing %q", want)
		}
	}

	app.handleEvent(ctx, key('1'))
	if len(app.combatLog) != 0 {
		t.Errorf("a new run should clear the combat log, got %v", app.combatLog)
	}
}

func TestDrawBarClamps(t *testing.T) {
	app, sim, _ := newTestApp(t, Options{})
	r := app.renderer

	r.drawBar(0, 5, "HP", -10, 100, styleBad)
	if row := rowText(sim, 5); !strings.Contains(row, "["+strings.Repeat(".", barWidth)+"]") {
		t.Errorf("empty bar = %q", row)
	}

	r.drawBar(0, 6, "HP", 150, 100, styleBad)
	if row := rowText(sim, 6); !strings.Contains(row, "["+strings.Repeat("#", barWidth)+"]") {
		t.Errorf("full bar = %q", row)
	}
}

func TestTail(t *testing.T) {
	lines := []string{"a", "b", "c"}
	if got := tail(lines, 2); len(got) != 2 || got[0] != "b" {
		t.Errorf("tail(2) = %v", got)
	}
	if got := tail(lines, 5); len(got) != 3 {
		t.Errorf("tail(5) = %v", got)
	}
}
