package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dicecrawl/internal/combat"
	"github.com/samdwyer/dicecrawl/internal/game"
	"github.com/samdwyer/dicecrawl/internal/gamedata"
	"github.com/samdwyer/dicecrawl/internal/world"
)

// Layout
const (
	boardX     = 2
	boardY     = 2
	boardCols  = 8
	cellWidth  = 4
	panelX     = boardX + boardCols*cellWidth + 4
	logY       = boardY + world.Size/boardCols + 2
	barWidth   = 20
	combatRows = 8

	// Closing combat lines repeated on the summary screen.
	summaryFightRows = 3
)

// View is everything the renderer draws for one frame.
type View struct {
	Session   *game.Session
	Classes   []gamedata.ClassDef
	BoardLog  []string
	CombatLog []string
	LastRoll  int
	Notice    string
	Busy      bool // A delayed step is pending
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

var (
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleGood   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleBad    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleMana   = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleNotice = tcell.StyleDefault.Foreground(tcell.ColorOrange)
)

// Render draws one frame.
func (r *Renderer) Render(v View) {
	r.screen.Clear()

	s := v.Session
	status := s.Status()
	r.screen.DrawText(boardX, 0, "DiceCrawl", styleTitle)
	r.screen.DrawText(boardX+11, 0, "["+status.String()+"]", styleDim)

	logTop := logY
	switch {
	case status == game.StatusIdle:
		logTop = max(logTop, r.drawClassSelect(v, boardY)+1)
	case status.Terminal():
		y := r.drawSummary(v, boardY)
		logTop = max(logTop, r.drawClassSelect(v, y+1)+1)
	default:
		r.drawBoard(s)
		r.drawStats(v)
		if status == game.StatusInCombat {
			r.drawCombat(v)
		} else {
			r.drawLastFight(v)
		}
	}

	r.drawBoardLog(v, logTop)
	r.drawHelp(v)
	r.screen.Show()
}

// drawClassSelect lists the classes with their selection keys and returns
// the row after the list.
func (r *Renderer) drawClassSelect(v View, y int) int {
	r.screen.DrawText(boardX, y, "Choose your character:", styleTitle)
	for i := range v.Classes {
		c := &v.Classes[i]
		style := tcell.StyleDefault.Foreground(c.TCellColor())
		line := fmt.Sprintf("%d) %c %-8s HP %3d  MP %3d  ATK %2d  DEF %2d  MAG %2d",
			i+1, c.GlyphRune(), c.Name, c.HP, c.Mana, c.Attack, c.Defense, c.Magic)
		r.screen.DrawText(boardX+2, y+2+i, line, style)
	}
	return y + 2 + len(v.Classes)
}

// drawSummary shows the outcome of the finished run, followed by the end of
// the last fight, and returns the next free row.
func (r *Renderer) drawSummary(v View, y int) int {
	sum := v.Session.Summary()
	if sum == nil {
		return y
	}
	if sum.Outcome == game.StatusVictory {
		r.screen.DrawText(boardX, y, "VICTORY! You defeated the Dragon and cleared the dungeon!", styleGood.Bold(true))
	} else {
		r.screen.DrawText(boardX, y, fmt.Sprintf("DEFEATED at cell %d.", sum.Position+1), styleBad.Bold(true))
	}
	r.screen.DrawText(boardX, y+1, fmt.Sprintf("%s  Gold: %d  HP: %d/%d  Encounters won: %d",
		sum.ClassName, sum.Gold, sum.HP, sum.MaxHP, sum.EncountersWon), styleText)
	y += 2
	for _, line := range tail(v.CombatLog, summaryFightRows) {
		r.screen.DrawText(boardX+2, y, line, styleDim)
		y++
	}
	return y + 1
}

func (r *Renderer) drawBoard(s *game.Session) {
	board := s.Board()
	player := s.Player()
	if board == nil || player == nil {
		return
	}
	playerStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	if def := s.Catalog().Classes.GetByID(player.ClassID); def != nil {
		playerStyle = playerStyle.Foreground(def.TCellColor())
	}

	for i := range board.Cells {
		x := boardX + (i%boardCols)*cellWidth
		y := boardY + i/boardCols
		cell := board.Cells[i]

		if i == s.Position() {
			r.screen.SetContent(x+1, y, player.Glyph, playerStyle)
			continue
		}
		ch := cell.Category.Symbol()
		if cell.Category == world.CategoryStart {
			ch = '.'
		}
		r.screen.SetContent(x+1, y, ch, cellStyle(cell))
	}
}

// cellStyle colors a cell by category and dims visited cells.
func cellStyle(c world.Cell) tcell.Style {
	var style tcell.Style
	switch c.Category {
	case world.CategoryEnemy:
		style = tcell.StyleDefault.Foreground(tcell.ColorRed)
	case world.CategoryBoss:
		style = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	case world.CategoryTreasure:
		style = tcell.StyleDefault.Foreground(tcell.ColorGold)
	case world.CategoryTrap:
		style = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	default:
		style = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	}
	if c.Visited {
		style = style.Dim(true)
	}
	return style
}

func (r *Renderer) drawStats(v View) {
	s := v.Session
	p := s.Player()
	if p == nil {
		return
	}
	y := boardY
	r.screen.DrawText(panelX, y, fmt.Sprintf("%c %s", p.Glyph, p.Name), styleTitle)
	r.drawBar(panelX, y+1, "HP", p.DisplayHP(), p.MaxHP, styleBad)
	r.drawBar(panelX, y+2, "MP", p.MP, p.MaxMP, styleMana)
	r.screen.DrawText(panelX, y+3, fmt.Sprintf("ATK %d  DEF %d  MAG %d", p.Attack, p.Defense, p.Magic), styleText)
	r.screen.DrawText(panelX, y+4, fmt.Sprintf("Gold %d   Cell %d/%d", s.Gold(), s.Position()+1, world.Size), styleText)
	if v.LastRoll > 0 {
		r.screen.DrawText(panelX, y+5, fmt.Sprintf("Last roll: %d", v.LastRoll), styleDim)
	}
}

func (r *Renderer) drawBar(x, y int, label string, cur, maxVal int, style tcell.Style) {
	filled := 0
	if maxVal > 0 {
		filled = cur * barWidth / maxVal
	}
	filled = min(max(filled, 0), barWidth)
	bar := strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled)
	x = r.screen.DrawText(x, y, label+" [", styleText)
	x = r.screen.DrawText(x, y, bar, style)
	r.screen.DrawText(x, y, fmt.Sprintf("] %d/%d", cur, maxVal), styleText)
}

func (r *Renderer) drawCombat(v View) {
	enemy := v.Session.Enemy()
	enc := v.Session.Encounter()
	if enemy == nil || enc == nil {
		return
	}
	y := boardY + 7
	style := tcell.StyleDefault.Foreground(enemy.Def.TCellColor()).Bold(true)
	r.screen.DrawText(panelX, y, fmt.Sprintf("%c %s", enemy.Symbol, enemy.Name), style)
	r.drawBar(panelX, y+1, "HP", enemy.DisplayHP(), enemy.MaxHP, styleBad)

	turn := "Your turn"
	if enc.Phase() == combat.PhaseEnemyTurn {
		turn = enemy.Name + " is attacking..."
	}
	r.screen.DrawText(panelX, y+2, turn, styleDim)

	lines := tail(v.CombatLog, combatRows)
	for i, line := range lines {
		r.screen.DrawText(panelX, y+4+i, line, styleText)
	}
}

// drawLastFight keeps the closing lines of the last encounter beside the
// board until the next one starts.
func (r *Renderer) drawLastFight(v View) {
	if len(v.CombatLog) == 0 {
		return
	}
	y := boardY + 7
	r.screen.DrawText(panelX, y, "Last fight", styleDim)
	for i, line := range tail(v.CombatLog, combatRows) {
		r.screen.DrawText(panelX, y+2+i, line, styleDim)
	}
}

func (r *Renderer) drawBoardLog(v View, y int) {
	_, height := r.screen.Size()
	if v.Notice != "" {
		r.screen.DrawText(boardX, y, v.Notice, styleNotice)
		y++
	}
	rows := height - 2 - y
	if rows <= 0 {
		return
	}
	for i, line := range tail(v.BoardLog, rows) {
		r.screen.DrawText(boardX, y+i, line, styleDim)
	}
}

func (r *Renderer) drawHelp(v View) {
	_, height := r.screen.Size()
	var help string
	switch v.Session.Status() {
	case game.StatusIdle, game.StatusVictory, game.StatusDefeated:
		help = "1-4: choose class   x: roll d20   q: quit"
	case game.StatusExploring:
		help = "r/space: roll and move   h: heal (10 MP)   x: roll d20   n: new run   q: quit"
	case game.StatusInCombat:
		help = "a: attack   s: special (15 MP)   d: defend   f: flee   q: quit"
	}
	if v.Busy {
		help = "..."
	}
	r.screen.DrawText(boardX, height-1, help, styleDim)
}

func tail(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}
