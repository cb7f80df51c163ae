package ui

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dicecrawl/internal/combat"
	"github.com/samdwyer/dicecrawl/internal/errors"
	"github.com/samdwyer/dicecrawl/internal/game"
)

// MaxBoardLog is how many board log lines are kept.
const MaxBoardLog = 50

// Options configure the front-end.
type Options struct {
	// MoveDelay separates a roll from resolving the landed cell.
	MoveDelay time.Duration
	// EnemyTurnDelay separates the player's action from the enemy's reply.
	EnemyTurnDelay time.Duration
	// Class preselects a character at startup when set.
	Class  string
	Logger *slog.Logger
}

// step is a delayed session call posted back into the event loop.
type step int

const (
	stepResolveCell step = iota
	stepEnemyTurn
)

// App drives a session from terminal input. The session must be created
// with AutoEnemyTurn off so the enemy's reply can be delayed.
type App struct {
	screen   *Screen
	renderer *Renderer
	session  *game.Session
	opts     Options

	boardLog  []string
	combatLog []string
	lastRoll  int
	notice    string
	busy      bool
	running   bool
}

// NewApp creates an app over an initialized screen.
func NewApp(screen *Screen, session *game.Session, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &App{
		screen:   screen,
		renderer: NewRenderer(screen),
		session:  session,
		opts:     opts,
		running:  true,
	}
}

// Run executes the main loop until the player quits.
func (a *App) Run(ctx context.Context) error {
	if a.opts.Class != "" {
		a.selectClass(ctx, a.opts.Class)
	}

	for a.running {
		a.render()

		ev := a.screen.PollEvent()
		if ev == nil {
			break
		}
		a.handleEvent(ctx, ev)
	}

	a.screen.Close()
	return nil
}

func (a *App) render() {
	a.renderer.Render(View{
		Session:   a.session,
		Classes:   a.session.Catalog().Classes.All(),
		BoardLog:  a.boardLog,
		CombatLog: a.combatLog,
		LastRoll:  a.lastRoll,
		Notice:    a.notice,
		Busy:      a.busy,
	})
}

// handleEvent processes a single event.
func (a *App) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventInterrupt:
		if st, ok := ev.Data().(step); ok {
			a.runStep(ctx, st)
		}
	}
}

// handleKeyEvent processes keyboard input.
func (a *App) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.running = false
		return
	case tcell.KeyRune:
	default:
		return
	}

	r := ev.Rune()
	if r == 'q' || r == 'Q' {
		a.running = false
		return
	}
	if a.busy {
		return
	}
	a.notice = ""

	status := a.session.Status()
	switch {
	case status.CanStart():
		if r >= '1' && r <= '9' {
			classes := a.session.Catalog().Classes.All()
			if i := int(r - '1'); i < len(classes) {
				a.selectClass(ctx, classes[i].ID)
			}
		} else if r == 'x' {
			a.rollD20()
		}

	case status == game.StatusExploring:
		switch r {
		case 'r', ' ':
			a.roll(ctx)
		case 'h':
			_, err := a.session.Heal(ctx)
			a.afterAction(err)
		case 'x':
			a.rollD20()
		case 'n':
			a.session.ResetRun(ctx)
			a.afterAction(nil)
		}

	case status == game.StatusInCombat:
		var act func(context.Context) (game.ActionResult, error)
		switch r {
		case 'a':
			act = a.session.Attack
		case 's':
			act = a.session.Special
		case 'd':
			act = a.session.Defend
		case 'f':
			act = a.session.Flee
		}
		if act == nil {
			return
		}
		res, err := act(ctx)
		a.afterAction(err)
		if err == nil && res.Phase == combat.PhaseEnemyTurn {
			a.schedule(ctx, a.opts.EnemyTurnDelay, stepEnemyTurn)
		}
	}
}

func (a *App) selectClass(ctx context.Context, classID string) {
	_, err := a.session.SelectCharacter(ctx, classID)
	a.lastRoll = 0
	a.afterAction(err)
}

func (a *App) roll(ctx context.Context) {
	res, err := a.session.RollAndMove(ctx)
	a.afterAction(err)
	if err != nil {
		return
	}
	a.lastRoll = res.Dice
	a.schedule(ctx, a.opts.MoveDelay, stepResolveCell)
}

func (a *App) rollD20() {
	_, err := a.session.RollDie(20)
	a.afterAction(err)
}

// schedule runs a step after delay. A zero delay runs it immediately.
func (a *App) schedule(ctx context.Context, delay time.Duration, st step) {
	if delay <= 0 {
		a.runStep(ctx, st)
		return
	}
	a.busy = true
	time.AfterFunc(delay, func() {
		if err := a.screen.PostEvent(tcell.NewEventInterrupt(st)); err != nil {
			a.opts.Logger.Warn("post delayed step", "error", err)
		}
	})
}

func (a *App) runStep(ctx context.Context, st step) {
	a.busy = false
	var err error
	switch st {
	case stepResolveCell:
		_, err = a.session.ResolveLandedCell(ctx)
	case stepEnemyTurn:
		_, err = a.session.EnemyTurn(ctx)
	}
	a.afterAction(err)
}

// afterAction moves new session events into the logs and surfaces errors.
// The combat log outlives its encounter so the closing lines stay visible;
// it resets when the next encounter or run begins.
func (a *App) afterAction(err error) {
	if err != nil {
		a.notice = errors.GetMessage(err)
		a.opts.Logger.Debug("action failed", "error", err)
	}
	for _, ev := range a.session.DrainEvents() {
		switch ev.Kind {
		case game.EventEncounterStarted, game.EventRunStarted, game.EventRunReset:
			a.combatLog = nil
		}
		switch ev.Channel {
		case game.ChannelCombat:
			a.combatLog = append(a.combatLog, ev.Message)
		default:
			a.boardLog = append(a.boardLog, ev.Message)
		}
	}
	if len(a.boardLog) > MaxBoardLog {
		a.boardLog = a.boardLog[len(a.boardLog)-MaxBoardLog:]
	}
}
