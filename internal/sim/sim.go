// Package sim plays whole runs headlessly with a fixed policy and reports
// aggregate outcomes. Runs are independent and execute concurrently.
package sim

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/dicecrawl/internal/combat"
	"github.com/samdwyer/dicecrawl/internal/errors"
	"github.com/samdwyer/dicecrawl/internal/game"
	"github.com/samdwyer/dicecrawl/internal/gamedata"
	"github.com/samdwyer/dicecrawl/internal/rng"
)

// DefaultMaxActions bounds a single run. A run normally needs far fewer.
const DefaultMaxActions = 10000

// Action is the policy's next move.
type Action int

const (
	ActionNone Action = iota // Run is over
	ActionMove
	ActionResolve
	ActionHeal
	ActionAttack
	ActionSpecial
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionMove:
		return "move"
	case ActionResolve:
		return "resolve"
	case ActionHeal:
		return "heal"
	case ActionAttack:
		return "attack"
	case ActionSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// Choose picks the next action for the session's current state: heal below
// half hp while exploring, special attack whenever mana allows, otherwise
// attack or keep moving.
func Choose(s *game.Session) Action {
	p := s.Player()
	switch s.Status() {
	case game.StatusExploring:
		if s.PendingResolution() {
			return ActionResolve
		}
		if p.HP*2 < p.MaxHP && p.MP >= game.HealManaCost {
			return ActionHeal
		}
		return ActionMove
	case game.StatusInCombat:
		if p.MP >= combat.SpecialManaCost {
			return ActionSpecial
		}
		return ActionAttack
	default:
		return ActionNone
	}
}

// PlayRun starts a run with classID and plays it to the end. The session
// must resolve enemy turns automatically. maxActions <= 0 uses
// DefaultMaxActions.
func PlayRun(ctx context.Context, s *game.Session, classID string, maxActions int) (game.RunSummary, error) {
	if maxActions <= 0 {
		maxActions = DefaultMaxActions
	}
	if _, err := s.SelectCharacter(ctx, classID); err != nil {
		return game.RunSummary{}, err
	}

	for range maxActions {
		if err := ctx.Err(); err != nil {
			return game.RunSummary{}, err
		}

		var err error
		switch Choose(s) {
		case ActionNone:
			return *s.Summary(), nil
		case ActionMove:
			_, err = s.RollAndMove(ctx)
		case ActionResolve:
			_, err = s.ResolveLandedCell(ctx)
		case ActionHeal:
			_, err = s.Heal(ctx)
		case ActionAttack:
			_, err = s.Attack(ctx)
		case ActionSpecial:
			_, err = s.Special(ctx)
		}
		s.DrainEvents()
		if err != nil {
			return game.RunSummary{}, errors.Wrapf(err, "run %s", s.RunID())
		}
	}

	if s.Status().Terminal() {
		return *s.Summary(), nil
	}
	return game.RunSummary{}, errors.Internalf("run did not finish within %d actions", maxActions)
}

// Options configure a batch of runs.
type Options struct {
	Runs int
	// Class plays every run with one class. Empty rotates through the
	// catalog in order.
	Class string
	// Seed for run i is Seed+i.
	Seed int64
	// Workers caps concurrent runs. Defaults to GOMAXPROCS.
	Workers int
	// Dice overrides movement rolls. It must be safe for concurrent use;
	// results are only reproducible when it is nil.
	Dice       dice.Roller
	Catalog    *gamedata.Catalog
	Logger     *slog.Logger
	MaxActions int
}

// ClassStats aggregates the runs of one class.
type ClassStats struct {
	Runs      int
	Victories int
	Defeats   int
	MeanGold  float64
}

// Report aggregates a batch of runs.
type Report struct {
	Runs      int
	Victories int
	Defeats   int
	MeanGold  float64
	// MeanPosition is the mean final cell index.
	MeanPosition float64
	ByClass      map[string]*ClassStats
	// Results holds every run's summary in run order.
	Results []game.RunSummary
}

// Run plays opts.Runs independent runs and aggregates them. The first
// failing run cancels the rest.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Runs <= 0 {
		return nil, errors.InvalidArgumentf("runs must be positive, got %d", opts.Runs)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Catalog == nil {
		catalog, err := gamedata.LoadCatalog()
		if err != nil {
			return nil, errors.Wrap(err, "load catalog")
		}
		opts.Catalog = catalog
	}

	classes := opts.Catalog.Classes.IDs()
	if opts.Class != "" {
		def := opts.Catalog.Classes.GetByID(opts.Class)
		if def == nil {
			return nil, errors.InvalidClassSelectionf("unknown class %q", opts.Class).
				WithMeta("valid", classes)
		}
		classes = []string{def.ID}
	}

	opts.Logger.Info("simulation started", "runs", opts.Runs, "workers", opts.Workers, "seed", opts.Seed)

	results := make([]game.RunSummary, opts.Runs)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := range opts.Runs {
		g.Go(func() error {
			seed := opts.Seed + int64(i)
			session, err := game.NewSession(game.Config{
				RNG:           rng.NewSeeded(seed),
				Dice:          opts.Dice,
				Catalog:       opts.Catalog,
				Logger:        opts.Logger.With("run", i, "seed", seed),
				AutoEnemyTurn: true,
			})
			if err != nil {
				return err
			}
			sum, err := PlayRun(gctx, session, classes[i%len(classes)], opts.MaxActions)
			if err != nil {
				return err
			}
			results[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := summarize(results)
	opts.Logger.Info("simulation finished",
		"runs", report.Runs,
		"victories", report.Victories,
		"defeats", report.Defeats,
		"mean_gold", report.MeanGold,
	)
	return report, nil
}

func summarize(results []game.RunSummary) *Report {
	report := &Report{
		Runs:    len(results),
		ByClass: make(map[string]*ClassStats),
		Results: results,
	}
	var gold, position int
	golds := make(map[string]int)
	for _, r := range results {
		stats := report.ByClass[r.ClassID]
		if stats == nil {
			stats = &ClassStats{}
			report.ByClass[r.ClassID] = stats
		}
		stats.Runs++
		if r.Outcome == game.StatusVictory {
			report.Victories++
			stats.Victories++
		} else {
			report.Defeats++
			stats.Defeats++
		}
		gold += r.Gold
		position += r.Position
		golds[r.ClassID] += r.Gold
	}
	if report.Runs > 0 {
		report.MeanGold = float64(gold) / float64(report.Runs)
		report.MeanPosition = float64(position) / float64(report.Runs)
	}
	for id, stats := range report.ByClass {
		stats.MeanGold = float64(golds[id]) / float64(stats.Runs)
	}
	return report
}
