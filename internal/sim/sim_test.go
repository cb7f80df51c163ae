package sim_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/samdwyer/dicecrawl/internal/errors"
	"github.com/samdwyer/dicecrawl/internal/game"
	"github.com/samdwyer/dicecrawl/internal/gamedata"
	"github.com/samdwyer/dicecrawl/internal/rng"
	"github.com/samdwyer/dicecrawl/internal/sim"
	"github.com/samdwyer/dicecrawl/internal/world"
)

type SimTestSuite struct {
	suite.Suite
	ctx     context.Context
	catalog *gamedata.Catalog
	logger  *slog.Logger
}

func TestSimSuite(t *testing.T) {
	suite.Run(t, new(SimTestSuite))
}

func (s *SimTestSuite) SetupSuite() {
	s.ctx = context.Background()
	s.catalog = gamedata.MustLoadCatalog()
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *SimTestSuite) newSession(r *rng.RNG) *game.Session {
	cfg := game.DefaultConfig(r)
	cfg.Catalog = s.catalog
	cfg.Logger = s.logger
	session, err := game.NewSession(cfg)
	s.Require().NoError(err)
	return session
}

func (s *SimTestSuite) options(runs int) sim.Options {
	return sim.Options{
		Runs:    runs,
		Seed:    7,
		Catalog: s.catalog,
		Logger:  s.logger,
	}
}

func (s *SimTestSuite) TestChoose() {
	src := rng.NewScripted(0.5)
	session := s.newSession(rng.New(src))
	s.Equal(sim.ActionNone, sim.Choose(session), "idle session has nothing to do")

	_, err := session.SelectCharacter(s.ctx, "warrior")
	s.Require().NoError(err)
	s.Equal(sim.ActionMove, sim.Choose(session))

	p := session.Player()
	p.HP = p.MaxHP/2 - 1
	s.Equal(sim.ActionHeal, sim.Choose(session))

	p.MP = game.HealManaCost - 1
	s.Equal(sim.ActionMove, sim.Choose(session), "cannot afford a heal")

	p.HP = p.MaxHP
	p.MP = p.MaxMP
	session.Board().Cells[1].Category = world.CategoryEnemy
	src.Push(rng.SampleFor(1, 6, 1), 0)
	_, err = session.RollAndMove(s.ctx)
	s.Require().NoError(err)
	s.Equal(sim.ActionResolve, sim.Choose(session))

	_, err = session.ResolveLandedCell(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(game.StatusInCombat, session.Status())
	s.Equal(sim.ActionSpecial, sim.Choose(session))

	p.MP = 0
	s.Equal(sim.ActionAttack, sim.Choose(session))
}

func (s *SimTestSuite) TestActionString() {
	s.Equal("special", sim.ActionSpecial.String())
	s.Equal("unknown", sim.Action(99).String())
}

func (s *SimTestSuite) TestPlayRunFinishes() {
	for _, class := range s.catalog.Classes.IDs() {
		session := s.newSession(rng.NewSeeded(11))
		sum, err := sim.PlayRun(s.ctx, session, class, 0)
		s.Require().NoError(err, class)

		s.True(sum.Outcome.Terminal(), class)
		s.Equal(class, sum.ClassID)
		s.Equal(sum.Outcome, session.Status())
		if sum.Outcome == game.StatusVictory {
			s.Equal(world.Last, sum.Position)
			s.Positive(sum.HP)
		} else {
			s.Zero(sum.HP)
		}
	}
}

func (s *SimTestSuite) TestPlayRunActionCap() {
	session := s.newSession(rng.NewSeeded(3))
	_, err := sim.PlayRun(s.ctx, session, "mage", 1)
	s.Require().Error(err)
	s.Equal(errors.CodeInternal, errors.GetCode(err))
}

func (s *SimTestSuite) TestPlayRunUnknownClass() {
	session := s.newSession(rng.NewSeeded(3))
	_, err := sim.PlayRun(s.ctx, session, "bard", 0)
	s.True(errors.IsInvalidClassSelection(err))
}

func (s *SimTestSuite) TestRunReport() {
	report, err := sim.Run(s.ctx, s.options(12))
	s.Require().NoError(err)

	s.Equal(12, report.Runs)
	s.Len(report.Results, 12)
	s.Equal(report.Runs, report.Victories+report.Defeats)

	// Twelve runs rotate evenly through the four classes.
	s.Len(report.ByClass, 4)
	for id, stats := range report.ByClass {
		s.Equal(3, stats.Runs, id)
		s.Equal(stats.Runs, stats.Victories+stats.Defeats, id)
	}
	for i, r := range report.Results {
		s.Equal(s.catalog.Classes.IDs()[i%4], r.ClassID)
	}

	var gold, position int
	for _, r := range report.Results {
		gold += r.Gold
		position += r.Position
	}
	s.InDelta(float64(gold)/12, report.MeanGold, 1e-9)
	s.InDelta(float64(position)/12, report.MeanPosition, 1e-9)
}

func (s *SimTestSuite) TestRunSingleClass() {
	opts := s.options(5)
	opts.Class = "Rogue"
	report, err := sim.Run(s.ctx, opts)
	s.Require().NoError(err)

	s.Require().Len(report.ByClass, 1)
	s.Equal(5, report.ByClass["rogue"].Runs)
}

func (s *SimTestSuite) TestRunIsReproducible() {
	run := func(workers int) []game.RunSummary {
		opts := s.options(16)
		opts.Workers = workers
		report, err := sim.Run(s.ctx, opts)
		s.Require().NoError(err)
		for i := range report.Results {
			report.Results[i].RunID = ""
		}
		return report.Results
	}

	s.Equal(run(1), run(4))
}

func (s *SimTestSuite) TestRunValidation() {
	_, err := sim.Run(s.ctx, s.options(0))
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(err))

	opts := s.options(1)
	opts.Class = "bard"
	_, err = sim.Run(s.ctx, opts)
	s.True(errors.IsInvalidClassSelection(err))
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Run(ctx, sim.Options{
		Runs:   4,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
