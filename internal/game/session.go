package game

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dicecrawl/internal/combat"
	"github.com/samdwyer/dicecrawl/internal/entity"
	"github.com/samdwyer/dicecrawl/internal/errors"
	"github.com/samdwyer/dicecrawl/internal/gamedata"
	"github.com/samdwyer/dicecrawl/internal/rng"
	"github.com/samdwyer/dicecrawl/internal/telemetry"
	"github.com/samdwyer/dicecrawl/internal/world"
)

// Cell event magnitudes and the out-of-combat heal.
const (
	TreasureMin = 10
	TreasureMax = 39
	TrapMin     = 5
	TrapMax     = 19

	HealManaCost = 10
	// HealPercent of max hp is restored per heal, rounded down.
	HealPercent = 30
)

// Session holds the state of one player's game. It is not safe for
// concurrent use.
type Session struct {
	rng           *rng.RNG
	dice          dice.Roller
	catalog       *gamedata.Catalog
	logger        *slog.Logger
	autoEnemyTurn bool

	status   Status
	runID    string
	player   *entity.Player
	board    *world.Board
	position int
	gold     int

	// pending is set between RollAndMove and ResolveLandedCell.
	pending   bool
	encounter *combat.Encounter

	turns         int
	encountersWon int
	summary       *RunSummary

	events []Event
}

// NewSession creates an idle session. No character is selected yet.
func NewSession(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &Session{
		rng:           cfg.RNG,
		dice:          cfg.Dice,
		catalog:       cfg.Catalog,
		logger:        cfg.Logger,
		autoEnemyTurn: cfg.AutoEnemyTurn,
		status:        StatusIdle,
	}, nil
}

// Status returns the session status.
func (s *Session) Status() Status { return s.status }

// RunID returns the current run id, or "" when no run is active.
func (s *Session) RunID() string { return s.runID }

// Player returns the current player, or nil when no run is active.
func (s *Session) Player() *entity.Player { return s.player }

// Board returns the current board, or nil when no run is active.
func (s *Session) Board() *world.Board { return s.board }

// Position returns the player's cell index.
func (s *Session) Position() int { return s.position }

// Gold returns the gold collected this run.
func (s *Session) Gold() int { return s.gold }

// PendingResolution reports whether the landed cell awaits ResolveLandedCell.
func (s *Session) PendingResolution() bool { return s.pending }

// Encounter returns the open encounter, or nil.
func (s *Session) Encounter() *combat.Encounter { return s.encounter }

// Enemy returns the current enemy, or nil outside combat.
func (s *Session) Enemy() *entity.Enemy {
	if s.encounter == nil {
		return nil
	}
	return s.encounter.Enemy
}

// Summary returns the summary of the last finished run, or nil.
func (s *Session) Summary() *RunSummary { return s.summary }

// Catalog returns the catalog the session draws templates from.
func (s *Session) Catalog() *gamedata.Catalog { return s.catalog }

// SelectCharacter starts a new run with the given class: a fresh player at
// full hp and mana, a new board, position 0 and no gold.
func (s *Session) SelectCharacter(ctx context.Context, classID string) (*entity.Player, error) {
	def := s.catalog.Classes.GetByID(classID)
	if def == nil {
		err := errors.InvalidClassSelectionf("unknown class %q", classID).
			WithMeta("valid", s.catalog.Classes.IDs())
		s.logger.Debug("character selection rejected", "class", classID)
		return nil, err
	}
	if !s.status.CanStart() {
		return nil, s.reject("select character")
	}

	ctx, span := telemetry.Start(ctx, "game", "run.start",
		attribute.String("class", def.ID),
	)
	defer span.End()

	s.clearRun()
	s.runID = uuid.NewString()
	s.player = entity.NewPlayer(s.runID, def)
	s.board = world.NewBoard(s.rng)
	s.board.Generate(ctx)
	s.status = StatusExploring
	s.summary = nil

	span.SetAttributes(attribute.String("run.id", s.runID))
	s.logger.Info("run started", "run_id", s.runID, "class", def.ID)
	s.emit(EventRunStarted, ChannelBoard, s.player, 0, "You selected the %s!", def.Name)

	return s.player, nil
}

// RollAndMove rolls the movement die and advances the player, marking the
// landed cell visited. The cell is resolved by ResolveLandedCell.
func (s *Session) RollAndMove(ctx context.Context) (MoveResult, error) {
	if s.pending {
		return MoveResult{}, errors.InvalidState("resolve the landed cell before rolling again")
	}
	if s.status != StatusExploring {
		return MoveResult{}, s.reject("roll")
	}

	_, span := telemetry.Start(ctx, "game", "move.roll")
	defer span.End()

	roll, err := world.RollMovement(s.dice)
	if err != nil {
		return MoveResult{}, errors.Wrap(err, "roll movement")
	}

	from := s.position
	s.position = world.Advance(s.position, roll)
	if err := s.board.Visit(s.position); err != nil {
		return MoveResult{}, err
	}
	s.pending = true

	landed := s.board.Cells[s.position].Category
	span.SetAttributes(
		attribute.Int("dice", roll),
		attribute.Int("from", from),
		attribute.Int("position", s.position),
		attribute.String("landed", string(landed)),
	)
	s.emit(EventMoved, ChannelBoard, s.player, roll,
		"You moved %d cells to position %d", roll, s.position+1)

	return MoveResult{Dice: roll, From: from, Position: s.position, Landed: landed}, nil
}

// ResolveLandedCell applies the event of the cell the last roll landed on.
func (s *Session) ResolveLandedCell(ctx context.Context) (CellOutcome, error) {
	if s.status != StatusExploring || !s.pending {
		return CellOutcome{}, s.reject("resolve cell")
	}
	s.pending = false

	cell, err := s.board.Cell(s.position)
	if err != nil {
		return CellOutcome{}, err
	}

	ctx, span := telemetry.Start(ctx, "game", "cell.resolve",
		attribute.Int("position", s.position),
		attribute.String("category", string(cell.Category)),
	)
	defer span.End()

	out := CellOutcome{Kind: OutcomeNoEvent, Position: s.position}

	switch cell.Category {
	case world.CategoryEnemy:
		s.startEncounter(ctx, s.catalog.Enemies.SpawnRandom(s.rng), &out)

	case world.CategoryBoss:
		s.startEncounter(ctx, s.catalog.Enemies.Boss(), &out)

	case world.CategoryTreasure:
		amount := s.rng.IntRange(TreasureMin, TreasureMax)
		s.gold += amount
		if err := s.board.Clear(s.position); err != nil {
			return CellOutcome{}, err
		}
		out.Kind = OutcomeTreasureFound
		out.Amount = amount
		s.emit(EventTreasureFound, ChannelBoard, s.player, amount, "You found treasure! +%d gold", amount)

	case world.CategoryTrap:
		damage := s.rng.IntRange(TrapMin, TrapMax)
		s.player.TakeDamage(damage)
		if err := s.board.Clear(s.position); err != nil {
			return CellOutcome{}, err
		}
		out.Kind = OutcomeTrapTriggered
		out.Amount = damage
		s.emit(EventTrapTriggered, ChannelBoard, s.player, damage, "You fell into a trap! -%d HP", damage)
		if !s.player.IsAlive() {
			out.Kind = OutcomePlayerDied
			s.endRun(ctx, StatusDefeated)
		}
	}

	span.SetAttributes(attribute.String("outcome", out.Kind.String()))
	return out, nil
}

// Heal spends mana to restore a share of max hp. Only allowed while
// exploring.
func (s *Session) Heal(ctx context.Context) (ActionResult, error) {
	if s.status != StatusExploring {
		return ActionResult{}, s.reject("heal")
	}
	if s.player.MP < HealManaCost {
		s.emit(EventInsufficientMana, ChannelBoard, s.player, 0, "Not enough mana to heal")
		s.logger.Debug("heal rejected", "run_id", s.runID, "mana", s.player.MP)
		return ActionResult{}, errors.InsufficientMana("heal", s.player.MP, HealManaCost)
	}

	s.player.SpendMP(HealManaCost)
	amount := s.player.MaxHP * HealPercent / 100
	healed := s.player.Heal(amount)
	s.emit(EventHealed, ChannelBoard, s.player, healed, "You healed %d HP", amount)

	return ActionResult{
		HealAmount: amount,
		Healed:     healed,
		ManaSpent:  HealManaCost,
		Status:     s.status,
	}, nil
}

// RollDie rolls a single die with the given number of sides and logs the
// result. It does not move the player.
func (s *Session) RollDie(sides int) (int, error) {
	if sides < 2 {
		return 0, errors.InvalidArgumentf("a die needs at least 2 sides, got %d", sides)
	}
	v, err := s.dice.Roll(sides)
	if err != nil {
		return 0, errors.Wrap(err, "roll die")
	}
	s.emit(EventDiceRolled, ChannelBoard, s.actor(), v, "You rolled a d%d: %d", sides, v)
	return v, nil
}

// ResetRun discards the current run, if any, and returns the session to idle.
func (s *Session) ResetRun(ctx context.Context) {
	_, span := telemetry.Start(ctx, "game", "run.reset",
		attribute.String("status", s.status.String()),
	)
	defer span.End()

	s.clearRun()
	s.summary = nil
	s.status = StatusIdle
	s.emit(EventRunReset, ChannelBoard, nil, 0, "Choose a character to begin")
}

// endRun records the summary and wipes the run, leaving the session in
// the terminal status.
func (s *Session) endRun(ctx context.Context, outcome Status) {
	p := s.player
	summary := &RunSummary{
		RunID:         s.runID,
		ClassID:       p.ClassID,
		ClassName:     p.Name,
		Outcome:       outcome,
		Gold:          s.gold,
		HP:            p.DisplayHP(),
		MaxHP:         p.MaxHP,
		Position:      s.position,
		Turns:         s.turns,
		EncountersWon: s.encountersWon,
	}

	_, span := telemetry.Start(ctx, "game", "run.end",
		attribute.String("run.id", s.runID),
		attribute.String("outcome", outcome.String()),
		attribute.Int("gold", summary.Gold),
		attribute.Int("position", summary.Position),
		attribute.Int("turns", summary.Turns),
	)
	defer span.End()

	switch outcome {
	case StatusVictory:
		s.emit(EventVictory, ChannelBoard, p, summary.Gold,
			"Victory! You cleared the dungeon with %d gold and %d/%d HP", summary.Gold, summary.HP, summary.MaxHP)
	case StatusDefeated:
		s.emit(EventPlayerDefeated, ChannelCombat, p, 0, "You have been defeated...")
		s.emit(EventPlayerDefeated, ChannelBoard, p, 0, "Game over: you have been defeated")
	}
	s.logger.Info("run ended",
		"run_id", s.runID,
		"outcome", outcome.String(),
		"gold", summary.Gold,
		"position", summary.Position,
		"encounters_won", summary.EncountersWon,
	)

	s.clearRun()
	s.summary = summary
	s.status = outcome
}

func (s *Session) clearRun() {
	s.runID = ""
	s.player = nil
	s.board = nil
	s.position = world.Start
	s.gold = 0
	s.pending = false
	s.encounter = nil
	s.turns = 0
	s.encountersWon = 0
}

// actor returns the player as an event actor, or nil between runs.
func (s *Session) actor() core.Entity {
	if s.player == nil {
		return nil
	}
	return s.player
}

func (s *Session) reject(action string) error {
	s.logger.Debug("action rejected", "action", action, "status", s.status.String(), "pending", s.pending)
	return errors.InvalidStatef("cannot %s while %s", action, s.status).
		WithMeta("status", s.status.String())
}
