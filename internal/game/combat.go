package game

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dicecrawl/internal/combat"
	"github.com/samdwyer/dicecrawl/internal/entity"
	"github.com/samdwyer/dicecrawl/internal/errors"
	"github.com/samdwyer/dicecrawl/internal/gamedata"
	"github.com/samdwyer/dicecrawl/internal/telemetry"
)

// startEncounter opens an encounter with a fresh instance of def.
func (s *Session) startEncounter(ctx context.Context, def *gamedata.EnemyDef, out *CellOutcome) {
	enemy := entity.NewEnemy(uuid.NewString(), def)

	_, span := telemetry.Start(ctx, "combat", "combat.start",
		attribute.String("enemy", def.ID),
		attribute.Bool("boss", def.Boss),
		attribute.Int("position", s.position),
		attribute.Int("player_hp", s.player.HP),
	)
	span.End()

	s.encounter = combat.NewEncounter(s.player, enemy, s.rng)
	s.status = StatusInCombat

	out.Kind = OutcomeEncounterStarted
	out.EnemyID = def.ID
	out.EnemyName = def.Name
	out.Boss = def.Boss

	s.logger.Info("encounter started", "run_id", s.runID, "enemy", def.ID, "position", s.position)
	s.emit(EventEncounterStarted, ChannelBoard, enemy, 0, "A %s appeared!", def.Name)
	s.emit(EventEncounterStarted, ChannelCombat, enemy, 0, "A wild %s appeared!", def.Name)
}

// Attack performs a basic attack on the current enemy.
func (s *Session) Attack(ctx context.Context) (ActionResult, error) {
	return s.playerAction(ctx, (*combat.Encounter).Attack)
}

// Special performs the mana-costing special attack. Without enough mana
// the action is rejected and the player keeps the turn.
func (s *Session) Special(ctx context.Context) (ActionResult, error) {
	return s.playerAction(ctx, (*combat.Encounter).Special)
}

// Defend halves the next enemy hit.
func (s *Session) Defend(ctx context.Context) (ActionResult, error) {
	return s.playerAction(ctx, (*combat.Encounter).Defend)
}

// Flee attempts to escape the encounter. A fled cell keeps its enemy.
func (s *Session) Flee(ctx context.Context) (ActionResult, error) {
	return s.playerAction(ctx, (*combat.Encounter).Flee)
}

// EnemyTurn resolves the enemy's pending attack. It is only needed when
// AutoEnemyTurn is off.
func (s *Session) EnemyTurn(ctx context.Context) (ActionResult, error) {
	if s.status != StatusInCombat || s.encounter == nil {
		return ActionResult{}, s.reject("take the enemy turn")
	}
	var res ActionResult
	if err := s.runEnemyTurn(ctx, &res); err != nil {
		return ActionResult{}, err
	}
	return res, nil
}

type encounterAction func(*combat.Encounter, context.Context) (combat.TurnResult, error)

func (s *Session) playerAction(ctx context.Context, act encounterAction) (ActionResult, error) {
	if s.status != StatusInCombat || s.encounter == nil {
		return ActionResult{}, s.reject("act in combat")
	}
	enc := s.encounter

	turn, err := act(enc, ctx)
	if err != nil {
		if errors.IsInsufficientMana(err) {
			s.emit(EventInsufficientMana, ChannelCombat, s.player, 0, "Not enough mana")
		}
		s.logger.Debug("combat action rejected", "run_id", s.runID, "phase", enc.Phase().String(), "error", err)
		return ActionResult{}, err
	}
	s.turns++

	res := ActionResult{PlayerTurn: &turn, ManaSpent: turn.ManaSpent}
	s.narratePlayerTurn(turn)

	switch turn.Phase {
	case combat.PhaseWon:
		s.winEncounter(ctx, &res)
	case combat.PhaseFled:
		s.closeEncounter(ctx, "fled")
	case combat.PhaseEnemyTurn:
		if s.autoEnemyTurn {
			if err := s.runEnemyTurn(ctx, &res); err != nil {
				return ActionResult{}, err
			}
		}
	}

	res.Phase = enc.Phase()
	res.Status = s.status
	return res, nil
}

func (s *Session) runEnemyTurn(ctx context.Context, res *ActionResult) error {
	enc := s.encounter
	turn, err := enc.EnemyTurn(ctx)
	if err != nil {
		s.logger.Debug("enemy turn rejected", "run_id", s.runID, "phase", enc.Phase().String())
		return err
	}
	s.turns++
	res.EnemyTurn = &turn

	if turn.Halved {
		s.emit(EventDamageHalved, ChannelCombat, s.player, turn.Raw-turn.Damage, "You halved the damage")
	}
	s.emit(EventEnemyAttack, ChannelCombat, enc.Enemy, turn.Damage,
		"%s attacks for %d damage", enc.Enemy.Name, turn.Damage)

	if turn.Phase == combat.PhaseDefeated {
		s.closeEncounter(ctx, "defeated")
		s.endRun(ctx, StatusDefeated)
	}
	res.Phase = enc.Phase()
	res.Status = s.status
	return nil
}

func (s *Session) narratePlayerTurn(turn combat.TurnResult) {
	name := s.player.Name
	switch turn.Action {
	case combat.ActionAttack:
		s.emit(EventPlayerAttack, ChannelCombat, s.player, turn.Damage, "%s attacks for %d damage", name, turn.Damage)
	case combat.ActionSpecial:
		s.emit(EventSpecialAttack, ChannelCombat, s.player, turn.Damage, "%s uses a special attack for %d damage", name, turn.Damage)
	case combat.ActionDefend:
		s.emit(EventDefend, ChannelCombat, s.player, 0, "%s braces to defend", name)
	case combat.ActionFlee:
		if turn.Escaped() {
			s.emit(EventFleeSucceeded, ChannelCombat, s.player, 0, "You escaped!")
		} else {
			s.emit(EventFleeFailed, ChannelCombat, s.player, 0, "You failed to escape")
		}
	}
}

func (s *Session) winEncounter(ctx context.Context, res *ActionResult) {
	enemy := s.encounter.Enemy
	reward := enemy.GoldReward()
	s.gold += reward
	s.encountersWon++
	res.GoldGained = reward

	s.emit(EventEnemyDefeated, ChannelCombat, enemy, 0, "You defeated the %s!", enemy.Name)
	s.emit(EventGoldAwarded, ChannelCombat, s.player, reward, "You gain %d gold", reward)
	s.emit(EventEnemyDefeated, ChannelBoard, enemy, reward, "Defeated %s! +%d gold", enemy.Name, reward)

	s.closeEncounter(ctx, "won")
	if enemy.IsBoss() {
		s.endRun(ctx, StatusVictory)
		return
	}
	if err := s.board.Clear(s.position); err != nil {
		s.logger.Error("clear cell", "position", s.position, "error", err)
	}
}

// closeEncounter ends the encounter and returns to exploring. endRun may
// follow and replace the status.
func (s *Session) closeEncounter(ctx context.Context, outcome string) {
	enc := s.encounter
	_, span := telemetry.Start(ctx, "combat", "combat.end",
		attribute.String("outcome", outcome),
		attribute.String("enemy", enc.Enemy.Def.ID),
		attribute.Int("turns_taken", enc.Turns()),
		attribute.Int("player_hp_remaining", enc.Player.DisplayHP()),
	)
	span.End()

	s.logger.Info("encounter ended",
		"run_id", s.runID,
		"enemy", enc.Enemy.Def.ID,
		"outcome", outcome,
		"turns", enc.Turns(),
	)
	s.encounter = nil
	s.status = StatusExploring
}
