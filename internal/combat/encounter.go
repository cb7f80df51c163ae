package combat

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dicecrawl/internal/entity"
	"github.com/samdwyer/dicecrawl/internal/errors"
	"github.com/samdwyer/dicecrawl/internal/telemetry"
)

// Rand is the randomness an encounter draws from. *rng.RNG satisfies it.
type Rand interface {
	Float64() float64
	IntRange(lo, hi int) int
}

// TurnResult describes one resolved turn.
type TurnResult struct {
	Turn      int    // 1-based turn number within the encounter
	Actor     string // Entity id of the acting side
	Action    Action
	Damage    int     // Damage applied to the target
	Raw       int     // Damage before defend halving
	Halved    bool    // Player was defending
	ManaSpent int     // Mana consumed by the action
	Variance  int     // Random bonus added to the damage roll
	Sample    float64 // Flee sample; zero for other actions
	Phase     Phase   // Phase after the turn
}

// Escaped reports whether a flee attempt succeeded.
func (r TurnResult) Escaped() bool {
	return r.Action == ActionFlee && r.Phase == PhaseFled
}

// Encounter is one fight between the player and an enemy. The player is
// borrowed from the session and mutated in place.
type Encounter struct {
	Player *entity.Player
	Enemy  *entity.Enemy

	phase Phase
	turns int
	rng   Rand
}

// NewEncounter opens an encounter on the player's turn.
func NewEncounter(player *entity.Player, enemy *entity.Enemy, rng Rand) *Encounter {
	return &Encounter{
		Player: player,
		Enemy:  enemy,
		phase:  PhasePlayerTurn,
		rng:    rng,
	}
}

// Phase returns the current phase.
func (e *Encounter) Phase() Phase { return e.phase }

// Turns returns how many turns have resolved.
func (e *Encounter) Turns() int { return e.turns }

// Over reports whether the encounter reached a terminal phase.
func (e *Encounter) Over() bool { return e.phase.Terminal() }

// Attack strikes the enemy with attack - defense + d6-1.
func (e *Encounter) Attack(ctx context.Context) (TurnResult, error) {
	if err := e.requirePhase(PhasePlayerTurn, ActionAttack); err != nil {
		return TurnResult{}, err
	}
	_, span := e.startTurn(ctx, ActionAttack)
	defer span.End()

	variance := e.rng.IntRange(0, attackVarianceMax)
	damage := AttackDamage(e.Player.Attack, e.Enemy.Defense(), variance)
	e.Enemy.TakeDamage(damage)

	res := e.finishPlayerStrike(ActionAttack, damage, variance)
	endTurn(span, res)
	return res, nil
}

// Special spends mana on a magic strike that ignores enemy defense. Without
// enough mana nothing changes and the player keeps the turn.
func (e *Encounter) Special(ctx context.Context) (TurnResult, error) {
	if err := e.requirePhase(PhasePlayerTurn, ActionSpecial); err != nil {
		return TurnResult{}, err
	}
	if e.Player.MP < SpecialManaCost {
		return TurnResult{}, errors.InsufficientMana(string(ActionSpecial), e.Player.MP, SpecialManaCost)
	}
	_, span := e.startTurn(ctx, ActionSpecial)
	defer span.End()

	e.Player.SpendMP(SpecialManaCost)
	variance := e.rng.IntRange(0, specialVarianceMax)
	damage := SpecialDamage(e.Player.Magic, variance)
	e.Enemy.TakeDamage(damage)

	res := e.finishPlayerStrike(ActionSpecial, damage, variance)
	res.ManaSpent = SpecialManaCost
	endTurn(span, res)
	return res, nil
}

// Defend halves the next enemy hit.
func (e *Encounter) Defend(ctx context.Context) (TurnResult, error) {
	if err := e.requirePhase(PhasePlayerTurn, ActionDefend); err != nil {
		return TurnResult{}, err
	}
	_, span := e.startTurn(ctx, ActionDefend)
	defer span.End()

	e.Player.Defending = true
	e.phase = PhaseEnemyTurn

	res := e.result(e.Player.ID, ActionDefend)
	endTurn(span, res)
	return res, nil
}

// Flee escapes when the sample exceeds FleeThreshold; otherwise the enemy
// gets its turn.
func (e *Encounter) Flee(ctx context.Context) (TurnResult, error) {
	if err := e.requirePhase(PhasePlayerTurn, ActionFlee); err != nil {
		return TurnResult{}, err
	}
	_, span := e.startTurn(ctx, ActionFlee)
	defer span.End()

	sample := e.rng.Float64()
	if sample > FleeThreshold {
		e.phase = PhaseFled
	} else {
		e.phase = PhaseEnemyTurn
	}

	res := e.result(e.Player.ID, ActionFlee)
	res.Sample = sample
	endTurn(span, res)
	return res, nil
}

// EnemyTurn resolves the enemy's attack on the player, consuming the
// player's defend if set.
func (e *Encounter) EnemyTurn(ctx context.Context) (TurnResult, error) {
	if err := e.requirePhase(PhaseEnemyTurn, ActionEnemyAttack); err != nil {
		return TurnResult{}, err
	}
	_, span := e.startTurn(ctx, ActionEnemyAttack)
	defer span.End()

	variance := e.rng.IntRange(0, enemyVarianceMax)
	defending := e.Player.ConsumeDefend()
	raw, damage := EnemyDamage(e.Enemy.Attack(), e.Player.Defense, variance, defending)
	e.Player.TakeDamage(damage)

	if e.Player.IsAlive() {
		e.phase = PhasePlayerTurn
	} else {
		e.phase = PhaseDefeated
	}

	res := e.result(e.Enemy.ID, ActionEnemyAttack)
	res.Damage = damage
	res.Raw = raw
	res.Halved = defending
	res.Variance = variance
	endTurn(span, res)
	return res, nil
}

func (e *Encounter) requirePhase(want Phase, action Action) error {
	if e.phase != want {
		return errors.InvalidStatef("cannot %s during %s", action, e.phase).
			WithMeta("phase", e.phase.String())
	}
	return nil
}

func (e *Encounter) finishPlayerStrike(action Action, damage, variance int) TurnResult {
	if e.Enemy.IsAlive() {
		e.phase = PhaseEnemyTurn
	} else {
		e.phase = PhaseWon
	}
	res := e.result(e.Player.ID, action)
	res.Damage = damage
	res.Raw = damage
	res.Variance = variance
	return res
}

func (e *Encounter) result(actor string, action Action) TurnResult {
	e.turns++
	return TurnResult{
		Turn:   e.turns,
		Actor:  actor,
		Action: action,
		Phase:  e.phase,
	}
}

func (e *Encounter) startTurn(ctx context.Context, action Action) (context.Context, trace.Span) {
	return telemetry.Start(ctx, "combat", "combat.turn",
		attribute.String("action", string(action)),
		attribute.String("enemy", e.Enemy.Def.ID),
		attribute.Int("turn", e.turns+1),
	)
}

func endTurn(span trace.Span, res TurnResult) {
	span.SetAttributes(
		attribute.Int("damage", res.Damage),
		attribute.String("phase", res.Phase.String()),
	)
	if res.Halved {
		span.SetAttributes(attribute.Bool("halved", true))
	}
}
