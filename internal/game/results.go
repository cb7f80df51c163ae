package game

import (
	"github.com/samdwyer/dicecrawl/internal/combat"
	"github.com/samdwyer/dicecrawl/internal/world"
)

// MoveResult reports one roll-and-move.
type MoveResult struct {
	Dice     int
	From     int
	Position int
	Landed   world.Category
}

// OutcomeKind classifies what resolving a cell did.
type OutcomeKind int

const (
	OutcomeNoEvent OutcomeKind = iota
	OutcomeTreasureFound
	OutcomeTrapTriggered
	OutcomeEncounterStarted
	// OutcomePlayerDied is a trap that killed the player.
	OutcomePlayerDied
)

// String returns a human-readable outcome name.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNoEvent:
		return "no_event"
	case OutcomeTreasureFound:
		return "treasure_found"
	case OutcomeTrapTriggered:
		return "trap_triggered"
	case OutcomeEncounterStarted:
		return "encounter_started"
	case OutcomePlayerDied:
		return "player_died"
	default:
		return "unknown"
	}
}

// CellOutcome reports the result of resolving the landed cell.
type CellOutcome struct {
	Kind     OutcomeKind
	Position int
	Amount   int // Gold found or trap damage

	// Set for OutcomeEncounterStarted.
	EnemyID   string
	EnemyName string
	Boss      bool
}

// ActionResult reports a session action. Combat actions fill PlayerTurn
// and/or EnemyTurn; Heal fills HealAmount and Healed.
type ActionResult struct {
	PlayerTurn *combat.TurnResult
	EnemyTurn  *combat.TurnResult
	GoldGained int
	// HealAmount is the heal's nominal size; Healed is what max hp allowed.
	HealAmount int
	Healed     int
	ManaSpent  int

	// Phase is the encounter phase after the action. It is terminal when
	// the action closed the encounter.
	Phase  combat.Phase
	Status Status
}

// RunSummary is what remains of a finished run.
type RunSummary struct {
	RunID         string
	ClassID       string
	ClassName     string
	Outcome       Status
	Gold          int
	HP            int // Clamped at zero
	MaxHP         int
	Position      int
	Turns         int // Combat turns across all encounters
	EncountersWon int
}
