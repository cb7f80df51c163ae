// Package combat provides the turn-based encounter between the player and a
// single enemy.
package combat

// Phase is the state of an encounter.
type Phase int

const (
	// PhasePlayerTurn - waiting for the player to choose an action
	PhasePlayerTurn Phase = iota
	// PhaseEnemyTurn - the enemy strikes next
	PhaseEnemyTurn
	// PhaseWon - enemy hp reached zero
	PhaseWon
	// PhaseFled - the player escaped
	PhaseFled
	// PhaseDefeated - player hp reached zero
	PhaseDefeated
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseEnemyTurn:
		return "enemy_turn"
	case PhaseWon:
		return "won"
	case PhaseFled:
		return "fled"
	case PhaseDefeated:
		return "defeated"
	default:
		return "unknown"
	}
}

// Terminal reports whether the encounter is over.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseFled || p == PhaseDefeated
}

// Action names what a turn did.
type Action string

const (
	ActionAttack      Action = "attack"
	ActionSpecial     Action = "special"
	ActionDefend      Action = "defend"
	ActionFlee        Action = "flee"
	ActionEnemyAttack Action = "enemy_attack"
)
