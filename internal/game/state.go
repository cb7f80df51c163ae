// Package game provides the session that owns one player's run: board,
// position, gold, the current encounter and the event log.
package game

// Status is where the session is in its lifecycle.
type Status int

const (
	// StatusIdle means no character has been selected.
	StatusIdle Status = iota
	// StatusExploring is travel along the board.
	StatusExploring
	// StatusInCombat means an encounter is open.
	StatusInCombat
	// StatusVictory follows defeating the boss. The run has been wiped.
	StatusVictory
	// StatusDefeated follows the player's death. The run has been wiped.
	StatusDefeated
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusExploring:
		return "exploring"
	case StatusInCombat:
		return "in_combat"
	case StatusVictory:
		return "victory"
	case StatusDefeated:
		return "defeated"
	default:
		return "unknown"
	}
}

// Terminal reports whether the run has ended.
func (s Status) Terminal() bool {
	return s == StatusVictory || s == StatusDefeated
}

// CanStart reports whether a new character may be selected.
func (s Status) CanStart() bool {
	return s == StatusIdle || s.Terminal()
}
