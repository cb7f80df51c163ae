package world

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// MovementDie is the number of sides on the movement die.
const MovementDie = 6

// RollMovement rolls the movement die.
func RollMovement(roller dice.Roller) (int, error) {
	v, err := roller.Roll(MovementDie)
	if err != nil {
		return 0, fmt.Errorf("roll movement: %w", err)
	}
	if v < 1 || v > MovementDie {
		return 0, fmt.Errorf("roll movement: roller returned %d for a d%d", v, MovementDie)
	}
	return v, nil
}

// Advance moves forward by steps, stopping on the last cell rather than
// overshooting it. Non-positive steps leave the position unchanged.
func Advance(position, steps int) int {
	if steps <= 0 {
		return position
	}
	return min(position+steps, Last)
}
