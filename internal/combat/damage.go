package combat

// Combat constants.
const (
	SpecialManaCost = 15
	// FleeThreshold is the sample a flee attempt must exceed to escape.
	FleeThreshold = 0.5

	attackVarianceMax  = 5
	specialVarianceMax = 9
	enemyVarianceMax   = 5
)

// AttackDamage is the player's basic attack: attack - defense + variance, min 1.
func AttackDamage(attack, defense, variance int) int {
	return max(1, attack-defense+variance)
}

// SpecialDamage is the player's special attack: magic*2 + variance, min 1.
// Enemy defense does not apply.
func SpecialDamage(magic, variance int) int {
	return max(1, magic*2+variance)
}

// EnemyDamage returns the raw enemy hit (min 1) and the damage actually
// applied. A defending player takes floor(raw/2), which is 0 for a raw hit of 1.
func EnemyDamage(attack, defense, variance int, defending bool) (raw, applied int) {
	raw = max(1, attack-defense+variance)
	if defending {
		return raw, raw / 2
	}
	return raw, raw
}
