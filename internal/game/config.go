package game

import (
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/samdwyer/dicecrawl/internal/errors"
	"github.com/samdwyer/dicecrawl/internal/gamedata"
	"github.com/samdwyer/dicecrawl/internal/rng"
)

// Config holds session options.
type Config struct {
	// RNG drives board layout, damage variance, flee, treasure, traps and
	// enemy selection. Required.
	RNG *rng.RNG

	// Dice rolls movement. Defaults to RNG.
	Dice dice.Roller

	// Catalog defaults to the embedded game data.
	Catalog *gamedata.Catalog

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// AutoEnemyTurn runs the enemy's reply inside each player action.
	// When false the caller drives it with Session.EnemyTurn.
	AutoEnemyTurn bool
}

// DefaultConfig returns a config with enemy turns resolved automatically.
func DefaultConfig(r *rng.RNG) Config {
	return Config{RNG: r, AutoEnemyTurn: true}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.RNG == nil {
		return errors.InvalidArgument("rng is required")
	}
	return nil
}

func (c *Config) applyDefaults() error {
	if c.Dice == nil {
		c.Dice = c.RNG
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Catalog == nil {
		catalog, err := gamedata.LoadCatalog()
		if err != nil {
			return errors.Wrap(err, "load catalog")
		}
		c.Catalog = catalog
	}
	return nil
}
