package main

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/spf13/cobra"

	"github.com/samdwyer/dicecrawl/internal/game"
	"github.com/samdwyer/dicecrawl/internal/rng"
	"github.com/samdwyer/dicecrawl/internal/ui"
)

func (c *cli) playCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		RunE:  c.runPlay,
	}
}

func (c *cli) runPlay(cmd *cobra.Command, args []string) error {
	w, err := c.playLogWriter()
	if err != nil {
		return err
	}
	logger := c.newLogger(w)

	seed, err := c.resolveSeed()
	if err != nil {
		return err
	}
	logger.Info("starting game", "seed", seed, "class", c.cfg.Class)

	sessionCfg := game.Config{
		RNG:    rng.NewSeeded(seed),
		Logger: logger,
	}
	if c.cryptoDice {
		sessionCfg.Dice = dice.DefaultRoller
	}
	session, err := game.NewSession(sessionCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize game: %w", err)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}

	app := ui.NewApp(screen, session, ui.Options{
		MoveDelay:      c.cfg.MoveDelay,
		EnemyTurnDelay: c.cfg.EnemyTurnDelay,
		Class:          c.cfg.Class,
		Logger:         logger,
	})
	return app.Run(cmd.Context())
}
