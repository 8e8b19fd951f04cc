// Command alpha-counter-tui runs the character select screen in a terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/pefman/alpha-counter/internal/config"
	"github.com/pefman/alpha-counter/internal/console"
	"github.com/pefman/alpha-counter/internal/engine"
	"github.com/pefman/alpha-counter/internal/game"
	"github.com/pefman/alpha-counter/internal/logging"
	"github.com/pefman/alpha-counter/internal/models"
	"github.com/pefman/alpha-counter/internal/roster"
	"github.com/pefman/alpha-counter/internal/view"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "alpha-counter-tui:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Parse()
	if err != nil {
		return err
	}

	// The terminal belongs to tcell; logs go to LOG_FILE or nowhere.
	var out io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errors.Wrap(err, "open log")
		}
		defer f.Close()
		out = f
	}
	log := logging.New(cfg, out)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog := roster.FromAPI(ctx, cfg.RosterAPIBase, log)

	store := game.NewStore(models.NewAppState(), game.WithLogger(log))
	router := view.NewRouter(store, catalog, view.WithRoller(engine.NewRoller()), view.WithLogger(log))

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "open terminal")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init terminal")
	}
	defer screen.Fini()

	return console.New(screen, store, router, log).Run(ctx)
}
