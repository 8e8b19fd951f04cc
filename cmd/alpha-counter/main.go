// Command alpha-counter serves the character select screen to browsers.
// Every open tab shares one game and is kept in sync over WebSocket.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pefman/alpha-counter/internal/config"
	"github.com/pefman/alpha-counter/internal/engine"
	"github.com/pefman/alpha-counter/internal/game"
	"github.com/pefman/alpha-counter/internal/logging"
	"github.com/pefman/alpha-counter/internal/models"
	"github.com/pefman/alpha-counter/internal/roster"
	"github.com/pefman/alpha-counter/internal/stats"
	"github.com/pefman/alpha-counter/internal/view"
	"github.com/pefman/alpha-counter/internal/web"
)

// Build metadata injected via -ldflags at build time
var (
	buildVersion = "dev"
	buildTime    = ""
)

func main() {
	cfg, err := config.Parse()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("config")
	}
	log := logging.New(cfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog := roster.FromAPI(ctx, cfg.RosterAPIBase, log)
	store := game.NewStore(models.NewAppState(), game.WithLogger(log))
	tracker := stats.NewTracker()
	router := view.NewRouter(store, catalog,
		view.WithRoller(engine.NewRoller()),
		view.WithStats(tracker),
		view.WithLogger(log),
	)
	server := web.NewServer(web.Config{
		Store:      store,
		Router:     router,
		Catalog:    catalog,
		Stats:      tracker,
		Build:      web.Build{Version: buildVersion, Time: buildTime},
		Logger:     log,
		SendBuffer: cfg.SendBuffer,
	})
	defer server.Close()

	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", httpSrv.Addr).Str("version", buildVersion).Int("characters", catalog.Len()).Msg("alpha counter listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("bye")
}
