// Package main is the entry point for the sdop device server.
// It only handles dependency injection and server initialization.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/MRamiBalles/sdop/internal/host"
	"github.com/MRamiBalles/sdop/internal/infra/storage"
	"github.com/MRamiBalles/sdop/internal/network"
	"github.com/MRamiBalles/sdop/internal/platform/clock"
	"github.com/MRamiBalles/sdop/internal/platform/config"
	"github.com/MRamiBalles/sdop/internal/platform/logger"
	"github.com/MRamiBalles/sdop/internal/router"
)

// sessionRef lets the hub exist before the session it forwards actions to.
type sessionRef struct {
	session *host.Session
}

func (r *sessionRef) HandleAction(a network.PlayerAction) error {
	return r.session.HandleAction(a)
}

func main() {
	appLogger := logger.NewLogger()
	appLogger.Info("Initializing sdop device server...")

	cfg, err := config.Load()
	if err != nil {
		appLogger.Error("Failed to load config: " + err.Error())
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	appLogger.Infof("Opening %s save device at %s...", cfg.Save.Backend, cfg.Save.Path)
	device, closeDevice, err := storage.OpenDevice(ctx, cfg)
	if err != nil {
		appLogger.Error("Failed to open save device: " + err.Error())
		os.Exit(1)
	}
	defer closeDevice()

	journal, journalDB, err := storage.OpenJournal(cfg)
	if err != nil {
		appLogger.Error(err.Error())
		os.Exit(1)
	}
	if journalDB != nil {
		defer journalDB.Close()
	}

	appLogger.Info("Bootstrapping WebSocket Hub...")
	ref := &sessionRef{}
	hub := network.NewHub(cfg.Hub, ref, appLogger)
	go hub.Run(ctx)

	opts := host.Options{
		GameID:       "default",
		Device:       device,
		Hub:          hub,
		Clock:        clock.Real{},
		SaveInterval: cfg.Save.Interval,
		TimeScale:    cfg.Sim.TimeScale,
		Logger:       appLogger,
	}
	// A nil *SQLiteEventRepository must not become a non-nil interface.
	if journal != nil {
		opts.Journal = journal
	}
	session, err := host.Boot(ctx, opts)
	if err != nil {
		appLogger.Error("Failed to boot device: " + err.Error())
		os.Exit(1)
	}
	ref.session = session

	done := make(chan struct{})
	go func() {
		session.Run(ctx, cfg.Server.TickRate)
		close(done)
	}()

	registry := host.NewRegistry(cfg.Sim.MaxGames, clock.Real{}, appLogger)

	srv := &http.Server{
		Addr: cfg.Server.Address(),
		Handler: router.New(router.Config{
			Session:        session,
			Registry:       registry,
			Hub:            hub,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Logger:         appLogger,
		}),
	}

	go func() {
		appLogger.Info("HTTP API & WS Server listening on " + srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Server failed: " + err.Error())
			cancel()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP shutdown failed: " + err.Error())
	}
	<-done
	appLogger.Info("Device saved. Bye.")
}
