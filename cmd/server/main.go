package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courtdesk/courtdesk/internal/server"
	"github.com/courtdesk/courtdesk/modules"
	"github.com/courtdesk/courtdesk/pkg/application"
	"github.com/courtdesk/courtdesk/pkg/configuration"
	"github.com/courtdesk/courtdesk/pkg/eventbus"
)

func main() {
	conf := configuration.Use()
	defer conf.Unload()
	log := conf.Logger()

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("fatal: %v", r)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		log.WithError(err).Fatal("connect to database")
	}
	defer pool.Close()

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(log),
		Logger:   log,
	})
	if err := modules.Load(app); err != nil {
		log.WithError(err).Fatal("load modules")
	}
	if err := app.Migrations().Apply(ctx, pool); err != nil {
		log.WithError(err).Fatal("apply schema")
	}

	srv := server.New(conf, app)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("graceful shutdown")
		}
	}
}
