package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"restaurantcore/internal/config"
	"restaurantcore/internal/core"
	"restaurantcore/internal/httpapi"
	"restaurantcore/internal/queue"
)

type application struct {
	config  config.Config
	logger  *zap.SugaredLogger
	store   core.SnapshotStore
	broker  queue.Broker
	handler *httpapi.Handler
}

func (app *application) mount() http.Handler {
	return app.handler.Routes()
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.Addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		err := srv.Shutdown(ctx)
		app.close()
		shutdown <- err
	}()

	app.logger.Infow("server has started", "addr", app.config.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.Addr, "env", app.config.Env)

	return nil
}

// close releases the broker and storage once in-flight requests have drained.
func (app *application) close() {
	if app.broker != nil {
		if err := app.broker.Close(); err != nil {
			app.logger.Errorw("error closing RabbitMQ", "error", err)
		} else {
			app.logger.Info("RabbitMQ connection closed gracefully")
		}
	}
	if app.store != nil {
		if err := app.store.Close(); err != nil {
			app.logger.Errorw("error closing storage", "error", err)
		} else {
			app.logger.Info("storage closed gracefully")
		}
	}
}
