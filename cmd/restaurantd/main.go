package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"restaurantcore/internal/config"
	"restaurantcore/internal/core"
	"restaurantcore/internal/httpapi"
	"restaurantcore/internal/logger"
	"restaurantcore/internal/queue"
)

func main() {
	cfg := config.Load()
	log := logger.Must(cfg.Env)

	err := serve(cfg, log)
	if err != nil {
		log.Errorw("server stopped", "error", err)
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func serve(cfg config.Config, log *zap.SugaredLogger) error {
	app, err := newApplication(cfg, log)
	if err != nil {
		return err
	}
	return app.run(app.mount())
}

// newApplication opens storage and, when configured, the event broker. A
// failure after storage is open closes it again.
func newApplication(cfg config.Config, log *zap.SugaredLogger) (*application, error) {
	// storage
	store, err := core.OpenPersistentStore(cfg.Storage, core.NewDefaultRulesEngine())
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}
	log.Infow("storage opened", "driver", cfg.Storage.Driver)

	opts := []core.Option{core.WithLogger(log)}
	handlerOpts := []httpapi.Option{httpapi.WithLogger(log)}

	// metrics
	if cfg.MetricsEnabled {
		recorder := core.NewPrometheusRecorder()
		opts = append(opts, core.WithMetrics(recorder))
		handlerOpts = append(handlerOpts, httpapi.WithMetrics(recorder.Registry()))
	}

	// rabbitmq broker
	var broker queue.Broker
	if cfg.EventsEnabled() {
		amqpCfg := cfg.AMQP
		amqpCfg.Logger = log
		rabbit, err := queue.NewRabbitMQBroker(amqpCfg)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
		}
		broker = rabbit
		opts = append(opts, core.WithPublisher(broker, queue.QueueRestaurantChanges))
		log.Info("connected to RabbitMQ")
	} else {
		log.Warn("RESTAURANT_AMQP_URL not set, change events are disabled")
	}

	svc := core.NewService(store, opts...)

	return &application{
		config:  cfg,
		logger:  log,
		store:   store,
		broker:  broker,
		handler: httpapi.New(svc, handlerOpts...),
	}, nil
}
