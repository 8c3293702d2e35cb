// Command server runs the full pipeline: the Ingress and State-Update
// consumers side by side with the HTTP read/ingest surface, all sharing one
// process and one Player Registry.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/openmohaa/match-pipeline/internal/broker"
	"github.com/openmohaa/match-pipeline/internal/config"
	"github.com/openmohaa/match-pipeline/internal/gamestate"
	"github.com/openmohaa/match-pipeline/internal/httpapi"
	"github.com/openmohaa/match-pipeline/internal/ingress"
	"github.com/openmohaa/match-pipeline/internal/processors"
	"github.com/openmohaa/match-pipeline/internal/registry"
	"github.com/openmohaa/match-pipeline/internal/stateupdate"
	"github.com/openmohaa/match-pipeline/internal/store"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := store.NewRedisClient(cfg.StoreURL)
	if err != nil {
		sugar.Fatalw("failed to connect to store", "error", err)
	}
	keys := store.NewKeys(cfg.EventsNamespace, cfg.StateNamespace)

	brokerConn, err := broker.Dial(cfg.BrokerURL)
	if err != nil {
		sugar.Fatalw("failed to connect to broker", "error", err)
	}
	defer brokerConn.Close()

	playerRegistry := registry.New()
	dispatch := processors.Dispatch(redisClient, keys, playerRegistry, cfg.KillStreakTimeWindow)

	ingressConsumer, err := brokerConn.NewConsumer(broker.EventsQueue, cfg.ConsumerPrefetch)
	if err != nil {
		sugar.Fatalw("failed to open ingress consumer", "error", err)
	}
	defer ingressConsumer.Close()

	stateUpdatePublisher, err := brokerConn.NewPublisher(broker.StateUpdatesQueue)
	if err != nil {
		sugar.Fatalw("failed to open state-update publisher", "error", err)
	}
	defer stateUpdatePublisher.Close()

	stateUpdateConsumer, err := brokerConn.NewConsumer(broker.StateUpdatesQueue, cfg.ConsumerPrefetch)
	if err != nil {
		sugar.Fatalw("failed to open state-update consumer", "error", err)
	}
	defer stateUpdateConsumer.Close()

	eventsPublisher, err := brokerConn.NewPublisher(broker.EventsQueue)
	if err != nil {
		sugar.Fatalw("failed to open events publisher", "error", err)
	}
	defer eventsPublisher.Close()

	ingressLoop := &ingress.Consumer{
		Store:     redisClient,
		Keys:      keys,
		Publisher: stateUpdatePublisher,
		Logger:    sugar,
	}
	stateUpdateLoop := &stateupdate.Consumer{
		Store:      redisClient,
		Keys:       keys,
		Processors: dispatch,
		Logger:     sugar,
	}

	httpHandler := httpapi.New(httpapi.Config{
		Reader:      &gamestate.Reader{Store: redisClient, Keys: keys},
		Publisher:   eventsPublisher,
		IngestToken: cfg.IngestToken,
		Origins:     cfg.AllowedOrigins,
		Logger:      logger,
	})
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      httpHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return ingressLoop.Run(gctx, ingressConsumer.Deliveries())
	})
	g.Go(func() error {
		return stateUpdateLoop.Run(gctx, stateUpdateConsumer.Deliveries())
	})
	g.Go(func() error {
		sugar.Infow("http server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && gctx.Err() == nil {
		sugar.Errorw("server exited with error", "error", err)
	}
	sugar.Info("server shut down cleanly")
}

func newLogger(env string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("env", env)), nil
}
