package main

import (
	"context"
	"net/http"

	"github.com/NordeN37/juno-integration/juno"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func main() {
	logger := zap.Must(zap.NewProduction())
	defer logger.Sync()

	cfg, err := juno.LoadConfig()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	client, err := juno.New(ctx, cfg, juno.WithLogger(logger))
	cancel()
	if err != nil {
		logger.Fatal("connect to juno", zap.Error(err))
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/charges", juno.ChargeHandler(client)).Methods("POST")
	r.HandleFunc("/api/juno/notifications", juno.NotificationHandler(cfg.WebhookSecret,
		func(_ context.Context, n *juno.Notification) error {
			logger.Info("juno notification",
				zap.String("event_id", n.EventID),
				zap.String("event_type", n.EventType),
				zap.Int("entities", len(n.Data)),
			)
			return nil
		},
	)).Methods("POST")

	logger.Info("listening", zap.String("addr", "http://localhost:8080"), zap.Bool("sandbox", cfg.Sandbox))
	if err := http.ListenAndServe(":8080", r); err != nil {
		logger.Fatal("http server", zap.Error(err))
	}
}
