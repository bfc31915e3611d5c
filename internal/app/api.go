package app

import (
	"context"
	"fmt"
	"net/http"

	"foxi-food/internal/catalog"
	"foxi-food/internal/common/httpx"
	"foxi-food/internal/common/logger"
	"foxi-food/internal/config"
	"foxi-food/internal/connections/database"
	"foxi-food/internal/connections/rabbitmq"
	"foxi-food/internal/customer"
	"foxi-food/internal/order"
	"foxi-food/internal/restaurant"
	"foxi-food/internal/tracking"
)

// RunAPI wires the HTTP API and blocks until the context is cancelled.
func RunAPI(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	db, err := database.ConnectDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	mq, err := rabbitmq.Dial(cfg.RabbitMQURL())
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	defer mq.Close()
	if err := mq.DeclareTopology(); err != nil {
		return fmt.Errorf("failed to declare rabbitmq topology: %w", err)
	}

	restaurantRepo := restaurant.NewRepository(db)
	catalogRepo := catalog.NewRepository(db)
	customerRepo := customer.NewRepository(db)
	trackingRepo := tracking.NewRepository(db)
	orderStore := order.NewRepository(db)

	restaurantSvc := restaurant.NewService(restaurantRepo, log)
	catalogSvc := catalog.NewService(catalogRepo, restaurantRepo, log)
	orderSvc := order.NewService(orderStore, mq, cfg.App.TaxRate, log)
	trackingSvc := tracking.NewService(trackingRepo, restaurantRepo, mq, log)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		if err := mq.Ping(); err != nil {
			http.Error(w, "rabbitmq unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	restaurant.NewHandler(restaurantSvc, log).Register(mux)
	catalog.NewHandler(catalogSvc, log).Register(mux)
	customer.NewHandler(customerRepo, log).Register(mux)
	order.NewHandler(orderSvc, log).Register(mux)
	tracking.NewHandler(trackingSvc, log).Register(mux)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("api_server_started", map[string]any{"addr": addr})
	return httpx.New(addr, httpx.RequestLogging(log, mux)).Run(ctx)
}
