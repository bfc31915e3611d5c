package app

import (
	"context"
	"fmt"

	"foxi-food/internal/catalog"
	"foxi-food/internal/common/logger"
	"foxi-food/internal/config"
	"foxi-food/internal/connections/database"
	"foxi-food/internal/order"
	"foxi-food/internal/restaurant"
	"foxi-food/internal/seed"
)

// discardPublisher drops events. Seeding runs without a broker connection.
type discardPublisher struct{}

func (discardPublisher) Publish(context.Context, string, string, []byte) error { return nil }

// RunSeed loads the sample catalog and demo orders, then exits.
func RunSeed(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	db, err := database.ConnectDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	orderSvc := order.NewService(order.NewRepository(db), discardPublisher{}, cfg.App.TaxRate, log)
	return seed.New(restaurant.NewRepository(db), catalog.NewRepository(db), orderSvc, log).Run(ctx)
}
