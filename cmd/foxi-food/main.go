package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"foxi-food/internal/app"
	"foxi-food/internal/common/logger"
	"foxi-food/internal/config"
)

func main() {
	mode := flag.String("mode", "", "api-server | notification-subscriber | seed")
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var runErr error
	switch *mode {
	case "api-server":
		runErr = app.RunAPI(ctx, cfg, logger.New("api-server"))
	case "notification-subscriber":
		runErr = app.RunNotifier(ctx, cfg, logger.New("notification-subscriber"))
	case "seed":
		runErr = app.RunSeed(ctx, cfg, logger.New("seed"))
	default:
		fmt.Fprintln(os.Stderr, "unknown --mode, expected api-server, notification-subscriber or seed")
		os.Exit(2)
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, "fatal:", runErr)
		os.Exit(1)
	}
}
