package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"superadmin/navigation/internal/config"
	"superadmin/navigation/internal/container"

	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", os.Getenv("NAVIGATION_CONFIG"), "path to the YAML config file")
	flag.Parse()

	log.Info("Starting navigation service...")

	// Load configuration using viper
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Infof("Configuration loaded successfully (environment: %s)", cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize container with all dependencies
	app, err := container.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer app.Close()

	// Run the application
	if err := app.Run(ctx); err != nil {
		log.Errorf("Application exited with error: %v", err)
		return
	}

	log.Info("Application finished successfully")
}
