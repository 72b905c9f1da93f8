package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"ledgerly/internal/shared/config"
	"ledgerly/internal/shared/telemetry"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry := telemetry.ShutdownFunc(telemetry.Noop)
	if cfg.Telemetry.Enabled {
		shutdownTelemetry, err = telemetry.Init(ctx, telemetry.Config{
			ServiceName:  cfg.Telemetry.ServiceName,
			Environment:  cfg.Telemetry.Environment,
			OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
			MetricsPort:  cfg.Telemetry.MetricsPort,
			SampleRatio:  cfg.Telemetry.SampleRatio,
		})
		if err != nil {
			log.Printf("Warning: telemetry disabled: %v", err)
		}
	}

	deps, err := NewDependencies(ctx, cfg)
	if err != nil {
		_ = shutdownTelemetry(context.Background())
		return err
	}
	defer deps.Close()

	handler := SetupRoutes(deps, cfg)
	srv, errCh := StartServer(NewServerConfigFromConfig(handler, cfg))

	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.Printf("Server error: %v", err)
	}

	GracefulShutdown(srv, shutdownTelemetry, 30*time.Second)
	return nil
}
