package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"

	"github.com/Apurer/go-gin-storefront/internal/app/api"
	platformobservability "github.com/Apurer/go-gin-storefront/internal/platform/observability"
	orderactivities "github.com/Apurer/go-gin-storefront/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-gin-storefront/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "storefront-worker"
	cfg, err := api.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	dom, cleanup, err := api.BuildDomain(ctx, cfg, instruments)
	if err != nil {
		logger.Error("failed to build services", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()
	if dom.DB == nil {
		logger.Warn("worker running on in-memory repositories; orders will not be visible to the API process")
	}
	orderActivities := orderactivities.NewActivities(dom.Orders)

	cfg.TemporalDisabled = false
	temporalClient, err := api.ConnectTemporal(cfg, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, orderworkflows.RegisterOptions())
	w.RegisterActivityWithOptions(orderActivities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
