package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Apurer/go-gin-storefront/internal/app/api"
)

func main() {
	cfg, err := api.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := api.Run(ctx, cfg); err != nil {
		log.Fatalf("storefront API failed: %v", err)
	}
}
