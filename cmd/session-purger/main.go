package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/app/api"
	platformobservability "github.com/Apurer/go-gin-storefront/internal/platform/observability"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := api.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.PostgresDSN == "" {
		log.Fatal("POSTGRES_DSN not set; cannot purge sessions")
	}
	cfg.RedisAddr = ""
	instruments, shutdown, err := platformobservability.Init(ctx, "storefront-session-purger")
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	dom, cleanup, err := api.BuildDomain(ctx, cfg, instruments)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer cleanup()
	if dom.DB == nil {
		log.Fatal("postgres connection failed; cannot purge sessions")
	}
	if _, err := dom.PurgeExpiredSessions(ctx, instruments.Logger); err != nil {
		log.Fatalf("failed to purge sessions: %v", err)
	}
	log.Printf("session purge completed")
}
