package main

import (
	"context"
	"log"

	"bacash-backend/internal/bootstrap"
	"bacash-backend/internal/shared/config"
	"bacash-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(context.Background(), cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s (upload backend=%s, extraction backend=%s)",
		addr, cfg.UploadBackend, cfg.ExtractionBackend)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
