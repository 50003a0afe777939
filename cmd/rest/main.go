package main

import (
	"context"
	"log"

	"docvault-rag-be/internal/bootstrap"
	"docvault-rag-be/internal/config"
	"docvault-rag-be/internal/server"
	"docvault-rag-be/internal/tracer"
	"docvault-rag-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	// Audit consumer drains the in-process bus: persists async search audits
	// and fans decisions out to the stream and NATS.
	go func() {
		log.Println("Background: Starting Audit Consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
