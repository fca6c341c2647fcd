package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gravitas-games/hexpath/internal/config"
	"github.com/gravitas-games/hexpath/internal/server"
)

func main() {
	log.Println("Starting hexpath server...")

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/server.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded from %s", configPath)
	for name, cost := range cfg.Terrain {
		if cost < 0 {
			log.Printf("Terrain %s is impassable", name)
		}
	}

	// Connects Redis, fetches the JWT key and generates the shared map
	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	info := srv.MapInfo()
	log.Printf("Serving paths over a radius %d map (%d hexes, seed %d)", info.Radius, info.HexCount, info.Seed)
	log.Printf("Neighbor queries limited to radius %d, at most %d clients",
		cfg.Session.MaxQueryRadius, cfg.Session.MaxClients)

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server listening on %s", addr)
		if err := srv.Start(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down...", sig)
	}

	// Graceful shutdown: closes client connections and Redis
	if err := srv.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}
