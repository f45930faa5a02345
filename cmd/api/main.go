package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gabriel-rosch/fibershare-sub001/internal/config"
	"github.com/gabriel-rosch/fibershare-sub001/internal/db"
	"github.com/gabriel-rosch/fibershare-sub001/internal/http"
	"github.com/gabriel-rosch/fibershare-sub001/internal/repository"
	"github.com/gabriel-rosch/fibershare-sub001/internal/service"
)

func main() {
	log.Println("Starting Port Sharing Service...")

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize database
	pool, err := db.NewPool(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	store := db.NewStore(pool)

	// Initialize repositories
	boxRepo := repository.NewBoxRepository(pool)
	portRepo := repository.NewPortRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	noteRepo := repository.NewNoteRepository(pool)

	// Initialize services
	boxService := service.NewBoxService(store, boxRepo, portRepo)
	portService := service.NewPortService(store, boxRepo, portRepo)
	orderService := service.NewOrderService(store, boxRepo, portRepo, orderRepo, noteRepo, portService)

	// Initialize HTTP server
	handler := http.NewHandler(boxService, portService, orderService)
	server := http.NewServer(cfg, handler)

	// Start server in goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		log.Printf("Server starting on %s", addr)
		if err := server.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	log.Println("Server exited")
}
