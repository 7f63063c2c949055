package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mblanco/stockroom-be/internal/api"
	"github.com/mblanco/stockroom-be/internal/config"
	"github.com/mblanco/stockroom-be/internal/database"
	"github.com/mblanco/stockroom-be/internal/logger"
	"github.com/mblanco/stockroom-be/internal/monitoring"
	"github.com/mblanco/stockroom-be/internal/services"
)

func main() {
	seed := flag.Bool("seed", false, "load sample data and exit")
	flag.Parse()

	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply database migrations: %v", err)
	}

	if *seed {
		if err := database.Seed(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
		log.Println("Database seeded")
		return
	}

	// Set up services
	userService := services.NewUserService(db)
	sessionService := services.NewSessionService(db, cfg.SessionTTL)
	categoryService := services.NewCategoryService(db)
	productService := services.NewProductService(db)

	// Set up and run the background session sweeper
	sweeper, err := monitoring.NewSessionSweeper(sessionService, cfg.SweepSchedule)
	if err != nil {
		log.Fatalf("Invalid session sweep schedule: %v", err)
	}
	go sweeper.Run()

	// Set up router
	router := api.NewRouter(userService, sessionService, categoryService, productService, api.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		SecureCookies:  cfg.SecureCookies,
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %d\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
