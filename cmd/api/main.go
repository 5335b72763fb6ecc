package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/justsurfingit/gig-builder/internal/config"
	"github.com/justsurfingit/gig-builder/internal/handlers"
	"github.com/justsurfingit/gig-builder/internal/middleware"
	"github.com/justsurfingit/gig-builder/internal/services"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using process environment")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Initialize Core Services
	llmService, err := services.NewLLMService(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to create LLM client: ", err)
	}
	suggestionService := services.NewSuggestionService(llmService)
	previewService := services.NewPreviewService()

	// 3. Initialize Handlers & Router
	gigHandler := handlers.NewGigHandler(llmService, suggestionService, previewService)
	r := handlers.NewRouter(gigHandler, handlers.RouterOptions{
		CORSOrigins: cfg.CORSOrigins,
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		AccessLog:   true,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Shutdown error: %v", err)
	}
}
