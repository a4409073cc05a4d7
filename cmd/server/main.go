package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"genie-backend/internal/config"
	"genie-backend/internal/database"
	"genie-backend/internal/handlers"
	"genie-backend/internal/router"
	"genie-backend/internal/services"
	"genie-backend/internal/store"
)

func main() {
	log.Println("🚀 Starting Genie...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Conversation Log ────
	var conversationLog store.ConversationLog
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClient.Close()
		conversationLog = store.NewRedisLog(redisClient)
		log.Println("✓ Redis conversation log connected")
	} else {
		conversationLog = store.NewMemoryLog()
		log.Println("✓ In-memory conversation log initialized")
	}

	// ──── Step 3: Initialize Gemini Client ────
	var geminiClient *services.GeminiClient
	if cfg.GeminiAPIKey != "" {
		var err error
		geminiClient, err = services.NewGeminiClient(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer geminiClient.Close()
		log.Println("✓ Gemini client initialized")
	} else {
		log.Println("⚠ GEMINI_API_KEY not set; /api/chat will report the SDK as unavailable")
	}

	// A nil *GeminiClient must stay a nil interface value inside the adapter.
	var providerClient interface{}
	if geminiClient != nil {
		providerClient = geminiClient
	}
	adapter := services.NewAdapter(providerClient, cfg.GeminiModel)

	// ──── Step 4: Start HTTP Server ────
	chatHandler := handlers.NewChatHandler(adapter, conversationLog, time.Duration(cfg.ChatTimeoutSecs)*time.Second)
	r := router.New(chatHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Genie ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
