package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ewilliams-labs/resonate/internal/adapters/gemini"
	"github.com/ewilliams-labs/resonate/internal/adapters/rest"
	"github.com/ewilliams-labs/resonate/internal/adapters/spotify"
	"github.com/ewilliams-labs/resonate/internal/adapters/sqlite"
	"github.com/ewilliams-labs/resonate/internal/core/services"
)

func main() {
	// 1. Configuration (Environment Variables)
	// Crash early if required config is missing.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	clientID := os.Getenv("SPOTIFY_CLIENT_ID")
	clientSecret := os.Getenv("SPOTIFY_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		log.Fatal("FATAL: SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET environment variables are required")
	}

	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		log.Fatal("FATAL: GEMINI_API_KEY environment variable is required")
	}

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	dbPath := os.Getenv("RESONATE_DB")
	if dbPath == "" {
		dbPath = "resonate.db"
	}

	// 2. Initialize "Driven" Adapters (The Tools)
	repo, err := sqlite.NewAdapter(dbPath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	defer repo.Close()

	catalog := spotify.NewClient(clientID, clientSecret)
	model := gemini.NewClient(os.Getenv("GEMINI_BASE_URL"), geminiKey)

	// 3. Initialize Core Logic (The Driver)
	// The adapters are injected into the agnostic pipeline; the compiler
	// guarantees each one satisfies its port.
	svc := services.NewPipeline(catalog, model, repo, services.DefaultRules())

	// 4. Initialize "Driving" Adapter (The Interface)
	handler := rest.NewHandler(svc)

	// 5. Start the Server
	log.Printf("🎶 Resonate API is running on %s", addr)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
