package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"secret-keeper-backend/internal/ai"
	"secret-keeper-backend/internal/chat"
	"secret-keeper-backend/internal/config"
	"secret-keeper-backend/internal/engine"
	"secret-keeper-backend/internal/logger"
	"secret-keeper-backend/internal/narrator"
	"secret-keeper-backend/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet; fall back to a development one for this message.
		if l, lerr := logger.New("dev"); lerr == nil {
			l.Fatal("failed to load config", "error", err)
		}
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gemini, err := ai.NewGeminiClient(ctx, ai.Options{
		APIKey:          cfg.GeminiAPIKey,
		Model:           cfg.GeminiModel,
		Temperature:     cfg.GeminiTemperature,
		MaxOutputTokens: cfg.GeminiMaxOutputTokens,
	})
	if err != nil {
		log.Fatal("failed to create gemini client", "error", err)
	}
	defer gemini.Close()

	eng := engine.New(
		session.NewMemoryStore(),
		narrator.New(gemini, log.With("component", "narrator")),
		log.With("component", "engine"),
	)

	mux := http.NewServeMux()

	mux.HandleFunc("/", chat.RootHandler(cfg.AppName))
	mux.HandleFunc("/health", chat.HealthHandler)
	mux.HandleFunc("/api/chat", chat.ChatHandler(eng, log.With("component", "chat")))

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           c.Handler(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	log.Info("api server is running",
		"addr", srv.Addr,
		"service", cfg.AppName,
		"env", cfg.AppEnv,
		"model", cfg.GeminiModel,
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server stopped", "error", err)
	}
}
