package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"moodledger/internal/account"
	"moodledger/internal/auth"
	"moodledger/internal/config"
	httpx "moodledger/internal/http"
	"moodledger/internal/mood"
	"moodledger/internal/stats"
	"moodledger/internal/storage"
)

func main() {
	cfg, _ := config.Load()

	store, err := storage.Open(cfg.StorageBackend, cfg.SQLitePath, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("storage init failed", "err", err)
	}
	defer store.Close()

	policy := stats.ParseStreakPolicy(cfg.StreakPolicy)
	log.Info("storage ready", "backend", cfg.StorageBackend, "streak_policy", policy)

	jwtSvc := auth.NewJWT(cfg.JWTSecret)
	accounts := &account.Service{Repo: store}
	moods := mood.NewService(store, store, policy)

	r := httpx.NewRouter(cfg, accounts, moods, jwtSvc)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server stopped", "err", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
