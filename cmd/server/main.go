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

	"github.com/actuallystonmai/movie-reviews/internal/apiclient"
	"github.com/actuallystonmai/movie-reviews/internal/config"
	"github.com/actuallystonmai/movie-reviews/internal/logger"
	"github.com/actuallystonmai/movie-reviews/internal/render"
	"github.com/actuallystonmai/movie-reviews/internal/session"
	"github.com/actuallystonmai/movie-reviews/internal/web"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config %v", err)
	}

	appLog := logger.Init(cfg.Environment, cfg.Debug)

	renderer, err := render.NewRenderer()
	if err != nil {
		log.Fatalf("failed to parse templates %v", err)
	}

	api := apiclient.New(cfg.APIBaseURL, cfg.APITimeout)
	sessions := session.NewStore(cfg.SessionSecret, cfg.Environment == "production")
	h := web.NewHandler(api, renderer, sessions, logger.With("component", "web"))

	// ---------------- Server --------------------
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      web.NewRouter(h),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLog.Info("frontend running", "addr", srv.Addr, "api", cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown failed %v", err)
	}
	appLog.Info("frontend stopped")
}
