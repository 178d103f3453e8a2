package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/actuallystonmai/movie-reviews/internal/cache"
	"github.com/actuallystonmai/movie-reviews/internal/config"
	"github.com/actuallystonmai/movie-reviews/internal/handler"
	"github.com/actuallystonmai/movie-reviews/internal/logger"
	"github.com/actuallystonmai/movie-reviews/internal/repository"
	"github.com/actuallystonmai/movie-reviews/internal/router"
	"github.com/actuallystonmai/movie-reviews/internal/scraper"
	"github.com/actuallystonmai/movie-reviews/internal/service"
	"github.com/actuallystonmai/movie-reviews/seeds"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config %v", err)
	}

	appLog := logger.Init(cfg.Environment, cfg.Debug)
	ctx := context.Background()

	// ------------ PostgreSQL ---------------
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to parse database config %v", err)
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatalf("failed to connect to database %v", err)
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool); err != nil {
		log.Fatalf("database not ready: %v", err)
	}
	appLog.Info("connected to PostgreSQL")

	// ------------ Run Migrations ---------------
	command := ""
	if len(os.Args) > 1 {
		command = os.Args[1]
	}
	if command == "migrate-down" {
		if err := runMigration(ctx, pool, "migrations/create_tables.down.sql"); err != nil {
			log.Fatalf("failed to migrate down %v", err)
		}
		appLog.Info("migrations dropped")
		return
	}

	if err := runMigration(ctx, pool, "migrations/create_tables.up.sql"); err != nil {
		log.Fatalf("failed to migrate up %v", err)
	}

	// ------------ Demo Seed Data ---------------
	// Seeding fills the catalog, so the first top-100 request will not scrape.
	if command == "seed" {
		if err := seeds.Setup(ctx, pool); err != nil {
			log.Fatalf("failed to seed %v", err)
		}
	}

	// ---------------- Redis ---------------------
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to parse redis url %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	topCache := cache.NewCache(rdb, cfg.CacheTTL)
	if err := topCache.Ping(ctx); err != nil {
		appLog.Warn("redis unavailable, serving without cache", "error", err)
	}

	// ---------------- Wiring --------------------
	repo := repository.NewRepository(pool)
	imdb := scraper.New(scraper.Options{
		Limit:             cfg.ScrapeLimit,
		RequestsPerSecond: cfg.ScrapeRate,
	})
	svc := service.NewService(repo, topCache, imdb, imdb.Budget())
	h := handler.NewHandler(svc)

	// ---------------- Server --------------------
	// The scraping routes run without the router's request timeout, so the
	// write timeout has to outlast a full scrape.
	srv := &http.Server{
		Addr:         cfg.APIAddr(),
		Handler:      router.Setup(h, cfg.CORSOrigin),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: imdb.Budget() + time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLog.Info("api running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown failed %v", err)
	}
	appLog.Info("api stopped")
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		log.Printf("waiting for database... (%d/30)", i+1)
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func runMigration(ctx context.Context, pool *pgxpool.Pool, path string) error {
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	log.Printf("migration %s applied", path)
	return nil
}
