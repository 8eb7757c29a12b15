package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"fund-insights/config"
	"fund-insights/database"
	"fund-insights/handlers"
	"fund-insights/logger"
	"fund-insights/seed"
	"fund-insights/store"
)

var (
	rootCmd = &cobra.Command{
		Use:   "fund-insights",
		Short: "Mutual fund discovery, portfolio analytics and planning API",
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}

	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and load the demo catalog, posts and moderation lists into empty tables",
		RunE:  runSeed,
	}
)

func init() {
	rootCmd.AddCommand(serveCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)
	return cfg, log, nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get database instance: %w", err)
	}
	defer sqlDB.Close()

	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	funds, err := seed.Funds()
	if err != nil {
		return err
	}
	n, err := database.SeedCatalog(cmd.Context(), db, funds)
	if err != nil {
		return err
	}
	log.Info().Int("inserted", n).Msg("catalog seeded")

	community, err := seed.LoadCommunity()
	if err != nil {
		return err
	}
	n, err = database.SeedCommunity(cmd.Context(), db, community.Posts, community.Moderation)
	if err != nil {
		return err
	}
	log.Info().Int("inserted", n).Msg("education hub and moderation desk seeded")
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = config.InitRedis(ctx, cfg)
		if err != nil {
			return err
		}
		defer rdb.Close()
	}

	var (
		catalog    store.Catalog
		posts      store.Posts
		moderation store.Moderation
	)
	switch cfg.Store {
	case config.StoreMemory:
		community := seed.MustCommunity()
		catalog = store.NewMemoryCatalog(seed.MustFunds())
		posts = store.NewMemoryPosts(community.Posts)
		moderation = store.NewMemoryModeration(community.Moderation)
	case config.StorePostgres:
		db, err := config.InitDB(cfg)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("get database instance: %w", err)
		}
		defer sqlDB.Close()

		if err := database.AutoMigrate(db); err != nil {
			return err
		}
		catalog = store.NewGormCatalog(db)
		posts = store.NewGormPosts(db)
		moderation = store.NewGormModeration(db)
	}

	var sessions store.Sessions = store.NewMemorySessions()
	if rdb != nil {
		catalog = store.NewCachedCatalog(catalog, rdb, cfg.CatalogCacheTTL, log)
		sessions = store.NewRedisSessions(rdb)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	h := handlers.New(handlers.Deps{
		Catalog:    catalog,
		Posts:      posts,
		Moderation: moderation,
		Sessions:   sessions,
		Log:        log,
		JWTSecret:  cfg.JWTSecret,
		SessionTTL: cfg.SessionTTL,
		RefreshTTL: cfg.RefreshTTL,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handlers.NewRouter(h, reg, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Port).Str("store", cfg.Store).Bool("redis", rdb != nil).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
