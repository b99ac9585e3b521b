package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"timeclock/backend/foundation/web"
	"timeclock/backend/internal/auth"
	"timeclock/backend/internal/commands"
	"timeclock/backend/internal/pkg/config"
	"timeclock/backend/internal/pkg/repository/postgresql"
	"timeclock/backend/internal/repository/redis/markguard"
	"timeclock/backend/internal/router"
)

func main() {
	logger := log.New(os.Stdout, "TIMECLOCK : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	if err := run(logger); err != nil {
		if errors.Is(err, config.ErrHelpWanted) {
			return
		}
		logger.Println("main: error:", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	ctx := context.Background()

	cfg, err := config.NewConfig(os.Args[1:])
	if err != nil {
		return err
	}
	logger.Printf("main: config:\n%v\n", cfg)

	policy, err := cfg.Policy()
	if err != nil {
		return err
	}

	// =========================================================================
	// Postgres

	db, err := postgresql.NewDB(ctx, postgresql.Config{
		Username:   cfg.DB.Username,
		Password:   cfg.DB.Password,
		Host:       cfg.DB.Host,
		Port:       cfg.DB.Port,
		Name:       cfg.DB.Name,
		DisableTLS: cfg.DB.DisableTLS,
		Debug:      cfg.DB.Debug,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if err = commands.MigrateUP(ctx, db); err != nil {
		return pkgerrors.Wrap(err, "migrating")
	}
	if err = commands.SeedAdmin(ctx, db, commands.Seed{
		CompanyName:   cfg.Seed.CompanyName,
		AdminEmail:    cfg.Seed.AdminEmail,
		AdminPassword: cfg.Seed.AdminPassword,
	}); err != nil {
		return pkgerrors.Wrap(err, "seeding")
	}

	// =========================================================================
	// Redis

	redisDB := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisDB.Close()

	guardClient := redisDB
	if err = redisDB.Ping(ctx).Err(); err != nil {
		logger.Println("main: redis unavailable, duplicate punch guard disabled:", err)
		guardClient = nil
	}

	// =========================================================================
	// API

	a, err := auth.New(cfg.Auth.JWTKey, cfg.Auth.TokenTTL)
	if err != nil {
		return pkgerrors.Wrap(err, "constructing auth")
	}

	app := web.NewApp(logger)
	router.NewRouter(
		app,
		db,
		a,
		markguard.New(guardClient, cfg.Redis.MarkTTL),
		policy,
		cfg.Web.AllowedOrigins,
	).Init()

	api := http.Server{
		Addr:         cfg.Web.Port,
		Handler:      app,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Printf("main: API listening on %s", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return pkgerrors.Wrap(err, "server error")

	case sig := <-shutdown:
		logger.Printf("main: %v : start shutdown", sig)

		ctx, cancel := context.WithTimeout(ctx, cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return pkgerrors.Wrap(err, "could not stop server gracefully")
		}
	}

	return nil
}
