package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Rakhulsr/go-storefront/app/cmd"
	"github.com/Rakhulsr/go-storefront/app/configs"
	"github.com/Rakhulsr/go-storefront/app/db/seeders"
	"github.com/Rakhulsr/go-storefront/app/models/migrations"
	"github.com/Rakhulsr/go-storefront/app/routes"
	"github.com/Rakhulsr/go-storefront/app/services"
	"github.com/Rakhulsr/go-storefront/app/utils/metrics"
)

func main() {
	env, err := configs.LoadEnv()
	if err != nil {
		logrus.Fatal(err)
	}
	log := configs.NewLogger(env.LogLevel, env.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(os.Args) > 1 {
		if err := cmd.RunCli(ctx, env, log, os.Args); err != nil {
			log.Fatal(err)
		}
		return
	}

	if env.JWTSecret == "" {
		log.Fatal("JWT_SECRET is empty, run `generate-secret` and add it to your .env file")
	}

	db, err := configs.OpenConnection(env, log)
	if err != nil {
		log.WithError(err).Fatal("DB connection failed")
	}
	if err := migrations.AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}
	if err := seeders.DBSeed(ctx, db, env.AdminUsername, env.AdminPassword, log); err != nil {
		log.WithError(err).Fatal("seeding failed")
	}
	log.Info("Database ready")

	store, err := configs.OpenStore(ctx, env, log)
	if err != nil {
		log.WithError(err).Fatal("blob store init failed")
	}

	tokens, err := services.NewJWTIssuer(env.JWTSecret, env.JWTTTL)
	if err != nil {
		log.WithError(err).Fatal("token issuer init failed")
	}

	router := routes.NewRouter(routes.Deps{
		Env:     env,
		DB:      db,
		Store:   store,
		Tokens:  tokens,
		Log:     log,
		Metrics: metrics.New(),
	})

	server := &http.Server{
		Addr:              env.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}()

	log.WithField("addr", server.Addr).Info("Server starting")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server stopped")
	}
	log.Info("Server stopped")
}
