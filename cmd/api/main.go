package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"cattle-scoring/internal/adapters/auth/jwtauth"
	pg "cattle-scoring/internal/adapters/storage/postgres"
	"cattle-scoring/internal/config"
	"cattle-scoring/internal/platform/logger"
	"cattle-scoring/internal/ports/auth"
	"cattle-scoring/internal/router"
)

func main() {
	log := logger.Must(logger.New())
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatal("config inválida", zap.Error(err))
	}

	var db *sql.DB
	if cfg.DB.DSN != "" {
		db, err = pg.Open(cfg.DB.DSN)
		if err != nil {
			log.Fatal("no se pudo abrir Postgres", zap.Error(err))
		}
		defer db.Close()
	} else {
		log.Warn("DB_DSN vacío, usando repos in-memory")
	}

	var issuer *jwtauth.Issuer
	var verifier auth.AuthVerifier
	if cfg.Auth.Secret != "" {
		issuer = jwtauth.NewIssuer(cfg.Auth.Secret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
		verifier = issuer
	} else {
		log.Warn("JWT_SECRET vacío, auth en modo dev (X-Debug-User-ID)")
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Issuer:       issuer,
		DB:           db,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("servidor iniciado", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("error del servidor", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("apagando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("apagado forzado", zap.Error(err))
	}
}
