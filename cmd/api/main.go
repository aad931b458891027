package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/prajwal2403/fintrack/internal/auth"
	"github.com/prajwal2403/fintrack/internal/config"
	"github.com/prajwal2403/fintrack/internal/database"
	fintrackHttp "github.com/prajwal2403/fintrack/internal/http"
	accountHandler "github.com/prajwal2403/fintrack/internal/http/account"
	"github.com/prajwal2403/fintrack/internal/http/identity"
	importHandler "github.com/prajwal2403/fintrack/internal/http/importcsv"
	reportHandler "github.com/prajwal2403/fintrack/internal/http/report"
	txHandler "github.com/prajwal2403/fintrack/internal/http/transaction"
	"github.com/prajwal2403/fintrack/internal/importer"
	"github.com/prajwal2403/fintrack/internal/report"
	"github.com/prajwal2403/fintrack/internal/transaction"
	txStore "github.com/prajwal2403/fintrack/internal/transaction/store"
	"github.com/prajwal2403/fintrack/internal/user"
	userStore "github.com/prajwal2403/fintrack/internal/user/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		slog.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	secret := []byte(cfg.Auth.Secret)
	if len(secret) == 0 {
		// No configured secret means every restart invalidates issued tokens.
		secret, err = auth.NewSecret()
		if err != nil {
			slog.Error("failed to generate token secret", "error", err)
			os.Exit(1)
		}
		slog.Warn("JWT_SECRET not set, using an ephemeral secret")
	}

	resolver := identity.FromToken
	if cfg.Auth.LegacyQueryIdentity {
		resolver = identity.FromQuery
		slog.Warn("legacy query identity mode enabled, requests are not authenticated")
	}

	var (
		store              = txStore.New(db)
		userService        = user.NewService(userStore.New(db))
		transactionService = transaction.NewService(store, userService)
		reportService      = report.NewService(userService, store)
		importService      = importer.NewService()
		tokenIssuer        = auth.NewTokenIssuer(secret, cfg.Auth.TokenTTL)
		gate               = auth.NewGate(tokenIssuer, userService)
	)

	router := fintrackHttp.New(fintrackHttp.Deps{
		Config:       cfg,
		Gate:         gate,
		Account:      accountHandler.NewHandler(userService, tokenIssuer, resolver),
		Transactions: txHandler.NewHandler(transactionService, resolver),
		Reports:      reportHandler.NewHandler(reportService, resolver),
		Import:       importHandler.NewHandler(importService, transactionService, resolver),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	srv := &http.Server{
		Addr:         port,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
