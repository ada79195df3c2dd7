// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/09samarth/ai-voting-system/auth"
	"github.com/09samarth/ai-voting-system/cliparse"
	"github.com/09samarth/ai-voting-system/db"
	"github.com/09samarth/ai-voting-system/router"
	"github.com/09samarth/ai-voting-system/supervisor"
)

func main() {
	var err error

	// Load .env if present; real env vars take precedence
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded configuration from .env")
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the configured database
	dbConn, err := sql.Open(cfg.DriverName(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}

	// Seed the ballot, the synthetic voter roll, and the default admin
	adminHash := auth.HashPassword(cfg.AdminPass, cfg.AdminKeySalt)
	if err := db.Seed(dbConn, cfg.AdminUser, adminHash); err != nil {
		slog.Error("database seeding failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "driver", cfg.DriverName())

	// Session registry for voice workers, with a background janitor
	registry := supervisor.NewRegistry(supervisor.Config{
		WorkerCommand: cfg.WorkerCommand,
		MailboxDir:    cfg.MailboxDir,
		LogDir:        cfg.LogDir,
		EvictAfter:    cfg.EvictAfter,
	})

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go registry.RunJanitor(janitorCtx, time.Minute)

	// Create router
	mux := router.NewRouter(db.New(dbConn), registry, auth.NewSessionStore(), cfg)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
