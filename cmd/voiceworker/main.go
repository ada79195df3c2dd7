// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/09samarth/ai-voting-system/cliparse"
	"github.com/09samarth/ai-voting-system/db"
	"github.com/09samarth/ai-voting-system/flow"
	"github.com/09samarth/ai-voting-system/speech"
	"github.com/09samarth/ai-voting-system/status"
)

// The worker is launched by the server supervisor with the session ID as
// its sole argument. Stdout and stderr are already redirected to the
// session's log file, so plain slog output lands in the right place.
func main() {
	godotenv.Load()

	if len(os.Args) != 2 {
		slog.Error("usage: voiceworker <session-id>")
		os.Exit(2)
	}
	sessionID := os.Args[1]

	log := slog.Default().With("session_id", sessionID)

	cfg, err := cliparse.WorkerConfigFromEnv()
	if err != nil {
		slog.Error("invalid worker configuration", "error", err)
		os.Exit(1)
	}

	// The mailbox comes first: even a failure to reach the database must
	// surface through it, or the poller would never see a terminal status.
	mailbox := status.NewMailbox(cfg.MailboxDir, sessionID)

	dbConn, err := sql.Open(cfg.DriverName(), cfg.DatabaseURL)
	if err == nil {
		err = dbConn.Ping()
	}
	if err != nil {
		log.Error("database connection failed", "error", err)
		mailbox.Final(false, "Error during voice voting: database unavailable", "", "")
		os.Exit(1)
	}
	defer dbConn.Close()

	orchestrator := &flow.Orchestrator{
		Store:    db.New(dbConn),
		Listener: &speech.ExecListener{Command: cfg.ListenCommand},
		Speaker:  &speech.ExecSpeaker{Command: cfg.SpeakCommand},
		Reporter: mailbox,
		Log:      log,
	}

	log.Info("voice voting session starting")
	orchestrator.Run(context.Background())
	log.Info("voice voting session finished")
}
