// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse parses configuration for the server and worker binaries.

# Server Configuration

ParseFlags reads CLI flags first and falls back to environment variables:

  - PORT (-p): server port (default 5000)
  - DATABASE_URL (-d): sqlite path or postgres connection string
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - WORKER_COMMAND (-worker): voice worker invocation (default ./voiceworker)
  - MAILBOX_DIR (-mailbox-dir): session status directory (default run)
  - LOG_DIR (-log-dir): worker log directory (default logs)
  - EVICT_AFTER_MINUTES (-evict-after): stale-session eviction window
  - ADMIN_KEY_SALT (-admin-salt): password hashing salt, required
  - ADMIN_USERNAME / ADMIN_PASSWORD: seeded admin credentials; the
    password is required

# Worker Configuration

The worker is launched with the session ID as its sole argument, so
WorkerConfigFromEnv reads everything else from the environment: the
database settings and mailbox directory above, plus LISTEN_COMMAND and
SPEAK_COMMAND for the speech adapters.

Both binaries load a .env file (via godotenv) before parsing, so a single
file can configure the whole system in development.
*/
package cliparse
