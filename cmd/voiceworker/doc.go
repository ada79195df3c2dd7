// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the voice worker.

One worker process handles exactly one voting session. The server
supervisor launches it with the session ID as the sole argument and
redirects its output to a per-session log file; all other configuration
arrives through the environment:

	DATABASE_URL, DATABASE_TYPE: Vote store (same defaults as the server)
	MAILBOX_DIR:                 Where the session status file is written
	LISTEN_COMMAND:              Speech-to-text invocation
	SPEAK_COMMAND:               Text-to-speech invocation

The worker drives the full voting interaction (voter ID capture,
candidate choice, confirmation) through the flow package and reports
progress by rewriting its session mailbox, which the server polls. It
always writes exactly one terminal status before exiting, even on
internal failure.
*/
package main
