// Copyright (c) 2025 Samarth.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package supervisor manages one voice-worker process per voting session.

# Why a Process Per Session

Spoken interaction blocks on audio I/O for seconds at a time and cannot be
interleaved with the server's request handling. Each session therefore runs
in its own OS process, and the server communicates with it only through the
polled status mailbox — it never blocks on a worker.

# Registry

The Registry is an explicit session table (create / poll / reset / evict)
guarded by a mutex:

	reg := supervisor.NewRegistry(cfg)
	sid, err := reg.Start()            // spawn worker, time-based session ID
	resp, err := reg.Poll(sid)         // non-blocking status snapshot
	err = reg.Reset(sid)               // kill worker, drop mailbox, forget

Workers are launched with the session ID as their sole argument and their
combined stdout/stderr redirected to logs/worker_<sid>.log.

# Polling Semantics

While the worker is alive, Poll returns the latest progress record, or a
"just started" placeholder if none has been written. Once the worker has
exited, Poll returns the stored status (a generic completion placeholder if
the worker never wrote one) and downgrades to an error when the exit was
abnormal and no success was ever observed. After a post-exit poll the
mailbox file is deleted; the last record stays cached for later polls.

# Eviction

Sessions that finish but are never polled to completion would otherwise
accumulate forever. EvictStale (or the RunJanitor loop) forgets sessions
whose worker exited more than the configured window ago.
*/
package supervisor
