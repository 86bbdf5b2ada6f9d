// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package winrt

import (
	"io"
	"log/slog"
	"sync/atomic"
)

// logState holds the installed logger plus pre-scoped children, one
// per engine subsystem. The children carry a "sys" attribute so that
// consumers can filter per-dispatch noise from lifecycle events
// without paying a With call on every dispatch.
type logState struct {
	root     *slog.Logger
	dispatch *slog.Logger
	async    *slog.Logger
}

// logPtr stores the active state. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var logPtr atomic.Pointer[logState]

func init() {
	SetLogger(nil)
}

// SetLogger configures the logger for the projection engine.
// By default the engine produces no log output. Pass nil to restore
// the default silent behavior.
//
// SetLogger is safe for concurrent use: it swaps the logger and its
// subsystem scopes in one atomic store.
//
// Subsystems and levels used:
//   - sys=dispatch, [slog.LevelDebug]: casts and failed dispatches
//     (slot, failed status code)
//   - sys=async, [slog.LevelDebug]: future settlement
//   - [slog.LevelDebug]: runtime initialized, activation factory
//     acquired
//   - [slog.LevelInfo]: platform extension bootstrapped
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logPtr.Store(&logState{
		root:     l,
		dispatch: l.With("sys", "dispatch"),
		async:    l.With("sys", "async"),
	})
}

// Logger returns the current engine logger.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logPtr.Load().root
}

// dispatchLog returns the dispatch-scoped logger.
func dispatchLog() *slog.Logger {
	return logPtr.Load().dispatch
}

// asyncLog returns the async-scoped logger.
func asyncLog() *slog.Logger {
	return logPtr.Load().async
}
