package coro

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	logMu  sync.RWMutex
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
)

// SetLogger replaces the runtime's logger. Safe to call before Bootstrap
// or at any later point; every call site re-reads the logger under a
// read-lock, matching the spec's "no persisted state" stance — this is
// pure observability, never consulted for scheduling decisions.
func SetLogger(l zerolog.Logger) {
	logMu.Lock()
	logger = l
	logMu.Unlock()
}

func log() *zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	l := logger
	return &l
}
