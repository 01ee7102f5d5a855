// Package diag provides the operator-facing diagnostics logger.
//
// Every failure the widget absorbs into a fixed user notice is recorded
// here with its underlying cause. Nothing written to this log is ever
// rendered on the widget surface, and the logger never writes to the
// terminal while the TUI is running.
package diag

import (
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// Init routes diagnostics to a log file under dir. Safe to call more than
// once; the last call wins.
func Init(dir string) error {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(dir, "diagnostics.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths

	l, err := cfg.Build()
	if err != nil {
		return err
	}

	mu.Lock()
	logger = l
	mu.Unlock()
	return nil
}

// L returns the current diagnostics logger. Before Init it is a no-op
// logger, so call sites never need nil checks.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Sync flushes buffered log entries. Called on process exit.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = logger.Sync()
}
