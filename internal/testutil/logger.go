package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger whose output goes nowhere. Tests use it to
// exercise logging call sites without polluting test output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}
