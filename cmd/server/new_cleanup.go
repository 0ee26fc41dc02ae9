package main

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// shutdowner abstracts the telemetry providers so tests can verify cleanup
// order without exporters.
type shutdowner interface {
	Shutdown(context.Context) error
}

// newCleanup closes the store first, then flushes telemetry so that store
// errors are still exported.
func newCleanup(timeout time.Duration, telemetry shutdowner, store io.Closer) func() {
	return func() {
		if store != nil {
			if err := store.Close(); err != nil {
				slog.Error("failed to close store", slog.String("error", err.Error()))
			}
		}

		if telemetry != nil {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			if err := telemetry.Shutdown(ctx); err != nil {
				slog.Error("failed to shut down telemetry", slog.String("error", err.Error()))
			}
		}
	}
}
