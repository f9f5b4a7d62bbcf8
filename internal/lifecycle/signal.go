package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"riftreplay/internal/logger"
)

// SetupSignalHandler returns a context cancelled on SIGTERM or SIGINT. The
// shutdown func, if any, runs before the cancel. A second signal forces
// exit.
func SetupSignalHandler(shutdown func(context.Context)) context.Context {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	return watch(context.Background(), sigCh, shutdown, os.Exit)
}

func watch(parent context.Context, sigCh <-chan os.Signal, shutdown func(context.Context), exit func(int)) context.Context {
	ctx, cancel := context.WithCancel(parent)
	log := logger.With("signal")

	go func() {
		sig := <-sigCh
		log.Info("received signal, shutting down", "signal", sig.String())
		if shutdown != nil {
			shutdown(ctx)
		}
		cancel()

		sig = <-sigCh
		log.Warn("received second signal, forcing exit", "signal", sig.String())
		exit(1)
	}()

	return ctx
}
