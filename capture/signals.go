package capture

import (
	"context"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
)

// WatchSignals requests stop on any of sigs. Repeated signals are ignored;
// only the first one is logged. The returned func unregisters the handler.
func WatchSignals(ctx context.Context, counters *Counters, logger *log.Logger, sigs ...os.Signal) func() {
	if logger == nil {
		logger = log.Default()
	}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)
	ctx, cancel := context.WithCancel(ctx)
	go relaySignals(ctx, ch, counters, logger)
	return func() {
		signal.Stop(ch)
		cancel()
	}
}

func relaySignals(ctx context.Context, ch <-chan os.Signal, counters *Counters, logger *log.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-ch:
			if counters.RequestStop() {
				logger.Warnf("Caught signal %v", sig)
			}
		}
	}
}
