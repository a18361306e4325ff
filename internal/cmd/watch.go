package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reprompi/benchgen/internal/log"
	"github.com/reprompi/benchgen/internal/watch"
)

type Watch struct {
	Generate `embed:""`

	Debounce time.Duration `help:"Quiet period before regenerating after a change" default:"100ms" env:"BENCHGEN_WATCH_DEBOUNCE"`
}

// Run is called by Kong when the watch command is executed.
func (w *Watch) Run(logger *slog.Logger, tracer *log.TagTracer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.watch(ctx, logger, tracer)
}

func (w *Watch) watch(ctx context.Context, logger *slog.Logger, tracer *log.TagTracer) error {
	if err := w.generate(ctx, logger, tracer); err != nil {
		logger.Error("Generation failed", "error", err)
	}

	watcher, err := watch.New([]string{w.InputDir, w.Sources}, w.Debounce)
	if err != nil {
		return err
	}
	defer watcher.Close()
	watcher.Ignore(w.OutputDir)

	logger.Info("Watching for changes", "input", w.InputDir, "sources", w.Sources)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopped watching")
			return nil
		case err := <-watcher.Updates():
			if err != nil {
				logger.Warn("Watcher error", "error", err)
				continue
			}
			logger.Info("Change detected, regenerating")
			if err := w.generate(ctx, logger, tracer); err != nil && ctx.Err() == nil {
				logger.Error("Generation failed", "error", err)
			}
		}
	}
}
