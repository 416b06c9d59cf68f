package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/httpapi"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/minutes"
	"github.com/nguyentantai21042004/meeting-minutes/internal/processor"
	"github.com/nguyentantai21042004/meeting-minutes/internal/upstream"
	"github.com/nguyentantai21042004/meeting-minutes/internal/watcher"
	"github.com/nguyentantai21042004/meeting-minutes/pkg/executor"
	"go.uber.org/automaxprocs/maxprocs"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

func run(args []string) error {
	flags, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(flags.config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS env,
	// in which case the runtime default applies.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		log.Debug(ctx, format, args...)
	}))

	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Minutes")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s, GOMAXPROCS=%d", runtime.GOOS, runtime.GOARCH, runtime.GOMAXPROCS(0))
	log.Info(ctx, "Provider: %s (%s)", cfg.Upstream.Provider, cfg.Upstream.Model)
	log.Info(ctx, "Variant: %s, language: %s", cfg.Minutes.Variant, cfg.Minutes.Language)

	if err := ensureDirectories(cfg); err != nil {
		return err
	}

	gen, err := upstream.New(ctx, cfg.Upstream, cfg.Paths.Temp, log)
	if err != nil {
		return err
	}
	pipe, err := minutes.New(minutes.OptionsFromConfig(cfg), gen, log)
	if err != nil {
		return err
	}

	switch {
	case flags.serve:
		return serve(ctx, cfg, pipe, log)
	case flags.watch:
		return watch(ctx, cfg, newProcessor(cfg, pipe, log), log)
	default:
		dest := flags.out
		if dest == "" {
			dest = cfg.Paths.Output
		}
		out, err := newProcessor(cfg, pipe, log).Export(ctx, flags.audio, dest)
		if err != nil {
			return err
		}
		log.Info(ctx, "Meeting record written to %s", out.Dir)
		return nil
	}
}

func newProcessor(cfg *config.Config, pipe minutes.Pipeline, log logger.Logger) processor.Processor {
	return processor.New(cfg, pipe, executor.New(), log)
}

func watch(ctx context.Context, cfg *config.Config, proc processor.Processor, log logger.Logger) error {
	w, err := watcher.New(cfg.Paths.Input, proc.Process, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Concurrent: %d recordings at once", cfg.Performance.MaxConcurrent)
	log.Info(ctx, "Press Ctrl+C to stop")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watcher: %w", err)
	}
	log.Info(context.Background(), "Watcher stopped")
	return nil
}

func serve(ctx context.Context, cfg *config.Config, pipe minutes.Pipeline, log logger.Logger) error {
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           httpapi.NewServer(pipe, log, cfg.Server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "Listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info(context.Background(), "Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
