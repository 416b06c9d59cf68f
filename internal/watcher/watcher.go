package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/meeting-minutes/internal/audio"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
)

type implWatcher struct {
	inbox   string
	handler Handler
	logger  logger.Logger
	fsw     *fsnotify.Watcher
	slots   chan struct{}
	settle  time.Duration
	wg      sync.WaitGroup

	mu       sync.Mutex
	inflight map[string]struct{}
}

func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watching %s for recordings (max concurrent: %d)", w.inbox, cap(w.slots))
	defer w.wg.Wait()

	if err := w.backlog(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for in-flight recordings...")
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if err := w.dispatch(ctx, event.Name, w.settle); err != nil {
				return err
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) Stop() error {
	return w.fsw.Close()
}

// backlog dispatches recordings that were already waiting in the inbox.
func (w *implWatcher) backlog(ctx context.Context) error {
	entries, err := os.ReadDir(w.inbox)
	if err != nil {
		return fmt.Errorf("read inbox: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := w.dispatch(ctx, filepath.Join(w.inbox, e.Name()), 0); err != nil {
			return err
		}
	}
	return nil
}

// dispatch runs the handler on path in its own goroutine once a slot is free.
// A path already queued or running is skipped, as is one that is gone by
// the time its turn comes. It blocks while every slot is busy and returns
// ctx.Err() if ctx ends first.
func (w *implWatcher) dispatch(ctx context.Context, path string, delay time.Duration) error {
	if !w.isRecording(path) {
		w.logger.Debug(ctx, "Ignoring %s", path)
		return nil
	}
	if !w.claim(path) {
		w.logger.Debug(ctx, "Already queued: %s", path)
		return nil
	}
	w.logger.Info(ctx, "Recording queued: %s", path)

	select {
	case w.slots <- struct{}{}:
	case <-ctx.Done():
		w.release(path)
		return ctx.Err()
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() { <-w.slots }()
		defer w.release(path)

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return
			}
		}
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			w.logger.Debug(ctx, "Recording already handled: %s", path)
			return
		}
		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}()
	return nil
}

// claim marks path as in flight and reports whether it was free.
func (w *implWatcher) claim(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inflight == nil {
		w.inflight = make(map[string]struct{})
	}
	if _, busy := w.inflight[path]; busy {
		return false
	}
	w.inflight[path] = struct{}{}
	return true
}

func (w *implWatcher) release(path string) {
	w.mu.Lock()
	delete(w.inflight, path)
	w.mu.Unlock()
}

// isRecording skips hidden and partial files as well as unsupported types.
func (w *implWatcher) isRecording(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, ".part") {
		return false
	}
	return audio.IsSupported(base)
}
