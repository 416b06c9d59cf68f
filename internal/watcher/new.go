package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
)

const (
	defaultMaxConcurrent = 2
	// settleDelay gives uploaders time to finish writing a new file.
	settleDelay = 500 * time.Millisecond
)

// New watches inbox and runs handler on at most maxConcurrent recordings at once.
func New(inbox string, handler Handler, log logger.Logger, maxConcurrent int) (Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(inbox); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", inbox, err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	return &implWatcher{
		inbox:   inbox,
		handler: handler,
		logger:  log,
		fsw:     fw,
		slots:   make(chan struct{}, maxConcurrent),
		settle:  settleDelay,

		inflight: make(map[string]struct{}),
	}, nil
}
