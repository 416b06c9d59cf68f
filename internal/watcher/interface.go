package watcher

import "context"

// Watcher feeds recordings dropped into an inbox folder to a handler.
type Watcher interface {
	// Start handles recordings already in the inbox, then new ones as they
	// arrive, until ctx is done. In-flight handlers finish before it returns.
	Start(ctx context.Context) error
	Stop() error
}

// Handler processes one recording path.
type Handler func(ctx context.Context, path string) error
