package upstream

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
)

// stage writes the audio payload to a fresh temp file in dir and returns its
// path. Callers must pass the path to unstage.
func stage(dir string, req Request) (string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create temp dir: %w", err)
		}
	}

	f, err := os.CreateTemp(dir, "upload-*"+filepath.Ext(req.Filename))
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := f.Write(req.Audio); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return f.Name(), nil
}

// unstage removes a staged file, logs warning if fails
func unstage(ctx context.Context, log logger.Logger, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn(ctx, "Failed to remove staged audio %s: %v", path, err)
	} else {
		log.Debug(ctx, "Removed staged audio: %s", path)
	}
}
