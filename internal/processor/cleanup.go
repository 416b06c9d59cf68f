package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// archive moves a finished recording into paths.archived. An existing
// archived file with the same name is never overwritten; a numeric suffix
// is added instead.
func (p *implProcessor) archive(ctx context.Context, path string) (string, error) {
	dir := p.cfg.Paths.Archived
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create archived dir: %w", err)
	}

	dest, err := freeName(dir, filepath.Base(path))
	if err != nil {
		return "", err
	}
	if err := os.Rename(path, dest); err != nil {
		return "", fmt.Errorf("archive %s: %w", filepath.Base(path), err)
	}
	p.logger.Info(ctx, "Archived: %s -> %s", path, dest)
	return dest, nil
}

// freeName returns dir/name, or dir/name-N.ext for the first unused N.
func freeName(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := filepath.Join(dir, name)
	for n := 1; ; n++ {
		_, err := os.Stat(candidate)
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s-%d%s", stem, n, ext))
	}
}

// removeTemp deletes an intermediate file; failure only warns.
func (p *implProcessor) removeTemp(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		p.logger.Warn(ctx, "Failed to remove temp file %s: %v", path, err)
		return
	}
	p.logger.Debug(ctx, "Removed temp file: %s", path)
}
