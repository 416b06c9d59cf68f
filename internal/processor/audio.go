package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// extractAudio converts the audio track of a video recording to mono WAV in
// the temp folder. The caller removes the returned file.
func (p *implProcessor) extractAudio(ctx context.Context, videoPath string) (string, error) {
	if err := p.executor.Available(p.cfg.FFmpeg.BinaryPath); err != nil {
		return "", err
	}
	if err := os.MkdirAll(p.cfg.Paths.Temp, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	f, err := os.CreateTemp(p.cfg.Paths.Temp, name+"-*.wav")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	audioPath := f.Name()
	f.Close()

	p.logger.Info(ctx, "Extracting audio track: %s", videoPath)

	// -vn drops video; mono at the configured rate keeps uploads small.
	args := []string{
		"-i", videoPath,
		"-vn",
		"-ar", strconv.Itoa(p.cfg.FFmpeg.SampleRate),
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		audioPath,
	}

	if _, err := p.executor.Execute(ctx, p.cfg.FFmpeg.BinaryPath, args...); err != nil {
		os.Remove(audioPath)
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	p.logger.Info(ctx, "Audio extracted successfully: %s", audioPath)
	return audioPath, nil
}
