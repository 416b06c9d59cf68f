package main

import (
	"errors"
	"os"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/minutes"
)

// Exit codes follow Unix conventions: 0=success, 1=general, 2=usage.
const (
	ExitSuccess  = 0 // Minutes written
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags or config
	ExitIO       = 3 // File not found, permission denied
	ExitUpstream = 4 // Model service failed
	ExitNoResult = 5 // Nothing usable came back
)

// exitCodeFor returns the exit code for an error wrapped with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, minutes.ErrUpstream) {
		return ExitUpstream
	}

	if errors.Is(err, minutes.ErrEmptyTranscription) ||
		errors.Is(err, minutes.ErrNoSections) {
		return ExitNoResult
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrInvalid) ||
		errors.Is(err, minutes.ErrNoAudio) {
		return ExitUsage
	}

	return ExitGeneral
}
