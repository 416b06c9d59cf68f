package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/minutes"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    cliFlags
		wantErr bool
	}{
		{"one shot", []string{"--audio", "a.wav"}, cliFlags{config: "config.yaml", audio: "a.wav"}, false},
		{"one shot with out", []string{"-a", "a.wav", "-o", "dist", "-c", "alt.yaml"}, cliFlags{config: "alt.yaml", audio: "a.wav", out: "dist"}, false},
		{"watch", []string{"--watch"}, cliFlags{config: "config.yaml", watch: true}, false},
		{"serve", []string{"--serve"}, cliFlags{config: "config.yaml", serve: true}, false},
		{"no mode", nil, cliFlags{}, true},
		{"two modes", []string{"--watch", "--serve"}, cliFlags{}, true},
		{"out without audio", []string{"--watch", "--out", "x"}, cliFlags{}, true},
		{"unknown flag", []string{"--nope"}, cliFlags{}, true},
		{"stray argument", []string{"--serve", "extra"}, cliFlags{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFlags(tt.args)
			if tt.wantErr {
				if !errors.Is(err, ErrUsage) {
					t.Errorf("parseFlags() error = %v, want ErrUsage", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFlags() error = %v", err)
			}
			if *got != tt.want {
				t.Errorf("parseFlags() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"usage", ErrUsage, ExitUsage},
		{"invalid config", fmt.Errorf("load config: %w", config.ErrInvalid), ExitUsage},
		{"no audio", minutes.ErrNoAudio, ExitUsage},
		{"missing file", fmt.Errorf("read: %w", os.ErrNotExist), ExitIO},
		{"permission", os.ErrPermission, ExitIO},
		{"upstream", fmt.Errorf("%w: %w", minutes.ErrUpstream, errors.New("quota")), ExitUpstream},
		{"empty transcription", minutes.ErrEmptyTranscription, ExitNoResult},
		{"no sections", &minutes.ParseError{Raw: "x"}, ExitNoResult},
		{"other", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitCodesBelowReserved(t *testing.T) {
	for _, code := range []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitUpstream, ExitNoResult} {
		if code >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", code)
		}
	}
}
