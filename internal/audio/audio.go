// Package audio classifies input recordings by file extension.
package audio

import (
	"path/filepath"
	"strings"
)

var audioTypes = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mp3",
	".m4a":  "audio/mp4",
	".mp4a": "audio/mp4",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".flac": "audio/flac",
	".webm": "audio/webm",
	".aiff": "audio/aiff",
}

var videoExts = map[string]bool{
	".mp4": true,
	".mov": true,
	".mkv": true,
	".avi": true,
	".m4v": true,
}

// Detect returns the media type for an audio file name.
func Detect(filename string) (string, bool) {
	mime, ok := audioTypes[strings.ToLower(filepath.Ext(filename))]
	return mime, ok
}

// IsVideo reports whether filename is a video container whose audio track
// must be extracted first.
func IsVideo(filename string) bool {
	return videoExts[strings.ToLower(filepath.Ext(filename))]
}

// IsSupported reports whether filename can be processed.
func IsSupported(filename string) bool {
	_, ok := Detect(filename)
	return ok || IsVideo(filename)
}
