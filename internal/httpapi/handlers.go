package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meeting-minutes/internal/audio"
	"github.com/nguyentantai21042004/meeting-minutes/internal/document"
	"github.com/nguyentantai21042004/meeting-minutes/internal/minutes"
)

// multipartMemory is how much of an upload is kept in memory; the rest is
// spooled to temp files that RemoveAll deletes.
const multipartMemory = 32 << 20

type sectionJSON struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Route   string `json:"route"`
	Content string `json:"content"`
	HTML    string `json:"html,omitempty"`
}

type minutesJSON struct {
	ID       string        `json:"id"`
	Present  []string      `json:"present"`
	Sections []sectionJSON `json:"sections"`
}

// handleMinutes accepts a multipart "audio" upload and answers with the
// document (format=docx, default) or the recovered sections (format=json).
func (s *Server) handleMinutes(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "docx"
	}
	if format != "docx" && format != "json" {
		jsonError(w, fmt.Sprintf("unsupported format %q", format), http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("upload exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("audio")
	if err != nil {
		jsonError(w, "audio is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	mimeType, ok := uploadMIMEType(filename, header.Header.Get("Content-Type"))
	if !ok {
		jsonError(w, fmt.Sprintf("unsupported audio type: %s", filepath.Ext(filename)), http.StatusUnsupportedMediaType)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read upload", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("upload exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	res, err := s.pipeline.Run(r.Context(), minutes.Audio{
		Filename: filename,
		MIMEType: mimeType,
		Data:     data,
	})
	if err != nil {
		s.log.Error(r.Context(), "Minutes failed for %s: %v", filename, err)
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	if format == "json" {
		s.writeSections(w, r, res)
		return
	}

	if res.Document == nil {
		jsonError(w, "response contained no exportable section", http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", document.MIMEType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": document.Filename()}))
	http.ServeContent(w, r, document.Filename(), time.Time{}, res.Document)
}

func (s *Server) writeSections(w http.ResponseWriter, r *http.Request, res *minutes.Result) {
	out := minutesJSON{ID: res.ID, Present: res.Present, Sections: []sectionJSON{}}
	for _, sec := range s.pipeline.Sections() {
		content := res.Sections.Get(sec.ID)
		if content == "" {
			continue
		}
		item := sectionJSON{ID: sec.ID, Title: sec.Title, Route: routeName(sec.Route), Content: content}
		if sec.Route == minutes.RouteDocument {
			html, err := renderHTML(content)
			if err != nil {
				s.log.Warn(r.Context(), "Preview of %s failed: %v", sec.ID, err)
			}
			item.HTML = html
		}
		out.Sections = append(out.Sections, item)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// uploadMIMEType prefers the file extension and falls back to an audio/*
// part content type.
func uploadMIMEType(filename, partType string) (string, bool) {
	if t, ok := audio.Detect(filename); ok {
		return t, true
	}
	if mt, _, err := mime.ParseMediaType(partType); err == nil && strings.HasPrefix(mt, "audio/") {
		return mt, true
	}
	return "", false
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, minutes.ErrNoAudio):
		return http.StatusBadRequest
	case errors.Is(err, minutes.ErrEmptyTranscription), errors.Is(err, minutes.ErrNoSections):
		return http.StatusUnprocessableEntity
	case errors.Is(err, minutes.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func routeName(r minutes.Route) string {
	switch r {
	case minutes.RouteDiagram:
		return "diagram"
	case minutes.RoutePlainText:
		return "text"
	default:
		return "document"
	}
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
