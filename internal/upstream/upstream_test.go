package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
)

func TestStage(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested")

	path, err := stage(dir, Request{Audio: []byte("RIFF"), Filename: "clip.wav"})
	if err != nil {
		t.Fatalf("stage() error = %v", err)
	}
	if filepath.Ext(path) != ".wav" {
		t.Errorf("stage() path = %s, want .wav extension", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read staged file: %v", err)
	}
	if string(data) != "RIFF" {
		t.Errorf("staged content = %q, want %q", data, "RIFF")
	}

	unstage(ctx, logger.Discard(), path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("staged file still exists after unstage: %v", err)
	}

	// Removing twice is harmless.
	unstage(ctx, logger.Discard(), path)
}

func TestNewUnsupportedProvider(t *testing.T) {
	_, err := New(context.Background(), config.UpstreamConfig{Provider: "acme"}, t.TempDir(), logger.Discard())
	if err == nil {
		t.Error("New() should reject unknown providers")
	}
}

func TestOpenAIGenerate(t *testing.T) {
	var gotModel, gotSystem, gotUser string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/audio/transcriptions"):
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			gotModel = r.FormValue("model")
			w.Write([]byte(`{"text":"we agreed to ship on friday"}`))
		case strings.HasSuffix(r.URL.Path, "/chat/completions"):
			var body struct {
				Messages []struct {
					Role    string `json:"role"`
					Content string `json:"content"`
				} `json:"messages"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Messages) != 2 {
				http.Error(w, "bad chat request", http.StatusBadRequest)
				return
			}
			gotSystem, gotUser = body.Messages[0].Content, body.Messages[1].Content
			w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"<summary>ship friday</summary>"},"finish_reason":"stop"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	gen := NewOpenAI(config.UpstreamConfig{
		APIKey:             "test",
		BaseURL:            srv.URL + "/v1",
		Model:              "gpt-4o",
		TranscriptionModel: "whisper-1",
		TranscriptionLang:  "zh",
	}, logger.Discard())

	got, err := gen.Generate(context.Background(), Request{
		Instruction: "produce sections",
		Audio:       []byte("RIFF0000WAVE"),
		MIMEType:    "audio/wav",
		Filename:    "meeting.wav",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "<summary>ship friday</summary>" {
		t.Errorf("Generate() = %q, want %q", got, "<summary>ship friday</summary>")
	}
	if gotModel != "whisper-1" {
		t.Errorf("transcription model = %q, want %q", gotModel, "whisper-1")
	}
	if gotSystem != "produce sections" {
		t.Errorf("system message = %q, want the instruction", gotSystem)
	}
	if gotUser != "we agreed to ship on friday" {
		t.Errorf("user message = %q, want the transcript", gotUser)
	}
}

func TestOpenAIFillsTranscriptSection(t *testing.T) {
	var gotSystem string
	var gotTemperature *float64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/audio/transcriptions") {
			w.Write([]byte(`{"text":"A: ship it\nB: agreed"}`))
			return
		}
		var body struct {
			Temperature *float64 `json:"temperature"`
			Messages    []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if len(body.Messages) > 0 {
			gotSystem = body.Messages[0].Content
		}
		gotTemperature = body.Temperature
		w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"<summary>- ship</summary>"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	zero := float32(0)
	gen := NewOpenAI(config.UpstreamConfig{
		APIKey:             "test",
		BaseURL:            srv.URL + "/v1",
		Model:              "gpt-4o",
		TranscriptionModel: "whisper-1",
		Temperature:        &zero,
	}, logger.Discard())

	got, err := gen.Generate(context.Background(), Request{
		Instruction:       "produce sections",
		Audio:             []byte("RIFF"),
		Filename:          "a.wav",
		TranscriptSection: "transcript",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := "<transcript>\nA: ship it\nB: agreed\n</transcript>\n<summary>- ship</summary>"
	if got != want {
		t.Errorf("Generate() = %q, want %q", got, want)
	}
	if !strings.Contains(gotSystem, "<transcript> section is already available") {
		t.Errorf("system message = %q, want the transcript section excluded", gotSystem)
	}
	if gotTemperature == nil || *gotTemperature > 0.001 {
		t.Errorf("temperature = %v, want a near-zero value sent explicitly", gotTemperature)
	}
}

func TestOpenAIEmptyTranscript(t *testing.T) {
	chatCalled := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/chat/completions") {
			chatCalled = true
		}
		w.Write([]byte(`{"text":"   "}`))
	}))
	defer srv.Close()

	gen := NewOpenAI(config.UpstreamConfig{APIKey: "test", BaseURL: srv.URL + "/v1", TranscriptionModel: "whisper-1"}, logger.Discard())
	got, err := gen.Generate(context.Background(), Request{Audio: []byte("x"), Filename: "a.wav"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "" {
		t.Errorf("Generate() = %q, want empty", got)
	}
	if chatCalled {
		t.Error("chat completion called for an empty transcript")
	}
}

func TestOpenAIUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	gen := NewOpenAI(config.UpstreamConfig{APIKey: "bad", BaseURL: srv.URL + "/v1", TranscriptionModel: "whisper-1"}, logger.Discard())
	if _, err := gen.Generate(context.Background(), Request{Audio: []byte("x"), Filename: "a.wav"}); err == nil {
		t.Error("Generate() should fail when the service rejects the call")
	}
}

func TestGeminiGenerateInline(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"<summary>"},{"text":"done</summary>"}]}}]}`))
	}))
	defer srv.Close()

	gen, err := NewGemini(context.Background(), config.UpstreamConfig{
		APIKey:           "test",
		BaseURL:          srv.URL,
		Model:            "gemini-2.5-flash",
		InlineLimitBytes: 1 << 20,
	}, t.TempDir(), logger.Discard())
	if err != nil {
		t.Fatalf("NewGemini() error = %v", err)
	}

	got, err := gen.Generate(context.Background(), Request{
		Instruction: "produce sections",
		Audio:       []byte("RIFF"),
		MIMEType:    "audio/wav",
		Filename:    "a.wav",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "<summary>done</summary>" {
		t.Errorf("Generate() = %q, want %q", got, "<summary>done</summary>")
	}
	if !strings.HasSuffix(gotPath, "gemini-2.5-flash:generateContent") {
		t.Errorf("request path = %s, want generateContent for the model", gotPath)
	}
}
