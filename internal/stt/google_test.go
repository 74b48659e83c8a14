package stt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeChunkFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chunk_0.wav")
	if err := os.WriteFile(path, []byte("RIFF fake chunk payload"), 0o644); err != nil {
		t.Fatalf("write chunk: %v", err)
	}
	return path
}

func TestGoogleTranscribeSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("expected api key in query, got %q", r.URL.RawQuery)
		}

		var req GoogleSTTRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Config.Encoding != "LINEAR16" || req.Config.SampleRateHertz != 44100 {
			t.Errorf("unexpected recognition config: %+v", req.Config)
		}
		if req.Audio.Content == "" {
			t.Error("expected base64 audio content")
		}

		json.NewEncoder(w).Encode(GoogleSTTResponse{
			Results: []GoogleSTTResult{{
				Alternatives: []GoogleSTTAlternative{{Transcript: " hello there ", Confidence: 0.92}},
			}},
		})
	}))
	defer server.Close()

	provider := NewGoogleProvider("test-key", server.URL, 44100)
	result, err := provider.Transcribe(context.Background(), writeChunkFile(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Transcript != "hello there" {
		t.Fatalf("transcript = %q, want %q", result.Transcript, "hello there")
	}
	if result.Confidence != 0.92 {
		t.Fatalf("confidence = %v, want 0.92", result.Confidence)
	}
	if result.Provider != "google" {
		t.Fatalf("provider = %q, want google", result.Provider)
	}
}

func TestGoogleTranscribeNoSpeech(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(GoogleSTTResponse{})
	}))
	defer server.Close()

	provider := NewGoogleProvider("test-key", server.URL, 44100)
	result, err := provider.Transcribe(context.Background(), writeChunkFile(t))
	if err != nil {
		t.Fatalf("silence must not be an error: %v", err)
	}
	if result.Transcript != "" {
		t.Fatalf("expected empty transcript, got %q", result.Transcript)
	}
}

func TestGoogleTranscribeAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"quota exceeded","status":"PERMISSION_DENIED"}}`))
	}))
	defer server.Close()

	provider := NewGoogleProvider("test-key", server.URL, 44100)
	if _, err := provider.Transcribe(context.Background(), writeChunkFile(t)); err == nil {
		t.Fatal("expected error for API failure")
	}
}

func TestGoogleTranscribeMissingFile(t *testing.T) {
	provider := NewGoogleProvider("test-key", "http://unused", 44100)
	if _, err := provider.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Fatal("expected error for missing chunk file")
	}
}
