package stt

import (
	"context"
	"fmt"
	"os"
)

// mockProvider returns a deterministic transcript derived from the chunk
// size. Useful for local development without STT credentials.
type mockProvider struct{}

// NewMockProvider creates a mock STT provider
func NewMockProvider() Provider {
	return &mockProvider{}
}

func (m *mockProvider) Name() string {
	return "mock"
}

func (m *mockProvider) Transcribe(_ context.Context, audioPath string) (*Result, error) {
	info, err := os.Stat(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat audio file: %w", err)
	}

	return &Result{
		Transcript: fmt.Sprintf("mock transcript for %d byte chunk", info.Size()),
		Provider:   m.Name(),
	}, nil
}
