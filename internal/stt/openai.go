package stt

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements STT using the OpenAI Whisper transcription API
type OpenAIProvider struct {
	client *openai.Client
}

// NewOpenAIProvider creates a new OpenAI Whisper STT provider
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Transcribe transcribes an audio chunk using Whisper
func (p *OpenAIProvider) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	startTime := time.Now()

	log.Printf("[OpenAI STT] Processing audio chunk: %s", audioPath)

	resp, err := p.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI transcription failed: %w", err)
	}

	transcript := strings.TrimSpace(resp.Text)
	log.Printf("[OpenAI STT] Transcription successful: length=%d, duration=%v",
		len(transcript), time.Since(startTime))

	return &Result{
		Transcript:  transcript,
		Provider:    p.Name(),
		RawResponse: resp.Text,
	}, nil
}
