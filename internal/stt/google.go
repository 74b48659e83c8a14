package stt

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// GoogleProvider implements STT using the Google Cloud Speech-to-Text REST
// API with API key authentication.
type GoogleProvider struct {
	apiKey     string
	url        string
	sampleRate int
	httpClient *http.Client
}

// NewGoogleProvider creates a new Google STT provider
func NewGoogleProvider(apiKey, url string, sampleRate int) *GoogleProvider {
	return &GoogleProvider{
		apiKey:     apiKey,
		url:        url,
		sampleRate: sampleRate,
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return "google"
}

// GoogleSTTRequest represents Google Speech-to-Text API request
type GoogleSTTRequest struct {
	Config GoogleSTTConfig `json:"config"`
	Audio  GoogleSTTAudio  `json:"audio"`
}

// GoogleSTTConfig represents recognition config
type GoogleSTTConfig struct {
	Encoding                   string `json:"encoding"`
	SampleRateHertz            int    `json:"sampleRateHertz"`
	LanguageCode               string `json:"languageCode"`
	EnableAutomaticPunctuation bool   `json:"enableAutomaticPunctuation"`
	Model                      string `json:"model,omitempty"`
}

// GoogleSTTAudio represents audio data
type GoogleSTTAudio struct {
	Content string `json:"content"` // Base64 encoded
}

// GoogleSTTResponse represents Google Speech-to-Text API response
type GoogleSTTResponse struct {
	Results []GoogleSTTResult `json:"results"`
	Error   *GoogleSTTError   `json:"error,omitempty"`
}

// GoogleSTTResult represents a recognition result
type GoogleSTTResult struct {
	Alternatives []GoogleSTTAlternative `json:"alternatives"`
}

// GoogleSTTAlternative represents a transcript alternative
type GoogleSTTAlternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

// GoogleSTTError represents an API error
type GoogleSTTError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Transcribe transcribes an audio chunk using the Google Speech-to-Text REST API
func (p *GoogleProvider) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	startTime := time.Now()

	audioBytes, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}

	log.Printf("[Google STT] Processing audio chunk: %s, size: %d bytes", audioPath, len(audioBytes))

	reqBody := GoogleSTTRequest{
		Config: GoogleSTTConfig{
			Encoding:                   "LINEAR16",
			SampleRateHertz:            p.sampleRate,
			LanguageCode:               "en-US",
			EnableAutomaticPunctuation: true,
			Model:                      "latest_long",
		},
		Audio: GoogleSTTAudio{
			Content: base64.StdEncoding.EncodeToString(audioBytes),
		},
	}

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	apiURL := fmt.Sprintf("%s?key=%s", p.url, p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(reqJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Google Speech-to-Text: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Google STT] API error: Status %d, Body: %s", resp.StatusCode, string(body))
		return &Result{
			Provider:    p.Name(),
			RawResponse: string(body),
		}, fmt.Errorf("Google Speech-to-Text API returned status %d", resp.StatusCode)
	}

	var sttResp GoogleSTTResponse
	if err := json.Unmarshal(body, &sttResp); err != nil {
		log.Printf("[Google STT] Failed to parse response. Raw body: %s", string(body))
		return &Result{
			Provider:    p.Name(),
			RawResponse: string(body),
		}, fmt.Errorf("failed to parse Google Speech-to-Text response: %w", err)
	}

	if sttResp.Error != nil {
		log.Printf("[Google STT] API error: Code %d, Status %s, Message: %s",
			sttResp.Error.Code, sttResp.Error.Status, sttResp.Error.Message)
		return &Result{
			Provider:    p.Name(),
			RawResponse: string(body),
		}, fmt.Errorf("Google Speech-to-Text API error: %s", sttResp.Error.Message)
	}

	// No results means no interpretable speech in this chunk. That is a
	// normal outcome for silence, not an API failure.
	if len(sttResp.Results) == 0 || len(sttResp.Results[0].Alternatives) == 0 {
		log.Printf("[Google STT] No speech detected in chunk")
		return &Result{
			Provider:    p.Name(),
			RawResponse: string(body),
		}, nil
	}

	alternative := sttResp.Results[0].Alternatives[0]
	transcript := strings.TrimSpace(alternative.Transcript)

	log.Printf("[Google STT] Transcription successful: confidence=%.2f, length=%d, duration=%v",
		alternative.Confidence, len(transcript), time.Since(startTime))

	return &Result{
		Transcript:  transcript,
		Confidence:  alternative.Confidence,
		Provider:    p.Name(),
		RawResponse: string(body),
	}, nil
}
