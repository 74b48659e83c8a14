package stt

import (
	"fmt"
	"log"
	"strings"

	"icebreaker/internal/config"
)

// CreateProvider creates an STT provider from the loaded configuration
func CreateProvider(cfg *config.Config) (Provider, error) {
	providerName := strings.ToLower(cfg.STTProvider)

	// Default to Google if not specified
	if providerName == "" {
		providerName = "google"
		log.Printf("[STT Factory] STT_PROVIDER not set, defaulting to 'google'")
	}

	switch providerName {
	case "google":
		return createGoogleProvider(cfg)
	case "openai":
		return createOpenAIProvider(cfg)
	case "mock":
		log.Printf("[STT Factory] Creating mock STT provider")
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported STT provider: %s. Supported: google, openai, mock", providerName)
	}
}

func createGoogleProvider(cfg *config.Config) (Provider, error) {
	if cfg.GoogleAPIKey == "" {
		return nil, fmt.Errorf("GOOGLE_STT_API_KEY environment variable is not set")
	}

	log.Printf("[STT Factory] Creating Google STT provider")
	return NewGoogleProvider(cfg.GoogleAPIKey, cfg.GoogleSTTURL, cfg.Audio.SampleRate), nil
}

func createOpenAIProvider(cfg *config.Config) (Provider, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	log.Printf("[STT Factory] Creating OpenAI Whisper STT provider")
	return NewOpenAIProvider(cfg.OpenAIKey), nil
}
