package config

import (
	"fmt"
	"os"
	"strconv"
)

// AudioConfig describes the waveform format the whole app assumes:
// mono 16-bit PCM WAV at 44.1kHz, sliced into ChunkSeconds pieces for STT.
type AudioConfig struct {
	SampleRate   int
	Channels     int
	BitDepth     int
	ChunkSeconds int
	ChunkDir     string
}

// ScoringConfig holds the scoring knobs.
type ScoringConfig struct {
	MaxWordCount int
}

type Config struct {
	Port string

	MongoURI string
	MongoDB  string

	STTProvider  string
	GoogleAPIKey string
	GoogleSTTURL string
	OpenAIKey    string

	Audio   AudioConfig
	Scoring ScoringConfig
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		MongoURI:     os.Getenv("MONGO_URI"),
		MongoDB:      getEnv("MONGO_DB", "ice_breaker_app"),
		STTProvider:  getEnv("STT_PROVIDER", "google"),
		GoogleAPIKey: os.Getenv("GOOGLE_STT_API_KEY"),
		GoogleSTTURL: getEnv("GOOGLE_STT_URL", "https://speech.googleapis.com/v1/speech:recognize"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		Audio: AudioConfig{
			SampleRate:   getEnvInt("AUDIO_SAMPLE_RATE", 44100),
			Channels:     getEnvInt("AUDIO_CHANNELS", 1),
			BitDepth:     getEnvInt("AUDIO_BIT_DEPTH", 16),
			ChunkSeconds: getEnvInt("CHUNK_SECONDS", 120),
			ChunkDir:     getEnv("CHUNK_DIR", os.TempDir()),
		},
		Scoring: ScoringConfig{
			MaxWordCount: getEnvInt("MAX_WORD_COUNT", 170),
		},
	}

	if cfg.Audio.ChunkSeconds < 1 {
		return nil, fmt.Errorf("CHUNK_SECONDS must be at least 1, got %d", cfg.Audio.ChunkSeconds)
	}
	if cfg.Scoring.MaxWordCount < 1 {
		return nil, fmt.Errorf("MAX_WORD_COUNT must be at least 1, got %d", cfg.Scoring.MaxWordCount)
	}

	// STT credentials are validated by the provider factory, so the server
	// can still start with the mock provider or run unscored.

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
