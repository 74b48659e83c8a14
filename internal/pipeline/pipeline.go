package pipeline

import (
	"bytes"
	"context"
	"log"
	"strings"

	"icebreaker/internal/audio"
	"icebreaker/internal/config"
	"icebreaker/internal/scoring"
	"icebreaker/internal/stt"
)

// Result is the bundle produced by one pipeline run.
type Result struct {
	Transcript           string
	WordCount            int
	Score                float64
	SimilarityPercentage float64
}

// Pipeline turns a raw recording into a scored transcript: it segments the
// waveform, transcribes each chunk in order, concatenates the texts and
// scores the result against the prompt.
type Pipeline struct {
	segmenter *audio.Segmenter
	provider  stt.Provider
	cfg       config.ScoringConfig
}

// New creates a pipeline over the given segmenter and STT provider.
func New(segmenter *audio.Segmenter, provider stt.Provider, cfg config.ScoringConfig) *Pipeline {
	return &Pipeline{
		segmenter: segmenter,
		provider:  provider,
		cfg:       cfg,
	}
}

// Process runs the full pipeline over raw WAV bytes. Per-chunk transcription
// failures degrade to empty text and never abort the run; only a decode
// failure is fatal. Chunk order is preserved in the final transcript.
func (p *Pipeline) Process(ctx context.Context, audioData []byte, prompt string) (*Result, error) {
	chunks, err := p.segmenter.Segment(bytes.NewReader(audioData))
	if err != nil {
		return nil, err
	}

	var texts []string
	for _, chunk := range chunks {
		// Failed chunks contribute no text; they must not leave a gap in
		// the concatenated transcript.
		if text := p.transcribeChunk(ctx, chunk); text != "" {
			texts = append(texts, text)
		}

		if err := chunk.Remove(); err != nil {
			log.Printf("[Pipeline] Failed to remove chunk %d (%s): %v", chunk.Index, chunk.Path, err)
		}
	}

	fullText := strings.TrimSpace(strings.Join(texts, " "))
	wordCount := len(strings.Fields(fullText))

	score, similarityPercentage := scoring.Score(wordCount, prompt, fullText, p.cfg.MaxWordCount)

	log.Printf("[Pipeline] Processed %d chunk(s): words=%d, similarity=%.2f%%, score=%.2f",
		len(chunks), wordCount, similarityPercentage, score)

	return &Result{
		Transcript:           fullText,
		WordCount:            wordCount,
		Score:                score,
		SimilarityPercentage: similarityPercentage,
	}, nil
}

// transcribeChunk is the boundary where STT flakiness is absorbed: any
// provider error degrades to an empty transcript for that chunk.
func (p *Pipeline) transcribeChunk(ctx context.Context, chunk audio.Chunk) string {
	result, err := p.provider.Transcribe(ctx, chunk.Path)
	if err != nil {
		log.Printf("[Pipeline] Chunk %d transcription failed (provider: %s): %v",
			chunk.Index, p.provider.Name(), err)
		return ""
	}
	return result.Transcript
}
