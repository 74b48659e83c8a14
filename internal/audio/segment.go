package audio

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"icebreaker/internal/config"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrDecode is returned when the input cannot be parsed as a WAV waveform.
var ErrDecode = errors.New("invalid wav data")

// Chunk is one bounded-duration slice of a recording, written out as an
// independent mono PCM WAV file. Chunks are transient: the pipeline removes
// them after transcription.
type Chunk struct {
	Index      int
	Path       string
	DurationMs int
}

// Remove deletes the chunk file.
func (c Chunk) Remove() error {
	return os.Remove(c.Path)
}

// Segmenter splits a WAV stream into fixed-duration chunks sized for STT
// APIs with input-length limits.
type Segmenter struct {
	cfg config.AudioConfig
}

// NewSegmenter creates a segmenter using the given audio configuration.
func NewSegmenter(cfg config.AudioConfig) *Segmenter {
	return &Segmenter{cfg: cfg}
}

// Segment decodes the input once and materializes ceil(duration/ChunkSeconds)
// WAV chunk files in ChunkDir, in order. Chunk boundaries are computed in
// milliseconds. A valid zero-duration waveform yields an empty chunk list.
func (s *Segmenter) Segment(r io.ReadSeeker) ([]Chunk, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%w: not a valid wav file", ErrDecode)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	format := buf.Format
	if format == nil || format.SampleRate <= 0 || format.NumChannels <= 0 {
		return nil, fmt.Errorf("%w: missing format header", ErrDecode)
	}

	bitDepth := int(decoder.BitDepth)
	if bitDepth == 0 {
		bitDepth = s.cfg.BitDepth
	}

	frames := len(buf.Data) / format.NumChannels
	totalMs := frames * 1000 / format.SampleRate
	chunkMs := s.cfg.ChunkSeconds * 1000

	log.Printf("[Segmenter] Decoded waveform: %d frames, %dms total, %dHz, %d channel(s)",
		frames, totalMs, format.SampleRate, format.NumChannels)

	var chunks []Chunk
	for i := 0; i*chunkMs < totalMs; i++ {
		startMs := i * chunkMs
		endMs := (i + 1) * chunkMs
		if endMs > totalMs {
			endMs = totalMs
		}

		startFrame := startMs * format.SampleRate / 1000
		endFrame := endMs * format.SampleRate / 1000
		if i*chunkMs+chunkMs >= totalMs {
			// Last chunk takes any frames left over from ms rounding.
			endFrame = frames
		}

		chunk, err := s.writeChunk(i, buf.Data[startFrame*format.NumChannels:endFrame*format.NumChannels], format, bitDepth)
		if err != nil {
			removeAll(chunks)
			return nil, err
		}
		chunk.DurationMs = endMs - startMs
		chunks = append(chunks, chunk)
	}

	return chunks, nil
}

func (s *Segmenter) writeChunk(index int, samples []int, format *goaudio.Format, bitDepth int) (Chunk, error) {
	file, err := os.CreateTemp(s.cfg.ChunkDir, fmt.Sprintf("chunk_%d_*.wav", index))
	if err != nil {
		return Chunk{}, fmt.Errorf("failed to create chunk file: %w", err)
	}
	defer file.Close()

	enc := wav.NewEncoder(file, format.SampleRate, bitDepth, format.NumChannels, 1)
	if err := enc.Write(&goaudio.IntBuffer{Format: format, Data: samples, SourceBitDepth: bitDepth}); err != nil {
		os.Remove(file.Name())
		return Chunk{}, fmt.Errorf("failed to write chunk %d: %w", index, err)
	}
	if err := enc.Close(); err != nil {
		os.Remove(file.Name())
		return Chunk{}, fmt.Errorf("failed to close chunk %d encoder: %w", index, err)
	}

	return Chunk{Index: index, Path: file.Name()}, nil
}

func removeAll(chunks []Chunk) {
	for _, c := range chunks {
		if err := c.Remove(); err != nil {
			log.Printf("[Segmenter] Failed to remove chunk %s: %v", c.Path, err)
		}
	}
}
