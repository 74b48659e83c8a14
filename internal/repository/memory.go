package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"icebreaker/internal/model"

	"github.com/google/uuid"
)

// memoryRepository keeps recordings in a mutex-guarded map. Used when
// MONGO_URI is not set and as the storage fake in tests.
type memoryRepository struct {
	mu         sync.Mutex
	recordings map[string]*model.Recording
}

// NewMemoryRepository creates an in-memory recording repository
func NewMemoryRepository() RecordingRepository {
	return &memoryRepository{
		recordings: make(map[string]*model.Recording),
	}
}

func (r *memoryRepository) Create(_ context.Context, rec *model.Recording) error {
	rec.ID = uuid.NewString()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *rec
	r.recordings[rec.ID] = &stored
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*model.Recording, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.recordings[id]
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy to avoid race conditions
	recCopy := *rec
	return &recCopy, nil
}

func (r *memoryRepository) UpdateScore(_ context.Context, id string, update *model.ScoreUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.recordings[id]
	if !ok {
		return ErrNotFound
	}

	transcript := update.Transcript
	wordCount := update.WordCount
	similarity := update.SimilarityPercentage
	score := update.Score
	processedAt := update.ProcessedAt

	rec.Transcript = &transcript
	rec.WordCount = &wordCount
	rec.SimilarityPercentage = &similarity
	rec.Score = &score
	rec.ProcessedAt = &processedAt
	return nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID string, limit, offset int) ([]model.Recording, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []model.Recording
	for _, rec := range r.recordings {
		if rec.UserID != userID {
			continue
		}
		recCopy := *rec
		recCopy.AudioData = nil
		matched = append(matched, recCopy)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if offset >= len(matched) {
		return []model.Recording{}, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}

	return matched, nil
}
