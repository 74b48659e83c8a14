package repository

import (
	"context"
	"errors"

	"icebreaker/internal/model"
)

// ErrNotFound is returned when no recording matches the given ID.
var ErrNotFound = errors.New("recording not found")

// RecordingRepository defines the interface for recording data access
type RecordingRepository interface {
	// Create stores a new recording and assigns its ID
	Create(ctx context.Context, rec *model.Recording) error

	// GetByID retrieves a recording (including audio bytes) by ID
	GetByID(ctx context.Context, id string) (*model.Recording, error)

	// UpdateScore applies the pipeline result bundle to a recording
	UpdateScore(ctx context.Context, id string, update *model.ScoreUpdate) error

	// ListByUser retrieves a user's recordings newest-first with pagination,
	// audio bytes omitted
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Recording, error)
}
