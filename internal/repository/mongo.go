package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"icebreaker/internal/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository connects to MongoDB and returns a recording repository
// backed by the "recordings" collection.
func NewMongoRepository(ctx context.Context, uri, database string) (RecordingRepository, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Printf("[Mongo] Connected, using database %q", database)

	return &mongoRepository{
		coll: client.Database(database).Collection("recordings"),
	}, nil
}

// Create stores a new recording and assigns its ID
func (r *mongoRepository) Create(ctx context.Context, rec *model.Recording) error {
	rec.ID = uuid.NewString()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to insert recording: %w", err)
	}

	return nil
}

// GetByID retrieves a recording by ID
func (r *mongoRepository) GetByID(ctx context.Context, id string) (*model.Recording, error) {
	var rec model.Recording
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recording: %w", err)
	}

	return &rec, nil
}

// UpdateScore applies the pipeline result bundle in one $set
func (r *mongoRepository) UpdateScore(ctx context.Context, id string, update *model.ScoreUpdate) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"transcribed_text":      update.Transcript,
			"word_count":            update.WordCount,
			"similarity_percentage": update.SimilarityPercentage,
			"score":                 update.Score,
			"processed_at":          update.ProcessedAt,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update recording: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// ListByUser retrieves a user's recordings newest-first, audio omitted
func (r *mongoRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Recording, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"audio_data": 0}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query recordings: %w", err)
	}
	defer cursor.Close(ctx)

	var recordings []model.Recording
	if err := cursor.All(ctx, &recordings); err != nil {
		return nil, fmt.Errorf("failed to decode recordings: %w", err)
	}

	return recordings, nil
}
