package model

import "time"

// Recording represents one ice-breaker speech attempt. The identity, prompt
// and audio fields are written once at capture time; the scoring fields are
// filled together by a single update after the pipeline runs.
type Recording struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Prompt    string    `bson:"prompt" json:"prompt"`
	AudioData []byte    `bson:"audio_data,omitempty" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`

	Transcript           *string    `bson:"transcribed_text,omitempty" json:"transcribed_text,omitempty"`
	WordCount            *int       `bson:"word_count,omitempty" json:"word_count,omitempty"`
	SimilarityPercentage *float64   `bson:"similarity_percentage,omitempty" json:"similarity_percentage,omitempty"`
	Score                *float64   `bson:"score,omitempty" json:"score,omitempty"`
	ProcessedAt          *time.Time `bson:"processed_at,omitempty" json:"processed_at,omitempty"`
}

// ScoreUpdate carries the result bundle of one pipeline run. All fields are
// applied to a recording in one atomic update.
type ScoreUpdate struct {
	Transcript           string
	WordCount            int
	SimilarityPercentage float64
	Score                float64
	ProcessedAt          time.Time
}
