package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"icebreaker/internal/model"
)

func TestMemoryCreateAssignsID(t *testing.T) {
	repo := NewMemoryRepository()
	rec := &model.Recording{UserID: "alice", Prompt: "p", AudioData: []byte{1, 2, 3}}

	if err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected an assigned ID")
	}
	if rec.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	got, err := repo.GetByID(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserID != "alice" || string(got.AudioData) != string([]byte{1, 2, 3}) {
		t.Fatalf("unexpected stored recording: %+v", got)
	}
}

func TestMemoryGetNotFound(t *testing.T) {
	repo := NewMemoryRepository()
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryUpdateScoreSetsAllFields(t *testing.T) {
	repo := NewMemoryRepository()
	rec := &model.Recording{UserID: "alice", Prompt: "p"}
	if err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("create: %v", err)
	}

	update := &model.ScoreUpdate{
		Transcript:           "hello world",
		WordCount:            2,
		SimilarityPercentage: 12.5,
		Score:                13.21,
		ProcessedAt:          time.Now(),
	}
	if err := repo.UpdateScore(context.Background(), rec.ID, update); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Transcript == nil || *got.Transcript != "hello world" {
		t.Fatalf("transcript not updated: %+v", got)
	}
	if got.WordCount == nil || *got.WordCount != 2 {
		t.Fatalf("word count not updated: %+v", got)
	}
	if got.SimilarityPercentage == nil || *got.SimilarityPercentage != 12.5 {
		t.Fatalf("similarity not updated: %+v", got)
	}
	if got.Score == nil || *got.Score != 13.21 {
		t.Fatalf("score not updated: %+v", got)
	}
	if got.ProcessedAt == nil {
		t.Fatalf("processed_at not updated: %+v", got)
	}
}

func TestMemoryUpdateScoreNotFound(t *testing.T) {
	repo := NewMemoryRepository()
	err := repo.UpdateScore(context.Background(), "missing", &model.ScoreUpdate{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryListByUserNewestFirst(t *testing.T) {
	repo := NewMemoryRepository()
	base := time.Now()

	for i := 0; i < 3; i++ {
		rec := &model.Recording{
			UserID:    "alice",
			Prompt:    "p",
			AudioData: []byte{1},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(context.Background(), rec); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if err := repo.Create(context.Background(), &model.Recording{UserID: "bob", Prompt: "q"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	recordings, err := repo.ListByUser(context.Background(), "alice", 20, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recordings) != 3 {
		t.Fatalf("expected 3 recordings, got %d", len(recordings))
	}
	for i := 1; i < len(recordings); i++ {
		if recordings[i].CreatedAt.After(recordings[i-1].CreatedAt) {
			t.Fatal("expected newest-first ordering")
		}
	}
	for _, rec := range recordings {
		if rec.AudioData != nil {
			t.Fatal("expected audio bytes to be omitted from listings")
		}
	}
}

func TestMemoryListByUserPagination(t *testing.T) {
	repo := NewMemoryRepository()
	base := time.Now()
	for i := 0; i < 5; i++ {
		rec := &model.Recording{
			UserID:    "alice",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(context.Background(), rec); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	page, err := repo.ListByUser(context.Background(), "alice", 2, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected page of 2, got %d", len(page))
	}

	past, err := repo.ListByUser(context.Background(), "alice", 2, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(past) != 0 {
		t.Fatalf("expected empty page past the end, got %d", len(past))
	}
}
