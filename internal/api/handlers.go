package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"icebreaker/internal/audio"
	"icebreaker/internal/model"
	"icebreaker/internal/pipeline"
	"icebreaker/internal/repository"
	"icebreaker/internal/utils"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 32 << 20 // 32MB, ~120s of 44.1kHz mono 16-bit WAV with headroom

var (
	recordingRepo repository.RecordingRepository
	proc          *pipeline.Pipeline
)

// Init wires the handlers to their collaborators.
func Init(repo repository.RecordingRepository, p *pipeline.Pipeline) {
	recordingRepo = repo
	proc = p
	log.Printf("API handlers initialized")
}

func RegisterRoutes(r *gin.Engine) {
	// Recorder web page
	r.GET("/", homePage)

	// Health check
	r.GET("/health", healthCheck)

	// API v1
	v1 := r.Group("/api/v1")
	{
		v1.GET("/questions/random", getRandomQuestion)
		v1.POST("/recordings", createRecording)
		v1.GET("/recordings/history", getHistory)
		v1.GET("/recordings/:recording_id", getRecording)
		v1.GET("/recordings/:recording_id/audio", playRecording)
		v1.POST("/recordings/:recording_id/process", processRecording)
	}
}

// healthCheck returns server health status
func healthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":  "ok",
		"service": "icebreaker-backend",
	})
}

// getRandomQuestion returns a random ice breaker prompt
func getRandomQuestion(c *gin.Context) {
	utils.Success(c, gin.H{
		"question": randomQuestion(),
	})
}

// createRecording accepts a captured WAV upload, persists it, runs the
// scoring pipeline and returns the result bundle with the record ID.
func createRecording(c *gin.Context) {
	file, err := c.FormFile("audio_file")
	if err != nil {
		// Try alternative field names
		if file, err = c.FormFile("audio"); err != nil {
			if file, err = c.FormFile("file"); err != nil {
				utils.Error(c, http.StatusBadRequest, "audio_file is required")
				return
			}
		}
	}

	if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != ".wav" && ext != "" {
		utils.Error(c, http.StatusBadRequest, "unsupported audio format, expected mono PCM WAV")
		return
	}
	if file.Size > maxUploadBytes {
		utils.Error(c, http.StatusBadRequest, "file size exceeds 32MB limit")
		return
	}

	src, err := file.Open()
	if err != nil {
		log.Printf("[Capture] Failed to open upload: %v", err)
		utils.Error(c, http.StatusBadRequest, "failed to read audio upload")
		return
	}
	defer src.Close()

	audioData, err := io.ReadAll(src)
	if err != nil {
		log.Printf("[Capture] Failed to read upload: %v", err)
		utils.Error(c, http.StatusBadRequest, "failed to read audio upload")
		return
	}

	prompt := c.PostForm("prompt")
	userID := c.PostForm("user_id")
	if userID == "" {
		userID = "anonymous"
	}

	rec := &model.Recording{
		UserID:    userID,
		Prompt:    prompt,
		AudioData: audioData,
		CreatedAt: time.Now(),
	}
	if err := recordingRepo.Create(c.Request.Context(), rec); err != nil {
		log.Printf("[Capture] Failed to store recording: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to store recording")
		return
	}

	log.Printf("[Capture] Recording stored: %s (%d bytes, user: %s)", rec.ID, len(audioData), userID)

	bundle, ok := runPipeline(c, rec.ID, audioData, prompt)
	if !ok {
		return
	}

	utils.Success(c, gin.H{
		"record_id":             rec.ID,
		"transcribed_text":      bundle.Transcript,
		"word_count":            bundle.WordCount,
		"score":                 bundle.Score,
		"similarity_percentage": bundle.SimilarityPercentage,
	})
}

// processRecording re-runs the pipeline against a stored recording
func processRecording(c *gin.Context) {
	id := c.Param("recording_id")

	rec, err := recordingRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, id, err)
		return
	}

	log.Printf("[Process] Re-processing recording: %s", id)

	bundle, ok := runPipeline(c, rec.ID, rec.AudioData, rec.Prompt)
	if !ok {
		return
	}

	utils.Success(c, gin.H{
		"record_id":             rec.ID,
		"transcribed_text":      bundle.Transcript,
		"word_count":            bundle.WordCount,
		"score":                 bundle.Score,
		"similarity_percentage": bundle.SimilarityPercentage,
	})
}

// runPipeline processes audio and persists the result bundle. On failure it
// writes the error response and returns ok=false.
func runPipeline(c *gin.Context, recordID string, audioData []byte, prompt string) (*pipeline.Result, bool) {
	bundle, err := proc.Process(c.Request.Context(), audioData, prompt)
	if err != nil {
		log.Printf("[Pipeline] Processing failed for recording %s: %v", recordID, err)
		if errors.Is(err, audio.ErrDecode) {
			utils.Error(c, http.StatusBadRequest, "audio is not a valid waveform")
		} else {
			utils.Error(c, http.StatusInternalServerError, "failed to process recording")
		}
		return nil, false
	}

	update := &model.ScoreUpdate{
		Transcript:           bundle.Transcript,
		WordCount:            bundle.WordCount,
		SimilarityPercentage: bundle.SimilarityPercentage,
		Score:                bundle.Score,
		ProcessedAt:          time.Now(),
	}
	if err := recordingRepo.UpdateScore(c.Request.Context(), recordID, update); err != nil {
		log.Printf("[Pipeline] Failed to save score for recording %s: %v", recordID, err)
		utils.Error(c, http.StatusInternalServerError, "failed to save score")
		return nil, false
	}

	return bundle, true
}

// getHistory returns a user's recordings newest-first, audio bytes omitted
func getHistory(c *gin.Context) {
	userID := c.DefaultQuery("user_id", "anonymous")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100 // Max limit
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	recordings, err := recordingRepo.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		log.Printf("[History] Error listing recordings: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to retrieve history")
		return
	}

	items := make([]gin.H, 0, len(recordings))
	for _, rec := range recordings {
		item := gin.H{
			"id":         rec.ID,
			"prompt":     rec.Prompt,
			"created_at": rec.CreatedAt,
		}
		if rec.Score != nil {
			item["score"] = *rec.Score
		}
		if rec.WordCount != nil {
			item["word_count"] = *rec.WordCount
		}
		if rec.SimilarityPercentage != nil {
			item["similarity_percentage"] = *rec.SimilarityPercentage
		}
		items = append(items, item)
	}

	utils.Success(c, gin.H{
		"recordings": items,
		"limit":      limit,
		"offset":     offset,
		"count":      len(items),
	})
}

// getRecording returns one recording's metadata and score
func getRecording(c *gin.Context) {
	id := c.Param("recording_id")

	rec, err := recordingRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, id, err)
		return
	}

	response := gin.H{
		"id":         rec.ID,
		"user_id":    rec.UserID,
		"prompt":     rec.Prompt,
		"created_at": rec.CreatedAt,
	}
	if rec.Transcript != nil {
		response["transcribed_text"] = *rec.Transcript
	}
	if rec.WordCount != nil {
		response["word_count"] = *rec.WordCount
	}
	if rec.SimilarityPercentage != nil {
		response["similarity_percentage"] = *rec.SimilarityPercentage
	}
	if rec.Score != nil {
		response["score"] = *rec.Score
	}
	if rec.ProcessedAt != nil {
		response["processed_at"] = *rec.ProcessedAt
	}

	utils.Success(c, response)
}

// playRecording streams the raw audio bytes for playback
func playRecording(c *gin.Context) {
	id := c.Param("recording_id")

	rec, err := recordingRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, id, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=recording_%s.wav", rec.ID))
	c.Data(http.StatusOK, "audio/wav", rec.AudioData)
}

func respondLookupError(c *gin.Context, id string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		utils.Error(c, http.StatusNotFound, "recording not found")
		return
	}
	log.Printf("[API] Error loading recording %s: %v", id, err)
	utils.Error(c, http.StatusInternalServerError, "failed to load recording")
}
