package main

import (
	"context"
	"log"
	"os"

	"icebreaker/internal/api"
	"icebreaker/internal/audio"
	"icebreaker/internal/config"
	"icebreaker/internal/pipeline"
	"icebreaker/internal/repository"
	"icebreaker/internal/stt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Pick the recording store: MongoDB when configured, in-memory otherwise
	var repo repository.RecordingRepository
	if cfg.MongoURI != "" {
		log.Printf("Connecting to MongoDB...")
		repo, err = repository.NewMongoRepository(context.Background(), cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Fatalf("Failed to initialize MongoDB repository: %v", err)
		}
	} else {
		log.Println("MONGO_URI not set, recordings are kept in memory only")
		repo = repository.NewMemoryRepository()
	}

	// Build the scoring pipeline
	provider, err := stt.CreateProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to create STT provider: %v", err)
	}
	proc := pipeline.New(audio.NewSegmenter(cfg.Audio), provider, cfg.Scoring)

	api.Init(repo, proc)

	r := gin.Default()

	// Add CORS middleware for browser clients
	r.Use(corsMiddleware())

	// Register routes
	api.RegisterRoutes(r)

	log.Printf("Ice Breaker backend running on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// corsMiddleware adds CORS headers for browser clients
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
