// Dev utility: ingest a resume PDF from disk without going through the HTTP
// layer. Usage: go run scripts/ingest_resume.go <user-id> <path-to-pdf>
package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"hirevision/interview-api/internal/config"
	"hirevision/interview-api/internal/logger"
	"hirevision/interview-api/internal/repositories"
	"hirevision/interview-api/internal/services"
)

func main() {
	if len(os.Args) != 3 {
		log.Fatalf("usage: %s <user-id> <path-to-pdf>", os.Args[0])
	}
	userID := os.Args[1]
	pdfPath := os.Args[2]

	cfg := config.Load()

	zlog, err := logger.New(cfg.Server.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		zlog.Fatal("Failed to initialize database", zap.Error(err))
	}

	embedder := services.NewHuggingFaceEmbedder(
		cfg.HuggingFace.BaseURL,
		cfg.HuggingFace.APIKey,
		cfg.HuggingFace.Model,
		cfg.Qdrant.VectorSize,
		cfg.Upstream.EmbedTimeout,
		zlog,
	)

	vectorStore, err := services.NewQdrantStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		cfg.Qdrant.VectorSize,
		zlog,
	)
	if err != nil {
		zlog.Fatal("Failed to initialize Qdrant", zap.Error(err))
	}

	if err := vectorStore.InitCollection(); err != nil {
		zlog.Fatal("Failed to initialize collection", zap.Error(err))
	}

	ingest := services.NewIngestService(
		repositories.NewSessionRepository(db),
		services.NewPDFParserService(),
		embedder,
		vectorStore,
		zlog,
	)

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		zlog.Fatal("Failed to read PDF", zap.Error(err))
	}

	result, err := ingest.Ingest(context.Background(), data, pdfPath, pdfPath, userID, "")
	if err != nil {
		zlog.Fatal("Ingestion failed", zap.Error(err))
	}

	zlog.Info("Ingestion complete",
		zap.String("session_id", result.SessionID.String()),
		zap.Int("chunks", result.ChunkCount))
}
