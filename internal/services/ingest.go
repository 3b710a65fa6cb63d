package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hirevision/interview-api/internal/models"
	"hirevision/interview-api/internal/repositories"
)

// IngestResult reports what one resume upload produced.
type IngestResult struct {
	SessionID  uuid.UUID
	ChunkCount int
	// Text is the full extracted resume text, kept so callers (ATS analysis)
	// do not parse the PDF twice.
	Text string
}

// IngestService turns an uploaded PDF into a session plus one embedded chunk
// per non-blank line of extracted text.
type IngestService interface {
	Ingest(ctx context.Context, pdfBytes []byte, fileName, storedPath, userID, jobDescription string) (*IngestResult, error)
}

type ingestService struct {
	sessionRepo repositories.SessionRepository
	pdfParser   PDFParserService
	embedder    Embedder
	store       VectorStore
	logger      *zap.Logger
}

func NewIngestService(
	sessionRepo repositories.SessionRepository,
	pdfParser PDFParserService,
	embedder Embedder,
	store VectorStore,
	logger *zap.Logger,
) IngestService {
	return &ingestService{
		sessionRepo: sessionRepo,
		pdfParser:   pdfParser,
		embedder:    embedder,
		store:       store,
		logger:      logger,
	}
}

// Ingest implements IngestService. Steps run sequentially with no rollback:
// a PDF that fails to parse creates nothing, but once the session exists it
// stays even if every line fails to embed. A single bad line is logged and
// skipped rather than aborting the upload.
func (s *ingestService) Ingest(ctx context.Context, pdfBytes []byte, fileName, storedPath, userID, jobDescription string) (*IngestResult, error) {
	text, err := s.pdfParser.ExtractText(pdfBytes)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		ID:        uuid.New(),
		UserID:    userID,
		FileName:  fileName,
		PDFPath:   storedPath,
		CreatedAt: time.Now(),
	}
	if jobDescription != "" {
		session.JobDescription = &jobDescription
	}

	if err := s.sessionRepo.Create(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	lines := SplitLines(text)

	stored := 0
	for _, line := range lines {
		embedding, err := s.embedder.Embed(ctx, line)
		if err != nil {
			s.logger.Warn("skipping line, embedding failed",
				zap.String("session_id", session.ID.String()),
				zap.String("line", line),
				zap.Error(err))
			continue
		}

		if err := s.store.UpsertChunk(ctx, session.ID, userID, line, embedding); err != nil {
			s.logger.Warn("skipping line, chunk insert failed",
				zap.String("session_id", session.ID.String()),
				zap.Error(err))
			continue
		}

		stored++
	}

	s.logger.Info("resume ingested",
		zap.String("session_id", session.ID.String()),
		zap.String("file_name", fileName),
		zap.Int("lines", len(lines)),
		zap.Int("chunks_stored", stored))

	return &IngestResult{
		SessionID:  session.ID,
		ChunkCount: len(lines),
		Text:       text,
	}, nil
}
