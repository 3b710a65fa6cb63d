package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hirevision/interview-api/internal/apperr"
	"hirevision/interview-api/internal/llmjson"
	"hirevision/interview-api/internal/models"
	"hirevision/interview-api/internal/repositories"
)

// ATSResult is the outcome of one resume-vs-job-description analysis.
type ATSResult struct {
	SessionID  uuid.UUID
	TotalLines int
	Analysis   models.ATSAnalysis
}

type ATSService interface {
	Analyze(ctx context.Context, pdfBytes []byte, fileName, storedPath, userID, jobDescription string) (*ATSResult, error)
}

type atsService struct {
	ingest        IngestService
	sessionRepo   repositories.SessionRepository
	generator     Generator
	promptBuilder *PromptBuilder
	maxRetries    int
	logger        *zap.Logger
}

func NewATSService(
	ingest IngestService,
	sessionRepo repositories.SessionRepository,
	generator Generator,
	maxRetries int,
	logger *zap.Logger,
) ATSService {
	return &atsService{
		ingest:        ingest,
		sessionRepo:   sessionRepo,
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
		logger:        logger,
	}
}

// Analyze implements ATSService. The resume is ingested first so the session
// is usable for interviews even when the analysis itself fails; the analysis
// is an enrichment, not a precondition.
func (s *atsService) Analyze(ctx context.Context, pdfBytes []byte, fileName, storedPath, userID, jobDescription string) (*ATSResult, error) {
	ingested, err := s.ingest.Ingest(ctx, pdfBytes, fileName, storedPath, userID, jobDescription)
	if err != nil {
		return nil, err
	}

	prompt := s.promptBuilder.BuildATSPrompt(ingested.Text, jobDescription)

	response, err := s.generator.GenerateTextWithRetry(ctx, prompt, 0.3, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ATS analysis: %w", err)
	}

	var analysis models.ATSAnalysis
	if err := llmjson.DecodeInto(response, &analysis); err != nil {
		s.logger.Error("ATS analysis response is not valid JSON",
			zap.String("session_id", ingested.SessionID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", apperr.ErrAnalysisParse, err)
	}

	serialized, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize analysis: %w", err)
	}

	if err := s.sessionRepo.AttachAnalysis(ingested.SessionID, analysis.OverallScore, string(serialized)); err != nil {
		return nil, err
	}

	return &ATSResult{
		SessionID:  ingested.SessionID,
		TotalLines: ingested.ChunkCount,
		Analysis:   analysis,
	}, nil
}
