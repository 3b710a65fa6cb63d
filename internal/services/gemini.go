package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"hirevision/interview-api/internal/apperr"
)

// Generator is the text-generation side of the pipeline: prompt in, text out.
type Generator interface {
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
	GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error)
}

type geminiService struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
	logger    *zap.Logger
}

func NewGeminiService(apiKey, modelName string, timeout time.Duration, logger *zap.Logger) (Generator, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:    client,
		modelName: modelName,
		timeout:   timeout,
		logger:    logger,
	}, nil
}

// GenerateText implements Generator.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	resp, err := g.client.Models.GenerateContent(callCtx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || callCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: generation call: %v", apperr.ErrUpstreamTimeout, err)
		}
		return "", fmt.Errorf("%w: failed to generate text: %v", apperr.ErrUpstreamModel, err)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: no response generated", apperr.ErrUpstreamModel)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: no text content in response", apperr.ErrUpstreamModel)
	}

	return text, nil
}

// GenerateTextWithRetry implements Generator.
func (g *geminiService) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := g.GenerateText(ctx, prompt, temperature)
		if err == nil {
			return result, nil
		}

		lastErr = err

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if attempt < maxRetries {
			g.logger.Warn("generation attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.Error(err))
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}
