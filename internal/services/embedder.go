package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"hirevision/interview-api/internal/apperr"
)

// Embedder turns text into a unit-length embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}

// maxEmbedInputBytes caps a single embedding payload.
const maxEmbedInputBytes = 10000

type huggingFaceEmbedder struct {
	client     *resty.Client
	model      string
	dimensions int
	logger     *zap.Logger
}

// NewHuggingFaceEmbedder builds an embedder backed by the HuggingFace
// Inference API feature-extraction pipeline. Each call is one synchronous
// round trip; no batching or caching.
func NewHuggingFaceEmbedder(baseURL, apiKey, model string, dimensions int, timeout time.Duration, logger *zap.Logger) Embedder {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")

	return &huggingFaceEmbedder{
		client:     client,
		model:      model,
		dimensions: dimensions,
		logger:     logger,
	}
}

// Embed implements Embedder.
func (e *huggingFaceEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: text for embedding cannot be empty", apperr.ErrValidation)
	}

	// The hosted model truncates long inputs itself, but cap the payload so a
	// pathological line does not ship megabytes upstream.
	if len(trimmed) > maxEmbedInputBytes {
		e.logger.Warn("embedding input truncated",
			zap.Int("length", len(trimmed)))
		trimmed = truncateUTF8(trimmed, maxEmbedInputBytes)
	}

	var raw []float32
	resp, err := e.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{"inputs": trimmed}).
		SetResult(&raw).
		Post("/pipeline/feature-extraction/" + e.model)

	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: embedding call: %v", apperr.ErrUpstreamTimeout, err)
		}
		return nil, fmt.Errorf("%w: embedding call failed: %v", apperr.ErrUpstreamModel, err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("%w: embedding API returned %s", apperr.ErrUpstreamModel, resp.Status())
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: invalid embedding response: expected non-empty numeric array", apperr.ErrUpstreamModel)
	}

	return Normalize(raw), nil
}

// Dimensions implements Embedder.
func (e *huggingFaceEmbedder) Dimensions() int {
	return e.dimensions
}

// Normalize scales vec to unit Euclidean norm. A zero vector is returned
// unchanged (divide by 1) so callers never see NaN.
func Normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}

	norm := math.Sqrt(sum)
	if norm == 0 {
		norm = 1
	}

	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(float64(v) / norm)
	}

	return out
}

// truncateUTF8 cuts s to at most max bytes without splitting a multi-byte
// rune: the cut backs off to the nearest rune start.
func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}

	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut]
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
