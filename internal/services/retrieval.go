package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// retrievalLimit is the number of chunks pulled into the prompt context.
// Resumes rarely exceed a few dozen lines, so this usually means "all of
// them, best matches first".
const retrievalLimit = 50

// Retriever assembles the resume context for a prompt: embed the query, run
// a session-scoped similarity search, join the texts.
type Retriever interface {
	BuildContext(ctx context.Context, sessionID uuid.UUID, userID, queryText string) (string, error)
}

type retriever struct {
	embedder Embedder
	store    VectorStore
}

func NewRetriever(embedder Embedder, store VectorStore) Retriever {
	return &retriever{
		embedder: embedder,
		store:    store,
	}
}

// BuildContext implements Retriever.
func (r *retriever) BuildContext(ctx context.Context, sessionID uuid.UUID, userID, queryText string) (string, error) {
	embedding, err := r.embedder.Embed(ctx, queryText)
	if err != nil {
		return "", fmt.Errorf("failed to embed query: %w", err)
	}

	results, err := r.store.SearchChunks(ctx, sessionID, userID, embedding, retrievalLimit)
	if err != nil {
		return "", fmt.Errorf("failed to search chunks: %w", err)
	}

	texts := make([]string, 0, len(results))
	for _, result := range results {
		texts = append(texts, result.Text)
	}

	return strings.Join(texts, "\n"), nil
}
