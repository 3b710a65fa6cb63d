package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContextJoinsResults(t *testing.T) {
	embedder := newFakeEmbedder()
	store := &fakeVectorStore{
		results: []ChunkResult{
			{Text: "Senior Go developer, 5 years", Score: 0.91},
			{Text: "Built event pipelines on Kafka", Score: 0.84},
			{Text: "B.Sc. Computer Science", Score: 0.52},
		},
	}

	r := NewRetriever(embedder, store)

	out, err := r.BuildContext(context.Background(), uuid.New(), "u1", "golang experience")
	require.NoError(t, err)
	assert.Equal(t, "Senior Go developer, 5 years\nBuilt event pipelines on Kafka\nB.Sc. Computer Science", out)

	// The query text itself is what gets embedded.
	require.Len(t, embedder.calls, 1)
	assert.Equal(t, "golang experience", embedder.calls[0])
}

func TestBuildContextScopesToSession(t *testing.T) {
	embedder := newFakeEmbedder()
	store := &fakeVectorStore{}

	mine := uuid.New()
	other := uuid.New()
	vec := []float32{1, 0, 0, 0}
	require.NoError(t, store.UpsertChunk(context.Background(), mine, "u1", "Python", vec))
	require.NoError(t, store.UpsertChunk(context.Background(), other, "u1", "Rust", vec))
	require.NoError(t, store.UpsertChunk(context.Background(), mine, "u2", "Java", vec))

	r := NewRetriever(embedder, store)

	out, err := r.BuildContext(context.Background(), mine, "u1", "skills")
	require.NoError(t, err)
	assert.Equal(t, "Python", out)
}

func TestBuildContextEmptySession(t *testing.T) {
	r := NewRetriever(newFakeEmbedder(), &fakeVectorStore{})

	out, err := r.BuildContext(context.Background(), uuid.New(), "u1", "skills")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestBuildContextPropagatesEmbedFailure(t *testing.T) {
	embedder := newFakeEmbedder()
	embedder.failOn["skills"] = true

	r := NewRetriever(embedder, &fakeVectorStore{})

	_, err := r.BuildContext(context.Background(), uuid.New(), "u1", "skills")
	assert.Error(t, err)
}
