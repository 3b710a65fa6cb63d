package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

// VectorStore holds resume chunks and serves session-scoped similarity
// search. The session/user filter is applied inside the engine, so one
// session's chunks can never surface in another session's results no matter
// how large the global collection grows.
type VectorStore interface {
	InitCollection() error
	UpsertChunk(ctx context.Context, sessionID uuid.UUID, userID string, text string, embedding []float32) error
	SearchChunks(ctx context.Context, sessionID uuid.UUID, userID string, queryEmbedding []float32, limit int) ([]ChunkResult, error)
}

type ChunkResult struct {
	Text  string
	Score float32
}

type qdrantStore struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
	logger         *zap.Logger
}

func NewQdrantStore(urlStr, apiKey, collectionName string, vectorSize int, logger *zap.Logger) (VectorStore, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantStore{
		client:         client,
		collectionName: collectionName,
		vectorSize:     uint64(vectorSize),
		logger:         logger,
	}, nil
}

// InitCollection implements VectorStore.
func (q *qdrantStore) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	q.logger.Info("qdrant collection created",
		zap.String("collection", q.collectionName),
		zap.Uint64("vector_size", q.vectorSize))
	return nil
}

// UpsertChunk implements VectorStore.
func (q *qdrantStore) UpsertChunk(ctx context.Context, sessionID uuid.UUID, userID string, text string, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(uuid.New().String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"session_id": sessionID.String(),
			"user_id":    userID,
			"text":       text,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert chunk: %w", err)
	}

	return nil
}

// SearchChunks implements VectorStore.
func (q *qdrantStore) SearchChunks(ctx context.Context, sessionID uuid.UUID, userID string, queryEmbedding []float32, limit int) ([]ChunkResult, error) {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("session_id", sessionID.String()),
			qdrant.NewMatch("user_id", userID),
		},
	}

	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}

	// Results arrive in descending similarity order
	var results []ChunkResult
	for _, point := range searchResult {
		result := ChunkResult{Score: point.Score}

		if text, ok := point.Payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				result.Text = val.StringValue
			}
		}

		results = append(results, result)
	}

	return results, nil
}
