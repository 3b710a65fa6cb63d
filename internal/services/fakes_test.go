package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"hirevision/interview-api/internal/apperr"
	"hirevision/interview-api/internal/models"
)

// In-memory fakes for the service interfaces. They record calls so tests can
// assert on side effects.

type fakeEmbedder struct {
	dims    int
	failOn  map[string]bool
	calls   []string
	nextVec []float32
}

func newFakeEmbedder() *fakeEmbedder {
	return &fakeEmbedder{dims: 4, failOn: map[string]bool{}}
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls = append(f.calls, text)
	if f.failOn[text] {
		return nil, fmt.Errorf("embedding failed for %q", text)
	}
	if f.nextVec != nil {
		return f.nextVec, nil
	}
	return []float32{1, 0, 0, 0}, nil
}

func (f *fakeEmbedder) Dimensions() int { return f.dims }

type storedChunk struct {
	SessionID uuid.UUID
	UserID    string
	Text      string
	Embedding []float32
}

type fakeVectorStore struct {
	chunks  []storedChunk
	results []ChunkResult
	failAll bool
}

func (f *fakeVectorStore) InitCollection() error { return nil }

func (f *fakeVectorStore) UpsertChunk(_ context.Context, sessionID uuid.UUID, userID string, text string, embedding []float32) error {
	if f.failAll {
		return fmt.Errorf("upsert failed")
	}
	f.chunks = append(f.chunks, storedChunk{
		SessionID: sessionID,
		UserID:    userID,
		Text:      text,
		Embedding: embedding,
	})
	return nil
}

func (f *fakeVectorStore) SearchChunks(_ context.Context, sessionID uuid.UUID, userID string, _ []float32, limit int) ([]ChunkResult, error) {
	if f.results != nil {
		return f.results, nil
	}
	var out []ChunkResult
	for _, c := range f.chunks {
		if c.SessionID == sessionID && c.UserID == userID {
			out = append(out, ChunkResult{Text: c.Text, Score: 1})
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*models.Session
	analyses map[uuid.UUID]string
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions: map[uuid.UUID]*models.Session{},
		analyses: map[uuid.UUID]string{},
	}
}

func (f *fakeSessionRepo) Create(session *models.Session) error {
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) FindByID(id uuid.UUID) (*models.Session, error) {
	if s, ok := f.sessions[id]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("session not found")
}

func (f *fakeSessionRepo) FindOwned(id uuid.UUID, userID string) (*models.Session, error) {
	if s, ok := f.sessions[id]; ok && s.UserID == userID {
		return s, nil
	}
	return nil, apperr.ErrAccessDenied
}

func (f *fakeSessionRepo) AttachAnalysis(id uuid.UUID, score int, analysisJSON string) error {
	s, ok := f.sessions[id]
	if !ok {
		return fmt.Errorf("session not found")
	}
	s.ATSScore = &score
	s.ATSAnalysis = &analysisJSON
	f.analyses[id] = analysisJSON
	return nil
}

func (f *fakeSessionRepo) UpdateDifficulty(id uuid.UUID, difficulty string) error {
	s, ok := f.sessions[id]
	if !ok {
		return fmt.Errorf("session not found")
	}
	s.Difficulty = &difficulty
	return nil
}

type fakeConversationRepo struct {
	turns []models.ConversationTurn
}

func (f *fakeConversationRepo) Append(turn *models.ConversationTurn) error {
	f.turns = append(f.turns, *turn)
	return nil
}

func (f *fakeConversationRepo) RecentHistory(sessionID uuid.UUID, userID string, limit int) ([]models.ConversationTurn, error) {
	var matched []models.ConversationTurn
	for _, t := range f.turns {
		if t.SessionID == sessionID && t.UserID == userID {
			matched = append(matched, t)
		}
	}
	// Most recent turns only, chronological within the window.
	if len(matched) > limit {
		matched = matched[len(matched)-limit:]
	}
	return matched, nil
}

func (f *fakeConversationRepo) AskedQuestions(sessionID uuid.UUID, userID string) ([]models.ConversationTurn, error) {
	var out []models.ConversationTurn
	for _, t := range f.turns {
		if t.SessionID == sessionID && t.UserID == userID &&
			t.Role == models.RoleAssistant && t.Action == models.ActionAskQuestion {
			out = append(out, t)
		}
	}
	return out, nil
}

// fakeGenerator replays scripted responses in order.
type fakeGenerator struct {
	responses []string
	errs      []error
	prompts   []string
	calls     int
}

func (f *fakeGenerator) GenerateText(_ context.Context, prompt string, _ float32) (string, error) {
	f.prompts = append(f.prompts, prompt)
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", fmt.Errorf("no scripted response for call %d", i)
}

func (f *fakeGenerator) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, _ int) (string, error) {
	return f.GenerateText(ctx, prompt, temperature)
}

type fakeRetriever struct {
	contextText string
	queries     []string
}

func (f *fakeRetriever) BuildContext(_ context.Context, _ uuid.UUID, _ string, queryText string) (string, error) {
	f.queries = append(f.queries, queryText)
	return f.contextText, nil
}
