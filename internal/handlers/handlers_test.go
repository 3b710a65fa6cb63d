package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"hirevision/interview-api/internal/apperr"
	"hirevision/interview-api/internal/models"
	"hirevision/interview-api/internal/services"
)

// Stubs for the service layer. Each records the arguments it was called with
// so tests can assert the handler passed the right identity and payload.

type stubInterview struct {
	chatAnswer  string
	chatErr     error
	question    string
	questionErr error
	evaluation  *models.Evaluation
	evalRaw     string
	evalErr     error

	gotSessionID uuid.UUID
	gotUserID    string
	gotMessage   string
	gotAnswers   []models.AnswerSubmission
}

func (s *stubInterview) Chat(_ context.Context, sessionID uuid.UUID, userID, message string) (string, error) {
	s.gotSessionID = sessionID
	s.gotUserID = userID
	s.gotMessage = message
	return s.chatAnswer, s.chatErr
}

func (s *stubInterview) AskQuestion(_ context.Context, sessionID uuid.UUID, userID, _, _ string, _ int) (string, error) {
	s.gotSessionID = sessionID
	s.gotUserID = userID
	return s.question, s.questionErr
}

func (s *stubInterview) Evaluate(_ context.Context, sessionID uuid.UUID, userID, _, _ string, answers []models.AnswerSubmission) (*models.Evaluation, string, error) {
	s.gotSessionID = sessionID
	s.gotUserID = userID
	s.gotAnswers = answers
	return s.evaluation, s.evalRaw, s.evalErr
}

type stubEmbedder struct {
	vec []float32
	err error
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return s.vec, s.err
}

func (s *stubEmbedder) Dimensions() int { return len(s.vec) }

type stubSessionRepo struct {
	session *models.Session
}

func (s *stubSessionRepo) Create(*models.Session) error { return nil }

func (s *stubSessionRepo) FindByID(uuid.UUID) (*models.Session, error) {
	return s.session, nil
}

func (s *stubSessionRepo) FindOwned(id uuid.UUID, userID string) (*models.Session, error) {
	if s.session != nil && s.session.ID == id && s.session.UserID == userID {
		return s.session, nil
	}
	return nil, apperr.ErrAccessDenied
}

func (s *stubSessionRepo) AttachAnalysis(uuid.UUID, int, string) error { return nil }

func (s *stubSessionRepo) UpdateDifficulty(uuid.UUID, string) error { return nil }

type stubIngest struct {
	result *services.IngestResult
	err    error

	gotFileName string
	gotUserID   string
	gotJobDesc  string
}

func (s *stubIngest) Ingest(_ context.Context, _ []byte, fileName, _, userID, jobDescription string) (*services.IngestResult, error) {
	s.gotFileName = fileName
	s.gotUserID = userID
	s.gotJobDesc = jobDescription
	return s.result, s.err
}

type stubATS struct {
	result *services.ATSResult
	err    error
}

func (s *stubATS) Analyze(_ context.Context, _ []byte, _, _, _, _ string) (*services.ATSResult, error) {
	return s.result, s.err
}

type stubStorage struct {
	path string
	err  error
}

func (s *stubStorage) EnsureUploadDir() error { return nil }

func (s *stubStorage) SaveResume(string, []byte) (string, error) {
	return s.path, s.err
}

// jsonRequest builds a JSON POST carrying the given user identity header.
func jsonRequest(t *testing.T, method, target string, body interface{}, userID string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, target, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("x-user-id", userID)
	}
	return req
}

// multipartResume builds a multipart POST with a "resume" file part plus any
// extra form fields.
func multipartResume(t *testing.T, target string, pdfBytes []byte, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if pdfBytes != nil {
		part, err := writer.CreateFormFile("resume", "resume.pdf")
		require.NoError(t, err)
		_, err = part.Write(pdfBytes)
		require.NoError(t, err)
	}

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, target, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, target))
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
}
