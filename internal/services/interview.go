package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hirevision/interview-api/internal/apperr"
	"hirevision/interview-api/internal/llmjson"
	"hirevision/interview-api/internal/models"
	"hirevision/interview-api/internal/repositories"
)

const (
	// historyWindow bounds how many turns of prior conversation enter the
	// chat prompt, oldest first.
	historyWindow = 20

	// questionCount is the length of a structured interview run.
	questionCount = 5

	// defaultRetrievalQuery stands in for the query embedding when the
	// client sends no message text with an action (ask_question and evaluate
	// typically carry none).
	defaultRetrievalQuery = "skills experience projects technologies education"
)

// questionPrefix matches the "Question N/5:" header some generations prepend
// to their question text.
var questionPrefix = regexp.MustCompile(`^Question \d+/5:\s*`)

// InterviewService is the conversation state machine. It holds no state of
// its own: every decision is derived by re-reading persisted turns, so each
// request is independently retriable.
type InterviewService interface {
	Chat(ctx context.Context, sessionID uuid.UUID, userID, message string) (string, error)
	AskQuestion(ctx context.Context, sessionID uuid.UUID, userID, message, difficulty string, questionNumber int) (string, error)
	// Evaluate returns the parsed evaluation; when the model's output cannot
	// be parsed it returns the raw response text alongside
	// ErrEvaluationParse so the caller can surface it for diagnosis.
	Evaluate(ctx context.Context, sessionID uuid.UUID, userID, message, difficulty string, answers []models.AnswerSubmission) (*models.Evaluation, string, error)
}

type interviewService struct {
	sessionRepo   repositories.SessionRepository
	convRepo      repositories.ConversationRepository
	retriever     Retriever
	generator     Generator
	promptBuilder *PromptBuilder
	maxRetries    int
	logger        *zap.Logger
}

func NewInterviewService(
	sessionRepo repositories.SessionRepository,
	convRepo repositories.ConversationRepository,
	retriever Retriever,
	generator Generator,
	maxRetries int,
	logger *zap.Logger,
) InterviewService {
	return &interviewService{
		sessionRepo:   sessionRepo,
		convRepo:      convRepo,
		retriever:     retriever,
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
		logger:        logger,
	}
}

// Chat implements InterviewService.
func (s *interviewService) Chat(ctx context.Context, sessionID uuid.UUID, userID, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: message is required", apperr.ErrValidation)
	}

	if _, err := s.sessionRepo.FindOwned(sessionID, userID); err != nil {
		return "", err
	}

	resumeContext, err := s.retriever.BuildContext(ctx, sessionID, userID, message)
	if err != nil {
		return "", err
	}

	history, err := s.convRepo.RecentHistory(sessionID, userID, historyWindow)
	if err != nil {
		return "", err
	}

	prompt := s.promptBuilder.BuildChatPrompt(resumeContext, formatTurns(history), message)

	answer, err := s.generator.GenerateTextWithRetry(ctx, prompt, 0.7, s.maxRetries)
	if err != nil {
		return "", err
	}

	// Persist only after generation succeeded so a failed turn can be
	// retried without duplicating the user message.
	if err := s.persistExchange(sessionID, userID, message, answer, models.ActionChat); err != nil {
		return "", err
	}

	return answer, nil
}

// AskQuestion implements InterviewService.
func (s *interviewService) AskQuestion(ctx context.Context, sessionID uuid.UUID, userID, message, difficulty string, questionNumber int) (string, error) {
	switch difficulty {
	case "easy", "medium", "hard":
	default:
		return "", fmt.Errorf("%w: difficulty must be one of easy, medium, hard", apperr.ErrValidation)
	}

	if questionNumber < 1 || questionNumber > questionCount {
		return "", fmt.Errorf("%w: questionNumber must be between 1 and %d", apperr.ErrValidation, questionCount)
	}

	if _, err := s.sessionRepo.FindOwned(sessionID, userID); err != nil {
		return "", err
	}

	if err := s.sessionRepo.UpdateDifficulty(sessionID, difficulty); err != nil {
		s.logger.Warn("failed to record session difficulty",
			zap.String("session_id", sessionID.String()),
			zap.Error(err))
	}

	asked, err := s.convRepo.AskedQuestions(sessionID, userID)
	if err != nil {
		return "", err
	}

	askedTexts := make([]string, 0, len(asked))
	for _, turn := range asked {
		askedTexts = append(askedTexts, turn.Message)
	}

	resumeContext, err := s.retriever.BuildContext(ctx, sessionID, userID, retrievalQuery(message))
	if err != nil {
		return "", err
	}

	prompt := s.promptBuilder.BuildQuestionPrompt(resumeContext, difficulty, questionNumber, askedTexts)

	// Regenerate within the retry budget when the model repeats itself; a
	// question identical to a prior one would corrupt the exam.
	var question string
	for attempt := 1; ; attempt++ {
		question, err = s.generator.GenerateText(ctx, prompt, 0.7)
		if err != nil {
			if attempt >= s.maxRetries {
				return "", err
			}
			continue
		}

		if !containsQuestion(askedTexts, question) {
			break
		}

		s.logger.Warn("model repeated a question, regenerating",
			zap.String("session_id", sessionID.String()),
			zap.Int("attempt", attempt))

		if attempt >= s.maxRetries {
			return "", fmt.Errorf("%w: model kept repeating previously asked questions", apperr.ErrUpstreamModel)
		}
	}

	if err := s.persistExchange(sessionID, userID, message, question, models.ActionAskQuestion); err != nil {
		return "", err
	}

	return question, nil
}

// Evaluate implements InterviewService.
func (s *interviewService) Evaluate(ctx context.Context, sessionID uuid.UUID, userID, message, difficulty string, answers []models.AnswerSubmission) (*models.Evaluation, string, error) {
	if len(answers) == 0 {
		return nil, "", fmt.Errorf("%w: answers are required", apperr.ErrValidation)
	}

	if difficulty == "" {
		difficulty = "medium"
	}

	if _, err := s.sessionRepo.FindOwned(sessionID, userID); err != nil {
		return nil, "", err
	}

	asked, err := s.convRepo.AskedQuestions(sessionID, userID)
	if err != nil {
		return nil, "", err
	}

	if len(asked) == 0 {
		return nil, "", fmt.Errorf("%w: no questions have been asked in this session", apperr.ErrValidation)
	}

	// Join each asked question with the submitted answer by 1-based index.
	pairs := make([]QuestionAnswerPair, 0, len(asked))
	for i, turn := range asked {
		pair := QuestionAnswerPair{
			Question:   questionPrefix.ReplaceAllString(turn.Message, ""),
			UserAnswer: "No answer provided",
		}
		for _, answer := range answers {
			if answer.Question == i+1 {
				pair.UserAnswer = answer.Answer
				break
			}
		}
		pairs = append(pairs, pair)
	}

	resumeContext, err := s.retriever.BuildContext(ctx, sessionID, userID, retrievalQuery(message))
	if err != nil {
		return nil, "", err
	}

	prompt := s.promptBuilder.BuildEvaluationPrompt(resumeContext, difficulty, pairs)

	response, err := s.generator.GenerateTextWithRetry(ctx, prompt, 0.3, s.maxRetries)
	if err != nil {
		return nil, "", err
	}

	cleaned := llmjson.StripCodeFence(response)

	var evaluation models.Evaluation
	if err := llmjson.DecodeInto(cleaned, &evaluation); err != nil {
		s.logger.Error("evaluation response is not valid JSON",
			zap.String("session_id", sessionID.String()),
			zap.Error(err))
		return nil, cleaned, fmt.Errorf("%w: %v", apperr.ErrEvaluationParse, err)
	}

	if err := s.persistExchange(sessionID, userID, message, cleaned, models.ActionEvaluate); err != nil {
		return nil, "", err
	}

	return &evaluation, "", nil
}

// persistExchange appends the user turn and the assistant turn for one
// completed action.
func (s *interviewService) persistExchange(sessionID uuid.UUID, userID, userMessage, assistantMessage string, action models.TurnAction) error {
	now := time.Now()

	if err := s.convRepo.Append(&models.ConversationTurn{
		ID:        uuid.New(),
		SessionID: sessionID,
		UserID:    userID,
		Message:   userMessage,
		Role:      models.RoleUser,
		Action:    action,
		CreatedAt: now,
	}); err != nil {
		return err
	}

	return s.convRepo.Append(&models.ConversationTurn{
		ID:        uuid.New(),
		SessionID: sessionID,
		UserID:    userID,
		Message:   assistantMessage,
		Role:      models.RoleAssistant,
		Action:    action,
		CreatedAt: now.Add(time.Millisecond),
	})
}

func retrievalQuery(message string) string {
	if strings.TrimSpace(message) == "" {
		return defaultRetrievalQuery
	}
	return message
}

func containsQuestion(asked []string, candidate string) bool {
	candidate = strings.TrimSpace(candidate)
	for _, q := range asked {
		if strings.TrimSpace(q) == candidate {
			return true
		}
	}
	return false
}

func formatTurns(turns []models.ConversationTurn) string {
	history := make([]HistoryTurn, 0, len(turns))
	for _, turn := range turns {
		history = append(history, HistoryTurn{
			Role:    string(turn.Role),
			Message: turn.Message,
		})
	}
	return FormatHistory(history)
}
