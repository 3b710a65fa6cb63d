package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hirevision/interview-api/internal/apperr"
	"hirevision/interview-api/internal/middleware"
	"hirevision/interview-api/internal/models"
	"hirevision/interview-api/internal/services"
)

type ConversationHandler struct {
	interview services.InterviewService
}

func NewConversationHandler(interview services.InterviewService) *ConversationHandler {
	return &ConversationHandler{
		interview: interview,
	}
}

// HandleConversation handles POST /conversation, dispatching on the
// client-supplied action.
func (h *ConversationHandler) HandleConversation(c *fiber.Ctx) error {
	var req models.ConversationRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.SessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Session ID is required. Please upload a resume first.",
		})
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	userID := middleware.UserID(c)

	action := req.Action
	if action == "" {
		action = string(models.ActionChat)
	}

	switch action {
	case string(models.ActionChat):
		answer, err := h.interview.Chat(c.Context(), sessionID, userID, req.Message)
		if err != nil {
			return errorResponse(c, err)
		}

		return c.JSON(models.ChatResponse{
			Answer:    answer,
			SessionID: req.SessionID,
		})

	case string(models.ActionAskQuestion):
		question, err := h.interview.AskQuestion(c.Context(), sessionID, userID, req.Message, req.Difficulty, req.QuestionNumber)
		if err != nil {
			return errorResponse(c, err)
		}

		return c.JSON(models.QuestionResponse{
			Question:  question,
			SessionID: req.SessionID,
		})

	case string(models.ActionEvaluate):
		evaluation, raw, err := h.interview.Evaluate(c.Context(), sessionID, userID, req.Message, req.Difficulty, req.Answers)
		if err != nil {
			// A parse failure returns the model's raw text so the caller can
			// diagnose it instead of losing the response.
			if errors.Is(err, apperr.ErrEvaluationParse) {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":       "Failed to parse evaluation response",
					"rawResponse": raw,
				})
			}
			return errorResponse(c, err)
		}

		return c.JSON(models.EvaluationResponse{
			Success:    true,
			Evaluation: evaluation,
		})

	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown action: " + action,
		})
	}
}
