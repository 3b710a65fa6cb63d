package handlers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hirevision/interview-api/internal/middleware"
	"hirevision/interview-api/internal/models"
	"hirevision/interview-api/internal/repositories"
)

type SessionHandler struct {
	sessionRepo repositories.SessionRepository
}

func NewSessionHandler(sessionRepo repositories.SessionRepository) *SessionHandler {
	return &SessionHandler{
		sessionRepo: sessionRepo,
	}
}

// HandleGetSession handles GET /sessions/:id. The same ownership rule as
// /conversation applies: a foreign or unknown session ID reads as denied.
func (h *SessionHandler) HandleGetSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	session, err := h.sessionRepo.FindOwned(sessionID, middleware.UserID(c))
	if err != nil {
		return errorResponse(c, err)
	}

	response := models.SessionResponse{
		ID:             session.ID.String(),
		FileName:       session.FileName,
		JobDescription: session.JobDescription,
		Difficulty:     session.Difficulty,
		ATSScore:       session.ATSScore,
		CreatedAt:      session.CreatedAt.Format(time.RFC3339),
	}

	if session.ATSAnalysis != nil {
		var analysis models.ATSAnalysis
		if err := json.Unmarshal([]byte(*session.ATSAnalysis), &analysis); err == nil {
			response.ATSAnalysis = &analysis
		}
	}

	return c.JSON(response)
}
