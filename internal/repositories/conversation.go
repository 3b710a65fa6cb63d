package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hirevision/interview-api/internal/models"
)

type ConversationRepository interface {
	Append(turn *models.ConversationTurn) error
	// RecentHistory returns up to limit of the most recent turns in the
	// session, ordered by creation time ascending within the window.
	RecentHistory(sessionID uuid.UUID, userID string, limit int) ([]models.ConversationTurn, error)
	// AskedQuestions returns every assistant turn tagged ask_question for the
	// session, in the order the questions were asked.
	AskedQuestions(sessionID uuid.UUID, userID string) ([]models.ConversationTurn, error)
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// Append implements ConversationRepository.
func (r *conversationRepository) Append(turn *models.ConversationTurn) error {
	if err := r.db.Create(turn).Error; err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}

	return nil
}

// RecentHistory implements ConversationRepository.
func (r *conversationRepository) RecentHistory(sessionID uuid.UUID, userID string, limit int) ([]models.ConversationTurn, error) {
	var turns []models.ConversationTurn
	err := r.db.
		Where("session_id = ? AND user_id = ?", sessionID, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&turns).Error

	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	// Newest-first from the query; flip so the prompt reads chronologically.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	return turns, nil
}

// AskedQuestions implements ConversationRepository.
func (r *conversationRepository) AskedQuestions(sessionID uuid.UUID, userID string) ([]models.ConversationTurn, error) {
	var turns []models.ConversationTurn
	err := r.db.
		Where("session_id = ? AND user_id = ? AND role = ? AND action = ?",
			sessionID, userID, models.RoleAssistant, models.ActionAskQuestion).
		Order("created_at ASC").
		Find(&turns).Error

	if err != nil {
		return nil, fmt.Errorf("failed to load asked questions: %w", err)
	}

	return turns, nil
}
