package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hirevision/interview-api/internal/apperr"
	"hirevision/interview-api/internal/models"
)

type SessionRepository interface {
	Create(session *models.Session) error
	FindByID(id uuid.UUID) (*models.Session, error)
	// FindOwned returns the session only when it exists and belongs to
	// userID. Both "not found" and "wrong owner" report ErrAccessDenied so
	// callers cannot probe for foreign session IDs.
	FindOwned(id uuid.UUID, userID string) (*models.Session, error)
	AttachAnalysis(id uuid.UUID, score int, analysisJSON string) error
	UpdateDifficulty(id uuid.UUID, difficulty string) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create implements SessionRepository.
func (r *sessionRepository) Create(session *models.Session) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// FindByID implements SessionRepository.
func (r *sessionRepository) FindByID(id uuid.UUID) (*models.Session, error) {
	var session models.Session
	if err := r.db.Where("id = ?", id).First(&session).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("session not found: %w", err)
		}

		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	return &session, nil
}

// FindOwned implements SessionRepository.
func (r *sessionRepository) FindOwned(id uuid.UUID, userID string) (*models.Session, error) {
	var session models.Session
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.ErrAccessDenied
		}

		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	return &session, nil
}

// AttachAnalysis implements SessionRepository.
func (r *sessionRepository) AttachAnalysis(id uuid.UUID, score int, analysisJSON string) error {
	result := r.db.Model(&models.Session{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"ats_score":    score,
			"ats_analysis": analysisJSON,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to attach analysis: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("session not found")
	}

	return nil
}

// UpdateDifficulty implements SessionRepository.
func (r *sessionRepository) UpdateDifficulty(id uuid.UUID, difficulty string) error {
	result := r.db.Model(&models.Session{}).
		Where("id = ?", id).
		Update("difficulty", difficulty)

	if result.Error != nil {
		return fmt.Errorf("failed to update difficulty: %w", result.Error)
	}

	return nil
}
