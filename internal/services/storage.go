package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"hirevision/interview-api/internal/apperr"
)

// StorageService persists uploaded resume PDFs. The stored path is recorded
// on the session; extraction itself works on the in-memory bytes.
type StorageService interface {
	SaveResume(originalName string, data []byte) (string, error)
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveResume writes the uploaded PDF under a unique filename and returns the
// stored path.
func (s *storageService) SaveResume(originalName string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext != ".pdf" {
		return "", fmt.Errorf("%w: only PDF files are accepted, got %q", apperr.ErrValidation, ext)
	}

	uniqueFilename := fmt.Sprintf("resume_%s%s", uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return filePath, nil
}
