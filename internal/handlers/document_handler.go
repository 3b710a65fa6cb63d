package handlers

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"hirevision/interview-api/internal/middleware"
	"hirevision/interview-api/internal/models"
	"hirevision/interview-api/internal/services"
)

// DocumentHandler serves the two upload endpoints: plain ingestion
// (/load-document) and ingestion plus ATS analysis (/analyze-ats).
type DocumentHandler struct {
	ingest         services.IngestService
	ats            services.ATSService
	storageService services.StorageService
	maxFileSize    int64
}

func NewDocumentHandler(
	ingest services.IngestService,
	ats services.ATSService,
	storageService services.StorageService,
	maxFileSize int64,
) *DocumentHandler {
	return &DocumentHandler{
		ingest:         ingest,
		ats:            ats,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleLoadDocument handles POST /load-document.
func (h *DocumentHandler) HandleLoadDocument(c *fiber.Ctx) error {
	data, fileName, err := h.readResume(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	storedPath, err := h.storageService.SaveResume(fileName, data)
	if err != nil {
		return errorResponse(c, err)
	}

	result, err := h.ingest.Ingest(
		c.Context(),
		data,
		fileName,
		storedPath,
		middleware.UserID(c),
		c.FormValue("jobDescription"),
	)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(models.LoadDocumentResponse{
		Message:    "Document processed successfully",
		TotalLines: result.ChunkCount,
		SessionID:  result.SessionID.String(),
		FileName:   fileName,
	})
}

// HandleAnalyzeATS handles POST /analyze-ats.
func (h *DocumentHandler) HandleAnalyzeATS(c *fiber.Ctx) error {
	data, fileName, err := h.readResume(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	storedPath, err := h.storageService.SaveResume(fileName, data)
	if err != nil {
		return errorResponse(c, err)
	}

	result, err := h.ats.Analyze(
		c.Context(),
		data,
		fileName,
		storedPath,
		middleware.UserID(c),
		c.FormValue("jobDescription"),
	)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(models.AnalyzeATSResponse{
		Success:          true,
		SessionID:        result.SessionID.String(),
		TotalLines:       result.TotalLines,
		OverallScore:     result.Analysis.OverallScore,
		MatchingKeywords: result.Analysis.MatchingKeywords,
		MissingKeywords:  result.Analysis.MissingKeywords,
		Recommendations:  result.Analysis.Recommendations,
	})
}

// readResume pulls the multipart "resume" PDF into memory.
func (h *DocumentHandler) readResume(c *fiber.Ctx) ([]byte, string, error) {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return nil, "", fmt.Errorf("no PDF file uploaded")
	}

	if fileHeader.Size > h.maxFileSize {
		return nil, "", fmt.Errorf("file too large, max size: %d bytes", h.maxFileSize)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read uploaded file")
	}

	return data, fileHeader.Filename, nil
}
