package handlers

import (
	"github.com/gofiber/fiber/v2"

	"hirevision/interview-api/internal/models"
	"hirevision/interview-api/internal/services"
)

type EmbeddingHandler struct {
	embedder services.Embedder
}

func NewEmbeddingHandler(embedder services.Embedder) *EmbeddingHandler {
	return &EmbeddingHandler{
		embedder: embedder,
	}
}

// HandleEmbeddings handles GET /embeddings. Debug endpoint: embeds the query
// text and returns the first 10 components plus the full dimensionality.
func (h *EmbeddingHandler) HandleEmbeddings(c *fiber.Ctx) error {
	text := c.Query("text")
	if text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": `Valid "text" query param is required`,
		})
	}

	embedding, err := h.embedder.Embed(c.Context(), text)
	if err != nil {
		return errorResponse(c, err)
	}

	truncated := embedding
	if len(truncated) > 10 {
		truncated = truncated[:10]
	}

	return c.JSON(models.EmbeddingResponse{
		Success:    true,
		InputText:  text,
		Embedding:  truncated,
		Dimensions: len(embedding),
	})
}
