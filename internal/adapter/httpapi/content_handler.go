package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/nplqhub/revise/internal/entity"
	"github.com/nplqhub/revise/internal/repository"
)

// ContentHandler lists the full revision catalog, answers included, for
// logged-in clients and the admin panel.
type ContentHandler struct {
	content repository.ContentRepository
}

func NewContentHandler(content repository.ContentRepository) *ContentHandler {
	return &ContentHandler{content: content}
}

func (h *ContentHandler) ListFlashcards(c *gin.Context) {
	cards, err := h.content.ListFlashcards(c.Request.Context())
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	respondOK(c, lo.Map(cards, func(card entity.Flashcard, _ int) flashcardDTO {
		return toFlashcardDTO(card)
	}))
}

func (h *ContentHandler) ListQuizQuestions(c *gin.Context) {
	questions, err := h.content.ListQuizQuestions(c.Request.Context())
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	respondOK(c, lo.Map(questions, func(q entity.QuizQuestion, _ int) quizDTO {
		return toQuizDTO(q)
	}))
}
