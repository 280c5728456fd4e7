package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nplqhub/revise/internal/entity"
	"github.com/nplqhub/revise/internal/usecase"
)

var errUnknownDomain = errors.New("unknown progress domain")

type ProgressHandler struct {
	progress usecase.ProgressUsecase
}

func NewProgressHandler(progress usecase.ProgressUsecase) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

// Summary returns the dashboard counters for the logged-in user.
func (h *ProgressHandler) Summary(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", errMissingToken)
		return
	}
	summary, err := h.progress.Summary(c.Request.Context(), identity.UserID)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	respondOK(c, gin.H{
		"flashcardsCompleted": summary.FlashcardsCompleted,
		"quizzesCompleted":    summary.QuizzesCompleted,
		"streak":              summary.Streak,
		"secondsSpent":        summary.SecondsSpent,
		"timeSpent":           summary.TimeSpent,
	})
}

// Reset wipes all progress for the logged-in user. There is no undo.
func (h *ProgressHandler) Reset(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", errMissingToken)
		return
	}
	if err := h.progress.ResetAll(c.Request.Context(), identity.UserID); err != nil {
		respondUsecaseError(c, err)
		return
	}
	respondOK(c, gin.H{"reset": true})
}

// Domain returns a single raw progress record, mainly for the revision
// screens to restore their completed sets.
func (h *ProgressHandler) Domain(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", errMissingToken)
		return
	}
	domain := entity.Domain(c.Param("domain"))
	switch domain {
	case entity.DomainFlashcards, entity.DomainQuizzes, entity.DomainTotals:
	default:
		respondError(c, http.StatusNotFound, "not_found", errUnknownDomain)
		return
	}
	record, err := h.progress.Load(c.Request.Context(), identity.UserID, domain)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	respondOK(c, gin.H{
		"domain":       string(record.Domain),
		"completed":    record.Completed,
		"streak":       record.Streak,
		"secondsSpent": record.SecondsSpent,
	})
}
