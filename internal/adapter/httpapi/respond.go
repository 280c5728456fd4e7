// Package httpapi exposes the application over a JSON HTTP surface built on
// gin. Handlers translate between wire DTOs and the usecase layer; all
// business rules live below this package.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nplqhub/revise/internal/entity"
	"github.com/nplqhub/revise/internal/usecase"
)

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

func respondError(c *gin.Context, status int, code string, err error) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{"code": code, "message": err.Error()},
	})
}

// respondUsecaseError maps domain errors to HTTP statuses.
func respondUsecaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrNotLoggedIn):
		respondError(c, http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, entity.ErrInvalidCredential), errors.Is(err, entity.ErrWrongLoginChannel):
		respondError(c, http.StatusUnauthorized, "invalid_credentials", err)
	case errors.Is(err, entity.ErrUserNotFound), errors.Is(err, entity.ErrTeamNotFound),
		errors.Is(err, entity.ErrSessionNotFound):
		respondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, entity.ErrUserAlreadyExists):
		respondError(c, http.StatusConflict, "already_exists", err)
	case errors.Is(err, usecase.ErrWrongSessionMode):
		respondError(c, http.StatusConflict, "wrong_session_mode", err)
	case errors.Is(err, entity.ErrInvalidQuestion), errors.Is(err, entity.ErrInvalidFlashcard),
		errors.Is(err, entity.ErrInvalidUserName), errors.Is(err, entity.ErrInvalidTeamName):
		respondError(c, http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, entity.ErrStoreUnavailable), errors.Is(err, entity.ErrResetFailed):
		respondError(c, http.StatusServiceUnavailable, "store_unavailable", err)
	default:
		respondError(c, http.StatusInternalServerError, "internal", err)
	}
}
