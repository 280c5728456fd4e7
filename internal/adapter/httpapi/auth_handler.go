package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nplqhub/revise/internal/entity"
	"github.com/nplqhub/revise/internal/usecase"
)

type AuthHandler struct {
	auth usecase.AuthUsecase
}

func NewAuthHandler(auth usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	h.login(c, h.auth.Login)
}

// AdminLogin is a separate channel; student credentials are rejected here
// and admin credentials are rejected on the student channel.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	h.login(c, h.auth.AdminLogin)
}

func (h *AuthHandler) login(c *gin.Context, fn func(ctx context.Context, username, password string) (string, *entity.User, error)) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	token, user, err := fn(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	respondOK(c, gin.H{"token": token, "user": toUserDTO(*user)})
}

func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", errMissingToken)
		return
	}
	respondOK(c, gin.H{"username": identity.UserID, "role": string(identity.Role)})
}
