package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/nplqhub/revise/internal/entity"
	"github.com/nplqhub/revise/internal/usecase"
	"github.com/nplqhub/revise/internal/usecase/catalog"
)

// AdminHandler exposes account, team and catalog authoring. Every route is
// behind RequireAdmin.
type AdminHandler struct {
	admin   usecase.AdminUsecase
	catalog *catalog.Service
}

func NewAdminHandler(admin usecase.AdminUsecase, catalogSvc *catalog.Service) *AdminHandler {
	return &AdminHandler{admin: admin, catalog: catalogSvc}
}

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	TeamID   string `json:"teamId"`
	Role     string `json:"role"`
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user := entity.User{
		Username: req.Username,
		Password: req.Password,
		TeamID:   req.TeamID,
		Role:     entity.Role(req.Role),
	}
	if err := h.admin.CreateUser(c.Request.Context(), &user); err != nil {
		respondUsecaseError(c, err)
		return
	}
	respondCreated(c, toUserDTO(user))
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context())
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	respondOK(c, lo.Map(users, func(u entity.User, _ int) userDTO { return toUserDTO(u) }))
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.admin.DeleteUser(c.Request.Context(), c.Param("username")); err != nil {
		respondUsecaseError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}

func (h *AdminHandler) CreateTeam(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	team, err := h.admin.CreateTeam(c.Request.Context(), req.Name)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	respondCreated(c, toTeamDTO(*team))
}

func (h *AdminHandler) ListTeams(c *gin.Context) {
	teams, err := h.admin.ListTeams(c.Request.Context())
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	respondOK(c, lo.Map(teams, func(t entity.Team, _ int) teamDTO { return toTeamDTO(t) }))
}

func (h *AdminHandler) DeleteTeam(c *gin.Context) {
	if err := h.admin.DeleteTeam(c.Request.Context(), c.Param("id")); err != nil {
		respondUsecaseError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}

func (h *AdminHandler) SaveFlashcard(c *gin.Context) {
	var req flashcardDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	card := req.toEntity()
	if err := h.admin.SaveFlashcard(c.Request.Context(), &card); err != nil {
		respondUsecaseError(c, err)
		return
	}
	respondOK(c, toFlashcardDTO(card))
}

func (h *AdminHandler) DeleteFlashcard(c *gin.Context) {
	if err := h.admin.DeleteFlashcard(c.Request.Context(), c.Param("id")); err != nil {
		respondUsecaseError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}

func (h *AdminHandler) SaveQuizQuestion(c *gin.Context) {
	var req quizDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	question := req.toEntity()
	if err := h.admin.SaveQuizQuestion(c.Request.Context(), &question); err != nil {
		respondUsecaseError(c, err)
		return
	}
	respondOK(c, toQuizDTO(question))
}

func (h *AdminHandler) DeleteQuizQuestion(c *gin.Context) {
	if err := h.admin.DeleteQuizQuestion(c.Request.Context(), c.Param("id")); err != nil {
		respondUsecaseError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}

// ExportCatalog streams the whole catalog as a JSON snapshot download.
func (h *AdminHandler) ExportCatalog(c *gin.Context) {
	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", `attachment; filename="catalog.json"`)
	if err := h.catalog.Export(c.Request.Context(), c.Writer); err != nil {
		respondUsecaseError(c, err)
	}
}

// ImportCatalog replaces matching catalog entries from an uploaded snapshot.
func (h *AdminHandler) ImportCatalog(c *gin.Context) {
	if err := h.catalog.Import(c.Request.Context(), c.Request.Body); err != nil {
		respondUsecaseError(c, err)
		return
	}
	respondOK(c, gin.H{"imported": true})
}
