package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nplqhub/revise/internal/entity"
	"github.com/nplqhub/revise/internal/usecase"
)

// SessionHandler drives the flashcard and quiz study screens. All navigation
// and answer evaluation happens server-side in the session controller; the
// client only renders the returned view.
type SessionHandler struct {
	sessions *SessionManager
}

func NewSessionHandler(sessions *SessionManager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) Open(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", errMissingToken)
		return
	}
	var req struct {
		Mode string `json:"mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	id, controller, err := h.sessions.Open(c.Request.Context(), identity.UserID, usecase.SessionMode(req.Mode))
	if controller == nil {
		respondUsecaseError(c, err)
		return
	}
	// A store failure still opens the session over an empty catalog.
	respondCreated(c, gin.H{
		"id":       id,
		"view":     toSessionViewDTO(controller.Current()),
		"degraded": err != nil,
	})
}

func (h *SessionHandler) resolve(c *gin.Context) (*usecase.SessionController, bool) {
	identity, ok := currentIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", errMissingToken)
		return nil, false
	}
	controller, err := h.sessions.Get(c.Param("id"), identity.UserID)
	if err != nil {
		respondUsecaseError(c, err)
		return nil, false
	}
	return controller, true
}

func (h *SessionHandler) Current(c *gin.Context) {
	controller, ok := h.resolve(c)
	if !ok {
		return
	}
	respondOK(c, toSessionViewDTO(controller.Current()))
}

func (h *SessionHandler) Next(c *gin.Context) {
	controller, ok := h.resolve(c)
	if !ok {
		return
	}
	controller.Next()
	respondOK(c, toSessionViewDTO(controller.Current()))
}

func (h *SessionHandler) Previous(c *gin.Context) {
	controller, ok := h.resolve(c)
	if !ok {
		return
	}
	controller.Previous()
	respondOK(c, toSessionViewDTO(controller.Current()))
}

func (h *SessionHandler) Reveal(c *gin.Context) {
	controller, ok := h.resolve(c)
	if !ok {
		return
	}
	if err := controller.Reveal(); err != nil {
		respondUsecaseError(c, err)
		return
	}
	respondOK(c, toSessionViewDTO(controller.Current()))
}

func (h *SessionHandler) Complete(c *gin.Context) {
	controller, ok := h.resolve(c)
	if !ok {
		return
	}
	if err := controller.Complete(c.Request.Context()); err != nil {
		respondUsecaseError(c, err)
		return
	}
	respondOK(c, toSessionViewDTO(controller.Current()))
}

type submitRequest struct {
	Selected *int32   `json:"selected"`
	Text     string   `json:"text"`
	Ordering []string `json:"ordering"`
}

func (h *SessionHandler) Submit(c *gin.Context) {
	controller, ok := h.resolve(c)
	if !ok {
		return
	}
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	answer := entity.Answer{Text: req.Text, Ordering: req.Ordering}
	if req.Selected != nil {
		answer.Selected = *req.Selected
	} else {
		answer.Selected = -1
	}
	correct, err := controller.Submit(c.Request.Context(), answer)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	respondOK(c, gin.H{
		"correct": correct,
		"view":    toSessionViewDTO(controller.Current()),
	})
}

func (h *SessionHandler) SetFilter(c *gin.Context) {
	controller, ok := h.resolve(c)
	if !ok {
		return
	}
	var req struct {
		Sections []string `json:"sections"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := controller.SetSectionFilter(c.Request.Context(), req.Sections); err != nil {
		respondUsecaseError(c, err)
		return
	}
	respondOK(c, toSessionViewDTO(controller.Current()))
}

func (h *SessionHandler) Sections(c *gin.Context) {
	controller, ok := h.resolve(c)
	if !ok {
		return
	}
	respondOK(c, toSectionProgressDTOs(controller.SectionProgress()))
}

func (h *SessionHandler) Close(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", errMissingToken)
		return
	}
	if err := h.sessions.Close(c.Param("id"), identity.UserID); err != nil {
		respondUsecaseError(c, err)
		return
	}
	respondOK(c, gin.H{"closed": true})
}
