package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shashoo/internal/middleware"
	"shashoo/internal/model"
	"shashoo/internal/repository"
)

type RegistrationHandler struct {
	registrations repository.RegistrationRepositoryInterface
}

func NewRegistrationHandler(registrations repository.RegistrationRepositoryInterface) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations}
}

type CreateRegistrationRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Name         string `json:"name" binding:"required,min=2"`
	Organization string `json:"organization"`
	Purpose      string `json:"purpose"`
}

type DecideRegistrationRequest struct {
	Status string `json:"status" binding:"required"`
	Memo   string `json:"memo"`
}

type RegistrationResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Organization string `json:"organization,omitempty"`
	Purpose      string `json:"purpose,omitempty"`
	Memo         string `json:"memo,omitempty"`
	Status       string `json:"status"`
	SubmittedAt  string `json:"submitted_at"`
	DecidedAt    string `json:"decided_at,omitempty"`
	DecidedBy    string `json:"decided_by,omitempty"`
}

func toRegistrationResponse(reg *model.Registration) RegistrationResponse {
	resp := RegistrationResponse{
		ID:           reg.ID.String(),
		Email:        reg.Email,
		Name:         reg.Name,
		Organization: reg.Organization,
		Purpose:      reg.Purpose,
		Memo:         reg.Memo,
		Status:       reg.Status,
		SubmittedAt:  reg.SubmittedAt.Format(time.RFC3339),
	}
	if reg.DecidedAt != nil {
		resp.DecidedAt = reg.DecidedAt.Format(time.RFC3339)
	}
	if reg.DecidedByID != nil {
		resp.DecidedBy = reg.DecidedByID.String()
	}
	return resp
}

// Create accepts a public application. New registrations always start
// pending; there is no way to submit one in any other state.
func (h *RegistrationHandler) Create(c *gin.Context) {
	var req CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	registration := &model.Registration{
		Email:        strings.ToLower(req.Email),
		Name:         req.Name,
		Organization: req.Organization,
		Purpose:      req.Purpose,
		Status:       model.StatusPending,
	}

	if err := h.registrations.Create(c.Request.Context(), registration); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create registration"})
		return
	}

	c.JSON(http.StatusCreated, toRegistrationResponse(registration))
}

func (h *RegistrationHandler) List(c *gin.Context) {
	registrations, err := h.registrations.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve registrations"})
		return
	}

	response := make([]RegistrationResponse, len(registrations))
	for i := range registrations {
		response[i] = toRegistrationResponse(&registrations[i])
	}
	c.JSON(http.StatusOK, response)
}

// Decide approves or rejects a pending registration. The decision is
// terminal; a repeat call gets 409 and changes nothing.
func (h *RegistrationHandler) Decide(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	registrationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration ID format"})
		return
	}

	var req DecideRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if req.Status != model.StatusApproved && req.Status != model.StatusRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be approved or rejected"})
		return
	}

	registration, err := h.registrations.Decide(c.Request.Context(), registrationID, req.Status, req.Memo, identity.ID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		case errors.Is(err, repository.ErrAlreadyDecided):
			c.JSON(http.StatusConflict, gin.H{"error": "Registration already decided"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decide registration"})
		}
		return
	}

	c.JSON(http.StatusOK, toRegistrationResponse(registration))
}
