package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shashoo/internal/repository"
)

// BoardAccessHandler is the admin bulk editor for per-user allow-lists.
type BoardAccessHandler struct {
	users  repository.UserRepositoryInterface
	boards repository.BoardRepositoryInterface
	grants repository.BoardAccessRepositoryInterface
}

func NewBoardAccessHandler(users repository.UserRepositoryInterface, boards repository.BoardRepositoryInterface, grants repository.BoardAccessRepositoryInterface) *BoardAccessHandler {
	return &BoardAccessHandler{
		users:  users,
		boards: boards,
		grants: grants,
	}
}

type UpdateBoardAccessRequest struct {
	UserID   string   `json:"userId" binding:"required"`
	BoardIDs []string `json:"boardIds"`
}

type BoardAccessResponse struct {
	UserID   string   `json:"userId"`
	BoardIDs []string `json:"boardIds"`
}

func toBoardAccessResponse(userID uuid.UUID, boardIDs []uuid.UUID) BoardAccessResponse {
	ids := make([]string, len(boardIDs))
	for i, id := range boardIDs {
		ids[i] = id.String()
	}
	return BoardAccessResponse{
		UserID:   userID.String(),
		BoardIDs: ids,
	}
}

// Get returns the board ids currently granted to a user.
func (h *BoardAccessHandler) Get(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing userId"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	granted, err := h.grants.GrantedBoardIDs(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board access"})
		return
	}

	c.JSON(http.StatusOK, toBoardAccessResponse(userID, granted))
}

// Update replaces a user's entire allow-list. Board ids that do not exist
// are dropped from the batch instead of rejecting it; the response echoes
// the ids actually stored. The swap itself is atomic.
func (h *BoardAccessHandler) Update(c *gin.Context) {
	var req UpdateBoardAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid userId format"})
		return
	}

	boardIDs := make([]uuid.UUID, 0, len(req.BoardIDs))
	for _, raw := range req.BoardIDs {
		boardID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
			return
		}
		boardIDs = append(boardIDs, boardID)
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	existing, err := h.boards.ExistingIDs(c.Request.Context(), boardIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate board IDs"})
		return
	}

	if err := h.grants.ReplaceForUser(c.Request.Context(), userID, existing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board access"})
		return
	}

	c.JSON(http.StatusOK, toBoardAccessResponse(userID, existing))
}
