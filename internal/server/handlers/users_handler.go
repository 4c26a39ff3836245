package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/labeltracker/internal/domain/models"
	"github.com/mamadbah2/labeltracker/internal/service/tracker"
)

// UsersHandler serves user and group management.
type UsersHandler struct {
	svc    *tracker.Service
	logger *zap.Logger
}

// NewUsersHandler constructs the HTTP handler adapter.
func NewUsersHandler(svc *tracker.Service, logger *zap.Logger) *UsersHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UsersHandler{svc: svc, logger: logger}
}

// CreateUser adds a user account.
func (h *UsersHandler) CreateUser(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.svc.CreateUser(actingUser(c), user)
	if err != nil {
		respondError(c, err)
		return
	}
	created.Password = ""
	c.JSON(http.StatusCreated, created)
}

// UpdateUser replaces an existing user record.
func (h *UsersHandler) UpdateUser(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	user.ID = c.Param("id")

	if err := h.svc.UpdateUser(actingUser(c), user); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteUser removes a user account.
func (h *UsersHandler) DeleteUser(c *gin.Context) {
	if err := h.svc.DeleteUser(actingUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SaveGroup creates or updates a group.
func (h *UsersHandler) SaveGroup(c *gin.Context) {
	var group models.Group
	if err := c.ShouldBindJSON(&group); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	saved, err := h.svc.SaveGroup(actingUser(c), group)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeleteGroup removes a group, leaving members with a dangling group id.
func (h *UsersHandler) DeleteGroup(c *gin.Context) {
	if err := h.svc.DeleteGroup(actingUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
