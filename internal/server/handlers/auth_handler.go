package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/labeltracker/internal/auth"
	"github.com/mamadbah2/labeltracker/internal/service/tracker"
)

// AuthHandler serves bootstrap gating, initial setup and session management.
type AuthHandler struct {
	svc      *tracker.Service
	sessions *auth.SessionManager
	logger   *zap.Logger
}

// NewAuthHandler constructs the HTTP handler adapter.
func NewAuthHandler(svc *tracker.Service, sessions *auth.SessionManager, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, sessions: sessions, logger: logger}
}

// Bootstrap tells the UI whether to show initial setup or the login screen.
func (h *AuthHandler) Bootstrap(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"phase": h.svc.BootstrapPhase()})
}

type setupRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName" binding:"required"`
}

// Setup creates the first admin account and opens a session for it.
func (h *AuthHandler) Setup(c *gin.Context) {
	var req setupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	admin, err := h.svc.InitialSetup(req.Username, req.Password, req.DisplayName)
	if err != nil {
		respondError(c, err)
		return
	}

	token := h.sessions.Open(admin.ID)
	admin.Password = ""
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": admin})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates and opens a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.svc.Authenticate(req.Username, req.Password)
	if err != nil {
		h.logger.Warn("failed login attempt", zap.String("username", req.Username))
		respondError(c, err)
		return
	}

	token := h.sessions.Open(user.ID)
	user.Password = ""
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Logout invalidates the presented session token.
func (h *AuthHandler) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		h.sessions.Close(token)
	}
	c.Status(http.StatusNoContent)
}
