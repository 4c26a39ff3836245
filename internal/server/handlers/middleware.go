package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/labeltracker/internal/auth"
	"github.com/mamadbah2/labeltracker/internal/domain/models"
	"github.com/mamadbah2/labeltracker/internal/service/tracker"
)

const userContextKey = "labeltracker.user"

// SessionMiddleware resolves the bearer token into the acting user and aborts
// unauthenticated requests. The resolved user is re-read from the store on
// every request so role or group changes take effect immediately.
func SessionMiddleware(svc *tracker.Service, sessions *auth.SessionManager, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		userID, ok := sessions.Resolve(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		user, err := svc.UserByID(userID)
		if err != nil {
			// the account was deleted while the session was live
			sessions.Close(token)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session user no longer exists"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// actingUser extracts the principal placed by SessionMiddleware.
func actingUser(c *gin.Context) models.User {
	value, _ := c.Get(userContextKey)
	user, _ := value.(models.User)
	return user
}

// respondError maps core errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tracker.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, tracker.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
