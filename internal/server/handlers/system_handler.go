package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/labeltracker/internal/auth"
	"github.com/mamadbah2/labeltracker/internal/domain/models"
	"github.com/mamadbah2/labeltracker/internal/repository/file"
	"github.com/mamadbah2/labeltracker/internal/service/reporting"
	"github.com/mamadbah2/labeltracker/internal/service/tracker"
	syncmgr "github.com/mamadbah2/labeltracker/internal/sync"
	"github.com/mamadbah2/labeltracker/pkg/clients/anthropic"
)

// Sentinel texts returned when the insight provider is disabled or broken.
// The UI shows them verbatim instead of an error.
const (
	insightsDisabledMessage    = "AI Insights disabled: An API key has not been provided in the application's environment configuration."
	insightsUnavailableMessage = "AI Insights unavailable: Could not connect to the API. Please check your key and network connection."
)

// SystemHandler serves the system screen: network config, export/import,
// manual sync, factory reset, reports and AI insights.
type SystemHandler struct {
	svc         *tracker.Service
	store       *file.Store
	syncManager *syncmgr.Manager
	sessions    *auth.SessionManager
	aiClient    anthropic.Client
	logger      *zap.Logger
}

// NewSystemHandler constructs the HTTP handler adapter. aiClient may be nil
// when no API key is configured.
func NewSystemHandler(svc *tracker.Service, store *file.Store, syncManager *syncmgr.Manager, sessions *auth.SessionManager, aiClient anthropic.Client, logger *zap.Logger) *SystemHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemHandler{
		svc:         svc,
		store:       store,
		syncManager: syncManager,
		sessions:    sessions,
		aiClient:    aiClient,
		logger:      logger,
	}
}

// GetConfig returns the persisted system configuration.
func (h *SystemHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.LoadConfig())
}

// PutConfig overwrites the system configuration. The save notification
// re-arms the auto-sync loop.
func (h *SystemHandler) PutConfig(c *gin.Context) {
	var cfg models.SystemConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if cfg.ConnectionMode != "" && !cfg.ConnectionMode.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown connection mode"})
		return
	}

	if err := h.store.SaveConfig(cfg); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.store.LoadConfig())
}

// Export streams the full snapshot as a downloadable JSON backup.
func (h *SystemHandler) Export(c *gin.Context) {
	document, err := h.syncManager.ExportSnapshot()
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("labeltracker_pro_backup_%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/json", document)
}

// Import replaces the local snapshot with an uploaded backup document.
func (h *SystemHandler) Import(c *gin.Context) {
	document, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
		return
	}

	if err := h.syncManager.ImportSnapshot(document); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "imported"})
}

// Sync runs a push sync immediately and reports the outcome.
func (h *SystemHandler) Sync(c *gin.Context) {
	result := h.syncManager.Push(c.Request.Context())
	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadGateway
	}
	c.JSON(status, result)
}

// Reset performs a factory reset: all durable state is erased and every
// session is terminated. The confirm=true query parameter is required.
func (h *SystemHandler) Reset(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "factory reset requires confirm=true"})
		return
	}

	if err := h.store.Reset(); err != nil {
		respondError(c, err)
		return
	}
	h.sessions.CloseAll()
	h.logger.Info("factory reset performed", zap.String("actor", actingUser(c).Username))
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

// ReportSummary returns the aggregate snapshot summary plus rendered lines.
func (h *SystemHandler) ReportSummary(c *gin.Context) {
	schema := h.svc.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"summary":  reporting.Summarize(schema),
		"lowStock": reporting.LowStockReport(schema),
		"revenue":  reporting.RevenueReport(schema),
	})
}

// Insights asks the AI collaborator for advisory text. Failures collapse to
// sentinel messages; they never affect any other function.
func (h *SystemHandler) Insights(c *gin.Context) {
	if h.aiClient == nil {
		c.JSON(http.StatusOK, gin.H{"insights": insightsDisabledMessage})
		return
	}

	text, err := h.aiClient.InventoryInsights(c.Request.Context(), h.svc.Snapshot())
	if err != nil {
		h.logger.Warn("insight generation failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"insights": insightsUnavailableMessage})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": text})
}
