package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/labeltracker/internal/repository/mongodb"
	syncmgr "github.com/mamadbah2/labeltracker/internal/sync"
)

// SyncHandler is the receiving side of push synchronization: peer devices on
// the local network POST their full snapshot here.
type SyncHandler struct {
	syncManager *syncmgr.Manager
	archive     mongodb.Archive
	logger      *zap.Logger
}

// NewSyncHandler constructs the HTTP handler adapter. archive may be nil when
// snapshot archival is not configured.
func NewSyncHandler(syncManager *syncmgr.Manager, archive mongodb.Archive, logger *zap.Logger) *SyncHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncHandler{syncManager: syncManager, archive: archive, logger: logger}
}

// Receive validates a pushed snapshot, replaces the local one wholesale and
// archives the received document when an archive is configured.
func (h *SyncHandler) Receive(c *gin.Context) {
	document, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
		return
	}

	if err := h.syncManager.ImportSnapshot(document); err != nil {
		h.logger.Warn("rejected pushed snapshot", zap.String("peer", c.ClientIP()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.archive != nil {
		snapshot := mongodb.ReceivedSnapshot{
			NodeAddr:   c.ClientIP(),
			ReceivedAt: time.Now(),
		}
		if jsonErr := snapshotFromDocument(document, &snapshot); jsonErr != nil {
			h.logger.Warn("could not decode snapshot for archive", zap.Error(jsonErr))
		} else if archiveErr := h.archive.ArchiveSnapshot(c.Request.Context(), snapshot); archiveErr != nil {
			// archival is best-effort; the import already succeeded
			h.logger.Warn("failed to archive received snapshot", zap.Error(archiveErr))
		}
	}

	h.logger.Info("snapshot received from peer", zap.String("peer", c.ClientIP()))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func snapshotFromDocument(document []byte, snapshot *mongodb.ReceivedSnapshot) error {
	return json.Unmarshal(document, &snapshot.Document)
}
