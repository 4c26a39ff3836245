// Package sync implements snapshot export/import and best-effort push delivery
// to the configured remote node.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/labeltracker/internal/domain/models"
	"github.com/mamadbah2/labeltracker/internal/repository/file"
)

// ErrInvalidDocument is returned when an imported document is missing required
// top-level keys or cannot be parsed at all.
var ErrInvalidDocument = errors.New("invalid or corrupted backup document")

// requiredKeys must all be present in an import document. groups is tolerated
// absent for documents written by older versions.
var requiredKeys = []string{"version", "products", "orders", "shipments", "users"}

const defaultPushTimeout = 10 * time.Second

// Result collapses a sync attempt to a boolean plus a human-readable message.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Manager handles manual export/import and push synchronization.
type Manager struct {
	store  *file.Store
	client *resty.Client
	logger *zap.Logger
}

// NewManager wires a sync manager around the durable store.
func NewManager(store *file.Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(defaultPushTimeout)

	return &Manager{store: store, client: client, logger: logger}
}

// SetTimeout bounds the push network call. Expiry is reported as a sync
// failure, never a hang.
func (m *Manager) SetTimeout(d time.Duration) {
	m.client.SetTimeout(d)
}

// ExportSnapshot renders the full schema as a self-describing JSON document
// suitable for transfer and later import.
func (m *Manager) ExportSnapshot() ([]byte, error) {
	schema := m.store.Load()
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// ImportSnapshot validates the document and replaces the local snapshot
// wholesale with a silent write; the caller is expected to reload its caches.
// On validation failure the existing local state is left untouched.
func (m *Manager) ImportSnapshot(document []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(document, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			return fmt.Errorf("%w: missing %q", ErrInvalidDocument, key)
		}
	}

	var schema models.DatabaseSchema
	if err := json.Unmarshal(document, &schema); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if schema.Groups == nil {
		schema.Groups = []models.Group{}
	}

	if err := m.store.SaveSilent(schema); err != nil {
		return fmt.Errorf("persist imported snapshot: %w", err)
	}

	m.logger.Info("snapshot imported",
		zap.Int("products", len(schema.Products)),
		zap.Int("orders", len(schema.Orders)),
		zap.Int("users", len(schema.Users)))
	return nil
}

// Push delivers the full snapshot to the configured remote node. Without a
// configured server URL it fails fast; a network failure is a non-fatal
// status and never corrupts local state.
func (m *Manager) Push(ctx context.Context) Result {
	cfg := m.store.LoadConfig()
	if cfg.ServerURL == "" {
		return Result{Success: false, Message: "No server URL configured."}
	}

	document, err := m.ExportSnapshot()
	if err != nil {
		return Result{Success: false, Message: "Could not serialize local data: " + err.Error()}
	}

	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(document).
		Post(cfg.ServerURL + "/api/sync")
	if err != nil {
		m.logger.Warn("push sync failed", zap.String("server", cfg.ServerURL), zap.Error(err))
		return Result{Success: false, Message: "Connection to server failed."}
	}
	if resp.IsError() {
		m.logger.Warn("push sync rejected", zap.String("server", cfg.ServerURL), zap.Int("status", resp.StatusCode()))
		return Result{Success: false, Message: fmt.Sprintf("Server rejected sync (HTTP %d).", resp.StatusCode())}
	}

	// restamp lastSync and let subscribers pick it up
	if err := m.store.Save(m.store.Load()); err != nil {
		m.logger.Warn("failed to stamp lastSync after push", zap.Error(err))
	}

	return Result{Success: true, Message: "Synchronized with " + cfg.ServerURL}
}
