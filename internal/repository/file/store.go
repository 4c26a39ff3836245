// Package file implements the durable snapshot store. The whole schema is
// written as one JSON document per save, which keeps commits atomic from the
// caller's point of view: the transactional record and its derived stock
// change always land in the same write.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/labeltracker/internal/domain/models"
)

const (
	schemaFile = "db.json"
	configFile = "config.json"
)

// Store owns the canonical durable copy of the schema and system config.
type Store struct {
	dir    string
	logger *zap.Logger
	now    func() time.Time

	notifier *Notifier
}

// NewStore builds a store rooted at dir, creating the directory if needed.
func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &Store{
		dir:      dir,
		logger:   logger,
		now:      time.Now,
		notifier: NewNotifier(),
	}, nil
}

// Subscribe registers a callback invoked after every non-silent write. The
// returned function unregisters it.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	return s.notifier.Subscribe(fn)
}

// Load reads the durable snapshot. Missing or unparsable data yields the
// bootstrap seed without persisting it, so a caller can still tell an
// uninitialized store apart by its empty user list.
func (s *Store) Load() models.DatabaseSchema {
	data, err := os.ReadFile(s.schemaPath())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("unreadable schema file, falling back to seed", zap.Error(err))
		}
		return models.SeedSchema(s.now())
	}

	var schema models.DatabaseSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		s.logger.Warn("corrupted schema file, falling back to seed", zap.Error(err))
		return models.SeedSchema(s.now())
	}

	// groups may be absent in documents written by older versions
	if schema.Groups == nil {
		schema.Groups = []models.Group{}
	}

	return schema
}

// Save overwrites the durable snapshot, stamps lastSync and notifies subscribers.
func (s *Store) Save(schema models.DatabaseSchema) error {
	if err := s.write(schema); err != nil {
		return err
	}
	s.notifier.Notify(EventSchema)
	return nil
}

// SaveSilent overwrites the durable snapshot without notifying. It exists for
// imports that are immediately followed by a full reload, where an
// intermediate notification would be redundant or race with the reload.
func (s *Store) SaveSilent(schema models.DatabaseSchema) error {
	return s.write(schema)
}

func (s *Store) write(schema models.DatabaseSchema) error {
	schema.LastSync = s.now().UnixMilli()

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	if err := atomicWrite(s.schemaPath(), data); err != nil {
		return fmt.Errorf("persist schema: %w", err)
	}

	s.logger.Debug("schema persisted",
		zap.Int("products", len(schema.Products)),
		zap.Int("orders", len(schema.Orders)),
		zap.Int("shipments", len(schema.Shipments)))
	return nil
}

// LoadConfig reads the system configuration, defaulting when absent or
// corrupt. A config saved with rememberServerUrl=false reads back with an
// empty server URL even though the stored value is retained on disk.
func (s *Store) LoadConfig() models.SystemConfig {
	cfg := models.DefaultSystemConfig()

	data, err := os.ReadFile(s.configPath())
	if err == nil {
		if jsonErr := json.Unmarshal(data, &cfg); jsonErr != nil {
			s.logger.Warn("corrupted config file, using defaults", zap.Error(jsonErr))
			cfg = models.DefaultSystemConfig()
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("unreadable config file, using defaults", zap.Error(err))
	}

	if !cfg.ConnectionMode.IsValid() {
		cfg.ConnectionMode = models.ConnectionLAN
	}
	if !cfg.RememberServerURL {
		cfg.ServerURL = ""
	}

	return cfg
}

// SaveConfig overwrites the system configuration and always notifies, since a
// config change must re-arm the auto-sync loop.
func (s *Store) SaveConfig(cfg models.SystemConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := atomicWrite(s.configPath(), data); err != nil {
		return fmt.Errorf("persist config: %w", err)
	}
	s.notifier.Notify(EventConfig)
	return nil
}

// Reset erases both the schema and the config durable state. Irreversible.
func (s *Store) Reset() error {
	for _, path := range []string{s.schemaPath(), s.configPath()} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}
	s.logger.Info("store reset, all durable state erased")
	s.notifier.Notify(EventSchema)
	s.notifier.Notify(EventConfig)
	return nil
}

func (s *Store) schemaPath() string { return filepath.Join(s.dir, schemaFile) }
func (s *Store) configPath() string { return filepath.Join(s.dir, configFile) }

// atomicWrite writes via a temp file and rename so a crash mid-write never
// leaves a truncated document behind.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
