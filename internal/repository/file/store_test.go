package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mamadbah2/labeltracker/internal/domain/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestLoadMissingFileReturnsSeedWithoutPersisting(t *testing.T) {
	store := newTestStore(t)

	schema := store.Load()

	assert.Equal(t, models.SchemaVersion, schema.Version)
	assert.Len(t, schema.Products, 3)
	assert.Empty(t, schema.Users, "seed must be distinguishable as uninitialized")

	_, err := os.Stat(store.schemaPath())
	assert.True(t, os.IsNotExist(err), "seed must not be written to disk by Load")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	schema := models.SeedSchema(time.Now())
	schema.Users = []models.User{{ID: "u1", Username: "admin", Password: "secret", Role: models.RoleAdmin}}
	require.NoError(t, store.Save(schema))

	loaded := store.Load()
	assert.Equal(t, schema.Products, loaded.Products)
	assert.Equal(t, schema.Orders, loaded.Orders)
	assert.Equal(t, schema.Shipments, loaded.Shipments)
	assert.Equal(t, schema.Users, loaded.Users)
	assert.NotZero(t, loaded.LastSync)
}

func TestSaveStampsLastSync(t *testing.T) {
	store := newTestStore(t)
	fixed := time.UnixMilli(1700000000000)
	store.now = func() time.Time { return fixed }

	require.NoError(t, store.Save(models.DatabaseSchema{Version: models.SchemaVersion}))

	assert.Equal(t, fixed.UnixMilli(), store.Load().LastSync)
}

func TestLoadCorruptFileSelfHeals(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.schemaPath(), []byte("{not json"), 0o644))

	schema := store.Load()
	assert.Equal(t, models.SchemaVersion, schema.Version)
	assert.Len(t, schema.Products, 3)
}

func TestLoadDefaultsAbsentGroups(t *testing.T) {
	store := newTestStore(t)
	// document written by an older version, no groups key
	doc := `{"version":"4.0.0-unified","lastSync":1,"products":[],"orders":[],"shipments":[],"users":[]}`
	require.NoError(t, os.WriteFile(store.schemaPath(), []byte(doc), 0o644))

	schema := store.Load()
	assert.NotNil(t, schema.Groups)
	assert.Empty(t, schema.Groups)
}

func TestConfigDefaultsAndRememberMask(t *testing.T) {
	store := newTestStore(t)

	cfg := store.LoadConfig()
	assert.Equal(t, models.ConnectionLAN, cfg.ConnectionMode)
	assert.True(t, cfg.RememberServerURL)
	assert.Empty(t, cfg.ServerURL)

	cfg.ServerURL = "http://192.168.1.50:3000"
	cfg.RememberServerURL = false
	require.NoError(t, store.SaveConfig(cfg))

	// the stored value is retained but masked on read
	reloaded := store.LoadConfig()
	assert.Empty(t, reloaded.ServerURL)

	raw, err := os.ReadFile(store.configPath())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "http://192.168.1.50:3000")
}

func TestNotifications(t *testing.T) {
	store := newTestStore(t)

	var events []Event
	unsubscribe := store.Subscribe(func(ev Event) { events = append(events, ev) })

	require.NoError(t, store.Save(models.DatabaseSchema{}))
	require.NoError(t, store.SaveSilent(models.DatabaseSchema{}))
	require.NoError(t, store.SaveConfig(models.DefaultSystemConfig()))

	assert.Equal(t, []Event{EventSchema, EventConfig}, events)

	unsubscribe()
	require.NoError(t, store.Save(models.DatabaseSchema{}))
	assert.Len(t, events, 2, "unsubscribed callback must not fire")
}

func TestReset(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(models.SeedSchema(time.Now())))
	require.NoError(t, store.SaveConfig(models.DefaultSystemConfig()))
	require.NoError(t, store.Reset())

	for _, name := range []string{schemaFile, configFile} {
		_, err := os.Stat(filepath.Join(store.dir, name))
		assert.True(t, os.IsNotExist(err))
	}

	// a second reset with nothing on disk is fine
	require.NoError(t, store.Reset())
}
