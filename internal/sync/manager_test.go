package sync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mamadbah2/labeltracker/internal/domain/models"
	"github.com/mamadbah2/labeltracker/internal/repository/file"
)

func newTestManager(t *testing.T) (*Manager, *file.Store) {
	t.Helper()
	store, err := file.NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return NewManager(store, zap.NewNop()), store
}

func populatedSchema(t *testing.T, store *file.Store) models.DatabaseSchema {
	t.Helper()
	schema := models.SeedSchema(time.Now())
	schema.Users = []models.User{{ID: "u1", Username: "admin", Password: "secret", DisplayName: "Root", Role: models.RoleAdmin, GroupID: "g1"}}
	schema.Groups = []models.Group{{ID: "g1", Name: "Administrators", Permissions: models.AllPermissions()}}
	require.NoError(t, store.Save(schema))
	return store.Load()
}

func TestExportImportFidelity(t *testing.T) {
	manager, store := newTestManager(t)
	before := populatedSchema(t, store)

	document, err := manager.ExportSnapshot()
	require.NoError(t, err)

	require.NoError(t, manager.ImportSnapshot(document))
	after := store.Load()

	// only lastSync may differ
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, before.Products, after.Products)
	assert.Equal(t, before.Orders, after.Orders)
	assert.Equal(t, before.Shipments, after.Shipments)
	assert.Equal(t, before.Users, after.Users)
	assert.Equal(t, before.Groups, after.Groups)
}

func TestImportRejectsMissingKeys(t *testing.T) {
	manager, store := newTestManager(t)
	before := populatedSchema(t, store)

	for _, missing := range []string{"version", "products", "orders", "shipments", "users"} {
		document, err := manager.ExportSnapshot()
		require.NoError(t, err)

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(document, &raw))
		delete(raw, missing)
		mangled, err := json.Marshal(raw)
		require.NoError(t, err)

		err = manager.ImportSnapshot(mangled)
		assert.ErrorIs(t, err, ErrInvalidDocument, "document without %q must be rejected", missing)
	}

	// local state untouched after all the rejections
	assert.Equal(t, before.Users, store.Load().Users)
}

func TestImportRejectsGarbage(t *testing.T) {
	manager, _ := newTestManager(t)
	assert.ErrorIs(t, manager.ImportSnapshot([]byte("not json at all")), ErrInvalidDocument)
}

func TestImportToleratesAbsentGroups(t *testing.T) {
	manager, store := newTestManager(t)

	document := []byte(`{"version":"4.0.0-unified","lastSync":1,"products":[],"orders":[],"shipments":[],"users":[]}`)
	require.NoError(t, manager.ImportSnapshot(document))

	schema := store.Load()
	assert.NotNil(t, schema.Groups)
	assert.Empty(t, schema.Groups)
}

func TestImportIsSilent(t *testing.T) {
	manager, store := newTestManager(t)

	notified := false
	unsubscribe := store.Subscribe(func(file.Event) { notified = true })
	defer unsubscribe()

	document := []byte(`{"version":"4.0.0-unified","products":[],"orders":[],"shipments":[],"users":[],"groups":[]}`)
	require.NoError(t, manager.ImportSnapshot(document))
	assert.False(t, notified, "import must write silently")
}

func TestPushWithoutServerURLFailsFast(t *testing.T) {
	manager, _ := newTestManager(t)

	result := manager.Push(context.Background())
	assert.False(t, result.Success)
	assert.Equal(t, "No server URL configured.", result.Message)
}

func TestPushDeliversSnapshot(t *testing.T) {
	var received models.DatabaseSchema
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/sync", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	manager, store := newTestManager(t)
	populatedSchema(t, store)

	cfg := store.LoadConfig()
	cfg.ServerURL = server.URL
	require.NoError(t, store.SaveConfig(cfg))

	result := manager.Push(context.Background())
	require.True(t, result.Success, result.Message)
	assert.Contains(t, result.Message, server.URL)
	assert.Len(t, received.Products, 3)
	assert.Len(t, received.Users, 1)
}

func TestPushReportsServerRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	manager, store := newTestManager(t)
	cfg := store.LoadConfig()
	cfg.ServerURL = server.URL
	require.NoError(t, store.SaveConfig(cfg))

	result := manager.Push(context.Background())
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "400")
}

func TestPushTimesOutInsteadOfHanging(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	manager, store := newTestManager(t)
	manager.SetTimeout(50 * time.Millisecond)

	cfg := store.LoadConfig()
	cfg.ServerURL = server.URL
	require.NoError(t, store.SaveConfig(cfg))

	start := time.Now()
	result := manager.Push(context.Background())
	assert.False(t, result.Success)
	assert.Less(t, time.Since(start), 250*time.Millisecond)
}
