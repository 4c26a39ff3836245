package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mamadbah2/labeltracker/internal/domain/models"
	"github.com/mamadbah2/labeltracker/internal/reconcile"
	"github.com/mamadbah2/labeltracker/internal/repository/file"
)

// newTestService builds a service over a fresh store with an admin, a clerk
// restricted to order management, and an unprivileged viewer.
func newTestService(t *testing.T) (*Service, *file.Store, models.User, models.User, models.User) {
	t.Helper()

	store, err := file.NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	schema := models.SeedSchema(time.Now())
	admin := models.User{ID: "u-admin", Username: "admin", Password: "secret", DisplayName: "Root", Role: models.RoleAdmin}
	clerk := models.User{ID: "u-clerk", Username: "clerk", Password: "pw", Role: models.RoleUser, GroupID: "g-sales"}
	viewer := models.User{ID: "u-viewer", Username: "viewer", Password: "pw", Role: models.RoleUser, GroupID: "g-view"}
	schema.Users = []models.User{admin, clerk, viewer}
	schema.Groups = []models.Group{
		{ID: "g-sales", Name: "Sales", Permissions: []models.Permission{models.PermManageOrders}},
		{ID: "g-view", Name: "Viewers", Permissions: []models.Permission{models.PermViewReports}},
	}
	require.NoError(t, store.Save(schema))

	return NewService(store, zap.NewNop()), store, admin, clerk, viewer
}

func TestDeniedMutationLeavesStateUntouched(t *testing.T) {
	svc, store, _, _, viewer := newTestService(t)
	before := store.Load()

	_, _, err := svc.CreateOrder(viewer, reconcile.OrderRequest{ProductID: "p1", Quantity: 5})
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.CreateProduct(viewer, models.Product{ProductName: "X"})
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.UpdateShipmentStatus(viewer, "s1", models.ShipmentDelivered)
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.CreateUser(viewer, models.User{Username: "x", Password: "x", Role: models.RoleUser})
	require.ErrorIs(t, err, ErrPermissionDenied)

	after := store.Load()
	assert.Equal(t, before.Products, after.Products)
	assert.Equal(t, before.Orders, after.Orders)
	assert.Equal(t, before.Shipments, after.Shipments)
	assert.Equal(t, before.Users, after.Users)
}

func TestGroupPermissionGatesMutations(t *testing.T) {
	svc, store, _, clerk, _ := newTestService(t)

	// clerk may manage orders
	order, outcome, err := svc.CreateOrder(clerk, reconcile.OrderRequest{
		CustomerName:  "Acme Corporation",
		ProductID:     "p1",
		Quantity:      5,
		PaymentStatus: models.PaymentPaid,
	})
	require.NoError(t, err)
	require.Equal(t, reconcile.Applied, outcome)
	assert.Equal(t, 145, store.Load().Products[0].StockQuantity)

	// but not inventory or logistics
	_, err = svc.CreateProduct(clerk, models.Product{ProductName: "X"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, _, err = svc.AddShipment(clerk, reconcile.ShipmentRequest{Status: models.ShipmentPending, ShipmentType: models.ShipmentOutbound})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// deleting the order round-trips the stock
	outcome, err = svc.DeleteOrder(clerk, order.ID)
	require.NoError(t, err)
	require.Equal(t, reconcile.Applied, outcome)
	assert.Equal(t, 150, store.Load().Products[0].StockQuantity)
}

func TestActorIsReResolvedFromSnapshot(t *testing.T) {
	svc, _, _, clerk, _ := newTestService(t)

	// a forged role on the passed-in principal must not grant anything
	forged := clerk
	forged.Role = models.RoleAdmin
	_, err := svc.CreateProduct(forged, models.Product{ProductName: "X"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// an unknown actor is rejected outright
	ghost := models.User{ID: "ghost", Role: models.RoleAdmin}
	_, err = svc.CreateProduct(ghost, models.Product{ProductName: "X"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestAdminFullMutationFlow(t *testing.T) {
	svc, store, admin, _, _ := newTestService(t)

	product, err := svc.CreateProduct(admin, models.Product{ProductName: "Clear PET Roll", UnitPrice: 30, StockQuantity: 10, MinStockAlertLevel: 5})
	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.NotEmpty(t, product.LabelName, "SKU is generated when absent")

	shipment, outcome, err := svc.AddShipment(admin, reconcile.ShipmentRequest{
		TrackingNumber: "TRK-9",
		Status:         models.ShipmentPending,
		ProductID:      product.ID,
		ShipmentType:   models.ShipmentInbound,
		Quantity:       40,
	})
	require.NoError(t, err)
	require.Equal(t, reconcile.Applied, outcome)

	outcome, err = svc.UpdateShipmentStatus(admin, shipment.ID, models.ShipmentDelivered)
	require.NoError(t, err)
	require.Equal(t, reconcile.Applied, outcome)

	schema := store.Load()
	idx := schema.ProductIndex(product.ID)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, 50, schema.Products[idx].StockQuantity)

	require.NoError(t, svc.DeleteProduct(admin, product.ID))
	assert.Equal(t, -1, store.Load().ProductIndex(product.ID))
	// the delivered shipment stays behind with a dangling product id
	assert.GreaterOrEqual(t, store.Load().ShipmentIndex(shipment.ID), 0)
}

func TestCreateOrderMissingProductOutcome(t *testing.T) {
	svc, store, admin, _, _ := newTestService(t)
	before := store.Load()

	_, outcome, err := svc.CreateOrder(admin, reconcile.OrderRequest{ProductID: "ghost", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, reconcile.NoopMissingProduct, outcome)
	assert.Equal(t, before.Orders, store.Load().Orders)
}

func TestUpdateShipmentStatusRejectsUnknownStatus(t *testing.T) {
	svc, _, admin, _, _ := newTestService(t)
	_, err := svc.UpdateShipmentStatus(admin, "s1", models.ShipmentStatus("LOST"))
	assert.Error(t, err)
}

func TestUserAndGroupManagement(t *testing.T) {
	svc, store, admin, clerk, _ := newTestService(t)

	// clerk has no MANAGE_USERS
	_, err := svc.SaveGroup(clerk, models.Group{Name: "Ops"})
	require.ErrorIs(t, err, ErrPermissionDenied)

	group, err := svc.SaveGroup(admin, models.Group{Name: "Ops", Permissions: []models.Permission{models.PermManageLogistics}})
	require.NoError(t, err)

	user, err := svc.CreateUser(admin, models.User{Username: "ops1", Password: "pw", DisplayName: "Ops One", Role: models.RoleUser, GroupID: group.ID})
	require.NoError(t, err)

	// duplicate usernames are rejected
	_, err = svc.CreateUser(admin, models.User{Username: "ops1", Password: "pw", Role: models.RoleUser})
	assert.Error(t, err)

	// deleting the group leaves the member with a dangling groupId and no permissions
	require.NoError(t, svc.DeleteGroup(admin, group.ID))
	_, _, err = svc.AddShipment(user, reconcile.ShipmentRequest{Status: models.ShipmentPending, ShipmentType: models.ShipmentOutbound})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	stored, err := svc.UserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, group.ID, stored.GroupID)

	// the last-user guard
	schema := store.Load()
	for _, u := range schema.Users {
		if u.ID != admin.ID {
			require.NoError(t, svc.DeleteUser(admin, u.ID))
		}
	}
	err = svc.DeleteUser(admin, admin.ID)
	assert.Error(t, err)
}

func TestInitialSetupThroughService(t *testing.T) {
	store, err := file.NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	svc := NewService(store, zap.NewNop())

	require.Equal(t, "SETUP_REQUIRED", string(svc.BootstrapPhase()))

	admin, err := svc.InitialSetup("admin", "secret", "Root")
	require.NoError(t, err)
	require.Equal(t, "LOGIN_REQUIRED", string(svc.BootstrapPhase()))

	// setup persisted the seed products along with the new user
	schema := store.Load()
	assert.Len(t, schema.Users, 1)
	assert.Len(t, schema.Groups, 1)
	assert.Len(t, schema.Products, 3)

	authenticated, err := svc.Authenticate("admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, authenticated.ID)
}
