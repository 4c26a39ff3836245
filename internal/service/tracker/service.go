// Package tracker is the single mutation entry point of the core. Every
// operation takes the acting principal, consults the access-control model
// before anything else, and commits reconciler output with one store write.
// No caller can reach the reconciler or the store around this gate.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/labeltracker/internal/auth"
	"github.com/mamadbah2/labeltracker/internal/domain/models"
	"github.com/mamadbah2/labeltracker/internal/reconcile"
	"github.com/mamadbah2/labeltracker/internal/repository/file"
)

// ErrPermissionDenied is returned when the acting user lacks the permission an
// operation requires. The mutation is rejected before any state is touched.
var ErrPermissionDenied = errors.New("permission denied")

// ErrNotFound is returned by lookups and by mutations whose target record or
// referenced entity does not exist and whose contract is not a silent no-op.
var ErrNotFound = errors.New("not found")

// Service wires the access-control model, the reconciler and the store.
type Service struct {
	store  *file.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService constructs the core service.
func NewService(store *file.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// Snapshot returns a deep copy of the current schema for read-only consumers.
func (s *Service) Snapshot() models.DatabaseSchema {
	return s.store.Load().Clone()
}

// BootstrapPhase reports whether the store needs initial setup or a login.
func (s *Service) BootstrapPhase() auth.Phase {
	return auth.BootstrapPhase(s.store.Load())
}

// Authenticate checks credentials against the stored users.
func (s *Service) Authenticate(username, password string) (models.User, error) {
	return auth.Authenticate(s.store.Load(), username, password)
}

// InitialSetup creates the first admin user and persists the resulting schema.
func (s *Service) InitialSetup(username, password, displayName string) (models.User, error) {
	schema := s.store.Load()
	next, admin, err := auth.InitialSetup(schema, username, password, displayName)
	if err != nil {
		return models.User{}, err
	}
	if err := s.store.Save(next); err != nil {
		return models.User{}, err
	}
	s.logger.Info("initial setup completed", zap.String("username", admin.Username))
	return admin, nil
}

// UserByID resolves a principal from the current snapshot, so that a stale or
// forged user value cannot carry permissions it no longer holds.
func (s *Service) UserByID(id string) (models.User, error) {
	schema := s.store.Load()
	idx := schema.UserIndex(id)
	if idx < 0 {
		return models.User{}, ErrNotFound
	}
	return schema.Users[idx], nil
}

// authorize re-resolves the actor against the given snapshot and checks the
// permission. The check is the sole gate; reconciliation is never invoked
// when it fails.
func (s *Service) authorize(schema models.DatabaseSchema, actor models.User, perm models.Permission) (models.User, error) {
	idx := schema.UserIndex(actor.ID)
	if idx < 0 {
		return models.User{}, fmt.Errorf("%w: unknown actor", ErrPermissionDenied)
	}
	current := schema.Users[idx]
	if !auth.HasPermission(schema, current, perm) {
		s.logger.Warn("mutation rejected",
			zap.String("actor", current.Username),
			zap.String("permission", string(perm)))
		return models.User{}, fmt.Errorf("%w: %s requires %s", ErrPermissionDenied, current.Username, perm)
	}
	return current, nil
}

// CreateProduct adds a product. Requires MANAGE_INVENTORY.
func (s *Service) CreateProduct(actor models.User, product models.Product) (models.Product, error) {
	schema := s.store.Load()
	if _, err := s.authorize(schema, actor, models.PermManageInventory); err != nil {
		return models.Product{}, err
	}

	product.ID = uuid.NewString()
	if product.LabelName == "" {
		product.LabelName = fmt.Sprintf("SKU-%d", s.now().UnixMilli()%100000)
	}

	next := schema.Clone()
	next.Products = append([]models.Product{product}, next.Products...)
	if err := s.store.Save(next); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// UpdateProduct replaces an existing product's editable fields. The edit path
// carries stockQuantity through unchanged only via the caller-supplied value;
// reconciliation remains the sole automatic mutator of stock.
func (s *Service) UpdateProduct(actor models.User, product models.Product) error {
	schema := s.store.Load()
	if _, err := s.authorize(schema, actor, models.PermManageInventory); err != nil {
		return err
	}

	idx := schema.ProductIndex(product.ID)
	if idx < 0 {
		return fmt.Errorf("product %s: %w", product.ID, ErrNotFound)
	}

	next := schema.Clone()
	next.Products[idx] = product
	return s.store.Save(next)
}

// DeleteProduct removes a product. Historical orders and shipments referencing
// it are left intact with a dangling product id.
func (s *Service) DeleteProduct(actor models.User, productID string) error {
	schema := s.store.Load()
	if _, err := s.authorize(schema, actor, models.PermManageInventory); err != nil {
		return err
	}

	idx := schema.ProductIndex(productID)
	if idx < 0 {
		return fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}

	next := schema.Clone()
	next.Products = append(next.Products[:idx], next.Products[idx+1:]...)
	return s.store.Save(next)
}

// CreateOrder records a sale through the reconciler. Requires MANAGE_ORDERS.
func (s *Service) CreateOrder(actor models.User, req reconcile.OrderRequest) (models.Order, reconcile.Outcome, error) {
	schema := s.store.Load()
	if _, err := s.authorize(schema, actor, models.PermManageOrders); err != nil {
		return models.Order{}, 0, err
	}

	next, order, outcome := reconcile.CreateOrder(schema, req, s.now())
	if !outcome.Mutated() {
		s.logger.Warn("order creation skipped", zap.String("outcome", outcome.String()), zap.String("product", req.ProductID))
		return models.Order{}, outcome, nil
	}
	if err := s.store.Save(next); err != nil {
		return models.Order{}, outcome, err
	}
	return order, outcome, nil
}

// DeleteOrder removes an order and restores stock through the reconciler.
func (s *Service) DeleteOrder(actor models.User, orderID string) (reconcile.Outcome, error) {
	schema := s.store.Load()
	if _, err := s.authorize(schema, actor, models.PermManageOrders); err != nil {
		return 0, err
	}

	next, outcome := reconcile.DeleteOrder(schema, orderID)
	if !outcome.Mutated() {
		s.logger.Warn("order deletion skipped", zap.String("outcome", outcome.String()), zap.String("order", orderID))
		return outcome, nil
	}
	if outcome == reconcile.AppliedStockSkipped {
		s.logger.Warn("stock restore skipped, product deleted", zap.String("order", orderID))
	}
	if err := s.store.Save(next); err != nil {
		return outcome, err
	}
	return outcome, nil
}

// AddShipment records a shipment through the reconciler. Requires MANAGE_LOGISTICS.
func (s *Service) AddShipment(actor models.User, req reconcile.ShipmentRequest) (models.Shipment, reconcile.Outcome, error) {
	schema := s.store.Load()
	if _, err := s.authorize(schema, actor, models.PermManageLogistics); err != nil {
		return models.Shipment{}, 0, err
	}

	next, shipment, outcome := reconcile.AddShipment(schema, req, s.now())
	if outcome == reconcile.AppliedStockSkipped {
		s.logger.Warn("delivery stock increment skipped, product missing", zap.String("product", req.ProductID))
	}
	if err := s.store.Save(next); err != nil {
		return models.Shipment{}, outcome, err
	}
	return shipment, outcome, nil
}

// UpdateShipmentStatus moves a shipment to a new status through the reconciler.
func (s *Service) UpdateShipmentStatus(actor models.User, shipmentID string, status models.ShipmentStatus) (reconcile.Outcome, error) {
	if !status.IsValid() {
		return 0, fmt.Errorf("unknown shipment status %q", status)
	}

	schema := s.store.Load()
	if _, err := s.authorize(schema, actor, models.PermManageLogistics); err != nil {
		return 0, err
	}

	next, outcome := reconcile.UpdateShipmentStatus(schema, shipmentID, status, s.now())
	if !outcome.Mutated() {
		s.logger.Warn("shipment status update skipped", zap.String("outcome", outcome.String()), zap.String("shipment", shipmentID))
		return outcome, nil
	}
	if outcome == reconcile.AppliedStockSkipped {
		s.logger.Warn("delivery stock increment skipped, product missing", zap.String("shipment", shipmentID))
	}
	if err := s.store.Save(next); err != nil {
		return outcome, err
	}
	return outcome, nil
}
