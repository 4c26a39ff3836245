// Package reconcile holds the pure stock-reconciliation rules. Every function
// takes the current snapshot plus a mutation intent and returns the next
// snapshot; the caller commits it with a single store write so the
// transactional record and the derived stock change land together.
package reconcile

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mamadbah2/labeltracker/internal/domain/models"
)

// OrderRequest carries the fields a caller supplies when creating an order.
// SellingPrice zero means "copy the product's current unit price".
type OrderRequest struct {
	CustomerName      string
	ProductID         string
	Quantity          int
	SellingPrice      float64
	PaymentStatus     models.PaymentStatus
	OrderDate         int64
	InvoiceNumber     string
	InvoiceDateMillis int64
}

// ShipmentRequest carries the fields a caller supplies when recording a shipment.
type ShipmentRequest struct {
	TrackingNumber     string
	Carrier            string
	Origin             string
	Destination        string
	ShipmentDateMillis int64
	ETAMillis          int64
	Status             models.ShipmentStatus
	Notes              string
	ProductID          string
	ShipmentType       models.ShipmentType
	Quantity           int
	InvoiceNumber      string
	InvoiceDateMillis  int64
}

// CreateOrder records a sale and decrements the product's stock by the ordered
// quantity. There is no floor check: stock may go negative, overselling is
// corrected later by the operator. A request against an unknown product leaves
// the snapshot untouched.
func CreateOrder(old models.DatabaseSchema, req OrderRequest, now time.Time) (models.DatabaseSchema, models.Order, Outcome) {
	idx := old.ProductIndex(req.ProductID)
	if idx < 0 {
		return old, models.Order{}, NoopMissingProduct
	}

	next := old.Clone()
	product := next.Products[idx]

	price := req.SellingPrice
	if price == 0 {
		price = product.UnitPrice
	}

	orderDate := req.OrderDate
	if orderDate == 0 {
		orderDate = now.UnixMilli()
	}

	order := models.Order{
		ID:                uuid.NewString(),
		OrderNumber:       orderNumber(now),
		CustomerName:      req.CustomerName,
		ProductID:         req.ProductID,
		ProductName:       product.DisplayName(),
		Quantity:          req.Quantity,
		SellingPrice:      price,
		TotalAmount:       price * float64(req.Quantity),
		OrderDate:         orderDate,
		PaymentStatus:     req.PaymentStatus,
		InvoiceNumber:     req.InvoiceNumber,
		InvoiceDateMillis: req.InvoiceDateMillis,
	}

	next.Products[idx].StockQuantity -= req.Quantity
	next.Orders = append([]models.Order{order}, next.Orders...)

	return next, order, Applied
}

// DeleteOrder removes an order and restores the referenced product's stock by
// the order's quantity, the exact inverse of CreateOrder. If the product was
// deleted in the meantime the restoration is skipped and the deletion still
// goes through.
func DeleteOrder(old models.DatabaseSchema, orderID string) (models.DatabaseSchema, Outcome) {
	idx := old.OrderIndex(orderID)
	if idx < 0 {
		return old, NoopMissingRecord
	}

	next := old.Clone()
	order := next.Orders[idx]
	next.Orders = append(next.Orders[:idx], next.Orders[idx+1:]...)

	productIdx := next.ProductIndex(order.ProductID)
	if productIdx < 0 {
		return next, AppliedStockSkipped
	}

	next.Products[productIdx].StockQuantity += order.Quantity
	return next, Applied
}

// AddShipment records a shipment at the head of the list. A shipment created
// directly in DELIVERED status that is inbound and carries a product and
// quantity increments stock immediately, instead of on a later transition.
func AddShipment(old models.DatabaseSchema, req ShipmentRequest, now time.Time) (models.DatabaseSchema, models.Shipment, Outcome) {
	next := old.Clone()

	shipmentDate := req.ShipmentDateMillis
	if shipmentDate == 0 {
		shipmentDate = now.UnixMilli()
	}

	shipment := models.Shipment{
		ID:                 uuid.NewString(),
		TrackingNumber:     req.TrackingNumber,
		Carrier:            req.Carrier,
		Origin:             req.Origin,
		Destination:        req.Destination,
		ShipmentDateMillis: shipmentDate,
		ETAMillis:          req.ETAMillis,
		Status:             req.Status,
		Notes:              req.Notes,
		ProductID:          req.ProductID,
		ShipmentType:       req.ShipmentType,
		Quantity:           req.Quantity,
		InvoiceNumber:      req.InvoiceNumber,
		InvoiceDateMillis:  req.InvoiceDateMillis,
	}

	next.Shipments = append([]models.Shipment{shipment}, next.Shipments...)

	outcome := Applied
	if shipment.AffectsStock() && shipment.Status == models.ShipmentDelivered {
		if idx := next.ProductIndex(shipment.ProductID); idx >= 0 {
			next.Products[idx].StockQuantity += shipment.Quantity
		} else {
			outcome = AppliedStockSkipped
		}
	}

	return next, shipment, outcome
}

// UpdateShipmentStatus replaces a shipment's status unconditionally, then
// applies the edge-triggered delivery rule: an inbound shipment with a product
// and quantity that moves into DELIVERED from any other status increments the
// product's stock and stamps the product's last-invoice provenance.
//
// The trigger compares against the immediately prior status only. Cycling
// DELIVERED -> IN_TRANSIT -> DELIVERED therefore applies the increment twice
// for one physical delivery; that matches the long-standing behavior and is
// kept as-is rather than replaced with an ever-delivered flag.
func UpdateShipmentStatus(old models.DatabaseSchema, shipmentID string, status models.ShipmentStatus, now time.Time) (models.DatabaseSchema, Outcome) {
	idx := old.ShipmentIndex(shipmentID)
	if idx < 0 {
		return old, NoopMissingRecord
	}

	next := old.Clone()
	shipment := next.Shipments[idx]
	oldStatus := shipment.Status
	next.Shipments[idx].Status = status

	if !shipment.AffectsStock() || oldStatus == models.ShipmentDelivered || status != models.ShipmentDelivered {
		return next, Applied
	}

	productIdx := next.ProductIndex(shipment.ProductID)
	if productIdx < 0 {
		return next, AppliedStockSkipped
	}

	next.Products[productIdx].StockQuantity += shipment.Quantity
	if shipment.InvoiceNumber != "" {
		next.Products[productIdx].LastInvoiceNumber = shipment.InvoiceNumber
		if shipment.InvoiceDateMillis != 0 {
			next.Products[productIdx].LastInvoiceDate = shipment.InvoiceDateMillis
		} else {
			next.Products[productIdx].LastInvoiceDate = now.UnixMilli()
		}
	}

	return next, Applied
}

func orderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%04d", now.UnixMilli()%10000)
}
