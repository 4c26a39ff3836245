package models

// ShipmentStatus enumerates the lifecycle states of a shipment. Transitions are
// not restricted to a sequence; any status is reachable from any other.
type ShipmentStatus string

const (
	ShipmentPending   ShipmentStatus = "PENDING"
	ShipmentInTransit ShipmentStatus = "IN_TRANSIT"
	ShipmentDelivered ShipmentStatus = "DELIVERED"
	ShipmentCancelled ShipmentStatus = "CANCELLED"
)

// IsValid reports whether the value is a known shipment status.
func (s ShipmentStatus) IsValid() bool {
	switch s {
	case ShipmentPending, ShipmentInTransit, ShipmentDelivered, ShipmentCancelled:
		return true
	}
	return false
}

// ShipmentType distinguishes goods arriving at the warehouse from goods leaving it.
type ShipmentType string

const (
	ShipmentInbound  ShipmentType = "INBOUND"
	ShipmentOutbound ShipmentType = "OUTBOUND"
)

// IsValid reports whether the value is a known shipment type.
func (t ShipmentType) IsValid() bool {
	return t == ShipmentInbound || t == ShipmentOutbound
}

// Shipment is a logistics record. Only INBOUND shipments with a product and
// quantity affect stock, and only on the transition into DELIVERED; OUTBOUND
// shipments are correlated with stock but never authoritative over it.
type Shipment struct {
	ID                 string         `json:"id"`
	TrackingNumber     string         `json:"trackingNumber"`
	Carrier            string         `json:"carrier"`
	Origin             string         `json:"origin"`
	Destination        string         `json:"destination"`
	ShipmentDateMillis int64          `json:"shipmentDateMillis"`
	ETAMillis          int64          `json:"etaMillis,omitempty"`
	Status             ShipmentStatus `json:"status"`
	Notes              string         `json:"notes,omitempty"`
	ProductID          string         `json:"productId,omitempty"`
	ShipmentType       ShipmentType   `json:"shipmentType"`
	Quantity           int            `json:"quantity,omitempty"`
	InvoiceNumber      string         `json:"invoiceNumber,omitempty"`
	InvoiceDateMillis  int64          `json:"invoiceDateMillis,omitempty"`
}

// AffectsStock reports whether the shipment carries everything required for a
// stock movement: inbound direction, a product reference and a positive quantity.
func (s Shipment) AffectsStock() bool {
	return s.ShipmentType == ShipmentInbound && s.ProductID != "" && s.Quantity > 0
}
