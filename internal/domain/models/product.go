package models

// Product is a label stock item tracked by the inventory.
type Product struct {
	ID                 string  `json:"id"`
	ProductName        string  `json:"productName"`
	LabelName          string  `json:"labelName"` // SKU
	UnitPrice          float64 `json:"unitPrice"`
	StockQuantity      int     `json:"stockQuantity"`
	MinStockAlertLevel int     `json:"minStockAlertLevel"`
	Size               string  `json:"size,omitempty"`
	PcsPerRoll         int     `json:"pcsPerRoll,omitempty"`
	LastInvoiceNumber  string  `json:"lastInvoiceNumber,omitempty"`
	LastInvoiceDate    int64   `json:"lastInvoiceDate,omitempty"`
}

// LowStock reports whether the product has fallen to or below its alert level.
func (p Product) LowStock() bool {
	return p.StockQuantity <= p.MinStockAlertLevel
}

// DisplayName renders the denormalized name copied onto orders at creation time.
func (p Product) DisplayName() string {
	if p.Size == "" {
		return p.ProductName
	}
	return p.ProductName + " (" + p.Size + ")"
}
