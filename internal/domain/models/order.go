package models

// PaymentStatus enumerates how an order was settled.
type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "PAID"
	PaymentCredit PaymentStatus = "CREDIT"
)

// IsValid reports whether the value is one of the closed set of payment statuses.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPaid, PaymentCredit:
		return true
	}
	return false
}

// Order is an immutable sales record. TotalAmount is computed once at creation
// and never recalculated; ProductName is a snapshot of the product at order time.
type Order struct {
	ID                string        `json:"id"`
	OrderNumber       string        `json:"orderNumber"`
	CustomerName      string        `json:"customerName"`
	ProductID         string        `json:"productId"`
	ProductName       string        `json:"productName"`
	Quantity          int           `json:"quantity"`
	SellingPrice      float64       `json:"sellingPrice"`
	TotalAmount       float64       `json:"totalAmount"`
	OrderDate         int64         `json:"orderDate"`
	PaymentStatus     PaymentStatus `json:"paymentStatus"`
	InvoiceNumber     string        `json:"invoiceNumber,omitempty"`
	InvoiceDateMillis int64         `json:"invoiceDateMillis,omitempty"`
}
