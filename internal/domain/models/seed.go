package models

import "time"

// SeedSchema builds the bootstrap snapshot used when no durable data exists or
// the persisted document cannot be parsed. Users and groups are left empty so
// callers can distinguish an uninitialized store and route to initial setup.
func SeedSchema(now time.Time) DatabaseSchema {
	millis := now.UnixMilli()

	return DatabaseSchema{
		Version:  SchemaVersion,
		LastSync: millis,
		Products: []Product{
			{
				ID:                 "p1",
				ProductName:        "Premium Matte Vinyl",
				LabelName:          "SKU-PMV-01",
				UnitPrice:          22.50,
				StockQuantity:      150,
				MinStockAlertLevel: 20,
				Size:               "10cm x 15cm",
				PcsPerRoll:         500,
				LastInvoiceNumber:  "INV-2024-981",
				LastInvoiceDate:    millis - 200000000,
			},
			{
				ID:                 "p2",
				ProductName:        "High Gloss Finish",
				LabelName:          "SKU-HGF-02",
				UnitPrice:          28.00,
				StockQuantity:      8,
				MinStockAlertLevel: 10,
				Size:               "A4 Sheet",
				PcsPerRoll:         100,
				LastInvoiceNumber:  "INV-2024-982",
				LastInvoiceDate:    millis - 500000000,
			},
			{
				ID:                 "p3",
				ProductName:        "Thermal Transfer Ribbon",
				LabelName:          "SKU-TTR-03",
				UnitPrice:          45.00,
				StockQuantity:      40,
				MinStockAlertLevel: 15,
				Size:               "110mm x 300m",
				LastInvoiceNumber:  "INV-2024-983",
				LastInvoiceDate:    millis - 100000000,
			},
		},
		Orders: []Order{
			{
				ID:            "o1",
				OrderNumber:   "ORD-001",
				CustomerName:  "Acme Corporation",
				ProductID:     "p1",
				ProductName:   "Premium Matte Vinyl",
				Quantity:      10,
				SellingPrice:  22.50,
				TotalAmount:   225.00,
				OrderDate:     millis - 86400000,
				PaymentStatus: PaymentPaid,
				InvoiceNumber: "SI-2024-001",
			},
			{
				ID:            "o2",
				OrderNumber:   "ORD-002",
				CustomerName:  "Globex Inc.",
				ProductID:     "p2",
				ProductName:   "High Gloss Finish",
				Quantity:      5,
				SellingPrice:  28.00,
				TotalAmount:   140.00,
				OrderDate:     millis - 172800000,
				PaymentStatus: PaymentCredit,
				InvoiceNumber: "SI-2024-002",
			},
		},
		Shipments: []Shipment{
			{
				ID:                 "s1",
				TrackingNumber:     "TRK12345XYZ",
				Carrier:            "SF Express",
				Origin:             "Shenzhen, CN",
				Destination:        "Kuala Lumpur, MY",
				ShipmentDateMillis: millis - 259200000,
				ETAMillis:          millis + 86400000,
				Status:             ShipmentInTransit,
				Notes:              "Awaiting customs clearance.",
				ProductID:          "p3",
				ShipmentType:       ShipmentInbound,
				Quantity:           20,
				InvoiceNumber:      "INV-2024-983",
			},
		},
		Users:  []User{},
		Groups: []Group{},
	}
}
