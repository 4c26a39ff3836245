package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/labeltracker/internal/domain/models"
	"github.com/mamadbah2/labeltracker/internal/reconcile"
	"github.com/mamadbah2/labeltracker/internal/service/tracker"
)

// InventoryHandler serves the product, order and shipment mutation surface.
type InventoryHandler struct {
	svc    *tracker.Service
	logger *zap.Logger
}

// NewInventoryHandler constructs the HTTP handler adapter.
func NewInventoryHandler(svc *tracker.Service, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, logger: logger}
}

// State returns the full snapshot for the UI, with credentials stripped.
func (h *InventoryHandler) State(c *gin.Context) {
	schema := h.svc.Snapshot()
	for i := range schema.Users {
		schema.Users[i].Password = ""
	}
	c.JSON(http.StatusOK, schema)
}

// CreateProduct adds a product to the catalog.
func (h *InventoryHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.svc.CreateProduct(actingUser(c), product)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateProduct replaces a product's fields.
func (h *InventoryHandler) UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	product.ID = c.Param("id")

	if err := h.svc.UpdateProduct(actingUser(c), product); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteProduct removes a product from the catalog.
func (h *InventoryHandler) DeleteProduct(c *gin.Context) {
	if err := h.svc.DeleteProduct(actingUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type orderRequest struct {
	CustomerName      string  `json:"customerName" binding:"required"`
	ProductID         string  `json:"productId" binding:"required"`
	Quantity          int     `json:"quantity" binding:"required,gt=0"`
	SellingPrice      float64 `json:"sellingPrice"`
	PaymentStatus     string  `json:"paymentStatus" binding:"required"`
	InvoiceNumber     string  `json:"invoiceNumber"`
	InvoiceDateMillis int64   `json:"invoiceDateMillis"`
}

// CreateOrder records a sale.
func (h *InventoryHandler) CreateOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	status := models.PaymentStatus(req.PaymentStatus)
	if !status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown payment status"})
		return
	}

	order, outcome, err := h.svc.CreateOrder(actingUser(c), reconcile.OrderRequest{
		CustomerName:      req.CustomerName,
		ProductID:         req.ProductID,
		Quantity:          req.Quantity,
		SellingPrice:      req.SellingPrice,
		PaymentStatus:     status,
		InvoiceNumber:     req.InvoiceNumber,
		InvoiceDateMillis: req.InvoiceDateMillis,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if outcome == reconcile.NoopMissingProduct {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found", "outcome": outcome.String()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order, "outcome": outcome.String()})
}

// DeleteOrder removes an order and restores the product's stock.
func (h *InventoryHandler) DeleteOrder(c *gin.Context) {
	outcome, err := h.svc.DeleteOrder(actingUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if outcome == reconcile.NoopMissingRecord {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found", "outcome": outcome.String()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": outcome.String()})
}

type shipmentRequest struct {
	TrackingNumber     string `json:"trackingNumber" binding:"required"`
	Carrier            string `json:"carrier"`
	Origin             string `json:"origin"`
	Destination        string `json:"destination"`
	ShipmentDateMillis int64  `json:"shipmentDateMillis"`
	ETAMillis          int64  `json:"etaMillis"`
	Status             string `json:"status" binding:"required"`
	Notes              string `json:"notes"`
	ProductID          string `json:"productId"`
	ShipmentType       string `json:"shipmentType" binding:"required"`
	Quantity           int    `json:"quantity"`
	InvoiceNumber      string `json:"invoiceNumber"`
	InvoiceDateMillis  int64  `json:"invoiceDateMillis"`
}

// AddShipment records a logistics entry.
func (h *InventoryHandler) AddShipment(c *gin.Context) {
	var req shipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	status := models.ShipmentStatus(req.Status)
	shipmentType := models.ShipmentType(req.ShipmentType)
	if !status.IsValid() || !shipmentType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown shipment status or type"})
		return
	}

	shipment, outcome, err := h.svc.AddShipment(actingUser(c), reconcile.ShipmentRequest{
		TrackingNumber:     req.TrackingNumber,
		Carrier:            req.Carrier,
		Origin:             req.Origin,
		Destination:        req.Destination,
		ShipmentDateMillis: req.ShipmentDateMillis,
		ETAMillis:          req.ETAMillis,
		Status:             status,
		Notes:              req.Notes,
		ProductID:          req.ProductID,
		ShipmentType:       shipmentType,
		Quantity:           req.Quantity,
		InvoiceNumber:      req.InvoiceNumber,
		InvoiceDateMillis:  req.InvoiceDateMillis,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"shipment": shipment, "outcome": outcome.String()})
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateShipmentStatus moves a shipment to a new status.
func (h *InventoryHandler) UpdateShipmentStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	outcome, err := h.svc.UpdateShipmentStatus(actingUser(c), c.Param("id"), models.ShipmentStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	if outcome == reconcile.NoopMissingRecord {
		c.JSON(http.StatusNotFound, gin.H{"error": "shipment not found", "outcome": outcome.String()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": outcome.String()})
}
