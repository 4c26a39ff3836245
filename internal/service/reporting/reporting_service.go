// Package reporting derives read-only summaries from a schema snapshot. It
// never mutates state; the scheduler uses it to append a weekly digest to the
// configured spreadsheet.
package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/labeltracker/internal/domain/models"
	repo "github.com/mamadbah2/labeltracker/internal/repository/sheets"
)

const (
	dateLayout        = "2006-01-02"
	summaryWriteRange = "Summary!A:F"
)

// Service exposes snapshot analytics and the spreadsheet export.
type Service struct {
	repo   repo.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a reporting service. The sheets repository may be nil when
// the spreadsheet integration is not configured; summaries still work.
func NewService(repository repo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, logger: logger, now: time.Now}
}

// Summary is the aggregate view of one snapshot.
type Summary struct {
	Products       int      `json:"products"`
	LowStock       []string `json:"lowStock"`
	Revenue        float64  `json:"revenue"`
	CreditExposure float64  `json:"creditExposure"`
	OpenShipments  int      `json:"openShipments"`
}

// Summarize aggregates the snapshot into the fields the dashboard and the
// weekly export both consume.
func Summarize(schema models.DatabaseSchema) Summary {
	summary := Summary{Products: len(schema.Products)}

	for _, p := range schema.Products {
		if p.LowStock() {
			summary.LowStock = append(summary.LowStock, p.ProductName)
		}
	}
	for _, o := range schema.Orders {
		summary.Revenue += o.TotalAmount
		if o.PaymentStatus == models.PaymentCredit {
			summary.CreditExposure += o.TotalAmount
		}
	}
	for _, sh := range schema.Shipments {
		if sh.Status == models.ShipmentPending || sh.Status == models.ShipmentInTransit {
			summary.OpenShipments++
		}
	}

	return summary
}

// LowStockReport renders the low stock situation as a short human-readable line.
func LowStockReport(schema models.DatabaseSchema) string {
	summary := Summarize(schema)
	if len(summary.LowStock) == 0 {
		return "All products are above their stock alert levels."
	}
	return fmt.Sprintf("%d product(s) at or below alert level: %s.",
		len(summary.LowStock), strings.Join(summary.LowStock, ", "))
}

// RevenueReport renders revenue and outstanding credit as one line.
func RevenueReport(schema models.DatabaseSchema) string {
	summary := Summarize(schema)
	return fmt.Sprintf("Recorded revenue %.2f across %d orders, %.2f outstanding on credit.",
		summary.Revenue, len(schema.Orders), summary.CreditExposure)
}

// ExportWeeklySummary appends one summary row to the configured spreadsheet.
func (s *Service) ExportWeeklySummary(ctx context.Context, schema models.DatabaseSchema) error {
	if s.repo == nil {
		return fmt.Errorf("sheets repository not configured")
	}

	summary := Summarize(schema)
	row := []interface{}{
		s.now().Format(dateLayout),
		summary.Products,
		len(summary.LowStock),
		summary.Revenue,
		summary.CreditExposure,
		summary.OpenShipments,
	}

	if err := s.repo.AppendRow(ctx, summaryWriteRange, row); err != nil {
		return fmt.Errorf("append weekly summary: %w", err)
	}

	s.logger.Info("weekly summary appended",
		zap.Int("products", summary.Products),
		zap.Int("low_stock", len(summary.LowStock)))
	return nil
}
