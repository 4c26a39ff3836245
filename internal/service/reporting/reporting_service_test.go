package reporting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mamadbah2/labeltracker/internal/domain/models"
)

func reportSchema() models.DatabaseSchema {
	return models.DatabaseSchema{
		Products: []models.Product{
			{ID: "p1", ProductName: "Premium Matte Vinyl", StockQuantity: 150, MinStockAlertLevel: 20},
			{ID: "p2", ProductName: "High Gloss Finish", StockQuantity: 8, MinStockAlertLevel: 10},
			{ID: "p3", ProductName: "Thermal Transfer Ribbon", StockQuantity: 15, MinStockAlertLevel: 15},
		},
		Orders: []models.Order{
			{ID: "o1", TotalAmount: 225.00, PaymentStatus: models.PaymentPaid},
			{ID: "o2", TotalAmount: 140.00, PaymentStatus: models.PaymentCredit},
		},
		Shipments: []models.Shipment{
			{ID: "s1", Status: models.ShipmentInTransit},
			{ID: "s2", Status: models.ShipmentDelivered},
			{ID: "s3", Status: models.ShipmentPending},
			{ID: "s4", Status: models.ShipmentCancelled},
		},
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(reportSchema())

	assert.Equal(t, 3, summary.Products)
	assert.Equal(t, []string{"High Gloss Finish", "Thermal Transfer Ribbon"}, summary.LowStock)
	assert.Equal(t, 365.00, summary.Revenue)
	assert.Equal(t, 140.00, summary.CreditExposure)
	assert.Equal(t, 2, summary.OpenShipments)
}

func TestReportLines(t *testing.T) {
	schema := reportSchema()

	low := LowStockReport(schema)
	assert.Contains(t, low, "2 product(s)")
	assert.Contains(t, low, "High Gloss Finish")

	revenue := RevenueReport(schema)
	assert.Contains(t, revenue, "365.00")
	assert.Contains(t, revenue, "140.00")

	healthy := models.DatabaseSchema{Products: []models.Product{{ProductName: "A", StockQuantity: 100, MinStockAlertLevel: 5}}}
	assert.Equal(t, "All products are above their stock alert levels.", LowStockReport(healthy))
}

type recordingRepo struct {
	ranges []string
	rows   [][]interface{}
}

func (r *recordingRepo) AppendRow(_ context.Context, sheetRange string, values []interface{}) error {
	r.ranges = append(r.ranges, sheetRange)
	r.rows = append(r.rows, values)
	return nil
}

func TestExportWeeklySummary(t *testing.T) {
	repo := &recordingRepo{}
	svc := NewService(repo, zap.NewNop())

	require.NoError(t, svc.ExportWeeklySummary(context.Background(), reportSchema()))

	require.Len(t, repo.rows, 1)
	assert.Equal(t, "Summary!A:F", repo.ranges[0])
	assert.Len(t, repo.rows[0], 6)
	assert.Equal(t, 3, repo.rows[0][1])
	assert.Equal(t, 365.00, repo.rows[0][3])
}

func TestExportWithoutRepoFails(t *testing.T) {
	svc := NewService(nil, zap.NewNop())
	assert.Error(t, svc.ExportWeeklySummary(context.Background(), reportSchema()))
}
