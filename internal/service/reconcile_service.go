package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/medingen/recon_api/internal/ingest"
	"github.com/medingen/recon_api/internal/models"
	"github.com/medingen/recon_api/internal/utils"
	"github.com/medingen/recon_api/pkg/catalog"
)

// ReconcileService orchestrates the bulk reconciliation workflow: workbook
// ingestion, the auto-match pass over the catalog gateway, and read access
// to the row set for the presentation tabs.
type ReconcileService struct {
	gateway  CatalogGateway
	ingestor *ingest.Ingestor
	store    *RowStore
}

// NewReconcileService constructs a ReconcileService.
func NewReconcileService(gateway CatalogGateway, ingestor *ingest.Ingestor, store *RowStore) *ReconcileService {
	return &ReconcileService{gateway: gateway, ingestor: ingestor, store: store}
}

// Upload ingests a workbook and replaces the current row set, then runs the
// auto-match pass. Ingest failure keeps the previous row set intact.
// Auto-match failure is logged and swallowed: it is a best-effort
// enhancement and never blocks row availability.
func (s *ReconcileService) Upload(ctx context.Context, workbook []byte) ([]models.IngestedRow, error) {
	rows, err := s.ingestor.Ingest(workbook)
	if err != nil {
		return nil, err
	}
	s.store.ReplaceAll(rows)
	log.Info().Int("rows", len(rows)).Msg("workbook ingested")

	if err := s.AutoMatch(ctx); err != nil {
		log.Error().Err(err).Msg("auto-match after upload failed")
	}
	return s.store.Rows(), nil
}

// AutoMatch sends the full row batch to the gateway's bulk-match endpoint
// in one request and folds the response into the row set. Rows without a
// hit remain Pending. Transport failure leaves the whole batch unchanged.
func (s *ReconcileService) AutoMatch(ctx context.Context) error {
	rows := s.store.Rows()
	if len(rows) == 0 {
		return utils.ErrNoRowsLoaded
	}

	items := make([]catalog.BulkMatchItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, catalog.BulkMatchItem{
			BrandName:   row.BrandName,
			GenericName: row.GenericName,
		})
	}

	results, err := s.gateway.BulkStockMatch(ctx, items)
	if err != nil {
		return fmt.Errorf("bulk stock match: %w", err)
	}

	matched := s.store.ApplyBulkMatches(results)
	log.Info().Int("matched", matched).Int("total", len(rows)).Msg("auto-match completed")
	return nil
}

// Rows returns the row set filtered by a reconciliation tab.
func (s *ReconcileService) Rows(tab string) []models.IngestedRow {
	return FilterRows(s.store.Rows(), tab)
}

// ExportRows renders the current row set as a spreadsheet for download.
// This is a report, not persistence: reconciliation state still lives only
// for the session.
func (s *ReconcileService) ExportRows() ([]byte, error) {
	rows := s.store.Rows()
	if len(rows) == 0 {
		return nil, utils.ErrNoRowsLoaded
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Reconciliation"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"#", "Brand Name", "Generic Name", "Manufacturer", "Packing", "Sheet",
		"Status", "Matched Name", "Matched Composition", "Stock", "Product ID", "Details",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetRowStyle(sheet, 1, 1, headerStyle)

	for i, row := range rows {
		values := []any{
			row.LocalID, row.BrandName, row.GenericName, row.Manufacturer, row.Packing,
			row.SourceSheet, string(row.Status), row.MatchedName, row.MatchedComposition,
			row.StockStatus, nil, row.Details,
		}
		if row.LinkedProductID != nil {
			values[10] = *row.LinkedProductID
		}
		for j, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render export: %w", err)
	}
	return buf.Bytes(), nil
}
