package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/medingen/recon_api/internal/models"
	"github.com/medingen/recon_api/internal/utils"
)

// Column aliases per logical field, matched case-insensitively against the
// trimmed header cells. Supplier sheets are inconsistent about casing and
// abbreviations, so every known spelling is listed.
var columnAliases = map[string][]string{
	"brand":        {"BRAND NAME"},
	"generic":      {"GENERIC NAME"},
	"manufacturer": {"MANUFACTURER", "MFR"},
	"packing":      {"PACKING"},
}

// Ingestor parses uploaded supplier workbooks into normalized rows.
type Ingestor struct{}

// NewIngestor creates an ingestor.
func NewIngestor() *Ingestor {
	return &Ingestor{}
}

// Ingest reads every sheet of the workbook in order. The first row of each
// sheet is the header; data rows whose brand name resolves to empty are
// dropped. LocalID is zero-based and increases across sheet boundaries so
// row order is stable for the whole workbook. Returns ErrEmptyWorkbook when
// no row in any sheet survives filtering.
func (ing *Ingestor) Ingest(workbook []byte) ([]models.IngestedRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(workbook))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrEmptyWorkbook, err)
	}
	defer f.Close()

	var out []models.IngestedRow
	nextID := 0

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) <= 1 {
			continue
		}

		cols := resolveColumns(rows[0])
		brandIdx := cols["brand"]
		if brandIdx < 0 {
			continue
		}

		for _, cells := range rows[1:] {
			brand := cellAt(cells, brandIdx)
			if brand == "" {
				continue
			}
			out = append(out, models.IngestedRow{
				LocalID:      nextID,
				BrandName:    brand,
				GenericName:  cellAt(cells, cols["generic"]),
				Manufacturer: cellAt(cells, cols["manufacturer"]),
				Packing:      cellAt(cells, cols["packing"]),
				SourceSheet:  sheet,
				Status:       models.RowStatusPending,
			})
			nextID++
		}
	}

	if len(out) == 0 {
		return nil, utils.ErrEmptyWorkbook
	}
	return out, nil
}

// resolveColumns maps logical field names to header column indexes. Missing
// fields resolve to -1 so cellAt returns empty for them.
func resolveColumns(header []string) map[string]int {
	cols := make(map[string]int, len(columnAliases))
	for field := range columnAliases {
		cols[field] = -1
	}
	for idx, cell := range header {
		name := strings.ToUpper(strings.TrimSpace(cell))
		if name == "" {
			continue
		}
		for field, aliases := range columnAliases {
			if cols[field] != -1 {
				continue
			}
			for _, alias := range aliases {
				if name == alias {
					cols[field] = idx
					break
				}
			}
		}
	}
	return cols
}

// cellAt returns the trimmed cell at idx, tolerating the ragged rows
// excelize produces when trailing cells are empty.
func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}
