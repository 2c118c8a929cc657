package service

import "github.com/medingen/recon_api/internal/models"

// Grid and reconciliation tab names.
const (
	TabAll        = "all"
	TabInStock    = "inStock"
	TabOutOfStock = "outOfStock"
	TabNewData    = "newData"
	TabMatched    = "matched"
	TabCreated    = "created"
)

// FilterProducts applies a catalog grid tab to a product list. Unknown tabs
// fall through to the full list. The stock buckets partition the list: a
// NULL flag is out of stock, never a third category.
func FilterProducts(products []models.CatalogProduct, tab string) []models.CatalogProduct {
	switch tab {
	case TabInStock:
		return filterP(products, func(p *models.CatalogProduct) bool {
			return p.InStock.InStock()
		})
	case TabOutOfStock:
		return filterP(products, func(p *models.CatalogProduct) bool {
			return !p.InStock.InStock()
		})
	case TabNewData:
		return filterP(products, isNewData)
	default:
		return products
	}
}

// isNewData identifies likely-imported-but-unenriched records: the core
// identity fields and the external link are present and the record is in
// stock, but every enrichment field is still empty or placeholder.
func isNewData(p *models.CatalogProduct) bool {
	hasCore := p.Name != "" && (p.Composition != "" || p.SaltName != "") && p.RCProductName != ""
	isMinimal := emptyOrNaN(p.Manufacturer) &&
		emptyOrNaN(p.Packaging) &&
		emptyOrNaN(p.LongDescription) &&
		p.PricingNew == 0
	return hasCore && p.InStock.InStock() && isMinimal
}

// emptyOrNaN treats the literal "nan" left behind by spreadsheet imports as
// an empty value.
func emptyOrNaN(s string) bool {
	return s == "" || s == "nan"
}

// FilterRows applies a reconciliation tab to the row set.
func FilterRows(rows []models.IngestedRow, tab string) []models.IngestedRow {
	switch tab {
	case TabMatched:
		return filterR(rows, func(r *models.IngestedRow) bool {
			return r.Status == models.RowStatusMatched
		})
	case TabCreated:
		return filterR(rows, func(r *models.IngestedRow) bool {
			return r.Status == models.RowStatusCreated
		})
	case TabOutOfStock:
		return filterR(rows, func(r *models.IngestedRow) bool {
			return r.Status == models.RowStatusMatched && r.StockStatus == models.StockStatusOut
		})
	default:
		return rows
	}
}

func filterP(products []models.CatalogProduct, keep func(*models.CatalogProduct) bool) []models.CatalogProduct {
	out := make([]models.CatalogProduct, 0, len(products))
	for i := range products {
		if keep(&products[i]) {
			out = append(out, products[i])
		}
	}
	return out
}

func filterR(rows []models.IngestedRow, keep func(*models.IngestedRow) bool) []models.IngestedRow {
	out := make([]models.IngestedRow, 0, len(rows))
	for i := range rows {
		if keep(&rows[i]) {
			out = append(out, rows[i])
		}
	}
	return out
}
