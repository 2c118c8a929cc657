package catalog

import "github.com/medingen/recon_api/internal/models"

// listResponse wraps product list endpoints.
type listResponse struct {
	Success bool                    `json:"success"`
	Data    []models.CatalogProduct `json:"data"`
	Count   int                     `json:"count"`
	Error   string                  `json:"error"`
}

// ackResponse wraps mutation endpoints that answer with a success flag and
// an optional message/error.
type ackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// CreateResponse is the answer to a product creation.
type CreateResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ProductID int    `json:"product_id"`
	Error     string `json:"error"`
}

// findMatchesRequest is the manual search payload. The three terms let the
// remote ranker weigh the operator's free-text term against the row's
// original generic and brand names.
type findMatchesRequest struct {
	SearchTerm  string `json:"search_term"`
	GenericName string `json:"generic_name"`
	BrandName   string `json:"excel_brand_name"`
}

// findMatchesResponse carries the ranked candidate list.
type findMatchesResponse struct {
	Success bool                    `json:"success"`
	Data    []models.MatchCandidate `json:"data"`
	Count   int                     `json:"count"`
	Error   string                  `json:"error"`
}

// ApproveMatchRequest links a bulk row to a catalog product, or creates a
// new product when ProductID is zero.
type ApproveMatchRequest struct {
	ProductID     int    `json:"product_id,omitempty"`
	RCProductName string `json:"rc_product_name"`
	BrandName     string `json:"brand_name"`
	GenericName   string `json:"generic_name"`
	Manufacturer  string `json:"manufacturer"`
	Packing       string `json:"packing"`
}

// ApproveMatchResponse reports whether the link updated an existing record
// or created a new one.
type ApproveMatchResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Action    string `json:"action"`
	ProductID int    `json:"product_id"`
	Error     string `json:"error"`
}

// Approve-match actions returned by the catalog service.
const (
	ActionUpdated = "updated"
	ActionCreated = "created"
)

// BulkMatchItem is one row of a bulk stock-match request.
type BulkMatchItem struct {
	BrandName   string `json:"brand_name"`
	GenericName string `json:"generic_name"`
}

// BulkMatchResult is one auto-detected match. MatchedBrand/MatchedGeneric
// echo the request row the result belongs to; lookups key on their
// lower-cased pair.
type BulkMatchResult struct {
	ProductID      int              `json:"product_id"`
	Name           string           `json:"name"`
	Composition    string           `json:"composition"`
	RCProductName  string           `json:"rc_pharam_product_name"`
	InStock        models.StockFlag `json:"inStock"`
	MatchedBrand   string           `json:"matched_brand"`
	MatchedGeneric string           `json:"matched_generic"`
}

// bulkMatchResponse wraps the bulk stock-match endpoint.
type bulkMatchResponse struct {
	Success        bool              `json:"success"`
	Message        string            `json:"message"`
	MatchedCount   int               `json:"matched_count"`
	UnmatchedCount int               `json:"unmatched_count"`
	Matched        []BulkMatchResult `json:"matched_products"`
	Error          string            `json:"error"`
}

// healthResponse wraps the health endpoint.
type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
