package models

// RowStatus tracks an ingested row through the match lifecycle.
type RowStatus string

const (
	RowStatusPending    RowStatus = "Pending"
	RowStatusProcessing RowStatus = "Processing"
	RowStatusMatched    RowStatus = "Matched"
	RowStatusCreated    RowStatus = "Created"
	RowStatusNotFound   RowStatus = "Not Found"
	RowStatusError      RowStatus = "Error"
)

// Stock status display values carried on reconciliation rows.
const (
	StockStatusIn  = "In Stock"
	StockStatusOut = "Out of Stock"
)

// IngestedRow is one normalized spreadsheet line. LocalID is assigned at
// ingestion and is unrelated to any catalog id; a row is durably associated
// with a catalog record only once LinkedProductID is set by an approved
// match. Rows are mutated in place for the lifetime of the session and
// replaced wholesale when a new file is ingested.
type IngestedRow struct {
	LocalID      int    `json:"id"`
	BrandName    string `json:"brand_name"`
	GenericName  string `json:"generic_name"`
	Manufacturer string `json:"manufacturer"`
	Packing      string `json:"packing"`
	SourceSheet  string `json:"sheet_name"`

	MatchedName        string    `json:"matched_name"`
	MatchedComposition string    `json:"matched_composition"`
	StockStatus        string    `json:"stock_status"`
	LinkedProductID    *int      `json:"product_id,omitempty"`
	Status             RowStatus `json:"status"`
	Details            string    `json:"details"`
}

// MatchCandidate is a transient manual-search result ranked by the remote
// catalog service. It lives only for the duration of a match session search.
type MatchCandidate struct {
	ProductID     int       `json:"product_id"`
	Name          string    `json:"name"`
	RCProductName string    `json:"rc_pharam_product_name"`
	Composition   string    `json:"composition"`
	SaltName      string    `json:"salt_name"`
	Manufacturer  string    `json:"manufacturer"`
	Price         *float64  `json:"price"`
	MatchScore    int       `json:"match_score"`
	MatchType     string    `json:"match_type"`
	InStock       StockFlag `json:"inStock"`
}

// DisplayName prefers the linked external name over the catalog name,
// matching how candidates are presented for approval.
func (c *MatchCandidate) DisplayName() string {
	if c.RCProductName != "" {
		return c.RCProductName
	}
	return c.Name
}
