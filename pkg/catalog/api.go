package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/medingen/recon_api/internal/models"
)

// Health checks the catalog service and its database connection.
func (c *Client) Health(ctx context.Context) error {
	var resp healthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/health", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return &Error{Op: "/api/health", Message: resp.Message}
	}
	return nil
}

// FetchAll returns every catalog product, newest first.
func (c *Client) FetchAll(ctx context.Context) ([]models.CatalogProduct, error) {
	var resp listResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/products", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &Error{Op: "/api/products", Message: resp.Error}
	}
	return resp.Data, nil
}

// Search returns products whose name, salt, manufacturer or composition
// contains the query.
func (c *Client) Search(ctx context.Context, query string) ([]models.CatalogProduct, error) {
	path := "/api/products/search?q=" + url.QueryEscape(query)
	var resp listResponse
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &Error{Op: "/api/products/search", Message: resp.Error}
	}
	return resp.Data, nil
}

// Create inserts a new catalog product from the given field map and returns
// its server-assigned id. Name is required by the remote service.
func (c *Client) Create(ctx context.Context, fields map[string]any) (int, error) {
	var resp CreateResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/products", fields, &resp); err != nil {
		return 0, err
	}
	if !resp.Success {
		return 0, &Error{Op: "/api/products", Message: resp.Error}
	}
	return resp.ProductID, nil
}

// Update applies a partial field map to a product.
func (c *Client) Update(ctx context.Context, productID int, fields map[string]any) error {
	path := fmt.Sprintf("/api/products/%d", productID)
	var resp ackResponse
	if err := c.doRequest(ctx, http.MethodPut, path, fields, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &Error{Op: path, Message: resp.Error}
	}
	return nil
}

// Delete removes a product permanently.
func (c *Client) Delete(ctx context.Context, productID int) error {
	path := fmt.Sprintf("/api/products/%d", productID)
	var resp ackResponse
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &Error{Op: path, Message: resp.Error}
	}
	return nil
}

// Unmatch clears a product's linked external name and stock flag.
func (c *Client) Unmatch(ctx context.Context, productID int) error {
	body := map[string]any{"product_id": productID}
	var resp ackResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/products/unmatch", body, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &Error{Op: "/api/products/unmatch", Message: resp.Error}
	}
	return nil
}

// BulkStockMatch submits the full ingested batch in one request and returns
// the auto-detected matches. The matching heuristic is server-side.
func (c *Client) BulkStockMatch(ctx context.Context, items []BulkMatchItem) ([]BulkMatchResult, error) {
	body := map[string]any{"products": items}
	var resp bulkMatchResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/products/match-stock", body, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &Error{Op: "/api/products/match-stock", Message: resp.Error}
	}
	return resp.Matched, nil
}

// FindMatches returns ranked candidates for a manual match search. The
// order is the remote ranker's; callers must not re-sort.
func (c *Client) FindMatches(ctx context.Context, searchTerm, genericHint, brandHint string) ([]models.MatchCandidate, error) {
	body := findMatchesRequest{
		SearchTerm:  searchTerm,
		GenericName: genericHint,
		BrandName:   brandHint,
	}
	var resp findMatchesResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/products/find-matches", body, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &Error{Op: "/api/products/find-matches", Message: resp.Error}
	}
	return resp.Data, nil
}

// ApproveMatch confirms a manual match. With a product id the existing
// record is linked; without one the service creates a new product.
func (c *Client) ApproveMatch(ctx context.Context, req ApproveMatchRequest) (*ApproveMatchResponse, error) {
	var resp ApproveMatchResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/products/approve-match", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &Error{Op: "/api/products/approve-match", Message: resp.Error}
	}
	return &resp, nil
}

// Export downloads the full catalog as a spreadsheet blob.
func (c *Client) Export(ctx context.Context) ([]byte, error) {
	return c.doDownload(ctx, "/api/products/export")
}
