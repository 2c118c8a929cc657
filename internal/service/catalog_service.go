package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/medingen/recon_api/internal/models"
	"github.com/medingen/recon_api/internal/utils"
)

// editKey addresses one grid cell for the last-response-wins bookkeeping.
type editKey struct {
	productID int
	field     string
}

// CatalogService mirrors the remote catalog in memory for the grid and
// performs optimistic single-field edits: the local value changes first,
// the mutation is confirmed remotely, and only a failure rolls the field
// back to its pre-edit value.
type CatalogService struct {
	gateway CatalogGateway

	mu       sync.Mutex
	products []models.CatalogProduct
	editGen  map[editKey]int
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(gateway CatalogGateway) *CatalogService {
	return &CatalogService{
		gateway: gateway,
		editGen: make(map[editKey]int),
	}
}

// Load refreshes the in-memory catalog from the gateway and returns it.
func (s *CatalogService) Load(ctx context.Context) ([]models.CatalogProduct, error) {
	products, err := s.gateway.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	return products, nil
}

// Products returns the cached catalog filtered by a grid tab. The filters
// are recomputed on every call; the cache only avoids refetching.
func (s *CatalogService) Products(tab string) []models.CatalogProduct {
	s.mu.Lock()
	cached := make([]models.CatalogProduct, len(s.products))
	copy(cached, s.products)
	s.mu.Unlock()
	return FilterProducts(cached, tab)
}

// Search queries the gateway and replaces the cached grid contents with the
// result, matching how the grid swaps to search results.
func (s *CatalogService) Search(ctx context.Context, query string) ([]models.CatalogProduct, error) {
	products, err := s.gateway.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search catalog: %w", err)
	}
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	return products, nil
}

// Create inserts a new product and returns its id. The cache is refreshed
// lazily by the next Load.
func (s *CatalogService) Create(ctx context.Context, fields map[string]any) (int, error) {
	return s.gateway.Create(ctx, fields)
}

// Get returns the cached product with the given id.
func (s *CatalogService) Get(productID int) (models.CatalogProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ProductID == productID {
			return s.products[i], nil
		}
	}
	return models.CatalogProduct{}, utils.ErrProductNotFound
}

// SetField applies an optimistic single-field edit. The cached value
// changes immediately; the update is then sent to the gateway, and on
// failure the field is restored to its pre-edit value. If a newer edit of
// the same cell has started in the meantime, the newer edit owns the cell
// and the stale failure performs no rollback.
func (s *CatalogService) SetField(ctx context.Context, productID int, field string, value any) error {
	s.mu.Lock()
	idx := -1
	for i := range s.products {
		if s.products[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return utils.ErrProductNotFound
	}

	prev, ok := s.products[idx].Field(field)
	if !ok {
		s.mu.Unlock()
		return utils.ErrInvalidField
	}
	if !s.products[idx].SetField(field, value) {
		s.mu.Unlock()
		return utils.ErrInvalidField
	}

	key := editKey{productID: productID, field: field}
	s.editGen[key]++
	gen := s.editGen[key]
	s.mu.Unlock()

	if err := s.gateway.Update(ctx, productID, map[string]any{field: value}); err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.editGen[key] == gen {
			// Compensate: restore the exact pre-edit value.
			for i := range s.products {
				if s.products[i].ProductID == productID {
					s.products[i].SetField(field, prev)
					break
				}
			}
		}
		log.Error().Err(err).Int("product_id", productID).Str("field", field).Msg("field edit failed, rolled back")
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete removes a product remotely and drops it from the cache.
func (s *CatalogService) Delete(ctx context.Context, productID int) error {
	if err := s.gateway.Delete(ctx, productID); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ProductID == productID {
			s.products = append(s.products[:i], s.products[i+1:]...)
			break
		}
	}
	return nil
}

// Unmatch clears a product's linked external name. The remote service also
// resets the stock flag, so the cache mirrors both.
func (s *CatalogService) Unmatch(ctx context.Context, productID int) error {
	if err := s.gateway.Unmatch(ctx, productID); err != nil {
		return fmt.Errorf("unmatch product: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ProductID == productID {
			s.products[i].RCProductName = ""
			s.products[i].InStock = models.StockFlag{Known: true, Value: false}
			break
		}
	}
	return nil
}

// Export downloads the catalog spreadsheet blob from the gateway.
func (s *CatalogService) Export(ctx context.Context) ([]byte, error) {
	return s.gateway.Export(ctx)
}
