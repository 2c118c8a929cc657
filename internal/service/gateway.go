package service

import (
	"context"

	"github.com/medingen/recon_api/internal/models"
	"github.com/medingen/recon_api/pkg/catalog"
)

// CatalogGateway is the remote catalog service as consumed by the services.
// The concrete implementation lives in pkg/catalog; tests substitute fakes.
type CatalogGateway interface {
	Health(ctx context.Context) error
	FetchAll(ctx context.Context) ([]models.CatalogProduct, error)
	Search(ctx context.Context, query string) ([]models.CatalogProduct, error)
	Create(ctx context.Context, fields map[string]any) (int, error)
	Update(ctx context.Context, productID int, fields map[string]any) error
	Delete(ctx context.Context, productID int) error
	Unmatch(ctx context.Context, productID int) error
	BulkStockMatch(ctx context.Context, items []catalog.BulkMatchItem) ([]catalog.BulkMatchResult, error)
	FindMatches(ctx context.Context, searchTerm, genericHint, brandHint string) ([]models.MatchCandidate, error)
	ApproveMatch(ctx context.Context, req catalog.ApproveMatchRequest) (*catalog.ApproveMatchResponse, error)
	Export(ctx context.Context) ([]byte, error)
}
