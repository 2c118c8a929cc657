package service

import (
	"context"
	"errors"

	"github.com/medingen/recon_api/internal/models"
	"github.com/medingen/recon_api/pkg/catalog"
)

// fakeGateway implements CatalogGateway with overridable call hooks.
// Unset hooks answer with an error so tests fail loudly on unexpected calls.
type fakeGateway struct {
	HealthFn         func(ctx context.Context) error
	FetchAllFn       func(ctx context.Context) ([]models.CatalogProduct, error)
	SearchFn         func(ctx context.Context, query string) ([]models.CatalogProduct, error)
	CreateFn         func(ctx context.Context, fields map[string]any) (int, error)
	UpdateFn         func(ctx context.Context, productID int, fields map[string]any) error
	DeleteFn         func(ctx context.Context, productID int) error
	UnmatchFn        func(ctx context.Context, productID int) error
	BulkStockMatchFn func(ctx context.Context, items []catalog.BulkMatchItem) ([]catalog.BulkMatchResult, error)
	FindMatchesFn    func(ctx context.Context, searchTerm, genericHint, brandHint string) ([]models.MatchCandidate, error)
	ApproveMatchFn   func(ctx context.Context, req catalog.ApproveMatchRequest) (*catalog.ApproveMatchResponse, error)
	ExportFn         func(ctx context.Context) ([]byte, error)
}

var errUnexpectedCall = errors.New("unexpected gateway call")

func (f *fakeGateway) Health(ctx context.Context) error {
	if f.HealthFn == nil {
		return errUnexpectedCall
	}
	return f.HealthFn(ctx)
}

func (f *fakeGateway) FetchAll(ctx context.Context) ([]models.CatalogProduct, error) {
	if f.FetchAllFn == nil {
		return nil, errUnexpectedCall
	}
	return f.FetchAllFn(ctx)
}

func (f *fakeGateway) Search(ctx context.Context, query string) ([]models.CatalogProduct, error) {
	if f.SearchFn == nil {
		return nil, errUnexpectedCall
	}
	return f.SearchFn(ctx, query)
}

func (f *fakeGateway) Create(ctx context.Context, fields map[string]any) (int, error) {
	if f.CreateFn == nil {
		return 0, errUnexpectedCall
	}
	return f.CreateFn(ctx, fields)
}

func (f *fakeGateway) Update(ctx context.Context, productID int, fields map[string]any) error {
	if f.UpdateFn == nil {
		return errUnexpectedCall
	}
	return f.UpdateFn(ctx, productID, fields)
}

func (f *fakeGateway) Delete(ctx context.Context, productID int) error {
	if f.DeleteFn == nil {
		return errUnexpectedCall
	}
	return f.DeleteFn(ctx, productID)
}

func (f *fakeGateway) Unmatch(ctx context.Context, productID int) error {
	if f.UnmatchFn == nil {
		return errUnexpectedCall
	}
	return f.UnmatchFn(ctx, productID)
}

func (f *fakeGateway) BulkStockMatch(ctx context.Context, items []catalog.BulkMatchItem) ([]catalog.BulkMatchResult, error) {
	if f.BulkStockMatchFn == nil {
		return nil, errUnexpectedCall
	}
	return f.BulkStockMatchFn(ctx, items)
}

func (f *fakeGateway) FindMatches(ctx context.Context, searchTerm, genericHint, brandHint string) ([]models.MatchCandidate, error) {
	if f.FindMatchesFn == nil {
		return nil, errUnexpectedCall
	}
	return f.FindMatchesFn(ctx, searchTerm, genericHint, brandHint)
}

func (f *fakeGateway) ApproveMatch(ctx context.Context, req catalog.ApproveMatchRequest) (*catalog.ApproveMatchResponse, error) {
	if f.ApproveMatchFn == nil {
		return nil, errUnexpectedCall
	}
	return f.ApproveMatchFn(ctx, req)
}

func (f *fakeGateway) Export(ctx context.Context) ([]byte, error) {
	if f.ExportFn == nil {
		return nil, errUnexpectedCall
	}
	return f.ExportFn(ctx)
}
