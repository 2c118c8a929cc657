package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medingen/recon_api/internal/models"
	"github.com/medingen/recon_api/internal/utils"
)

func seedCatalog() []models.CatalogProduct {
	return []models.CatalogProduct{
		{ProductID: 1, Name: "Dolo 650", RCProductName: "DOLO 650MG TAB", PricingNew: 31.5, InStock: inStock()},
		{ProductID: 2, Name: "Brufen 400", InStock: outStock()},
	}
}

func newCatalogFixture(t *testing.T, gw *fakeGateway) *CatalogService {
	t.Helper()
	if gw.FetchAllFn == nil {
		gw.FetchAllFn = func(ctx context.Context) ([]models.CatalogProduct, error) {
			return seedCatalog(), nil
		}
	}
	svc := NewCatalogService(gw)
	_, err := svc.Load(context.Background())
	require.NoError(t, err)
	return svc
}

func TestCatalogLoadAndGet(t *testing.T) {
	svc := newCatalogFixture(t, &fakeGateway{})

	p, err := svc.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Dolo 650", p.Name)

	_, err = svc.Get(42)
	assert.ErrorIs(t, err, utils.ErrProductNotFound)

	assert.Len(t, svc.Products(TabAll), 2)
	assert.Len(t, svc.Products(TabInStock), 1)
}

func TestCatalogSearchReplacesCache(t *testing.T) {
	gw := &fakeGateway{
		SearchFn: func(ctx context.Context, query string) ([]models.CatalogProduct, error) {
			return []models.CatalogProduct{{ProductID: 9, Name: "Azee 500"}}, nil
		},
	}
	svc := newCatalogFixture(t, gw)

	results, err := svc.Search(context.Background(), "azee")
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Len(t, svc.Products(TabAll), 1, "the grid shows search results until the next load")
	_, err = svc.Get(1)
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestSetFieldOptimistic(t *testing.T) {
	var gotFields map[string]any
	gw := &fakeGateway{
		UpdateFn: func(ctx context.Context, productID int, fields map[string]any) error {
			gotFields = fields
			return nil
		},
	}
	svc := newCatalogFixture(t, gw)

	err := svc.SetField(context.Background(), 1, models.FieldManufacturer, "Micro Labs")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{models.FieldManufacturer: "Micro Labs"}, gotFields)

	p, err := svc.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Micro Labs", p.Manufacturer)
}

func TestSetFieldRollbackOnFailure(t *testing.T) {
	gw := &fakeGateway{
		UpdateFn: func(ctx context.Context, productID int, fields map[string]any) error {
			return assert.AnError
		},
	}
	svc := newCatalogFixture(t, gw)

	err := svc.SetField(context.Background(), 1, models.FieldPricingNew, 99.0)
	require.Error(t, err)

	p, err := svc.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 31.5, p.PricingNew, "the exact pre-edit value is restored")
}

func TestSetFieldNewerEditSuppressesRollback(t *testing.T) {
	release := make(chan struct{})
	calls := 0
	var mu sync.Mutex
	gw := &fakeGateway{
		UpdateFn: func(ctx context.Context, productID int, fields map[string]any) error {
			mu.Lock()
			calls++
			first := calls == 1
			mu.Unlock()
			if first {
				<-release
				return assert.AnError
			}
			return nil
		},
	}
	svc := newCatalogFixture(t, gw)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		firstErr = svc.SetField(context.Background(), 1, models.FieldName, "first edit")
	}()

	time.Sleep(20 * time.Millisecond)

	require.NoError(t, svc.SetField(context.Background(), 1, models.FieldName, "second edit"))

	close(release)
	wg.Wait()
	require.Error(t, firstErr)

	p, err := svc.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "second edit", p.Name, "the stale failure must not clobber the newer edit")
}

func TestSetFieldValidation(t *testing.T) {
	svc := newCatalogFixture(t, &fakeGateway{})

	err := svc.SetField(context.Background(), 42, models.FieldName, "x")
	assert.ErrorIs(t, err, utils.ErrProductNotFound)

	err = svc.SetField(context.Background(), 1, "product_id", 9)
	assert.ErrorIs(t, err, utils.ErrInvalidField)

	err = svc.SetField(context.Background(), 1, models.FieldPricingNew, "not a number")
	assert.ErrorIs(t, err, utils.ErrInvalidField)
}

func TestCatalogDelete(t *testing.T) {
	gw := &fakeGateway{
		DeleteFn: func(ctx context.Context, productID int) error { return nil },
	}
	svc := newCatalogFixture(t, gw)

	require.NoError(t, svc.Delete(context.Background(), 1))
	_, err := svc.Get(1)
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
	assert.Len(t, svc.Products(TabAll), 1)
}

func TestCatalogDeleteFailureKeepsCache(t *testing.T) {
	gw := &fakeGateway{
		DeleteFn: func(ctx context.Context, productID int) error { return assert.AnError },
	}
	svc := newCatalogFixture(t, gw)

	require.Error(t, svc.Delete(context.Background(), 1))
	_, err := svc.Get(1)
	assert.NoError(t, err)
}

func TestCatalogUnmatch(t *testing.T) {
	gw := &fakeGateway{
		UnmatchFn: func(ctx context.Context, productID int) error { return nil },
	}
	svc := newCatalogFixture(t, gw)

	require.NoError(t, svc.Unmatch(context.Background(), 1))

	p, err := svc.Get(1)
	require.NoError(t, err)
	assert.False(t, p.IsMatched())
	assert.False(t, p.InStock.InStock(), "unmatching resets the stock flag")
}
