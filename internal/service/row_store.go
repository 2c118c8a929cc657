package service

import (
	"fmt"
	"strings"
	"sync"

	"github.com/medingen/recon_api/internal/models"
	"github.com/medingen/recon_api/internal/utils"
	"github.com/medingen/recon_api/pkg/catalog"
)

// RowStore owns the reconciliation row set for one operator session. All
// mutation goes through its transition methods; nothing outside the store
// assigns row fields directly. Rows live until the next full ingest and are
// never deleted individually.
type RowStore struct {
	mu   sync.RWMutex
	rows []models.IngestedRow
}

// NewRowStore creates an empty store.
func NewRowStore() *RowStore {
	return &RowStore{}
}

// ReplaceAll swaps in a freshly ingested row set, discarding the previous
// one. Ingest failure must not reach this method; callers keep the old set
// by simply not calling it.
func (s *RowStore) ReplaceAll(rows []models.IngestedRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = rows
}

// Rows returns a copy of the current row set in ingestion order.
func (s *RowStore) Rows() []models.IngestedRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.IngestedRow, len(s.rows))
	copy(out, s.rows)
	return out
}

// Len returns the number of loaded rows.
func (s *RowStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Get returns the row with the given local id.
func (s *RowStore) Get(localID int) (models.IngestedRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.rows {
		if s.rows[i].LocalID == localID {
			return s.rows[i], nil
		}
	}
	return models.IngestedRow{}, utils.ErrRowNotFound
}

// matchKey builds the case-insensitive (brand, generic) key used to join
// bulk-match results back onto rows.
func matchKey(brand, generic string) string {
	return strings.ToLower(strings.TrimSpace(brand)) + "|" + strings.ToLower(strings.TrimSpace(generic))
}

// ApplyBulkMatches folds a bulk stock-match response into the row set. The
// result list is keyed by lower-cased (matchedBrand, matchedGeneric); when
// two results share a key the later one wins, mirroring the lookup the
// remote service itself builds. Rows without a hit are left untouched.
// Returns the number of rows promoted to Matched.
func (s *RowStore) ApplyBulkMatches(results []catalog.BulkMatchResult) int {
	lookup := make(map[string]catalog.BulkMatchResult, len(results))
	for _, r := range results {
		lookup[matchKey(r.MatchedBrand, r.MatchedGeneric)] = r
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := 0
	for i := range s.rows {
		row := &s.rows[i]
		m, ok := lookup[matchKey(row.BrandName, row.GenericName)]
		if !ok {
			continue
		}

		detectedName := m.RCProductName
		if detectedName == "" {
			detectedName = "(No RC Name)"
		}
		matchedName := m.RCProductName
		if matchedName == "" {
			matchedName = m.Name
		}

		productID := m.ProductID
		row.Status = models.RowStatusMatched
		row.MatchedName = matchedName
		row.MatchedComposition = m.Composition
		row.LinkedProductID = &productID
		row.Details = "Auto-Detected: " + detectedName
		if m.InStock.InStock() {
			row.StockStatus = models.StockStatusIn
		} else {
			row.StockStatus = models.StockStatusOut
		}
		matched++
	}
	return matched
}

// ApplyApproval records a confirmed manual match on exactly one row.
// Approving implies stock presence, so the stock status is always set to
// "In Stock" regardless of the candidate's own flag.
func (s *RowStore) ApplyApproval(localID, productID int, rcName, matchedName, matchedComposition string, created bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rows {
		if s.rows[i].LocalID != localID {
			continue
		}
		row := &s.rows[i]
		if created {
			row.Status = models.RowStatusCreated
		} else {
			row.Status = models.RowStatusMatched
		}
		id := productID
		row.LinkedProductID = &id
		row.MatchedName = matchedName
		row.MatchedComposition = matchedComposition
		row.StockStatus = models.StockStatusIn
		row.Details = fmt.Sprintf("Saved: %s", rcName)
		return nil
	}
	return utils.ErrRowNotFound
}
