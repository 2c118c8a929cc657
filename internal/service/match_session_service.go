package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medingen/recon_api/internal/models"
	"github.com/medingen/recon_api/internal/utils"
	"github.com/medingen/recon_api/pkg/catalog"
)

// matchSession is the state of one open manual-match dialog. Generation
// numbers order searches so a slow response from an older search can never
// overwrite a newer one, and the closed flag stops all result application
// once the operator abandons the dialog.
type matchSession struct {
	id        string
	row       models.IngestedRow
	searchGen int
	results   []models.MatchCandidate
	approving bool
	closed    bool
}

// SessionState is the externally visible snapshot of a match session.
type SessionState struct {
	SessionID  string                  `json:"session_id"`
	LocalID    int                     `json:"local_id"`
	SearchTerm string                  `json:"search_term"`
	Results    []models.MatchCandidate `json:"results"`
}

// ApproveRequest carries the operator's chosen candidate. A zero ProductID
// asks the catalog service to create a new product from the row instead.
type ApproveRequest struct {
	ProductID     int    `json:"product_id"`
	RCProductName string `json:"rc_product_name"`
	MatchedName   string `json:"matched_name"`
	Composition   string `json:"composition"`
}

// MatchSessionService runs the manual search-and-approve flow for single
// rows. Sessions are cheap and short-lived; one exists per open dialog.
type MatchSessionService struct {
	gateway CatalogGateway
	store   *RowStore

	mu       sync.Mutex
	sessions map[string]*matchSession
}

// NewMatchSessionService constructs a MatchSessionService.
func NewMatchSessionService(gateway CatalogGateway, store *RowStore) *MatchSessionService {
	return &MatchSessionService{
		gateway:  gateway,
		store:    store,
		sessions: make(map[string]*matchSession),
	}
}

// Open starts a session for a row of any status, seeds the search term with
// the row's brand name and issues the first search. The row's own status is
// not touched until an approval succeeds.
func (s *MatchSessionService) Open(ctx context.Context, localID int) (*SessionState, error) {
	row, err := s.store.Get(localID)
	if err != nil {
		return nil, err
	}

	sess := &matchSession{id: uuid.New().String(), row: row}
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	results, err := s.Search(ctx, sess.id, row.BrandName)
	if err != nil {
		// The session stays usable; the operator can retry the search.
		log.Error().Err(err).Str("session_id", sess.id).Msg("initial match search failed")
	}

	return &SessionState{
		SessionID:  sess.id,
		LocalID:    row.LocalID,
		SearchTerm: row.BrandName,
		Results:    results,
	}, nil
}

// Search runs a manual candidate search. Results come back in the
// gateway's own ranking; an empty list is a valid answer. If a newer search
// was issued for the same session while this one was in flight, or the
// session was closed, the response is discarded and ErrStaleResponse is
// returned so callers know not to display it.
func (s *MatchSessionService) Search(ctx context.Context, sessionID, term string) ([]models.MatchCandidate, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, utils.ErrSessionNotFound
	}
	if sess.closed {
		s.mu.Unlock()
		return nil, utils.ErrSessionClosed
	}
	sess.searchGen++
	gen := sess.searchGen
	row := sess.row
	s.mu.Unlock()

	candidates, err := s.gateway.FindMatches(ctx, term, row.GenericName, row.BrandName)

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess.closed || gen != sess.searchGen {
		log.Debug().Str("session_id", sessionID).Int("gen", gen).Msg("stale search response discarded")
		return nil, utils.ErrStaleResponse
	}
	if err != nil {
		return nil, err
	}
	sess.results = candidates
	return candidates, nil
}

// Results returns the session's currently displayed candidate list.
func (s *MatchSessionService) Results(sessionID string) ([]models.MatchCandidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	return sess.results, nil
}

// Approve confirms the chosen candidate with the gateway and, on success,
// mutates exactly the session's target row and closes the session. Only one
// approve may be in flight per session; a concurrent attempt is rejected,
// not queued. On failure every piece of state is left unchanged.
func (s *MatchSessionService) Approve(ctx context.Context, sessionID string, req ApproveRequest) (models.IngestedRow, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return models.IngestedRow{}, utils.ErrSessionNotFound
	}
	if sess.closed {
		s.mu.Unlock()
		return models.IngestedRow{}, utils.ErrSessionClosed
	}
	if sess.approving {
		s.mu.Unlock()
		return models.IngestedRow{}, utils.ErrApproveInFlight
	}
	sess.approving = true
	row := sess.row
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		sess.approving = false
		s.mu.Unlock()
	}()

	resp, err := s.gateway.ApproveMatch(ctx, catalog.ApproveMatchRequest{
		ProductID:     req.ProductID,
		RCProductName: req.RCProductName,
		BrandName:     row.BrandName,
		GenericName:   row.GenericName,
		Manufacturer:  row.Manufacturer,
		Packing:       row.Packing,
	})
	if err != nil {
		return models.IngestedRow{}, err
	}

	s.mu.Lock()
	closed := sess.closed
	s.mu.Unlock()
	if closed {
		// The operator abandoned the dialog while the request was in
		// flight; the catalog was updated but the closed session applies
		// nothing locally.
		log.Warn().Str("session_id", sessionID).Msg("approve response for closed session discarded")
		return models.IngestedRow{}, utils.ErrSessionClosed
	}

	productID := req.ProductID
	created := resp.Action == catalog.ActionCreated
	if created {
		productID = resp.ProductID
	}

	matchedName := req.MatchedName
	if matchedName == "" {
		matchedName = req.RCProductName
	}
	if err := s.store.ApplyApproval(row.LocalID, productID, req.RCProductName, matchedName, req.Composition, created); err != nil {
		return models.IngestedRow{}, err
	}

	s.Close(sessionID)
	return s.store.Get(row.LocalID)
}

// Close abandons a session. Any in-flight search or approve response for it
// is discarded when it lands. Closing twice is harmless.
func (s *MatchSessionService) Close(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		sess.closed = true
		delete(s.sessions, sessionID)
	}
}
