package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/medingen/recon_api/internal/service"
	"github.com/medingen/recon_api/internal/utils"
)

// SessionHandler exposes the manual match dialog flow: open, search,
// approve and abandon.
type SessionHandler struct {
	sessionService *service.MatchSessionService
}

// NewSessionHandler constructs a SessionHandler.
func NewSessionHandler(sessionService *service.MatchSessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Open starts a match session for one row and returns the seeded search
// results.
func (h *SessionHandler) Open(c *gin.Context) {
	var req struct {
		LocalID *int `json:"local_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	state, err := h.sessionService.Open(c.Request.Context(), *req.LocalID)
	if err != nil {
		if errors.Is(err, utils.ErrRowNotFound) {
			utils.Error(c, 404, "ROW_NOT_FOUND", "No row with that id is loaded")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to open match session")
		return
	}
	utils.Success(c, 200, "Match session opened", state)
}

// Search runs a manual candidate search inside a session.
func (h *SessionHandler) Search(c *gin.Context) {
	var req struct {
		Term string `json:"term" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	results, err := h.sessionService.Search(c.Request.Context(), c.Param("id"), req.Term)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrStaleResponse):
			// A newer search superseded this one; nothing to display.
			utils.Success(c, 200, "Search superseded", gin.H{"stale": true})
		case errors.Is(err, utils.ErrSessionNotFound), errors.Is(err, utils.ErrSessionClosed):
			utils.Error(c, 404, "SESSION_NOT_FOUND", "Match session is not open")
		default:
			utils.Error(c, 502, "GATEWAY_ERROR", err.Error())
		}
		return
	}

	utils.Success(c, 200, "Candidates retrieved successfully", gin.H{
		"results": results,
		"count":   len(results),
	})
}

// Approve confirms the operator's chosen candidate and updates the row.
func (h *SessionHandler) Approve(c *gin.Context) {
	var req service.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	row, err := h.sessionService.Approve(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrSessionNotFound), errors.Is(err, utils.ErrSessionClosed):
			utils.Error(c, 404, "SESSION_NOT_FOUND", "Match session is not open")
		case errors.Is(err, utils.ErrApproveInFlight):
			utils.Error(c, 409, "APPROVE_IN_FLIGHT", "An approve request is already in flight for this session")
		default:
			utils.Error(c, 502, "GATEWAY_ERROR", err.Error())
		}
		return
	}

	utils.Success(c, 200, "Match approved and saved successfully", gin.H{
		"row": row,
	})
}

// Close abandons a session; late responses for it are discarded.
func (h *SessionHandler) Close(c *gin.Context) {
	h.sessionService.Close(c.Param("id"))
	utils.Success(c, 200, "Match session closed", nil)
}
