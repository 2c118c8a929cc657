package utils

import "errors"

// Common application errors used across services.
var (
	ErrEmptyWorkbook   = errors.New("EMPTY_WORKBOOK")
	ErrRowNotFound     = errors.New("ROW_NOT_FOUND")
	ErrSessionNotFound = errors.New("SESSION_NOT_FOUND")
	ErrSessionClosed   = errors.New("SESSION_CLOSED")
	ErrApproveInFlight = errors.New("APPROVE_IN_FLIGHT")
	ErrProductNotFound = errors.New("PRODUCT_NOT_FOUND")
	ErrInvalidField    = errors.New("INVALID_FIELD")
	ErrNoRowsLoaded    = errors.New("NO_ROWS_LOADED")
	ErrInvalidToken    = errors.New("INVALID_TOKEN")
	ErrStaleResponse   = errors.New("STALE_RESPONSE")
)
