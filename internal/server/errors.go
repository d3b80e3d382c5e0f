package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	billingservice "github.com/metersharelabs/metershare/internal/billing/service"
	ledgerdomain "github.com/metersharelabs/metershare/internal/ledger/domain"
	tariffdomain "github.com/metersharelabs/metershare/internal/tariff/domain"
	tenantdomain "github.com/metersharelabs/metershare/internal/tenant/domain"
)

type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *APIError) Error() string { return e.Message }

func invalidRequestError() *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "request body could not be parsed"}
}

func newValidationError(field, code, message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: code, Message: message, Field: field}
}

// AbortWithError maps domain errors onto HTTP statuses and writes the
// error envelope.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, tariffdomain.ErrNotFound),
		errors.Is(err, tenantdomain.ErrNotFound),
		errors.Is(err, ledgerdomain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, tariffdomain.ErrNoSlabs),
		errors.Is(err, tariffdomain.ErrSlabOrder),
		errors.Is(err, tariffdomain.ErrNonPositiveRate),
		errors.Is(err, tariffdomain.ErrInvalidVATRate),
		errors.Is(err, tariffdomain.ErrNegativeCharge),
		errors.Is(err, tenantdomain.ErrInvalidID),
		errors.Is(err, tenantdomain.ErrInvalidName),
		errors.Is(err, ledgerdomain.ErrInvalidID):
		status = http.StatusBadRequest
	case errors.Is(err, ledgerdomain.ErrNoDraft),
		errors.Is(err, billingservice.ErrNoDraft):
		status = http.StatusConflict
	}

	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"code": "error", "message": err.Error()}})
}
