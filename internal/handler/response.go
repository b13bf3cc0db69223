package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aqabadeal-png/canroad/internal/repository"
	"github.com/aqabadeal-png/canroad/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidCustomerName),
		errors.Is(err, service.ErrInvalidCustomerPhone),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrInvalidInvoice),
		errors.Is(err, service.ErrInvalidServiceTitle),
		errors.Is(err, service.ErrInvalidBasePrice),
		errors.Is(err, service.ErrNoEstimate):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrActiveJobExists),
		errors.Is(err, service.ErrJobAlreadyClaimed),
		errors.Is(err, service.ErrJobNotPending),
		errors.Is(err, service.ErrJobNotAssigned),
		errors.Is(err, service.ErrJobNotArrived),
		errors.Is(err, service.ErrJobCannotBeCompleted),
		errors.Is(err, service.ErrJobAlreadyCancelled),
		errors.Is(err, service.ErrJobCannotBeCancelled),
		errors.Is(err, service.ErrJobNotCompleted),
		errors.Is(err, service.ErrJobAlreadyEvaluated),
		errors.Is(err, service.ErrMechanicInactive),
		errors.Is(err, service.ErrServiceExists):
		return http.StatusConflict

	// Forbidden/Business rule errors
	case errors.Is(err, service.ErrMechanicNotAssigned),
		errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden

	// Unauthenticated
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
