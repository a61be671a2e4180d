package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fantasyops/leaguedesk/internal/analytics"
	"github.com/fantasyops/leaguedesk/internal/providers"
	"github.com/fantasyops/leaguedesk/internal/services"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// SuccessResponse represents a successful API response
type SuccessResponse struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

// SendError sends a generic error response
func SendError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// SendInternalError sends a 500 internal server error
func SendInternalError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, message)
}

// SendBadRequest sends a 400 bad request error
func SendBadRequest(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message)
}

// SendNotFound sends a 404 not found error
func SendNotFound(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, message)
}

// SendConflict sends a 409 conflict error
func SendConflict(c *gin.Context, message string) {
	SendError(c, http.StatusConflict, message)
}

// SendValidationError sends a 422 validation error
func SendValidationError(c *gin.Context, message string) {
	SendError(c, http.StatusUnprocessableEntity, message)
}

// SendSuccess sends a 200 success response
func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data: data,
	})
}

// SendSuccessWithMessage sends a 200 success response with message
func SendSuccessWithMessage(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data:    data,
		Message: message,
	})
}

// SendCreated sends a 201 created response
func SendCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{
		Data: data,
	})
}

// SendDomainError maps a domain sentinel error onto the matching HTTP
// status. Unrecognized errors become a 500 with a generic message so
// internal details never leak to callers.
func SendDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDuplicateLeague):
		SendConflict(c, err.Error())
	case errors.Is(err, services.ErrLeagueNotRegistered):
		SendNotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentialFormat):
		SendValidationError(c, err.Error())
	case errors.Is(err, providers.ErrLeagueNotFound):
		SendNotFound(c, err.Error())
	case errors.Is(err, providers.ErrAuthenticationFailed):
		SendError(c, http.StatusBadGateway, "provider rejected the league credentials")
	case errors.Is(err, providers.ErrProviderUnavailable):
		SendError(c, http.StatusServiceUnavailable, "data provider is unavailable, try again shortly")
	case errors.Is(err, providers.ErrMalformedResponse):
		SendError(c, http.StatusBadGateway, "data provider returned an unreadable response")
	case errors.Is(err, analytics.ErrIncompatibleScoringSchemes):
		SendValidationError(c, err.Error())
	default:
		SendInternalError(c, "unexpected error")
	}
}
