package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Configuration and pagination errors
var (
	// ErrTokenMissing indicates no token was found in the environment
	ErrTokenMissing = errors.New(EnvToken + " was not found in your environment")
	// ErrTokenEmpty indicates the token is present but empty
	ErrTokenEmpty = errors.New(EnvToken + " was found but is empty")
	// ErrTokenInvalid indicates the token does not have the expected length
	ErrTokenInvalid = errors.New("API token does not seem valid")
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid steadysun client configuration")
	// ErrTooManyPages indicates a list kept reporting a next page past the page cap
	ErrTooManyPages = errors.New("pagination exceeded maximum number of pages")
	// ErrPaginationStalled indicates a page came back empty while still pointing to a next page
	ErrPaginationStalled = errors.New("pagination stalled: empty page with a next link")
)

// APIError is the base of every error returned for an HTTP error status.
type APIError struct {
	StatusCode int
	Title      string
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Title, e.Message)
}

func newAPIError(code int, title, message, fallback string) APIError {
	if message == "" {
		message = fallback
	}
	return APIError{StatusCode: code, Title: title, Message: message}
}

// BadRequestError is returned for a 400 response.
type BadRequestError struct{ APIError }

// UnauthorizedError is returned for a 401 response.
type UnauthorizedError struct{ APIError }

// ForbiddenError is returned for a 403 response.
type ForbiddenError struct{ APIError }

// NotFoundError is returned for a 404 response. URL is the requested URL.
type NotFoundError struct {
	APIError
	URL string
}

// TooManyRequestsError is returned for a 429 response.
type TooManyRequestsError struct{ APIError }

// InternalServerError is returned for a 500 response.
type InternalServerError struct{ APIError }

// BadGatewayError is returned for a 502 response.
type BadGatewayError struct{ APIError }

func (e *BadRequestError) Unwrap() error      { return &e.APIError }
func (e *UnauthorizedError) Unwrap() error    { return &e.APIError }
func (e *ForbiddenError) Unwrap() error       { return &e.APIError }
func (e *NotFoundError) Unwrap() error        { return &e.APIError }
func (e *TooManyRequestsError) Unwrap() error { return &e.APIError }
func (e *InternalServerError) Unwrap() error  { return &e.APIError }
func (e *BadGatewayError) Unwrap() error      { return &e.APIError }

// NewBadRequestError creates a 400 error. An empty message uses the default.
func NewBadRequestError(message string) *BadRequestError {
	return &BadRequestError{newAPIError(http.StatusBadRequest, "Bad Request", message,
		"Please check your request format.")}
}

// NewUnauthorizedError creates a 401 error. An empty message uses the default.
func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{newAPIError(http.StatusUnauthorized, "Unauthorized", message,
		"You need to authenticate first.")}
}

// NewForbiddenError creates a 403 error. An empty message uses the default.
func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{newAPIError(http.StatusForbidden, "Forbidden", message,
		"You don't have permission to access this resource.")}
}

// NewNotFoundError creates a 404 error for the given URL.
func NewNotFoundError(url string) *NotFoundError {
	message := "The requested resource was not found."
	if url != "" {
		message = fmt.Sprintf("The requested resource was not found (%s).", url)
	}
	return &NotFoundError{
		APIError: newAPIError(http.StatusNotFound, "Not Found", message, ""),
		URL:      url,
	}
}

// NewTooManyRequestsError creates a 429 error. An empty message uses the default.
func NewTooManyRequestsError(message string) *TooManyRequestsError {
	return &TooManyRequestsError{newAPIError(http.StatusTooManyRequests, "Too Many Requests", message,
		"You have exceeded your request quota.")}
}

// NewInternalServerError creates a 500 error. An empty message uses the default.
func NewInternalServerError(message string) *InternalServerError {
	return &InternalServerError{newAPIError(http.StatusInternalServerError, "Internal Server Error", message,
		"An unexpected server error occurred.")}
}

// NewBadGatewayError creates a 502 error. An empty message uses the default.
func NewBadGatewayError(message string) *BadGatewayError {
	return &BadGatewayError{newAPIError(http.StatusBadGateway, "Bad Gateway", message,
		"Server timeout, please try again after 30 seconds.")}
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not an API error.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound checks if the error indicates a not found response
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func IsUnauthorized(err error) bool {
	code := StatusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// IsRateLimited checks if the error indicates the request quota was exceeded
func IsRateLimited(err error) bool {
	return StatusCode(err) == http.StatusTooManyRequests
}
