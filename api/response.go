package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// ValueKey holds a 2xx body that is valid JSON but not an object.
const ValueKey = "value"

// DeletedMessage is the acknowledgement returned for a 204 response.
const DeletedMessage = "Resource successfully deleted."

// Object is a decoded JSON object returned by the API.
type Object map[string]any

// Decode converts the object into v through its JSON form.
func (o Object) Decode(v any) error {
	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to encode object: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode object: %w", err)
	}
	return nil
}

// Message returns the "message" field, if it is a string.
func (o Object) Message() string {
	msg, _ := o["message"].(string)
	return msg
}

// HandleResponse reads resp and turns it into either a parsed object or a typed error.
// It closes the response body.
func HandleResponse(resp *http.Response, logger zerolog.Logger) (Object, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	requestURL := ""
	if resp.Request != nil && resp.Request.URL != nil {
		requestURL = resp.Request.URL.String()
	}

	return handle(resp.StatusCode, body, requestURL, logger)
}

func handle(status int, body []byte, requestURL string, logger zerolog.Logger) (Object, error) {
	switch {
	case status == http.StatusNoContent:
		logger.Info().Int("status", status).Str("url", requestURL).Msg(DeletedMessage)
		return Object{"message": DeletedMessage}, nil
	case status >= 200 && status < 300:
		logger.Info().Int("status", status).Int("bytes", len(body)).Msg("Request succeeded")
		return parseObject(body, logger), nil
	}

	apiErr := errorForStatus(status, body, requestURL)
	logger.Warn().
		Int("status", status).
		Str("url", requestURL).
		Err(apiErr).
		Msg("Request failed")
	return nil, apiErr
}

func parseObject(body []byte, logger zerolog.Logger) Object {
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		logger.Warn().Err(err).Msg("Response body is not valid JSON")
		return Object{"message": fmt.Sprintf("Failed to parse JSON from response: %v", err)}
	}
	switch v := value.(type) {
	case map[string]any:
		return Object(v)
	case nil:
		// a literal null body
		return Object{}
	default:
		return Object{ValueKey: v}
	}
}

// errorForStatus maps a non-2xx status to its typed error.
func errorForStatus(status int, body []byte, requestURL string) error {
	text := strings.TrimSpace(string(body))

	switch status {
	case http.StatusBadRequest:
		return NewBadRequestError(badRequestMessage(body, text))
	case http.StatusUnauthorized:
		return NewUnauthorizedError("")
	case http.StatusForbidden:
		return NewForbiddenError("")
	case http.StatusNotFound:
		return NewNotFoundError(requestURL)
	case http.StatusTooManyRequests:
		return NewTooManyRequestsError("")
	case http.StatusInternalServerError:
		return NewInternalServerError("")
	case http.StatusBadGateway:
		return NewBadGatewayError("")
	}

	title := http.StatusText(status)
	if title == "" {
		title = "Unexpected Status"
	}
	if text == "" {
		text = "An unexpected error occurred."
	}
	return &APIError{StatusCode: status, Title: title, Message: text}
}

func badRequestMessage(body []byte, text string) string {
	var payload struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != nil {
		if msg, ok := payload.Message.(string); ok {
			return msg
		}
		if encoded, err := json.Marshal(payload.Message); err == nil {
			return string(encoded)
		}
	}
	return text
}
