package api

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResponse(t *testing.T, status int, body string) *http.Response {
	t.Helper()
	u, err := url.Parse("https://steadyweb.example.com/api/v1/pvsystem/abc/")
	require.NoError(t, err)
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    &http.Request{Method: http.MethodGet, URL: u},
	}
}

func TestHandleResponseSuccess(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name   string
		status int
		body   string
		want   Object
	}{
		{
			name:   "200 returns parsed body",
			status: http.StatusOK,
			body:   `{"json": 1, "name": "site"}`,
			want:   Object{"json": float64(1), "name": "site"},
		},
		{
			name:   "201 returns parsed body",
			status: http.StatusCreated,
			body:   `{"uuid": "be64cdf1-22e5-4072-85d8-d6c1502c4460"}`,
			want:   Object{"uuid": "be64cdf1-22e5-4072-85d8-d6c1502c4460"},
		},
		{
			name:   "204 ignores body",
			status: http.StatusNoContent,
			body:   `{"whatever": true}`,
			want:   Object{"message": DeletedMessage},
		},
		{
			name:   "204 with empty body",
			status: http.StatusNoContent,
			body:   "",
			want:   Object{"message": DeletedMessage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HandleResponse(newResponse(t, tt.status, tt.body), logger)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandleResponseInvalidJSON(t *testing.T) {
	got, err := HandleResponse(newResponse(t, http.StatusOK, "Invalid JSON"), zerolog.Nop())
	require.NoError(t, err)
	assert.Contains(t, got.Message(), "Failed to parse JSON from response")
}

func TestHandleResponseNonObjectJSON(t *testing.T) {
	logger := zerolog.Nop()

	got, err := HandleResponse(newResponse(t, http.StatusOK, `[{"id":1},{"id":2}]`), logger)
	require.NoError(t, err)
	assert.Equal(t, Object{ValueKey: []any{
		map[string]any{"id": float64(1)},
		map[string]any{"id": float64(2)},
	}}, got)
	assert.Empty(t, got.Message())

	got, err = HandleResponse(newResponse(t, http.StatusCreated, `"queued"`), logger)
	require.NoError(t, err)
	assert.Equal(t, Object{ValueKey: "queued"}, got)
}

func TestHandleResponseErrors(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			status: http.StatusBadRequest,
			body:   `{"message": "horizon must be positive"}`,
			check: func(t *testing.T, err error) {
				var target *BadRequestError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, "horizon must be positive", target.Message)
				assert.Equal(t, "400 Bad Request: horizon must be positive", err.Error())
			},
		},
		{
			status: http.StatusUnauthorized,
			body:   "Unauthorized",
			check: func(t *testing.T, err error) {
				var target *UnauthorizedError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, "401 Unauthorized: You need to authenticate first.", err.Error())
			},
		},
		{
			status: http.StatusForbidden,
			body:   "Forbidden",
			check: func(t *testing.T, err error) {
				var target *ForbiddenError
				require.ErrorAs(t, err, &target)
			},
		},
		{
			status: http.StatusNotFound,
			body:   "Not Found",
			check: func(t *testing.T, err error) {
				var target *NotFoundError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, "https://steadyweb.example.com/api/v1/pvsystem/abc/", target.URL)
				assert.Contains(t, err.Error(), target.URL)
			},
		},
		{
			status: http.StatusTooManyRequests,
			body:   "Too Many Requests",
			check: func(t *testing.T, err error) {
				var target *TooManyRequestsError
				require.ErrorAs(t, err, &target)
				assert.True(t, IsRateLimited(err))
			},
		},
		{
			status: http.StatusInternalServerError,
			body:   "Internal Server Error",
			check: func(t *testing.T, err error) {
				var target *InternalServerError
				require.ErrorAs(t, err, &target)
			},
		},
		{
			status: http.StatusBadGateway,
			body:   "Bad Gateway",
			check: func(t *testing.T, err error) {
				var target *BadGatewayError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, "Server timeout, please try again after 30 seconds.", target.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			got, err := HandleResponse(newResponse(t, tt.status, tt.body), logger)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.Contains(t, err.Error(), http.StatusText(tt.status))
			assert.Equal(t, tt.status, StatusCode(err))
			tt.check(t, err)
		})
	}
}

func TestHandleResponseBadRequestFallsBackToText(t *testing.T) {
	_, err := HandleResponse(newResponse(t, http.StatusBadRequest, "plain text problem"), zerolog.Nop())

	var target *BadRequestError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "plain text problem", target.Message)

	_, err = HandleResponse(newResponse(t, http.StatusBadRequest, ""), zerolog.Nop())
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "Please check your request format.", target.Message)
}

func TestHandleResponseUnmappedStatus(t *testing.T) {
	_, err := HandleResponse(newResponse(t, http.StatusTeapot, "short and stout"), zerolog.Nop())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTeapot, apiErr.StatusCode)
	assert.Equal(t, "short and stout", apiErr.Message)
	assert.Equal(t, "418 I'm a teapot: short and stout", err.Error())

	var notFound *NotFoundError
	assert.False(t, errors.As(err, &notFound))
}

func TestObjectDecode(t *testing.T) {
	obj := Object{"uuid": "abc", "altitude": float64(12.5)}

	var target struct {
		UUID     string  `json:"uuid"`
		Altitude float64 `json:"altitude"`
	}
	require.NoError(t, obj.Decode(&target))
	assert.Equal(t, "abc", target.UUID)
	assert.Equal(t, 12.5, target.Altitude)
}
