package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{WithBaseURL(server.URL + "/api/v1/")}, opts...)
	client, err := NewClient(validToken, zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		opts    []Option
		wantErr error
	}{
		{name: "valid config", token: validToken},
		{name: "empty token", token: "", wantErr: ErrTokenEmpty},
		{name: "short token", token: "abc", wantErr: ErrTokenInvalid},
		{name: "relative base URL", token: validToken, opts: []Option{WithBaseURL("api/v1")}, wantErr: ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.token, zerolog.Nop(), tt.opts...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DefaultBaseURL, client.BaseURL())
			assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
			assert.Equal(t, DefaultMaxPages, client.maxPages)
		})
	}
}

func TestClientOptions(t *testing.T) {
	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient(validToken, zerolog.Nop(), WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with max pages", func(t *testing.T) {
		client, err := NewClient(validToken, zerolog.Nop(), WithMaxPages(3))
		require.NoError(t, err)
		assert.Equal(t, 3, client.maxPages)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient(validToken, zerolog.Nop(), WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Same(t, customClient, client.httpClient)
	})
}

func TestClientRequests(t *testing.T) {
	type seen struct {
		method      string
		path        string
		query       url.Values
		auth        string
		userAgent   string
		contentType string
		body        map[string]any
	}
	var last seen

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		last = seen{
			method:      r.Method,
			path:        r.URL.Path,
			query:       r.URL.Query(),
			auth:        r.Header.Get("Authorization"),
			userAgent:   r.Header.Get("User-Agent"),
			contentType: r.Header.Get("Content-Type"),
		}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			require.NoError(t, json.Unmarshal(data, &last.body))
		}
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"method": r.Method})
	}, WithUserAgent("steadysun-test/1.0"))

	ctx := context.Background()

	t.Run("get with query", func(t *testing.T) {
		resp, err := client.Get(ctx, "forecast/pvsystem/abc/", url.Values{"horizon": {"60"}})
		require.NoError(t, err)
		assert.Equal(t, "GET", resp["method"])
		assert.Equal(t, "/api/v1/forecast/pvsystem/abc/", last.path)
		assert.Equal(t, "60", last.query.Get("horizon"))
		assert.Equal(t, "Token "+validToken, last.auth)
		assert.Equal(t, "steadysun-test/1.0", last.userAgent)
	})

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch} {
		t.Run(method+" with body", func(t *testing.T) {
			body := map[string]any{"name": "roof"}
			var err error
			switch method {
			case http.MethodPost:
				_, err = client.Post(ctx, "pvsystem/", body)
			case http.MethodPut:
				_, err = client.Put(ctx, "pvsystem/abc/", body)
			case http.MethodPatch:
				_, err = client.Patch(ctx, "pvsystem/abc/", body)
			}
			require.NoError(t, err)
			assert.Equal(t, method, last.method)
			assert.Equal(t, "application/json", last.contentType)
			assert.Equal(t, "roof", last.body["name"])
		})
	}

	t.Run("delete", func(t *testing.T) {
		resp, err := client.Delete(ctx, "/pvsystem/abc/", nil)
		require.NoError(t, err)
		assert.Equal(t, DeletedMessage, resp.Message())
		assert.Equal(t, "/api/v1/pvsystem/abc/", last.path)
	})
}

func TestClientNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL + "/"
	server.Close()

	client, err := NewClient(validToken, zerolog.Nop(), WithBaseURL(baseURL))
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "pvsystem/", nil)
	require.Error(t, err)
	assert.Equal(t, 0, StatusCode(err))

	var urlErr *url.Error
	assert.ErrorAs(t, err, &urlErr)
}

// pagedHandler serves total items split in pages, honouring limit/offset.
func pagedHandler(t *testing.T, total int, requests *[]url.Values) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		*requests = append(*requests, query)

		limit, err := strconv.Atoi(query.Get("limit"))
		require.NoError(t, err)
		offset, err := strconv.Atoi(query.Get("offset"))
		require.NoError(t, err)

		results := []any{}
		for i := offset; i < offset+limit && i < total; i++ {
			results = append(results, map[string]any{"id": i})
		}

		var next, previous any
		if offset+limit < total {
			next = fmt.Sprintf("http://example/?limit=%d&offset=%d", limit, offset+limit)
		}
		if offset > 0 {
			previous = fmt.Sprintf("http://example/?limit=%d&offset=%d", limit, offset-limit)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"count":    total,
			"next":     next,
			"previous": previous,
			"results":  results,
		})
	}
}

func TestGetList(t *testing.T) {
	ctx := context.Background()

	t.Run("all pages", func(t *testing.T) {
		var requests []url.Values
		client := newTestClient(t, pagedHandler(t, 9, &requests))

		resp, err := client.GetList(ctx, "pvsystem/", url.Values{"search": {"roof"}}, 3, true)
		require.NoError(t, err)

		results := resp["results"].([]any)
		require.Len(t, results, 9)
		for i, item := range results {
			assert.Equal(t, float64(i), item.(map[string]any)["id"])
		}
		assert.Equal(t, float64(9), resp["count"])
		assert.NotContains(t, resp, "next")
		assert.NotContains(t, resp, "previous")

		require.Len(t, requests, 3)
		for i, query := range requests {
			assert.Equal(t, "3", query.Get("limit"))
			assert.Equal(t, strconv.Itoa(i*3), query.Get("offset"))
			assert.Equal(t, "roof", query.Get("search"))
		}
	})

	t.Run("first page only", func(t *testing.T) {
		var requests []url.Values
		client := newTestClient(t, pagedHandler(t, 9, &requests))

		resp, err := client.GetList(ctx, "pvsystem/", nil, 3, false)
		require.NoError(t, err)
		assert.Len(t, resp["results"].([]any), 3)
		assert.Contains(t, resp, "next")
		assert.Len(t, requests, 1)
	})

	t.Run("default page limit", func(t *testing.T) {
		var requests []url.Values
		client := newTestClient(t, pagedHandler(t, 4, &requests))

		_, err := client.GetList(ctx, "pvsystem/", nil, 0, true)
		require.NoError(t, err)
		require.Len(t, requests, 1)
		assert.Equal(t, "10", requests[0].Get("limit"))
	})

	t.Run("page cap", func(t *testing.T) {
		var requests []url.Values
		client := newTestClient(t, pagedHandler(t, 100, &requests), WithMaxPages(2))

		_, err := client.GetList(ctx, "pvsystem/", nil, 3, true)
		require.ErrorIs(t, err, ErrTooManyPages)
		assert.Len(t, requests, 2)
	})

	t.Run("stalled server", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			results := []any{}
			if r.URL.Query().Get("offset") == "0" {
				results = append(results, map[string]any{"id": 0})
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"count": 5, "next": "http://example/", "previous": nil, "results": results,
			})
		})

		_, err := client.GetList(ctx, "pvsystem/", nil, 1, true)
		require.ErrorIs(t, err, ErrPaginationStalled)
	})

	t.Run("error on later page", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("offset") != "0" {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"count": 2, "next": "http://example/", "previous": nil, "results": []any{1},
			})
		})

		_, err := client.GetList(ctx, "pvsystem/", nil, 1, true)
		var gateway *BadGatewayError
		require.ErrorAs(t, err, &gateway)
	})
}
