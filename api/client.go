package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the production Steadysun API
	DefaultBaseURL = "https://steadyweb.steady-sun.com/api/v1/"
	// DefaultTimeout is the per-request timeout
	DefaultTimeout = 30 * time.Second
	// DefaultPageLimit is the page size used by GetList when none is given
	DefaultPageLimit = 10
	// DefaultMaxPages bounds GetList when following next links
	DefaultMaxPages = 1000
)

// Client represents a Steadysun API client
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     zerolog.Logger
	maxPages   int
}

// NewClient creates a new Steadysun client authenticated with token
func NewClient(token string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if err := ValidateToken(token); err != nil {
		return nil, err
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	baseURL, err := normalizeBaseURL(options.baseURL)
	if err != nil {
		return nil, err
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &userAgentTransport{
				transport: http.DefaultTransport,
				userAgent: options.userAgent,
			},
			Timeout: options.timeout,
		}
	}

	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: httpClient,
		logger:     logger,
		maxPages:   options.maxPages,
	}, nil
}

// NewClientFromEnv creates a client from EnvToken, with the base URL taken from
// EnvBaseURL when set. Explicit options override the environment.
func NewClientFromEnv(logger zerolog.Logger, opts ...Option) (*Client, error) {
	token, err := TokenFromEnv()
	if err != nil {
		return nil, err
	}

	if baseURL := os.Getenv(EnvBaseURL); baseURL != "" {
		opts = append([]Option{WithBaseURL(baseURL)}, opts...)
	}

	return NewClient(token, logger, opts...)
}

func normalizeBaseURL(baseURL string) (string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("%w: base URL %q is not absolute", ErrInvalidConfig, baseURL)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL, nil
}

// BaseURL returns the base URL requests are built on
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs a single request and hands the response to HandleResponse.
// Network failures are returned wrapped, never remapped to API errors.
func (c *Client) Do(ctx context.Context, method, endpoint string, query url.Values, body any) (Object, error) {
	requestURL := c.baseURL + strings.TrimPrefix(endpoint, "/")
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", requestURL).
		Msg("Making Steadysun API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return HandleResponse(resp, c.logger)
}

// Get makes a GET request
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values) (Object, error) {
	return c.Do(ctx, http.MethodGet, endpoint, query, nil)
}

// Post makes a POST request with a JSON body
func (c *Client) Post(ctx context.Context, endpoint string, body any) (Object, error) {
	return c.Do(ctx, http.MethodPost, endpoint, nil, body)
}

// Put makes a PUT request with a JSON body
func (c *Client) Put(ctx context.Context, endpoint string, body any) (Object, error) {
	return c.Do(ctx, http.MethodPut, endpoint, nil, body)
}

// Patch makes a PATCH request with a JSON body
func (c *Client) Patch(ctx context.Context, endpoint string, body any) (Object, error) {
	return c.Do(ctx, http.MethodPatch, endpoint, nil, body)
}

// Delete makes a DELETE request
func (c *Client) Delete(ctx context.Context, endpoint string, query url.Values) (Object, error) {
	return c.Do(ctx, http.MethodDelete, endpoint, query, nil)
}

// GetList fetches a paginated list with limit=pageLimit and offset=0. When
// allPages is set it follows next links, offsetting by pageLimit each time,
// appends every page's results in arrival order and drops the next and
// previous keys from the returned object.
func (c *Client) GetList(ctx context.Context, endpoint string, query url.Values, pageLimit int, allPages bool) (Object, error) {
	if pageLimit <= 0 {
		pageLimit = DefaultPageLimit
	}

	params := url.Values{}
	for key, values := range query {
		params[key] = append([]string(nil), values...)
	}
	offset := 0
	params.Set("limit", strconv.Itoa(pageLimit))
	params.Set("offset", strconv.Itoa(offset))

	response, err := c.Get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	if !allPages {
		return response, nil
	}

	results := resultsOf(response)
	next := response["next"]
	pages := 1

	for next != nil {
		if pages >= c.maxPages {
			return nil, fmt.Errorf("%w: stopped after %d pages of %s", ErrTooManyPages, pages, endpoint)
		}

		offset += pageLimit
		params.Set("offset", strconv.Itoa(offset))

		page, err := c.Get(ctx, endpoint, params)
		if err != nil {
			return nil, fmt.Errorf("failed to get page at offset %d: %w", offset, err)
		}
		pages++

		pageResults := resultsOf(page)
		next = page["next"]
		if len(pageResults) == 0 && next != nil {
			return nil, fmt.Errorf("%w: offset %d of %s", ErrPaginationStalled, offset, endpoint)
		}
		results = append(results, pageResults...)

		c.logger.Debug().
			Int("page", pages).
			Int("count", len(pageResults)).
			Int("total", len(results)).
			Str("endpoint", endpoint).
			Msg("Retrieved page")
	}

	response["results"] = results
	delete(response, "next")
	delete(response, "previous")
	return response, nil
}

func resultsOf(obj Object) []any {
	results, _ := obj["results"].([]any)
	return results
}

type userAgentTransport struct {
	transport http.RoundTripper
	userAgent string
}

// RoundTrip sets the User-Agent header on a copy of the request.
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.transport.RoundTrip(req)
}
