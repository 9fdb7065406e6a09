package api

import (
	"context"
	"net/url"
)

// API defines the request operations resource accessors depend on
type API interface {
	// Get issues a GET request with optional query parameters
	Get(ctx context.Context, endpoint string, query url.Values) (Object, error)

	// Post issues a POST request with a JSON body
	Post(ctx context.Context, endpoint string, body any) (Object, error)

	// Put issues a PUT request with a JSON body
	Put(ctx context.Context, endpoint string, body any) (Object, error)

	// Patch issues a PATCH request with a JSON body
	Patch(ctx context.Context, endpoint string, body any) (Object, error)

	// Delete issues a DELETE request with optional query parameters
	Delete(ctx context.Context, endpoint string, query url.Values) (Object, error)

	// GetList fetches a paginated list, optionally following every page
	GetList(ctx context.Context, endpoint string, query url.Values, pageLimit int, allPages bool) (Object, error)
}

var _ API = (*Client)(nil)
