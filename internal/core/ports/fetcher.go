// Package ports defines the core interfaces for the application.
package ports

import "context"

// FetchOptions tunes a single fetch.
type FetchOptions struct {
	// WithCredentials attaches stored cookies to the request.
	WithCredentials bool
}

// Fetcher retrieves the raw text of remote fragment definitions and configurations.
//
//go:generate go run go.uber.org/mock/mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Fetch issues a GET for path and returns the response body.
	// Responses with a 4xx or 5xx status are returned as errors.
	Fetch(ctx context.Context, path string, opts FetchOptions) (string, error)
}
