package gateway

import (
	"context"
	"net/url"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=gateway

// SearchBackend is the search service as seen from the gateway. *backend.Search satisfies it.
type SearchBackend interface {
	Search(ctx context.Context, params url.Values) (any, error)
	SearchBooks(ctx context.Context, params url.Values) (any, error)
	SearchAuthors(ctx context.Context, params url.Values) (any, error)
}
