package search

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=search

// Fetcher returns every record a backend holds. *backend.Books and
// *backend.Authors satisfy it.
type Fetcher interface {
	FetchAll(ctx context.Context) (any, error)
}
