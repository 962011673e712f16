package backend

import (
	"context"
	"net/http"
	"net/url"

	"bookgateway/internal/platform/outbound"
)

// Search talks to the aggregating search service on behalf of the gateway.
type Search struct {
	resource
}

func NewSearch(caller Caller, d outbound.Descriptor) (*Search, error) {
	if d.Name == "" {
		d.Name = "search"
	}
	res, err := newResource(caller, d)
	if err != nil {
		return nil, err
	}
	return &Search{resource: res}, nil
}

// Search queries books and authors together.
func (s *Search) Search(ctx context.Context, params url.Values) (any, error) {
	return s.get(ctx, "/search", params)
}

func (s *Search) SearchBooks(ctx context.Context, params url.Values) (any, error) {
	return s.get(ctx, "/search/books", params)
}

func (s *Search) SearchAuthors(ctx context.Context, params url.Values) (any, error) {
	return s.get(ctx, "/search/authors", params)
}

func (s *Search) get(ctx context.Context, path string, params url.Values) (any, error) {
	return s.caller.Call(ctx, s.descriptor, outbound.Request{Method: http.MethodGet, Path: path, Params: params})
}
