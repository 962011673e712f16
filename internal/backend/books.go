package backend

import (
	"context"
	"net/http"

	"bookgateway/internal/platform/outbound"
)

// Books talks to the books service.
type Books struct {
	resource
}

func NewBooks(caller Caller, d outbound.Descriptor) (*Books, error) {
	if d.Name == "" {
		d.Name = "books"
	}
	res, err := newResource(caller, d)
	if err != nil {
		return nil, err
	}
	return &Books{resource: res}, nil
}

// FetchAll returns the full list of books.
func (b *Books) FetchAll(ctx context.Context) (any, error) {
	return b.caller.Call(ctx, b.descriptor, outbound.Request{Method: http.MethodGet, Path: "/books"})
}
