package backend

import (
	"context"
	"net/http"

	"bookgateway/internal/platform/outbound"
)

// Authors talks to the authors service.
type Authors struct {
	resource
}

func NewAuthors(caller Caller, d outbound.Descriptor) (*Authors, error) {
	if d.Name == "" {
		d.Name = "authors"
	}
	res, err := newResource(caller, d)
	if err != nil {
		return nil, err
	}
	return &Authors{resource: res}, nil
}

// FetchAll returns the full list of authors.
func (a *Authors) FetchAll(ctx context.Context) (any, error) {
	return a.caller.Call(ctx, a.descriptor, outbound.Request{Method: http.MethodGet, Path: "/authors"})
}
