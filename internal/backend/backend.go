// Package backend holds one thin adapter per backend service. Adapters know a
// backend's resource paths and nothing else; failures from the outbound client are
// returned unchanged.
package backend

import (
	"context"
	"errors"
	"fmt"

	"bookgateway/internal/platform/outbound"
)

// Caller is the outbound capability every adapter holds.
type Caller interface {
	Call(ctx context.Context, d outbound.Descriptor, req outbound.Request) (any, error)
}

var ErrMissingBaseURI = errors.New("backend base uri is not configured")

type resource struct {
	caller     Caller
	descriptor outbound.Descriptor
}

func newResource(caller Caller, d outbound.Descriptor) (resource, error) {
	if caller == nil {
		return resource{}, fmt.Errorf("backend %s: nil caller", d.Name)
	}
	if d.BaseURI == "" {
		return resource{}, fmt.Errorf("backend %s: %w", d.Name, ErrMissingBaseURI)
	}
	return resource{caller: caller, descriptor: d}, nil
}

// Descriptor returns the backend this adapter talks to.
func (r resource) Descriptor() outbound.Descriptor {
	return r.descriptor
}
