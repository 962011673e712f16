// Package search aggregates the books and authors backends into one searchable view.
package search

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrInvalidSortField = errors.New("invalid sort field")
	ErrMalformedPayload = errors.New("backend payload is not a list of records")
	ErrUnknownScope     = errors.New("unknown search scope")
)

// Record is one item returned by a backend. Its shape belongs to the backend.
type Record map[string]any

// Result maps a group name to its filtered records.
type Result map[string][]Record

type Scope string

const (
	ScopeAll     Scope = "all"
	ScopeBooks   Scope = "books"
	ScopeAuthors Scope = "authors"
)

// Query is an inbound search request.
type Query struct {
	Q     string `query:"q" validate:"max=256"`
	Sort  string `query:"sort" validate:"omitempty,max=64"`
	Scope Scope  `query:"scope" validate:"required,oneof=all books authors"`
}

// group describes how one backend's records are matched and sorted.
type group struct {
	name        string
	scope       Scope
	matchFields []string
	sortFields  []string
	fetcher     Fetcher
}

var (
	bookMatchFields   = []string{"title", "description"}
	bookSortFields    = []string{"id", "title", "description", "price", "author_id", "created_at", "updated_at"}
	authorMatchFields = []string{"name"}
	authorSortFields  = []string{"id", "name", "gender", "country", "created_at", "updated_at"}
)

// SortFields lists the fields a scope can be sorted by. ScopeAll has none.
func SortFields(scope Scope) []string {
	switch scope {
	case ScopeBooks:
		return slices.Clone(bookSortFields)
	case ScopeAuthors:
		return slices.Clone(authorSortFields)
	}
	return nil
}

func (g group) checkSortField(field string) error {
	if slices.Contains(g.sortFields, field) {
		return nil
	}
	return &SortFieldError{Field: field, Allowed: g.sortFields}
}

// SortFieldError reports a sort request on a field the group does not expose.
type SortFieldError struct {
	Field   string
	Allowed []string
}

func (e *SortFieldError) Error() string {
	return fmt.Sprintf("invalid sort field %q, expected one of: %s", e.Field, strings.Join(e.Allowed, ", "))
}

func (e *SortFieldError) Unwrap() error {
	return ErrInvalidSortField
}
