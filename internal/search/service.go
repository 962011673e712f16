package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	groups []group
	logger *zap.Logger
}

func NewService(books, authors Fetcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		groups: []group{
			{
				name:        "books",
				scope:       ScopeBooks,
				matchFields: bookMatchFields,
				sortFields:  bookSortFields,
				fetcher:     books,
			},
			{
				name:        "authors",
				scope:       ScopeAuthors,
				matchFields: authorMatchFields,
				sortFields:  authorSortFields,
				fetcher:     authors,
			},
		},
		logger: logger,
	}
}

// Search runs q against its scope. ScopeAll yields a Result; a single scope yields
// that group's []Record.
func (s *Service) Search(ctx context.Context, q Query) (any, error) {
	if q.Scope == ScopeAll {
		return s.SearchAll(ctx, q)
	}
	return s.SearchGroup(ctx, q)
}

// SearchAll queries every group concurrently. Sort is ignored. If any backend
// fails the whole search fails with that backend's error and the other calls
// are cancelled.
func (s *Service) SearchAll(ctx context.Context, q Query) (Result, error) {
	collected := make([][]Record, len(s.groups))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, g := range s.groups {
		eg.Go(func() error {
			records, err := s.collect(egCtx, g, q.Q)
			if err != nil {
				return err
			}
			collected[i] = records
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	result := make(Result, len(s.groups))
	for i, g := range s.groups {
		result[g.name] = collected[i]
	}
	return result, nil
}

// SearchGroup queries the single group named by q.Scope and sorts when q.Sort is set.
func (s *Service) SearchGroup(ctx context.Context, q Query) ([]Record, error) {
	g, ok := s.group(q.Scope)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScope, q.Scope)
	}
	if q.Sort != "" {
		if err := g.checkSortField(q.Sort); err != nil {
			return nil, err
		}
	}

	records, err := s.collect(ctx, g, q.Q)
	if err != nil {
		return nil, err
	}
	if q.Sort != "" {
		records = SortBy(records, q.Sort)
	}
	return records, nil
}

func (s *Service) group(scope Scope) (group, bool) {
	for _, g := range s.groups {
		if g.scope == scope {
			return g, true
		}
	}
	return group{}, false
}

func (s *Service) collect(ctx context.Context, g group, q string) ([]Record, error) {
	payload, err := g.fetcher.FetchAll(ctx)
	if err != nil {
		s.logger.Warn("backend fetch failed", zap.String("group", g.name), zap.Error(err))
		return nil, err
	}
	records, err := Normalize(payload)
	if err != nil {
		s.logger.Warn("backend payload rejected", zap.String("group", g.name), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", g.name, err)
	}
	return Filter(records, q, g.matchFields...), nil
}
