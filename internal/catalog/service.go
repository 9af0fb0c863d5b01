package catalog

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/tahweela/tahweela-backend/pkg/errors"
	"github.com/tahweela/tahweela-backend/pkg/pagination"
)

// Service exposes catalog search and lookup.
type Service interface {
	SearchProducts(ctx context.Context, filters Filters) (SearchResult, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)
}

// ServiceParams bundles the dependencies for NewService.
type ServiceParams struct {
	Repo         Repository
	DefaultLimit int
	MaxLimit     int
}

type service struct {
	repo         Repository
	defaultLimit int
	maxLimit     int
}

// NewService builds a catalog service over the provided repository.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	def, max := params.DefaultLimit, params.MaxLimit
	if def <= 0 {
		def = pagination.DefaultLimit
	}
	if max <= 0 {
		max = pagination.MaxLimit
	}
	if def > max {
		def = max
	}
	return &service{repo: params.Repo, defaultLimit: def, maxLimit: max}, nil
}

func (s *service) SearchProducts(ctx context.Context, filters Filters) (SearchResult, error) {
	if filters.MinPrice != nil && filters.MaxPrice != nil && filters.MinPrice.GreaterThan(*filters.MaxPrice) {
		return SearchResult{}, pkgerrors.New(pkgerrors.CodeValidation, "min price cannot exceed max price")
	}
	if filters.SortBy != "" && !filters.SortBy.IsValid() {
		return SearchResult{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid sort key %q", filters.SortBy))
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return SearchResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list catalog products")
	}
	return SearchWith(products, filters, s.defaultLimit, s.maxLimit), nil
}

func (s *service) GetProductByID(ctx context.Context, id string) (*Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}
