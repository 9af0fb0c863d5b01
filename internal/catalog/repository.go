package catalog

import (
	"context"
	"sync"
)

// Repository is the read side of the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id string) (*Product, bool, error)
}

type staticRepository struct {
	mu       sync.RWMutex
	products []Product
	byID     map[string]int
}

// NewStaticRepository serves a fixed product list. Pass nil for the seeded catalog.
func NewStaticRepository(products []Product) Repository {
	if products == nil {
		products = SeedProducts()
	}
	repo := &staticRepository{
		products: make([]Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range products {
		repo.products[i] = p.Clone()
		repo.byID[p.ID] = i
	}
	return repo
}

func (r *staticRepository) List(ctx context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, len(r.products))
	for i, p := range r.products {
		out[i] = p.Clone()
	}
	return out, nil
}

func (r *staticRepository) FindByID(ctx context.Context, id string) (*Product, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byID[id]
	if !ok {
		return nil, false, nil
	}
	p := r.products[idx].Clone()
	return &p, true, nil
}
