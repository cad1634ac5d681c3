package memory

import (
	"context"
	"sync"

	"examplar-api/internal/domain/product"
	apperrors "examplar-api/pkg/errors"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products []product.Product
}

func NewProductRepository(seed []product.Product) *ProductRepository {
	products := make([]product.Product, len(seed))
	copy(products, seed)
	return &ProductRepository{products: products}
}

func (r *ProductRepository) List(ctx context.Context) ([]product.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]product.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, apperrors.NotFound(errProductNotFound)
}

func (r *ProductRepository) Create(ctx context.Context, input product.CreateProductInput) (*product.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p := product.Product{
		ID:    int64(len(r.products)) + 1,
		Name:  input.Name,
		Price: input.Price,
	}
	r.products = append(r.products, p)
	return &p, nil
}
