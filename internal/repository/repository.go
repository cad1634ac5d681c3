package repository

import (
	"context"

	"examplar-api/internal/domain/product"
	"examplar-api/internal/domain/user"
)

// UserRepository defines user data access operations
type UserRepository interface {
	List(ctx context.Context) ([]user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
	Create(ctx context.Context, input user.CreateUserInput) (*user.User, error)
}

// ProductRepository defines product data access operations
type ProductRepository interface {
	List(ctx context.Context) ([]product.Product, error)
	GetByID(ctx context.Context, id int64) (*product.Product, error)
	Create(ctx context.Context, input product.CreateProductInput) (*product.Product, error)
}
