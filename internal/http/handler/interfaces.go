package handler

import (
	"context"

	"examplar-api/internal/domain/product"
	"examplar-api/internal/domain/user"
)

// Consumer-side interfaces defined by handlers

type ProductService interface {
	List(ctx context.Context) ([]product.Product, error)
	GetByID(ctx context.Context, id int64) (*product.Product, error)
	Create(ctx context.Context, input product.CreateProductInput) (*product.Product, error)
}

type UserService interface {
	List(ctx context.Context) ([]user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
	Create(ctx context.Context, input user.CreateUserInput) (*user.User, error)
}
