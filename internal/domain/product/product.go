package product

type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type CreateProductInput struct {
	Name  string
	Price float64
}

// Seed is the product collection present at startup
func Seed() []Product {
	return []Product{
		{ID: 1, Name: "Laptop", Price: 999.99},
		{ID: 2, Name: "Smartphone", Price: 499.99},
	}
}
