package handler

import (
	"net/http"

	"examplar-api/internal/domain/product"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	products ProductService
}

func NewProductHandler(products ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type CreateProductRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.products.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	p, err := h.products.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// CreateProduct stores the product under the next id. Any id in the body is
// ignored.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	p, err := h.products.Create(c.Request().Context(), product.CreateProductInput{
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}
