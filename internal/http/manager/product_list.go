package manager

import (
	"net/http"

	"github.com/mkadlec/product-audit-api/internal/apierr"
	"github.com/mkadlec/product-audit-api/internal/repo"
	"github.com/mkadlec/product-audit-api/internal/validator"
)

type productListResource struct {
	products repo.ProductRepository
}

// NewProductList godoc
// @Summary Filtered, paginated product listing
// @Tags products
// @Produce json
// @Param name query string false "Name substring (case-insensitive)"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param minStock query int false "Minimum stock"
// @Param maxStock query int false "Maximum stock"
// @Param limit query int false "Page size (1-100, default 50)"
// @Param offset query int false "Page offset (default 0)"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /products [get]
func NewProductList(products repo.ProductRepository) *Manager {
	res := &productListResource{products: products}
	return New(map[string]handlerFunc{
		http.MethodGet: res.get,
	})
}

func (res *productListResource) get(r *http.Request) (any, *apierr.Error) {
	filter, err := validator.FilterQuery(r.URL.Query())
	if err != nil {
		return nil, apierr.From(err)
	}

	products, err := res.products.GetList(filter)
	if err != nil {
		return nil, apierr.From(err)
	}

	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = newProductResponse(p)
	}
	return response, nil
}
