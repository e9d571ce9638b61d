package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/mkadlec/product-audit-api/docs"
	"github.com/mkadlec/product-audit-api/internal/http/manager"
	"github.com/mkadlec/product-audit-api/internal/repo"
)

// NewRouter mounts the resource managers. Each resource is registered with
// Handle so the manager sees every method and can fail closed on the ones it
// does not allow. Middleware is composed around the router by the caller.
func NewRouter(products repo.ProductRepository, history repo.HistoryRepository) http.Handler {
	r := chi.NewRouter()

	r.Handle("/product", manager.NewProduct(products))
	r.Handle("/products", manager.NewProductList(products))
	r.Handle("/product/history", manager.NewProductHistory(history))
	r.Handle("/product/history/price", manager.NewProductHistoryPrice(history))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}
