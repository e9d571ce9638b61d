package manager

import (
	"net/http"

	"github.com/mkadlec/product-audit-api/internal/apierr"
	"github.com/mkadlec/product-audit-api/internal/models"
	"github.com/mkadlec/product-audit-api/internal/repo"
	"github.com/mkadlec/product-audit-api/internal/validator"
)

type historyResource struct {
	history repo.HistoryRepository
}

// NewProductHistory godoc
// @Summary Audit-trail snapshots for a product
// @Tags history
// @Produce json
// @Param id query int true "Product ID"
// @Param limit query int false "Page size (1-100, default 50)"
// @Param offset query int false "Page offset (default 0)"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /product/history [get]
func NewProductHistory(history repo.HistoryRepository) *Manager {
	res := &historyResource{history: history}
	return New(map[string]handlerFunc{
		http.MethodGet: res.get,
	})
}

func (res *historyResource) get(r *http.Request) (any, *apierr.Error) {
	records, apiErr := res.fetch(r)
	if apiErr != nil {
		return nil, apiErr
	}

	response := make([]HistoryResponse, len(records))
	for i, h := range records {
		response[i] = newHistoryResponse(h)
	}
	return response, nil
}

// fetch resolves id and pagination and loads the snapshot page. Shared with
// the price-trail resource.
func (res *historyResource) fetch(r *http.Request) ([]models.ProductHistory, *apierr.Error) {
	id, apiErr := idParam(r)
	if apiErr != nil {
		return nil, apiErr
	}

	limit, apiErr := queryInt(r, "limit", validator.DefaultLimit)
	if apiErr != nil {
		return nil, apiErr
	}
	offset, apiErr := queryInt(r, "offset", 0)
	if apiErr != nil {
		return nil, apiErr
	}

	records, err := res.history.GetByProductID(id, limit, offset)
	if err != nil {
		return nil, apierr.From(err)
	}
	return records, nil
}
