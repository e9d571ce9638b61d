package manager

import (
	"net/http"

	"github.com/mkadlec/product-audit-api/internal/apierr"
	"github.com/mkadlec/product-audit-api/internal/repo"
)

type historyPriceResource struct {
	historyResource
}

// NewProductHistoryPrice godoc
// @Summary Price trail for a product
// @Description Enriches the audit trail with the previous price and a per-record changed flag.
// @Tags history
// @Produce json
// @Param id query int true "Product ID"
// @Param limit query int false "Page size (1-100, default 50)"
// @Param offset query int false "Page offset (default 0)"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /product/history/price [get]
func NewProductHistoryPrice(history repo.HistoryRepository) *Manager {
	res := &historyPriceResource{historyResource{history: history}}
	return New(map[string]handlerFunc{
		http.MethodGet: res.get,
	})
}

func (res *historyPriceResource) get(r *http.Request) (any, *apierr.Error) {
	records, apiErr := res.fetch(r)
	if apiErr != nil {
		return nil, apiErr
	}

	response := make([]PriceHistoryResponse, len(records))
	var priceOld *float64
	for i, h := range records {
		response[i] = PriceHistoryResponse{
			GUID:         h.ID,
			Price:        h.Price,
			PriceOld:     priceOld,
			PriceChanged: priceOld != nil && h.Price != *priceOld,
			ChangedAt:    formatTime(h.ChangedAt),
		}
		price := h.Price
		priceOld = &price
	}
	return response, nil
}
