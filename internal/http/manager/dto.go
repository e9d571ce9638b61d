package manager

import (
	"time"

	"github.com/mkadlec/product-audit-api/internal/models"
)

type ProductResponse struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	CreatedAt *string `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
	Deleted   bool    `json:"deleted"`
}

type HistoryResponse struct {
	ID        int     `json:"id"`
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	ChangedAt *string `json:"changed_at"`
}

// PriceHistoryResponse is the enriched price-trail record. The first
// chronological record carries a nil PriceOld and PriceChanged=false.
type PriceHistoryResponse struct {
	GUID         int      `json:"guid"`
	Price        float64  `json:"price"`
	PriceOld     *float64 `json:"price_old"`
	PriceChanged bool     `json:"price_changed"`
	ChangedAt    *string  `json:"changed_at"`
}

type DeleteResult struct {
	ID           int `json:"id"`
	AffectedRows int `json:"affected_rows"`
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func newProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		CreatedAt: formatTime(p.CreatedAt),
		UpdatedAt: formatTime(p.UpdatedAt),
		Deleted:   p.Deleted,
	}
}

func newHistoryResponse(h models.ProductHistory) HistoryResponse {
	return HistoryResponse{
		ID:        h.ID,
		ProductID: h.ProductID,
		Name:      h.Name,
		Price:     h.Price,
		Stock:     h.Stock,
		ChangedAt: formatTime(h.ChangedAt),
	}
}
