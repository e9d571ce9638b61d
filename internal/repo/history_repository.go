package repo

import "github.com/mkadlec/product-audit-api/internal/models"

// HistoryRepository is the append-only audit trail for product mutations.
// Records are created, never updated or removed.
type HistoryRepository interface {
	CreateFromProduct(p models.Product) (int, error)
	Exists(productID int) (bool, error)
	GetByProductID(productID, limit, offset int) ([]models.ProductHistory, error)
	GetCount(productID int) (int, error)
}
