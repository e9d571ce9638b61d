package repo

import (
	"sort"
	"sync"
	"time"

	"github.com/mkadlec/product-audit-api/internal/apierr"
	"github.com/mkadlec/product-audit-api/internal/models"
)

// InMemoryHistoryRepository is the append-only test double for the audit
// trail.
type InMemoryHistoryRepository struct {
	mu     sync.Mutex
	rows   []map[string]any
	nextID int
}

func NewInMemoryHistoryRepository() *InMemoryHistoryRepository {
	return &InMemoryHistoryRepository{
		rows:   []map[string]any{},
		nextID: 1,
	}
}

func (r *InMemoryHistoryRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = []map[string]any{}
	r.nextID = 1
}

func (r *InMemoryHistoryRepository) CreateFromProduct(p models.Product) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := models.HistoryFromProduct(p, time.Now().UTC())
	h.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, h.Row())
	return h.ID, nil
}

func (r *InMemoryHistoryRepository) Exists(productID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.rows {
		if row["product_id"] == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryHistoryRepository) GetByProductID(productID, limit, offset int) ([]models.ProductHistory, error) {
	if limit < 1 || limit > 100 {
		return nil, apierr.BadRequest("The limit is not in the allowed range; an integer between 1 and 100 is expected")
	}
	if offset < 0 {
		return nil, apierr.BadRequest("The offset must be zero or positive")
	}

	records := r.forProduct(productID)
	total := len(records)

	if offset >= total {
		records = nil
	} else {
		records = records[offset:]
		if len(records) > limit {
			records = records[:limit]
		}
	}

	if len(records) == 0 {
		if total != 0 && offset >= total {
			return nil, apierr.BadRequest("The offset is greater than the number of records")
		}
		return nil, apierr.NotFound("History data for product ID: %d not found", productID)
	}
	return records, nil
}

func (r *InMemoryHistoryRepository) GetCount(productID int) (int, error) {
	return len(r.forProduct(productID)), nil
}

func (r *InMemoryHistoryRepository) forProduct(productID int) []models.ProductHistory {
	r.mu.Lock()
	defer r.mu.Unlock()

	var records []models.ProductHistory
	for _, row := range r.rows {
		h := models.HistoryFromRow(row)
		if h.ProductID == productID {
			records = append(records, h)
		}
	}

	// changed_at timestamps can collide in-process; id breaks the tie in
	// append order.
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.ChangedAt != nil && b.ChangedAt != nil && !a.ChangedAt.Equal(*b.ChangedAt) {
			return a.ChangedAt.Before(*b.ChangedAt)
		}
		return a.ID < b.ID
	})
	return records
}
