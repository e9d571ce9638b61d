package repo

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mkadlec/product-audit-api/internal/apierr"
	"github.com/mkadlec/product-audit-api/internal/models"
)

// InMemoryProductRepository keeps products as storage rows, mirroring the
// Postgres implementation's semantics, including the history invariant.
// Intended for tests.
type InMemoryProductRepository struct {
	mu      sync.Mutex
	rows    []map[string]any
	nextID  int
	history *InMemoryHistoryRepository
}

func NewInMemoryProductRepository(history *InMemoryHistoryRepository) *InMemoryProductRepository {
	return &InMemoryProductRepository{
		rows:    []map[string]any{},
		nextID:  1,
		history: history,
	}
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = []map[string]any{}
	r.nextID = 1
}

func (r *InMemoryProductRepository) findRow(id int) map[string]any {
	for _, row := range r.rows {
		if row["id"] == id {
			return row
		}
	}
	return nil
}

func (r *InMemoryProductRepository) GetByID(id int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := r.findRow(id)
	if row == nil {
		return models.Product{}, apierr.NotFound("Product ID: %d not found", id)
	}
	return models.ProductFromRow(row), nil
}

func (r *InMemoryProductRepository) Exists(id int, includeDeleted bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := r.findRow(id)
	if row == nil {
		return false, nil
	}
	if !includeDeleted && row["deleted"] == true {
		return false, nil
	}
	return true, nil
}

func (r *InMemoryProductRepository) Insert(p models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	p.ID = r.nextID
	r.nextID++
	p.CreatedAt = &now
	p.UpdatedAt = &now
	r.rows = append(r.rows, p.Row())

	if _, err := r.history.CreateFromProduct(p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (r *InMemoryProductRepository) Update(p models.Product) (models.Product, error) {
	if p.ID == 0 {
		return models.Product{}, apierr.BadRequest("Product must have an ID to be updated")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	row := r.findRow(p.ID)
	if row == nil {
		return models.Product{}, apierr.NotFound("Product ID: %d not found", p.ID)
	}

	now := time.Now().UTC()
	row["name"] = p.Name
	row["price"] = p.Price
	row["stock"] = p.Stock
	row["deleted"] = p.Deleted
	row["updated_at"] = &now

	updated := models.ProductFromRow(row)
	if _, err := r.history.CreateFromProduct(updated); err != nil {
		return models.Product{}, err
	}
	return updated, nil
}

func (r *InMemoryProductRepository) SetDeleted(id int, deleted bool) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := r.findRow(id)
	if row == nil {
		return 0, apierr.NotFound("Product ID: %d not found", id)
	}

	now := time.Now().UTC()
	row["deleted"] = deleted
	row["updated_at"] = &now

	if _, err := r.history.CreateFromProduct(models.ProductFromRow(row)); err != nil {
		return 0, err
	}
	return 1, nil
}

func (r *InMemoryProductRepository) Delete(id int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, row := range r.rows {
		if row["id"] == id && row["deleted"] != true {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return 1, nil
		}
	}
	return 0, apierr.NotFound("Product ID: %d not found", id)
}

func (r *InMemoryProductRepository) GetList(f ProductFilter) ([]models.Product, error) {
	if f.Limit < 1 || f.Limit > 100 {
		return nil, apierr.BadRequest("The limit is not in the allowed range; an integer between 1 and 100 is expected")
	}
	if f.Offset < 0 {
		return nil, apierr.BadRequest("The offset must be zero or positive")
	}

	matching, err := r.matching(f)
	if err != nil {
		return nil, err
	}

	if f.Offset >= len(matching) {
		matching = nil
	} else {
		matching = matching[f.Offset:]
		if len(matching) > f.Limit {
			matching = matching[:f.Limit]
		}
	}

	if len(matching) == 0 {
		return nil, apierr.NotFound("No products are found")
	}
	return matching, nil
}

func (r *InMemoryProductRepository) GetCount(f ProductFilter) (int, error) {
	matching, err := r.matching(f)
	if err != nil {
		return 0, err
	}
	return len(matching), nil
}

func (r *InMemoryProductRepository) matching(f ProductFilter) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var products []models.Product
	for _, row := range r.rows {
		p := models.ProductFromRow(row)
		if !f.IncludeDeleted && p.Deleted {
			continue
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name)) {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		if f.MinStock != nil && p.Stock < *f.MinStock {
			continue
		}
		if f.MaxStock != nil && p.Stock > *f.MaxStock {
			continue
		}
		products = append(products, p)
	}

	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}
