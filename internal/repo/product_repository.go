// Package repo contains the product and history data-access layers. The
// product repository owns the audit invariant: every successful mutation of a
// product row appends exactly one history snapshot, in the same transaction.
package repo

import "github.com/mkadlec/product-audit-api/internal/models"

// ProductFilter narrows GetList/GetCount results. Predicates are
// AND-composed; nil bounds are skipped.
type ProductFilter struct {
	Name           string
	MinPrice       *float64
	MaxPrice       *float64
	MinStock       *int
	MaxStock       *int
	Limit          int
	Offset         int
	IncludeDeleted bool
}

// ProductRepository defines the product data operations.
type ProductRepository interface {
	GetByID(id int) (models.Product, error)
	Exists(id int, includeDeleted bool) (bool, error)
	Insert(p models.Product) (models.Product, error)
	Update(p models.Product) (models.Product, error)
	SetDeleted(id int, deleted bool) (int, error)
	Delete(id int) (int, error)
	GetList(f ProductFilter) ([]models.Product, error)
	GetCount(f ProductFilter) (int, error)
}
