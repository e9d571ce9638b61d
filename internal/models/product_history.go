package models

import "time"

// ProductHistory is an immutable snapshot of a product taken at the moment of
// a mutation. Rows are appended, never updated or deleted.
type ProductHistory struct {
	ID        int        `json:"id"`
	ProductID int        `json:"product_id"`
	Name      string     `json:"name"`
	Price     float64    `json:"price"`
	Stock     int        `json:"stock"`
	ChangedAt *time.Time `json:"changed_at"`
}

// HistoryFromProduct snapshots the product's current state. changedAt is the
// moment the snapshot is taken, not the product's updated_at.
func HistoryFromProduct(p Product, changedAt time.Time) ProductHistory {
	return ProductHistory{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		ChangedAt: &changedAt,
	}
}

func (h ProductHistory) Row() map[string]any {
	return map[string]any{
		"id":         h.ID,
		"product_id": h.ProductID,
		"name":       h.Name,
		"price":      h.Price,
		"stock":      h.Stock,
		"changed_at": h.ChangedAt,
	}
}

func HistoryFromRow(row map[string]any) ProductHistory {
	var h ProductHistory
	if v, ok := row["id"].(int); ok {
		h.ID = v
	}
	if v, ok := row["product_id"].(int); ok {
		h.ProductID = v
	}
	if v, ok := row["name"].(string); ok {
		h.Name = v
	}
	if v, ok := row["price"].(float64); ok {
		h.Price = v
	}
	if v, ok := row["stock"].(int); ok {
		h.Stock = v
	}
	if v, ok := row["changed_at"].(*time.Time); ok {
		h.ChangedAt = v
	}
	return h
}
