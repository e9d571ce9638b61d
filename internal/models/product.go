package models

import "time"

// Product represents a product row. ID and the timestamps are assigned by
// storage; a zero ID means the product has not been persisted yet.
type Product struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Price     float64    `json:"price"`
	Stock     int        `json:"stock"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	Deleted   bool       `json:"deleted"`
}

// Row returns the product as a storage row keyed by column name.
func (p Product) Row() map[string]any {
	return map[string]any{
		"id":         p.ID,
		"name":       p.Name,
		"price":      p.Price,
		"stock":      p.Stock,
		"created_at": p.CreatedAt,
		"updated_at": p.UpdatedAt,
		"deleted":    p.Deleted,
	}
}

// ProductFromRow builds a Product from a storage row. Missing columns fall
// back to zero values.
func ProductFromRow(row map[string]any) Product {
	var p Product
	if v, ok := row["id"].(int); ok {
		p.ID = v
	}
	if v, ok := row["name"].(string); ok {
		p.Name = v
	}
	if v, ok := row["price"].(float64); ok {
		p.Price = v
	}
	if v, ok := row["stock"].(int); ok {
		p.Stock = v
	}
	if v, ok := row["created_at"].(*time.Time); ok {
		p.CreatedAt = v
	}
	if v, ok := row["updated_at"].(*time.Time); ok {
		p.UpdatedAt = v
	}
	if v, ok := row["deleted"].(bool); ok {
		p.Deleted = v
	}
	return p
}

// ApplyPatch overrides the mutable fields present in data, leaving the rest
// untouched. Data comes from a decoded JSON body, so numbers are float64.
func (p *Product) ApplyPatch(data map[string]any) {
	if v, ok := data["name"].(string); ok {
		p.Name = v
	}
	if v, ok := data["price"].(float64); ok {
		p.Price = v
	}
	if v, ok := data["stock"].(float64); ok {
		p.Stock = int(v)
	}
	if v, ok := data["deleted"].(bool); ok {
		p.Deleted = v
	}
}
