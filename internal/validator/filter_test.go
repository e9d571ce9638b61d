package validator

import (
	"net/url"
	"testing"

	"github.com/mkadlec/product-audit-api/internal/apierr"
)

func TestFilterQuery_Defaults(t *testing.T) {
	f, err := FilterQuery(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Limit != 50 {
		t.Errorf("expected default limit 50, got %d", f.Limit)
	}
	if f.Offset != 0 {
		t.Errorf("expected default offset 0, got %d", f.Offset)
	}
	if f.Name != "" || f.MinPrice != nil || f.MaxPrice != nil || f.MinStock != nil || f.MaxStock != nil {
		t.Errorf("expected empty predicates, got %+v", f)
	}
}

func TestFilterQuery_Valid(t *testing.T) {
	query := url.Values{}
	query.Set("name", "widget")
	query.Set("minPrice", "1.5")
	query.Set("maxPrice", "20")
	query.Set("minStock", "1")
	query.Set("maxStock", "10")
	query.Set("limit", "25")
	query.Set("offset", "5")

	f, err := FilterQuery(query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Name != "widget" {
		t.Errorf("expected name 'widget', got %q", f.Name)
	}
	if f.MinPrice == nil || *f.MinPrice != 1.5 {
		t.Errorf("expected minPrice 1.5, got %v", f.MinPrice)
	}
	if f.MaxPrice == nil || *f.MaxPrice != 20 {
		t.Errorf("expected maxPrice 20, got %v", f.MaxPrice)
	}
	if f.MinStock == nil || *f.MinStock != 1 {
		t.Errorf("expected minStock 1, got %v", f.MinStock)
	}
	if f.MaxStock == nil || *f.MaxStock != 10 {
		t.Errorf("expected maxStock 10, got %v", f.MaxStock)
	}
	if f.Limit != 25 || f.Offset != 5 {
		t.Errorf("expected limit 25 offset 5, got %d/%d", f.Limit, f.Offset)
	}
}

func TestFilterQuery_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"limit zero", "limit", "0"},
		{"limit above max", "limit", "101"},
		{"limit not numeric", "limit", "abc"},
		{"offset negative", "offset", "-1"},
		{"offset not numeric", "offset", "x"},
		{"minPrice not numeric", "minPrice", "cheap"},
		{"maxPrice not numeric", "maxPrice", "-"},
		{"minStock not numeric", "minStock", "1.5"},
		{"maxStock not numeric", "maxStock", "lots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := url.Values{}
			query.Set(tt.key, tt.value)

			_, err := FilterQuery(query)
			if err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
			if !apierr.IsBadRequest(err) {
				t.Errorf("expected bad request, got %v", err)
			}
		})
	}
}
