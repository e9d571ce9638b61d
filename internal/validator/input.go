package validator

import (
	"math"
	"strings"

	"github.com/mkadlec/product-audit-api/internal/apierr"
)

// CreateInput holds validated and normalized product input.
type CreateInput struct {
	Name  string
	Price float64
	Stock int
}

// ProductInput validates a decoded JSON body for product creation. Name is
// required; price and stock default to zero and must be non-negative. Stock
// must be an integer even though JSON delivers it as a float.
func ProductInput(data map[string]any) (CreateInput, error) {
	name, ok := data["name"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return CreateInput{}, apierr.BadRequest("Field 'name' is required and must be a non-empty string")
	}

	in := CreateInput{Name: strings.TrimSpace(name)}

	if raw, present := data["price"]; present {
		price, ok := raw.(float64)
		if !ok || price < 0 {
			return CreateInput{}, apierr.BadRequest("Field 'price' must be a non-negative number")
		}
		in.Price = price
	}

	if raw, present := data["stock"]; present {
		stock, ok := raw.(float64)
		if !ok || stock < 0 || stock != math.Trunc(stock) {
			return CreateInput{}, apierr.BadRequest("Field 'stock' must be a non-negative integer")
		}
		in.Stock = int(stock)
	}

	return in, nil
}
