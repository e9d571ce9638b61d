// Package validator normalizes and rejects malformed API input before it
// reaches the repositories.
package validator

import (
	"net/url"
	"strconv"

	"github.com/mkadlec/product-audit-api/internal/apierr"
	"github.com/mkadlec/product-audit-api/internal/repo"
)

const (
	DefaultLimit = 50
	MinLimit     = 1
	MaxLimit     = 100
)

// FilterQuery validates list-query parameters and returns a normalized
// product filter. Out-of-range pagination is rejected, not clamped.
func FilterQuery(query url.Values) (repo.ProductFilter, error) {
	f := repo.ProductFilter{
		Name:   query.Get("name"),
		Limit:  DefaultLimit,
		Offset: 0,
	}

	var err error
	if f.MinPrice, err = floatParam(query, "minPrice"); err != nil {
		return repo.ProductFilter{}, err
	}
	if f.MaxPrice, err = floatParam(query, "maxPrice"); err != nil {
		return repo.ProductFilter{}, err
	}
	if f.MinStock, err = intParam(query, "minStock"); err != nil {
		return repo.ProductFilter{}, err
	}
	if f.MaxStock, err = intParam(query, "maxStock"); err != nil {
		return repo.ProductFilter{}, err
	}

	if limit, err := intParam(query, "limit"); err != nil {
		return repo.ProductFilter{}, err
	} else if limit != nil {
		if *limit < MinLimit || *limit > MaxLimit {
			return repo.ProductFilter{}, apierr.BadRequest(
				"Parameter 'limit' is not in the allowed range; an integer between %d and %d is expected", MinLimit, MaxLimit)
		}
		f.Limit = *limit
	}

	if offset, err := intParam(query, "offset"); err != nil {
		return repo.ProductFilter{}, err
	} else if offset != nil {
		if *offset < 0 {
			return repo.ProductFilter{}, apierr.BadRequest("Parameter 'offset' must be zero or positive")
		}
		f.Offset = *offset
	}

	return f, nil
}

func floatParam(query url.Values, key string) (*float64, error) {
	s := query.Get(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, apierr.BadRequest("Parameter '%s' must be numeric", key)
	}
	return &v, nil
}

func intParam(query url.Values, key string) (*int, error) {
	s := query.Get(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, apierr.BadRequest("Parameter '%s' must be an integer", key)
	}
	return &v, nil
}
