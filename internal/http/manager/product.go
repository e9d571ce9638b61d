package manager

import (
	"net/http"

	"github.com/mkadlec/product-audit-api/internal/apierr"
	"github.com/mkadlec/product-audit-api/internal/models"
	"github.com/mkadlec/product-audit-api/internal/repo"
	"github.com/mkadlec/product-audit-api/internal/validator"
)

type productResource struct {
	products repo.ProductRepository
}

// NewProduct godoc
// @Summary Single-product resource
// @Description GET fetches by id, POST creates, PATCH partially updates, PUT upserts, DELETE soft-deletes.
// @Tags product
// @Accept json
// @Produce json
// @Param id query int false "Product ID"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /product [get]
func NewProduct(products repo.ProductRepository) *Manager {
	res := &productResource{products: products}
	return New(map[string]handlerFunc{
		http.MethodGet:    res.get,
		http.MethodPost:   res.create,
		http.MethodPatch:  res.patch,
		http.MethodPut:    res.upsert,
		http.MethodDelete: res.softDelete,
	})
}

func (res *productResource) get(r *http.Request) (any, *apierr.Error) {
	id, apiErr := idParam(r)
	if apiErr != nil {
		return nil, apiErr
	}

	p, err := res.products.GetByID(id)
	if err != nil {
		return nil, apierr.From(err)
	}
	return newProductResponse(p), nil
}

func (res *productResource) create(r *http.Request) (any, *apierr.Error) {
	data, apiErr := readJSON(r)
	if apiErr != nil {
		return nil, apiErr
	}

	in, err := validator.ProductInput(data)
	if err != nil {
		return nil, apierr.From(err)
	}

	created, err := res.products.Insert(models.Product{
		Name:  in.Name,
		Price: in.Price,
		Stock: in.Stock,
	})
	if err != nil {
		return nil, apierr.From(err)
	}
	return newProductResponse(created), nil
}

func (res *productResource) patch(r *http.Request) (any, *apierr.Error) {
	id, apiErr := idParam(r)
	if apiErr != nil {
		return nil, apiErr
	}

	data, apiErr := readJSON(r)
	if apiErr != nil {
		return nil, apiErr
	}

	p, err := res.products.GetByID(id)
	if err != nil {
		return nil, apierr.From(err)
	}

	p.ApplyPatch(data)
	updated, err := res.products.Update(p)
	if err != nil {
		return nil, apierr.From(err)
	}
	return newProductResponse(updated), nil
}

// upsert creates when the id is absent or unknown, otherwise patches.
func (res *productResource) upsert(r *http.Request) (any, *apierr.Error) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		return res.create(r)
	}

	id, apiErr := idParam(r)
	if apiErr != nil {
		return nil, apiErr
	}

	exists, err := res.products.Exists(id, false)
	if err != nil {
		return nil, apierr.From(err)
	}
	if !exists {
		return res.create(r)
	}
	return res.patch(r)
}

func (res *productResource) softDelete(r *http.Request) (any, *apierr.Error) {
	id, apiErr := idParam(r)
	if apiErr != nil {
		return nil, apiErr
	}

	affected, err := res.products.SetDeleted(id, true)
	if err != nil {
		return nil, apierr.From(err)
	}
	return DeleteResult{ID: id, AffectedRows: affected}, nil
}
