package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mkadlec/product-audit-api/internal/models"
)

// CachedProductRepository is a read-through cache over a ProductRepository.
// GetByID is served from redis when possible; every mutation invalidates the
// cached entry. Cache failures fall back to the inner repository.
type CachedProductRepository struct {
	inner ProductRepository
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedProductRepository(inner ProductRepository, rdb *redis.Client, ttl time.Duration) *CachedProductRepository {
	return &CachedProductRepository{inner: inner, rdb: rdb, ttl: ttl}
}

func cacheKey(id int) string {
	return fmt.Sprintf("product:%d", id)
}

func (r *CachedProductRepository) GetByID(id int) (models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if raw, err := r.rdb.Get(ctx, cacheKey(id)).Bytes(); err == nil {
		var p models.Product
		if err := json.Unmarshal(raw, &p); err == nil {
			return p, nil
		}
	}

	p, err := r.inner.GetByID(id)
	if err != nil {
		return models.Product{}, err
	}

	if raw, err := json.Marshal(p); err == nil {
		r.rdb.Set(ctx, cacheKey(id), raw, r.ttl)
	}
	return p, nil
}

func (r *CachedProductRepository) invalidate(id int) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	r.rdb.Del(ctx, cacheKey(id))
}

func (r *CachedProductRepository) Exists(id int, includeDeleted bool) (bool, error) {
	return r.inner.Exists(id, includeDeleted)
}

func (r *CachedProductRepository) Insert(p models.Product) (models.Product, error) {
	return r.inner.Insert(p)
}

func (r *CachedProductRepository) Update(p models.Product) (models.Product, error) {
	updated, err := r.inner.Update(p)
	if err == nil {
		r.invalidate(updated.ID)
	}
	return updated, err
}

func (r *CachedProductRepository) SetDeleted(id int, deleted bool) (int, error) {
	affected, err := r.inner.SetDeleted(id, deleted)
	if err == nil {
		r.invalidate(id)
	}
	return affected, err
}

func (r *CachedProductRepository) Delete(id int) (int, error) {
	affected, err := r.inner.Delete(id)
	if err == nil {
		r.invalidate(id)
	}
	return affected, err
}

func (r *CachedProductRepository) GetList(f ProductFilter) ([]models.Product, error) {
	return r.inner.GetList(f)
}

func (r *CachedProductRepository) GetCount(f ProductFilter) (int, error) {
	return r.inner.GetCount(f)
}
