package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mkadlec/product-audit-api/internal/apierr"
	"github.com/mkadlec/product-audit-api/internal/models"
)

type PostgresHistoryRepository struct {
	db *sql.DB
}

func NewPostgresHistoryRepository(db *sql.DB) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db: db}
}

// CreateFromProduct appends a snapshot of the product's current state and
// returns the new history id.
func (r *PostgresHistoryRepository) CreateFromProduct(p models.Product) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return insertHistory(ctx, r.db, models.HistoryFromProduct(p, time.Now().UTC()))
}

func insertHistory(ctx context.Context, q dbtx, h models.ProductHistory) (int, error) {
	query := `INSERT INTO product_history (product_id, name, price, stock, changed_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int
	err := q.QueryRowContext(ctx, query, h.ProductID, h.Name, h.Price, h.Stock, h.ChangedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert history for product %d: %w", h.ProductID, err)
	}
	return id, nil
}

func (r *PostgresHistoryRepository) Exists(productID int) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var found int
	query := `SELECT id FROM product_history WHERE product_id = $1 LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, productID).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check history for product %d: %w", productID, err)
	}
	return true, nil
}

// GetByProductID returns a page of snapshots ordered by changed_at ascending.
// Pagination bounds are enforced here as well, independent of the validator.
// An empty page distinguishes "offset past the end" (bad request) from "no
// history at all" (not found).
func (r *PostgresHistoryRepository) GetByProductID(productID, limit, offset int) ([]models.ProductHistory, error) {
	if limit < 1 || limit > 100 {
		return nil, apierr.BadRequest("The limit is not in the allowed range; an integer between 1 and 100 is expected")
	}
	if offset < 0 {
		return nil, apierr.BadRequest("The offset must be zero or positive")
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	query := `SELECT id, product_id, name, price, stock, changed_at FROM product_history
		WHERE product_id = $1 ORDER BY changed_at ASC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list history for product %d: %w", productID, err)
	}
	defer rows.Close()

	var records []models.ProductHistory
	for rows.Next() {
		var h models.ProductHistory
		var changedAt sql.NullTime
		if err := rows.Scan(&h.ID, &h.ProductID, &h.Name, &h.Price, &h.Stock, &changedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		if changedAt.Valid {
			h.ChangedAt = &changedAt.Time
		}
		records = append(records, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}

	if len(records) == 0 {
		count, err := r.GetCount(productID)
		if err != nil {
			return nil, err
		}
		if count != 0 && offset >= count {
			return nil, apierr.BadRequest("The offset is greater than the number of records")
		}
		return nil, apierr.NotFound("History data for product ID: %d not found", productID)
	}
	return records, nil
}

func (r *PostgresHistoryRepository) GetCount(productID int) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var count int
	query := `SELECT COUNT(*) FROM product_history WHERE product_id = $1`
	if err := r.db.QueryRowContext(ctx, query, productID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count history for product %d: %w", productID, err)
	}
	return count, nil
}
