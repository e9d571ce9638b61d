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

const queryTimeout = 3 * time.Second

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

const productColumns = `id, name, price, stock, created_at, updated_at, deleted`

func scanProduct(row *sql.Row) (models.Product, error) {
	var p models.Product
	var createdAt, updatedAt sql.NullTime
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &createdAt, &updatedAt, &p.Deleted)
	if err != nil {
		return models.Product{}, err
	}
	if createdAt.Valid {
		p.CreatedAt = &createdAt.Time
	}
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.Time
	}
	return p, nil
}

func (r *PostgresProductRepository) GetByID(id int) (models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return getProductByID(ctx, r.db, id)
}

func getProductByID(ctx context.Context, q dbtx, id int) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM product WHERE id = $1`
	p, err := scanProduct(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, apierr.NotFound("Product ID: %d not found", id)
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to fetch product %d: %w", id, err)
	}
	return p, nil
}

func (r *PostgresProductRepository) Exists(id int, includeDeleted bool) (bool, error) {
	query := `SELECT id FROM product WHERE id = $1`
	if !includeDeleted {
		query += ` AND deleted = FALSE`
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var found int
	err := r.db.QueryRowContext(ctx, query, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check product %d: %w", id, err)
	}
	return true, nil
}

// Insert stores a new product, ignoring any caller-supplied id or timestamps,
// then re-reads the row for the server-assigned values and appends the first
// history snapshot. Both writes share one transaction.
func (r *PostgresProductRepository) Insert(p models.Product) (models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO product (name, price, stock, deleted) VALUES ($1, $2, $3, $4) RETURNING id`
	var id int
	if err := tx.QueryRowContext(ctx, query, p.Name, p.Price, p.Stock, p.Deleted).Scan(&id); err != nil {
		return models.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}

	created, err := getProductByID(ctx, tx, id)
	if err != nil {
		return models.Product{}, err
	}

	if _, err := insertHistory(ctx, tx, models.HistoryFromProduct(created, time.Now().UTC())); err != nil {
		return models.Product{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Product{}, fmt.Errorf("failed to commit insert: %w", err)
	}
	return created, nil
}

// Update writes the mutable columns and refreshes updated_at, then re-reads
// the row. A history snapshot is appended only when at least one row was
// affected; appending and updating share one transaction.
func (r *PostgresProductRepository) Update(p models.Product) (models.Product, error) {
	if p.ID == 0 {
		return models.Product{}, apierr.BadRequest("Product must have an ID to be updated")
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE product SET name = $1, price = $2, stock = $3, deleted = $4, updated_at = now() WHERE id = $5`
	res, err := tx.ExecContext(ctx, query, p.Name, p.Price, p.Stock, p.Deleted, p.ID)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to update product %d: %w", p.ID, err)
	}
	affected, _ := res.RowsAffected()

	updated, err := getProductByID(ctx, tx, p.ID)
	if err != nil {
		return models.Product{}, err
	}

	if affected > 0 {
		if _, err := insertHistory(ctx, tx, models.HistoryFromProduct(updated, time.Now().UTC())); err != nil {
			return models.Product{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Product{}, fmt.Errorf("failed to commit update: %w", err)
	}
	return updated, nil
}

// SetDeleted toggles the soft-delete flag. The existence gate includes
// soft-deleted rows so an already-deleted product can be restored. A snapshot
// is appended when the toggle persisted.
func (r *PostgresProductRepository) SetDeleted(id int, deleted bool) (int, error) {
	exists, err := r.Exists(id, true)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, apierr.NotFound("Product ID: %d not found", id)
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE product SET deleted = $1, updated_at = now() WHERE id = $2`
	res, err := tx.ExecContext(ctx, query, deleted, id)
	if err != nil {
		return 0, fmt.Errorf("failed to set deleted flag on product %d: %w", id, err)
	}
	affected, _ := res.RowsAffected()

	if affected > 0 {
		updated, err := getProductByID(ctx, tx, id)
		if err != nil {
			return 0, err
		}
		if _, err := insertHistory(ctx, tx, models.HistoryFromProduct(updated, time.Now().UTC())); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit soft delete: %w", err)
	}
	return int(affected), nil
}

// Delete removes the product row permanently. History rows are kept: the
// audit trail must stay able to answer what the state was at time T.
func (r *PostgresProductRepository) Delete(id int) (int, error) {
	exists, err := r.Exists(id, false)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, apierr.NotFound("Product ID: %d not found", id)
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM product WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	affected, _ := res.RowsAffected()
	return int(affected), nil
}

// GetList returns a filtered, paginated page of products ordered by id. An
// empty page is reported as NotFound, never as an empty success.
func (r *PostgresProductRepository) GetList(f ProductFilter) ([]models.Product, error) {
	if f.Limit < 1 || f.Limit > 100 {
		return nil, apierr.BadRequest("The limit is not in the allowed range; an integer between 1 and 100 is expected")
	}
	if f.Offset < 0 {
		return nil, apierr.BadRequest("The offset must be zero or positive")
	}

	conditions, args, argIdx := filterConditions(f)

	query := `SELECT ` + productColumns + ` FROM product WHERE 1=1` + conditions
	query += " ORDER BY id ASC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, f.Limit, f.Offset)

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &createdAt, &updatedAt, &p.Deleted); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if createdAt.Valid {
			p.CreatedAt = &createdAt.Time
		}
		if updatedAt.Valid {
			p.UpdatedAt = &updatedAt.Time
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}

	if len(products) == 0 {
		return nil, apierr.NotFound("No products are found")
	}
	return products, nil
}

func (r *PostgresProductRepository) GetCount(f ProductFilter) (int, error) {
	conditions, args, _ := filterConditions(f)

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var count int
	query := `SELECT COUNT(*) FROM product WHERE 1=1` + conditions
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func filterConditions(f ProductFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	if !f.IncludeDeleted {
		query += " AND deleted = FALSE"
	}
	if f.Name != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+f.Name+"%")
		argIdx++
	}
	if f.MinPrice != nil {
		query += fmt.Sprintf(" AND price >= $%d", argIdx)
		args = append(args, *f.MinPrice)
		argIdx++
	}
	if f.MaxPrice != nil {
		query += fmt.Sprintf(" AND price <= $%d", argIdx)
		args = append(args, *f.MaxPrice)
		argIdx++
	}
	if f.MinStock != nil {
		query += fmt.Sprintf(" AND stock >= $%d", argIdx)
		args = append(args, *f.MinStock)
		argIdx++
	}
	if f.MaxStock != nil {
		query += fmt.Sprintf(" AND stock <= $%d", argIdx)
		args = append(args, *f.MaxStock)
		argIdx++
	}

	return query, args, argIdx
}
