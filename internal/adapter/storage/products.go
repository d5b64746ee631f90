package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/niksmo/order-fulfillment/internal/core/domain"
	"github.com/niksmo/order-fulfillment/internal/core/port"
)

var _ port.ProductsStorage = (*ProductsRepository)(nil)

// A ProductsRepository is the catalog store. The table name comes from
// deployment config, so statements are rendered in the constructor.
type ProductsRepository struct {
	sqldb sqldb

	qSelectAll  string
	qSelectOne  string
	qSelectMany string
	qInsert     string
	qUpdate     string
	qDelete     string
}

func NewProductsRepository(sqldb sqldb, table string) ProductsRepository {
	const columns = "id, code, name, model, price, product_url"

	return ProductsRepository{
		sqldb: sqldb,
		qSelectAll: fmt.Sprintf(
			`SELECT %s FROM %s;`, columns, table,
		),
		qSelectOne: fmt.Sprintf(
			`SELECT %s FROM %s WHERE id = $1;`, columns, table,
		),
		qSelectMany: fmt.Sprintf(
			`SELECT %s FROM %s WHERE id = ANY($1);`, columns, table,
		),
		qInsert: fmt.Sprintf(
			`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6);`,
			table, columns,
		),
		qUpdate: fmt.Sprintf(
			`UPDATE %s
			 SET code = $2, name = $3, model = $4, price = $5, product_url = $6
			 WHERE id = $1;`, table,
		),
		qDelete: fmt.Sprintf(
			`DELETE FROM %s WHERE id = $1
			 RETURNING %s;`, table, columns,
		),
	}
}

func (r ProductsRepository) Products(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "ProductsRepository.Products"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.sqldb.QueryContext(ctx, r.qSelectAll)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	ps, err := r.scanProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (r ProductsRepository) Product(
	ctx context.Context, id string,
) (domain.Product, error) {
	const op = "ProductsRepository.Product"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	row := r.sqldb.QueryRowContext(ctx, r.qSelectOne, id)
	p, err := r.scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf(
				"%s: %w", op, domain.ErrProductNotFound,
			)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ProductsByIDs is a batch fetch: ids without a matching row are
// silently absent from the result, never a per-item error. Callers
// compare the returned count against the requested count.
func (r ProductsRepository) ProductsByIDs(
	ctx context.Context, ids []string,
) ([]domain.Product, error) {
	const op = "ProductsRepository.ProductsByIDs"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.sqldb.QueryContext(ctx, r.qSelectMany, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	ps, err := r.scanProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

// StoreProduct assigns a fresh id, discarding any caller-supplied one,
// and inserts unconditionally.
func (r ProductsRepository) StoreProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsRepository.StoreProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p.ID = uuid.NewString()

	_, err := r.sqldb.ExecContext(ctx, r.qInsert,
		p.ID, p.Code, p.Name, p.Model, p.Price, p.URL,
	)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ReplaceProduct conditionally replaces every field except id.
// An absent id is a request-level not-found, not a transient error.
func (r ProductsRepository) ReplaceProduct(
	ctx context.Context, id string, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsRepository.ReplaceProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.sqldb.ExecContext(ctx, r.qUpdate,
		id, p.Code, p.Name, p.Model, p.Price, p.URL,
	)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return domain.Product{}, fmt.Errorf(
			"%s: %w", op, domain.ErrProductNotFound,
		)
	}

	p.ID = id
	return p, nil
}

// RemoveProduct deletes the product and returns the prior value.
func (r ProductsRepository) RemoveProduct(
	ctx context.Context, id string,
) (domain.Product, error) {
	const op = "ProductsRepository.RemoveProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	row := r.sqldb.QueryRowContext(ctx, r.qDelete, id)
	p, err := r.scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf(
				"%s: %w", op, domain.ErrProductNotFound,
			)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r ProductsRepository) scanProduct(
	row rowScanner,
) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Model, &p.Price, &p.URL)
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (r ProductsRepository) scanProducts(
	rows *sql.Rows,
) (ps []domain.Product, err error) {
	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, rows.Err()
}
