package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/order-fulfillment/internal/core/domain"
	"github.com/niksmo/order-fulfillment/internal/core/port"
)

var _ port.OrdersStorage = (*OrdersRepository)(nil)

// An OrdersRepository is the order store, keyed by
// (customer_email, order_id). Orders are immutable once created:
// the only mutations are insert and delete.
type OrdersRepository struct {
	sqldb sqldb

	qSelectAll  string
	qSelectOne  string
	qSelectByPK string
	qInsert     string
	qDelete     string
}

func NewOrdersRepository(sqldb sqldb, table string) OrdersRepository {
	const columns = "customer_email, order_id, created_at, payment," +
		" total_price, shipping_type, carrier, products"

	return OrdersRepository{
		sqldb: sqldb,
		qSelectAll: fmt.Sprintf(
			`SELECT %s FROM %s;`, columns, table,
		),
		qSelectOne: fmt.Sprintf(
			`SELECT %s FROM %s
			 WHERE customer_email = $1 AND order_id = $2;`, columns, table,
		),
		qSelectByPK: fmt.Sprintf(
			`SELECT %s FROM %s WHERE customer_email = $1;`, columns, table,
		),
		qInsert: fmt.Sprintf(
			`INSERT INTO %s (%s)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`, table, columns,
		),
		qDelete: fmt.Sprintf(
			`DELETE FROM %s
			 WHERE customer_email = $1 AND order_id = $2
			 RETURNING %s;`, table, columns,
		),
	}
}

// StoreOrder assigns the generated order id and creation timestamp,
// then inserts unconditionally.
func (r OrdersRepository) StoreOrder(
	ctx context.Context, order domain.Order,
) (domain.Order, error) {
	const op = "OrdersRepository.StoreOrder"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	order.OrderID = uuid.NewString()
	order.CreatedAt = time.Now().UnixMilli()

	productsB, err := json.Marshal(toOrderRows(order.Products))
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	_, err = r.sqldb.ExecContext(ctx, r.qInsert,
		order.CustomerEmail, order.OrderID, order.CreatedAt,
		string(order.Billing.Payment), order.Billing.TotalPrice,
		string(order.Shipping.Type), string(order.Shipping.Carrier),
		string(productsB),
	)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

func (r OrdersRepository) Order(
	ctx context.Context, email, orderID string,
) (domain.Order, error) {
	const op = "OrdersRepository.Order"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	row := r.sqldb.QueryRowContext(ctx, r.qSelectOne, email, orderID)
	order, err := r.scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, fmt.Errorf(
				"%s: %w", op, domain.ErrOrderNotFound,
			)
		}
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

func (r OrdersRepository) OrdersByCustomer(
	ctx context.Context, email string,
) ([]domain.Order, error) {
	const op = "OrdersRepository.OrdersByCustomer"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.sqldb.QueryContext(ctx, r.qSelectByPK, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	orders, err := r.scanOrders(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

func (r OrdersRepository) Orders(ctx context.Context) ([]domain.Order, error) {
	const op = "OrdersRepository.Orders"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.sqldb.QueryContext(ctx, r.qSelectAll)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	orders, err := r.scanOrders(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

// RemoveOrder deletes the order and returns the prior value.
func (r OrdersRepository) RemoveOrder(
	ctx context.Context, email, orderID string,
) (domain.Order, error) {
	const op = "OrdersRepository.RemoveOrder"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	row := r.sqldb.QueryRowContext(ctx, r.qDelete, email, orderID)
	order, err := r.scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, fmt.Errorf(
				"%s: %w", op, domain.ErrOrderNotFound,
			)
		}
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

// orderProductRow is the persisted snapshot shape inside the jsonb column.
type orderProductRow struct {
	Code  string  `json:"code"`
	Price float64 `json:"price"`
}

func toOrderRows(ps []domain.OrderProduct) []orderProductRow {
	rows := make([]orderProductRow, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, orderProductRow{Code: p.Code, Price: p.Price})
	}
	return rows
}

func (r OrdersRepository) scanOrder(row rowScanner) (domain.Order, error) {
	var (
		order     domain.Order
		payment   string
		shipType  string
		carrier   string
		productsS string
	)

	err := row.Scan(
		&order.CustomerEmail, &order.OrderID, &order.CreatedAt,
		&payment, &order.Billing.TotalPrice,
		&shipType, &carrier, &productsS,
	)
	if err != nil {
		return domain.Order{}, err
	}

	order.Billing.Payment = domain.PaymentType(payment)
	order.Shipping.Type = domain.ShippingType(shipType)
	order.Shipping.Carrier = domain.CarrierType(carrier)

	var rows []orderProductRow
	if err := json.Unmarshal([]byte(productsS), &rows); err != nil {
		return domain.Order{}, err
	}
	order.Products = make([]domain.OrderProduct, 0, len(rows))
	for _, pr := range rows {
		order.Products = append(order.Products, domain.OrderProduct{
			Code:  pr.Code,
			Price: pr.Price,
		})
	}
	return order, nil
}

func (r OrdersRepository) scanOrders(
	rows *sql.Rows,
) (orders []domain.Order, err error) {
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}
