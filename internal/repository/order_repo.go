package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/hayamij/PY-CameraShop-sub000/internal/domain"
)

type postgresOrderRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresOrderRepository(db *sql.DB, logger *logrus.Logger) domain.OrderRepository {
	return &postgresOrderRepository{db: db, log: logger}
}

func (r *postgresOrderRepository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order.ID == 0 {
		return r.insert(ctx, order)
	}
	return r.updateStatus(ctx, order)
}

func (r *postgresOrderRepository) insert(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	q := queryerFrom(ctx, r.db)

	orderQuery := `
        INSERT INTO orders (customer_id, payment_method, shipping_address, phone_number, notes, status, total_amount, currency, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id
    `
	var id int
	err := q.QueryRowContext(ctx, orderQuery,
		order.CustomerID,
		string(order.PaymentMethod),
		order.ShippingAddress,
		order.PhoneNumber,
		order.Notes,
		string(order.Status()),
		order.TotalAmount().Amount(),
		string(order.TotalAmount().Currency()),
		order.CreatedAt,
		order.UpdatedAt,
	).Scan(&id)
	if err != nil {
		r.log.Errorf("Failed to insert order for customer %d: %v", order.CustomerID, err)
		return nil, fmt.Errorf("could not create order entry: %w", err)
	}
	order.ID = id

	itemQuery := `
        INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price, currency)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	for _, item := range order.Items() {
		_, err = q.ExecContext(ctx, itemQuery,
			order.ID,
			item.ProductID(),
			item.ProductName(),
			item.Quantity(),
			item.UnitPrice().Amount(),
			string(item.UnitPrice().Currency()),
		)
		if err != nil {
			r.log.Errorf("Failed to insert order item (product_id: %d) for order %d: %v", item.ProductID(), order.ID, err)
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
				return nil, fmt.Errorf("invalid item data (product_id: %d): %s", item.ProductID(), pqErr.Message)
			}
			return nil, fmt.Errorf("could not create order item (product_id: %d): %w", item.ProductID(), err)
		}
	}

	r.log.Infof("Order %d created with %d items for customer %d", order.ID, order.ItemCount(), order.CustomerID)
	return order, nil
}

func (r *postgresOrderRepository) updateStatus(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	q := queryerFrom(ctx, r.db)

	query := `
        UPDATE orders
        SET status = $1, updated_at = $2
        WHERE id = $3
    `
	result, err := q.ExecContext(ctx, query, string(order.Status()), order.UpdatedAt, order.ID)
	if err != nil {
		r.log.Errorf("Failed to update status for order %d: %v", order.ID, err)
		return nil, fmt.Errorf("could not update order status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not confirm order status update: %w", err)
	}
	if affected == 0 {
		r.log.Warnf("Order %d not found for status update", order.ID)
		return nil, &domain.OrderNotFoundError{OrderID: order.ID}
	}

	r.log.Infof("Order %d updated to status '%s'", order.ID, order.Status())
	return order, nil
}

func (r *postgresOrderRepository) FindByID(ctx context.Context, id int) (*domain.Order, error) {
	q := queryerFrom(ctx, r.db)

	orderQuery := `
        SELECT id, customer_id, payment_method, shipping_address, phone_number, notes, status, total_amount, currency, created_at, updated_at
        FROM orders
        WHERE id = $1
    `
	row := q.QueryRowContext(ctx, orderQuery, id)
	order, err := r.scanOrder(ctx, q, row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Errorf("Failed to get order by ID %d: %v", id, err)
		return nil, err
	}
	return order, nil
}

func (r *postgresOrderRepository) FindByCustomerID(ctx context.Context, customerID int) ([]*domain.Order, error) {
	q := queryerFrom(ctx, r.db)

	ordersQuery := `
        SELECT id, customer_id, payment_method, shipping_address, phone_number, notes, status, total_amount, currency, created_at, updated_at
        FROM orders
        WHERE customer_id = $1
        ORDER BY created_at DESC
    `
	rows, err := q.QueryContext(ctx, ordersQuery, customerID)
	if err != nil {
		r.log.Errorf("Failed to list orders for customer %d: %v", customerID, err)
		return nil, fmt.Errorf("could not retrieve orders: %w", err)
	}
	defer rows.Close()

	type orderRow struct {
		id, customerID                         int
		paymentMethod, address, phone, notes   string
		status, currency                       string
		total                                  decimal.Decimal
		createdAt, updatedAt                   time.Time
	}
	var scanned []orderRow
	for rows.Next() {
		var o orderRow
		if err := rows.Scan(&o.id, &o.customerID, &o.paymentMethod, &o.address, &o.phone, &o.notes,
			&o.status, &o.total, &o.currency, &o.createdAt, &o.updatedAt); err != nil {
			return nil, fmt.Errorf("error scanning order data: %w", err)
		}
		scanned = append(scanned, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	orders := make([]*domain.Order, 0, len(scanned))
	for _, o := range scanned {
		items, err := r.getOrderItems(ctx, q, o.id)
		if err != nil {
			return nil, err
		}
		total, err := domain.NewMoney(o.total, domain.Currency(o.currency))
		if err != nil {
			return nil, fmt.Errorf("invalid stored total for order %d: %w", o.id, err)
		}
		orders = append(orders, domain.ReconstructOrder(
			o.id, o.customerID, items,
			domain.PaymentMethod(o.paymentMethod),
			o.address, o.phone, o.notes,
			domain.OrderStatus(o.status), total,
			o.createdAt, o.updatedAt,
		))
	}

	r.log.Debugf("Retrieved %d orders for customer %d", len(orders), customerID)
	return orders, nil
}

func (r *postgresOrderRepository) Delete(ctx context.Context, id int) error {
	q := queryerFrom(ctx, r.db)

	if _, err := q.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		r.log.Errorf("Failed to delete items of order %d: %v", id, err)
		return fmt.Errorf("could not delete order items: %w", err)
	}
	result, err := q.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.log.Errorf("Failed to delete order %d: %v", id, err)
		return fmt.Errorf("could not delete order: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not confirm order deletion: %w", err)
	}
	if affected == 0 {
		return &domain.OrderNotFoundError{OrderID: id}
	}

	r.log.Warnf("Order %d hard-deleted", id)
	return nil
}

func (r *postgresOrderRepository) scanOrder(ctx context.Context, q querier, row *sql.Row) (*domain.Order, error) {
	var (
		id, customerID                       int
		paymentMethod, address, phone, notes string
		status, currency                     string
		total                                decimal.Decimal
		createdAt, updatedAt                 time.Time
	)
	err := row.Scan(&id, &customerID, &paymentMethod, &address, &phone, &notes,
		&status, &total, &currency, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("could not retrieve order: %w", err)
	}

	items, err := r.getOrderItems(ctx, q, id)
	if err != nil {
		return nil, err
	}
	totalMoney, err := domain.NewMoney(total, domain.Currency(currency))
	if err != nil {
		return nil, fmt.Errorf("invalid stored total for order %d: %w", id, err)
	}

	return domain.ReconstructOrder(
		id, customerID, items,
		domain.PaymentMethod(paymentMethod),
		address, phone, notes,
		domain.OrderStatus(status), totalMoney,
		createdAt, updatedAt,
	), nil
}

func (r *postgresOrderRepository) getOrderItems(ctx context.Context, q querier, orderID int) ([]domain.OrderItem, error) {
	itemsQuery := `
        SELECT product_id, product_name, quantity, unit_price, currency
        FROM order_items
        WHERE order_id = $1
        ORDER BY id
    `
	rows, err := q.QueryContext(ctx, itemsQuery, orderID)
	if err != nil {
		r.log.Errorf("Failed to query order items for order %d: %v", orderID, err)
		return nil, fmt.Errorf("could not retrieve order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var (
			productID, quantity int
			productName         string
			unitPrice           decimal.Decimal
			currency            string
		)
		if err := rows.Scan(&productID, &productName, &quantity, &unitPrice, &currency); err != nil {
			return nil, fmt.Errorf("error scanning order item: %w", err)
		}
		price, err := domain.NewMoney(unitPrice, domain.Currency(currency))
		if err != nil {
			return nil, fmt.Errorf("invalid stored price for product %d in order %d: %w", productID, orderID, err)
		}
		items = append(items, domain.ReconstructOrderItem(productID, productName, quantity, price))
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}
	return items, nil
}
