package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/hayamij/PY-CameraShop-sub000/internal/domain"
)

type postgresCartRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresCartRepository(db *sql.DB, logger *logrus.Logger) domain.CartRepository {
	return &postgresCartRepository{db: db, log: logger}
}

func (r *postgresCartRepository) FindByCustomerID(ctx context.Context, customerID int) (*domain.Cart, error) {
	q := queryerFrom(ctx, r.db)

	var (
		id                   int
		createdAt, updatedAt time.Time
	)
	cartQuery := `SELECT id, created_at, updated_at FROM carts WHERE customer_id = $1`
	err := q.QueryRowContext(ctx, cartQuery, customerID).Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Errorf("Failed to get cart for customer %d: %v", customerID, err)
		return nil, fmt.Errorf("could not retrieve cart: %w", err)
	}

	items, err := r.getCartItems(ctx, q, id)
	if err != nil {
		return nil, err
	}

	return domain.ReconstructCart(id, customerID, items, createdAt, updatedAt), nil
}

// Save upserts the cart row and replaces its line items with the aggregate's
// current state.
func (r *postgresCartRepository) Save(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	q := queryerFrom(ctx, r.db)

	cartQuery := `
        INSERT INTO carts (customer_id, created_at, updated_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (customer_id) DO UPDATE SET updated_at = EXCLUDED.updated_at
        RETURNING id
    `
	var cartID int
	err := q.QueryRowContext(ctx, cartQuery, cart.CustomerID, cart.CreatedAt, cart.UpdatedAt).Scan(&cartID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, fmt.Errorf("cart for customer %d already exists: %w", cart.CustomerID, err)
		}
		r.log.Errorf("Failed to upsert cart for customer %d: %v", cart.CustomerID, err)
		return nil, fmt.Errorf("could not save cart: %w", err)
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		r.log.Errorf("Failed to replace items of cart %d: %v", cartID, err)
		return nil, fmt.Errorf("could not replace cart items: %w", err)
	}

	itemQuery := `
        INSERT INTO cart_items (cart_id, product_id, quantity)
        VALUES ($1, $2, $3)
        RETURNING id
    `
	saved := make([]domain.CartItem, 0, len(cart.Items()))
	for _, item := range cart.Items() {
		var itemID int
		if err := q.QueryRowContext(ctx, itemQuery, cartID, item.ProductID, item.Quantity).Scan(&itemID); err != nil {
			r.log.Errorf("Failed to insert cart item (product_id: %d) for cart %d: %v", item.ProductID, cartID, err)
			return nil, fmt.Errorf("could not save cart item (product_id: %d): %w", item.ProductID, err)
		}
		saved = append(saved, domain.CartItem{
			CartItemID: itemID,
			CartID:     cartID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
		})
	}

	r.log.Debugf("Cart %d saved with %d items for customer %d", cartID, len(saved), cart.CustomerID)
	return domain.ReconstructCart(cartID, cart.CustomerID, saved, cart.CreatedAt, cart.UpdatedAt), nil
}

// ClearCart deletes the line items but keeps the cart row itself.
func (r *postgresCartRepository) ClearCart(ctx context.Context, customerID int) error {
	q := queryerFrom(ctx, r.db)

	clearQuery := `
        DELETE FROM cart_items
        USING carts
        WHERE cart_items.cart_id = carts.id AND carts.customer_id = $1
    `
	if _, err := q.ExecContext(ctx, clearQuery, customerID); err != nil {
		r.log.Errorf("Failed to clear cart for customer %d: %v", customerID, err)
		return fmt.Errorf("could not clear cart: %w", err)
	}

	touchQuery := `UPDATE carts SET updated_at = $1 WHERE customer_id = $2`
	if _, err := q.ExecContext(ctx, touchQuery, time.Now(), customerID); err != nil {
		return fmt.Errorf("could not touch cart: %w", err)
	}

	r.log.Infof("Cart cleared for customer %d", customerID)
	return nil
}

func (r *postgresCartRepository) getCartItems(ctx context.Context, q querier, cartID int) ([]domain.CartItem, error) {
	itemsQuery := `
        SELECT id, cart_id, product_id, quantity
        FROM cart_items
        WHERE cart_id = $1
        ORDER BY id
    `
	rows, err := q.QueryContext(ctx, itemsQuery, cartID)
	if err != nil {
		r.log.Errorf("Failed to query cart items for cart %d: %v", cartID, err)
		return nil, fmt.Errorf("could not retrieve cart items: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.CartItemID, &item.CartID, &item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("error scanning cart item: %w", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}
	return items, nil
}
