package domain

import "context"

// Repositories return (nil, nil) when the entity does not exist; a non-nil
// error always means an infrastructure failure.

type CartRepository interface {
	FindByCustomerID(ctx context.Context, customerID int) (*Cart, error)
	Save(ctx context.Context, cart *Cart) (*Cart, error)
	// ClearCart removes all line items but keeps the cart row.
	ClearCart(ctx context.Context, customerID int) error
}

type OrderRepository interface {
	// Save inserts when the order has no ID yet, otherwise updates the
	// mutable columns (status, updated_at).
	Save(ctx context.Context, order *Order) (*Order, error)
	FindByID(ctx context.Context, id int) (*Order, error)
	FindByCustomerID(ctx context.Context, customerID int) ([]*Order, error)
	// Delete is the administrative hard removal that bypasses the state
	// machine. Data cleanup only, never a business transition.
	Delete(ctx context.Context, id int) error
}

type ProductRepository interface {
	FindByID(ctx context.Context, id int) (*Product, error)
	// FindByIDForUpdate locks the product row for the rest of the current
	// transaction so check-then-decrement cannot race a concurrent checkout.
	FindByIDForUpdate(ctx context.Context, id int) (*Product, error)
	Save(ctx context.Context, product *Product) (*Product, error)
}

// TxManager runs fn inside a single database transaction. Repository calls
// made with the ctx passed to fn join that transaction; any error rolls the
// whole unit back.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
