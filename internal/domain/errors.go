package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for rule violations that carry no extra data.
var (
	ErrCurrencyMismatch    = errors.New("currency mismatch")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrNegativeAmount      = errors.New("money amount cannot be negative")
	ErrNegativeResult      = errors.New("cannot subtract larger amount from smaller amount")
	ErrEmptyCart           = errors.New("cannot checkout an empty cart")
	ErrEmptyOrder          = errors.New("order must have at least one item")
	ErrPermissionDenied    = errors.New("you don't have permission to access this order")
)

// ValidationError signals malformed caller input. It never reaches the
// repositories; resubmitting corrected input is always possible.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

type InvalidQuantityError struct {
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity: %d, must be greater than 0", e.Quantity)
}

type ProductNotFoundError struct {
	ProductID int
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with ID %d not found", e.ProductID)
}

type ProductUnavailableError struct {
	ProductID int
	Name      string
}

func (e *ProductUnavailableError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("product '%s' is no longer available", e.Name)
	}
	return fmt.Sprintf("product %d is no longer available", e.ProductID)
}

type ProductNotInCartError struct {
	ProductID int
}

func (e *ProductNotInCartError) Error() string {
	return fmt.Sprintf("product with ID %d is not in the cart", e.ProductID)
}

type InsufficientStockError struct {
	ProductID int
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("product %d: requested %d, but only %d available", e.ProductID, e.Requested, e.Available)
}

type OrderNotFoundError struct {
	OrderID int
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("order with ID %d not found", e.OrderID)
}

// OrderAlreadyShippedError communicates "too late to cancel" rather than a
// generically invalid transition.
type OrderAlreadyShippedError struct {
	OrderID int
}

func (e *OrderAlreadyShippedError) Error() string {
	return fmt.Sprintf("order %d has already been shipped and cannot be modified", e.OrderID)
}

type InvalidStatusTransitionError struct {
	From    OrderStatus
	To      OrderStatus
	Allowed []OrderStatus
}

func (e *InvalidStatusTransitionError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
	}
	allowed := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		allowed[i] = string(s)
	}
	return fmt.Sprintf("cannot transition order from %s to %s, allowed: %s",
		e.From, e.To, strings.Join(allowed, ", "))
}
