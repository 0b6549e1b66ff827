package domain

import (
	"strings"
	"time"
)

// OrderItem is an immutable snapshot of a purchased line. Name and price are
// captured at order time; later catalog changes never alter a placed order.
type OrderItem struct {
	productID   int
	productName string
	quantity    int
	unitPrice   Money
}

func NewOrderItem(productID int, productName string, quantity int, unitPrice Money) (OrderItem, error) {
	if productID <= 0 {
		return OrderItem{}, NewValidationError("invalid product ID: %d", productID)
	}
	if productName == "" {
		return OrderItem{}, NewValidationError("product name cannot be empty")
	}
	if quantity <= 0 {
		return OrderItem{}, &InvalidQuantityError{Quantity: quantity}
	}
	if !unitPrice.IsPositive() {
		return OrderItem{}, NewValidationError("unit price must be positive")
	}
	return OrderItem{
		productID:   productID,
		productName: productName,
		quantity:    quantity,
		unitPrice:   unitPrice,
	}, nil
}

// ReconstructOrderItem rebuilds a snapshot line from persistence without
// validation.
func ReconstructOrderItem(productID int, productName string, quantity int, unitPrice Money) OrderItem {
	return OrderItem{
		productID:   productID,
		productName: productName,
		quantity:    quantity,
		unitPrice:   unitPrice,
	}
}

func (i OrderItem) ProductID() int { return i.productID }

func (i OrderItem) ProductName() string { return i.productName }

func (i OrderItem) Quantity() int { return i.quantity }

func (i OrderItem) UnitPrice() Money { return i.unitPrice }

func (i OrderItem) Subtotal() (Money, error) {
	return i.unitPrice.MultiplyInt(i.quantity)
}

// Order is the order aggregate root. It is immutable after construction
// except for status transitions, which are restricted to the table in
// orderStatusTransitions. The total is always derived from the items.
type Order struct {
	ID              int
	CustomerID      int
	items           []OrderItem
	PaymentMethod   PaymentMethod
	ShippingAddress string
	PhoneNumber     string
	Notes           string
	status          OrderStatus
	totalAmount     Money
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewOrder(customerID int, items []OrderItem, paymentMethod PaymentMethod, shippingAddress, phoneNumber, notes string) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	if customerID <= 0 {
		return nil, NewValidationError("invalid customer ID: %d", customerID)
	}
	shippingAddress = strings.TrimSpace(shippingAddress)
	if len(shippingAddress) < 10 {
		return nil, NewValidationError("shipping address must be at least 10 characters")
	}
	phoneNumber = strings.TrimSpace(phoneNumber)
	if len(phoneNumber) < 10 {
		return nil, NewValidationError("phone number must be at least 10 digits")
	}
	if !paymentMethod.IsValid() {
		return nil, NewValidationError("invalid payment method: %s", paymentMethod)
	}

	copied := make([]OrderItem, len(items))
	copy(copied, items)

	total, err := calculateTotal(copied)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Order{
		CustomerID:      customerID,
		items:           copied,
		PaymentMethod:   paymentMethod,
		ShippingAddress: shippingAddress,
		PhoneNumber:     phoneNumber,
		Notes:           strings.TrimSpace(notes),
		status:          OrderStatusPending,
		totalAmount:     total,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// ReconstructOrder rebuilds an order from persistence without validation.
func ReconstructOrder(id, customerID int, items []OrderItem, paymentMethod PaymentMethod,
	shippingAddress, phoneNumber, notes string, status OrderStatus, totalAmount Money,
	createdAt, updatedAt time.Time) *Order {
	copied := make([]OrderItem, len(items))
	copy(copied, items)
	return &Order{
		ID:              id,
		CustomerID:      customerID,
		items:           copied,
		PaymentMethod:   paymentMethod,
		ShippingAddress: shippingAddress,
		PhoneNumber:     phoneNumber,
		Notes:           notes,
		status:          status,
		totalAmount:     totalAmount,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}

func calculateTotal(items []OrderItem) (Money, error) {
	total := ZeroMoney(items[0].unitPrice.Currency())
	for _, item := range items {
		subtotal, err := item.Subtotal()
		if err != nil {
			return Money{}, err
		}
		total, err = total.Add(subtotal)
		if err != nil {
			return Money{}, err
		}
	}
	return total, nil
}

// Items returns a defensive copy of the snapshot lines.
func (o *Order) Items() []OrderItem {
	out := make([]OrderItem, len(o.items))
	copy(out, o.items)
	return out
}

func (o *Order) Status() OrderStatus { return o.status }

func (o *Order) TotalAmount() Money { return o.totalAmount }

func (o *Order) ItemCount() int { return len(o.items) }

func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.items {
		total += item.quantity
	}
	return total
}

func (o *Order) BelongsToCustomer(customerID int) bool {
	return o.CustomerID == customerID
}

// Ship moves the order into the shipping state.
func (o *Order) Ship() error {
	return o.UpdateStatus(OrderStatusShipping)
}

// Complete marks a shipping order as delivered.
func (o *Order) Complete() error {
	return o.UpdateStatus(OrderStatusCompleted)
}

// Cancel moves the order to CANCELLED. The guard is stricter than the raw
// transition table: a shipped or completed order reports "too late to cancel"
// rather than a generic transition failure.
func (o *Order) Cancel() error {
	if o.status == OrderStatusShipping || o.status == OrderStatusCompleted {
		return &OrderAlreadyShippedError{OrderID: o.ID}
	}
	return o.UpdateStatus(OrderStatusCancelled)
}

// UpdateStatus performs the generic transition used by the admin flow.
func (o *Order) UpdateStatus(newStatus OrderStatus) error {
	if !o.status.CanTransitionTo(newStatus) {
		return &InvalidStatusTransitionError{
			From:    o.status,
			To:      newStatus,
			Allowed: o.status.AllowedTransitions(),
		}
	}
	o.status = newStatus
	o.UpdatedAt = time.Now()
	return nil
}

func (o *Order) IsPending() bool { return o.status == OrderStatusPending }

func (o *Order) IsShipping() bool { return o.status == OrderStatusShipping }

func (o *Order) IsCompleted() bool { return o.status == OrderStatusCompleted }

func (o *Order) IsCancelled() bool { return o.status == OrderStatusCancelled }

func (o *Order) CanBeCancelled() bool { return o.status.IsModifiable() }
