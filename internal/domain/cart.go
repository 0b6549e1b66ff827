package domain

import (
	"sort"
	"time"
)

// CartItem is a single product line inside a cart. CartItemID and CartID are
// persistence identifiers and stay zero until the cart is saved.
type CartItem struct {
	CartItemID int
	CartID     int
	ProductID  int
	Quantity   int
}

// Cart is the shopping cart aggregate root. One cart per customer, at most
// one line per product. The cart knows nothing about current stock or
// visibility; those checks belong to the use case layer because stock keeps
// changing while the cart lives.
type Cart struct {
	ID         int
	CustomerID int
	items      map[int]*CartItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewCart(customerID int) (*Cart, error) {
	if customerID <= 0 {
		return nil, NewValidationError("invalid customer ID: %d", customerID)
	}
	now := time.Now()
	return &Cart{
		CustomerID: customerID,
		items:      make(map[int]*CartItem),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// ReconstructCart rebuilds a cart from persistence without validation.
func ReconstructCart(id, customerID int, items []CartItem, createdAt, updatedAt time.Time) *Cart {
	byProduct := make(map[int]*CartItem, len(items))
	for i := range items {
		item := items[i]
		byProduct[item.ProductID] = &item
	}
	return &Cart{
		ID:         id,
		CustomerID: customerID,
		items:      byProduct,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
}

// Items returns a copy of the cart lines ordered by product ID.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// AddItem inserts a new line or merges into the existing line for the product.
func (c *Cart) AddItem(productID, quantity int) error {
	if productID <= 0 {
		return NewValidationError("invalid product ID: %d", productID)
	}
	if quantity <= 0 {
		return &InvalidQuantityError{Quantity: quantity}
	}
	if item, ok := c.items[productID]; ok {
		item.Quantity += quantity
	} else {
		c.items[productID] = &CartItem{CartID: c.ID, ProductID: productID, Quantity: quantity}
	}
	c.UpdatedAt = time.Now()
	return nil
}

func (c *Cart) RemoveItem(productID int) error {
	if _, ok := c.items[productID]; !ok {
		return &ProductNotInCartError{ProductID: productID}
	}
	delete(c.items, productID)
	c.UpdatedAt = time.Now()
	return nil
}

// UpdateItemQuantity sets an absolute quantity. Zero is rejected; callers
// remove the line instead.
func (c *Cart) UpdateItemQuantity(productID, newQuantity int) error {
	item, ok := c.items[productID]
	if !ok {
		return &ProductNotInCartError{ProductID: productID}
	}
	if newQuantity <= 0 {
		return &InvalidQuantityError{Quantity: newQuantity}
	}
	item.Quantity = newQuantity
	c.UpdatedAt = time.Now()
	return nil
}

// Clear empties all lines. Idempotent.
func (c *Cart) Clear() {
	c.items = make(map[int]*CartItem)
	c.UpdatedAt = time.Now()
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) EnsureNotEmpty() error {
	if c.IsEmpty() {
		return ErrEmptyCart
	}
	return nil
}

func (c *Cart) HasItem(productID int) bool {
	_, ok := c.items[productID]
	return ok
}

func (c *Cart) Item(productID int) (CartItem, bool) {
	item, ok := c.items[productID]
	if !ok {
		return CartItem{}, false
	}
	return *item, true
}

// ItemCount is the number of distinct products in the cart.
func (c *Cart) ItemCount() int {
	return len(c.items)
}

func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

func (c *Cart) BelongsToCustomer(customerID int) bool {
	return c.CustomerID == customerID
}
