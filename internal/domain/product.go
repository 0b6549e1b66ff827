package domain

import "time"

// Product is owned by the catalog subsystem; this core only mutates its stock
// ledger and reads its visibility and price.
type Product struct {
	ID            int
	Name          string
	Description   string
	Price         Money
	StockQuantity int
	CategoryID    int
	BrandID       int
	ImageURL      string
	IsVisible     bool
	CreatedAt     time.Time
}

// ReduceStock decrements the stock when an order is placed. Stock never goes
// negative.
func (p *Product) ReduceStock(quantity int) error {
	if quantity <= 0 {
		return &InvalidQuantityError{Quantity: quantity}
	}
	if p.StockQuantity < quantity {
		return &InsufficientStockError{
			ProductID: p.ID,
			Requested: quantity,
			Available: p.StockQuantity,
		}
	}
	p.StockQuantity -= quantity
	return nil
}

// AddStock restores stock when an order is cancelled. Uncapped.
func (p *Product) AddStock(quantity int) error {
	if quantity <= 0 {
		return &InvalidQuantityError{Quantity: quantity}
	}
	p.StockQuantity += quantity
	return nil
}

func (p *Product) IsInStock() bool {
	return p.StockQuantity > 0
}

func (p *Product) HasSufficientStock(quantity int) bool {
	return p.StockQuantity >= quantity
}

// IsAvailableForPurchase excludes hidden products even when stock remains.
func (p *Product) IsAvailableForPurchase() bool {
	return p.IsVisible && p.IsInStock()
}
