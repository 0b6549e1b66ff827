package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(t *testing.T, stock int, visible bool) *Product {
	t.Helper()
	return &Product{
		ID:            1,
		Name:          "Canon EOS R6",
		Price:         mustMoney(t, "500000", CurrencyVND),
		StockQuantity: stock,
		IsVisible:     visible,
	}
}

func TestProduct_ReduceStock(t *testing.T) {
	p := testProduct(t, 5, true)

	require.NoError(t, p.ReduceStock(2))
	assert.Equal(t, 3, p.StockQuantity)

	// Reducing to exactly zero is allowed.
	require.NoError(t, p.ReduceStock(3))
	assert.Equal(t, 0, p.StockQuantity)
	assert.False(t, p.IsInStock())
}

func TestProduct_ReduceStock_Insufficient(t *testing.T) {
	p := testProduct(t, 5, true)

	err := p.ReduceStock(6)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 1, stockErr.ProductID)
	assert.Equal(t, 6, stockErr.Requested)
	assert.Equal(t, 5, stockErr.Available)
	// Stock unchanged after a failed decrement.
	assert.Equal(t, 5, p.StockQuantity)
}

func TestProduct_ReduceStock_InvalidQuantity(t *testing.T) {
	p := testProduct(t, 5, true)

	var quantityErr *InvalidQuantityError
	assert.ErrorAs(t, p.ReduceStock(0), &quantityErr)
	assert.ErrorAs(t, p.ReduceStock(-1), &quantityErr)
}

func TestProduct_AddStock(t *testing.T) {
	p := testProduct(t, 2, true)

	require.NoError(t, p.AddStock(3))
	assert.Equal(t, 5, p.StockQuantity)

	var quantityErr *InvalidQuantityError
	assert.ErrorAs(t, p.AddStock(0), &quantityErr)
}

func TestProduct_HasSufficientStock(t *testing.T) {
	p := testProduct(t, 5, true)

	assert.True(t, p.HasSufficientStock(5))
	assert.False(t, p.HasSufficientStock(6))
}

func TestProduct_IsAvailableForPurchase(t *testing.T) {
	assert.True(t, testProduct(t, 1, true).IsAvailableForPurchase())
	assert.False(t, testProduct(t, 0, true).IsAvailableForPurchase())
	assert.False(t, testProduct(t, 1, false).IsAvailableForPurchase())
}
