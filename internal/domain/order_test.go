package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrderItems(t *testing.T) []OrderItem {
	t.Helper()
	first, err := NewOrderItem(1, "Canon EOS R6", 2, mustMoney(t, "500000", CurrencyVND))
	require.NoError(t, err)
	second, err := NewOrderItem(2, "Tripod", 1, mustMoney(t, "150000", CurrencyVND))
	require.NoError(t, err)
	return []OrderItem{first, second}
}

func testOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder(7, testOrderItems(t), PaymentMethodCOD,
		"123 Nguyen Trai, District 1", "0901234567", "leave at door")
	require.NoError(t, err)
	return order
}

func TestNewOrderItem_Validation(t *testing.T) {
	price := mustMoney(t, "100", CurrencyVND)

	_, err := NewOrderItem(0, "Lens", 1, price)
	assert.Error(t, err)

	_, err = NewOrderItem(1, "", 1, price)
	assert.Error(t, err)

	var quantityErr *InvalidQuantityError
	_, err = NewOrderItem(1, "Lens", 0, price)
	assert.ErrorAs(t, err, &quantityErr)

	_, err = NewOrderItem(1, "Lens", 1, ZeroMoney(CurrencyVND))
	assert.Error(t, err)
}

func TestOrderItem_Subtotal(t *testing.T) {
	item, err := NewOrderItem(1, "Lens", 3, mustMoney(t, "200000", CurrencyVND))
	require.NoError(t, err)

	subtotal, err := item.Subtotal()
	require.NoError(t, err)
	assert.True(t, subtotal.Equals(mustMoney(t, "600000", CurrencyVND)))
}

func TestNewOrder(t *testing.T) {
	order := testOrder(t)

	assert.Equal(t, OrderStatusPending, order.Status())
	assert.Equal(t, 7, order.CustomerID)
	assert.Equal(t, 2, order.ItemCount())
	assert.Equal(t, 3, order.TotalQuantity())
	// 2 * 500000 + 1 * 150000
	assert.True(t, order.TotalAmount().Equals(mustMoney(t, "1150000", CurrencyVND)))
}

func TestNewOrder_Validation(t *testing.T) {
	items := testOrderItems(t)

	_, err := NewOrder(7, nil, PaymentMethodCOD, "123 Nguyen Trai, District 1", "0901234567", "")
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = NewOrder(0, items, PaymentMethodCOD, "123 Nguyen Trai, District 1", "0901234567", "")
	assert.Error(t, err)

	// 9 characters after trimming is one short of the minimum.
	_, err = NewOrder(7, items, PaymentMethodCOD, "  123 Main  ", "0901234567", "")
	assert.Error(t, err)

	// Exactly 10 characters passes.
	_, err = NewOrder(7, items, PaymentMethodCOD, "1234567890", "0901234567", "")
	assert.NoError(t, err)

	_, err = NewOrder(7, items, PaymentMethodCOD, "123 Nguyen Trai, District 1", "090123456", "")
	assert.Error(t, err)

	_, err = NewOrder(7, items, PaymentMethod("PAYPAL"), "123 Nguyen Trai, District 1", "0901234567", "")
	assert.Error(t, err)
}

func TestOrder_ItemsDefensiveCopy(t *testing.T) {
	order := testOrder(t)

	items := order.Items()
	items[0] = OrderItem{}

	assert.Equal(t, 1, order.Items()[0].ProductID())
	assert.Equal(t, "Canon EOS R6", order.Items()[0].ProductName())
}

func TestOrder_Lifecycle(t *testing.T) {
	order := testOrder(t)

	require.NoError(t, order.Ship())
	assert.True(t, order.IsShipping())

	require.NoError(t, order.Complete())
	assert.True(t, order.IsCompleted())
}

func TestOrder_UpdateStatus_InvalidTransition(t *testing.T) {
	order := testOrder(t)

	err := order.UpdateStatus(OrderStatusCompleted)
	var transitionErr *InvalidStatusTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, OrderStatusPending, transitionErr.From)
	assert.Equal(t, OrderStatusCompleted, transitionErr.To)
	assert.Equal(t, []OrderStatus{OrderStatusShipping, OrderStatusCancelled}, transitionErr.Allowed)
	// Failed transition leaves the status untouched.
	assert.True(t, order.IsPending())
}

func TestOrder_Cancel(t *testing.T) {
	order := testOrder(t)
	require.True(t, order.CanBeCancelled())

	require.NoError(t, order.Cancel())
	assert.True(t, order.IsCancelled())
	assert.False(t, order.CanBeCancelled())
}

func TestOrder_Cancel_AfterShipping(t *testing.T) {
	order := testOrder(t)
	require.NoError(t, order.Ship())

	err := order.Cancel()
	var shippedErr *OrderAlreadyShippedError
	assert.ErrorAs(t, err, &shippedErr)
	assert.True(t, order.IsShipping())
}

func TestOrder_Cancel_AfterCompleted(t *testing.T) {
	order := testOrder(t)
	require.NoError(t, order.Ship())
	require.NoError(t, order.Complete())

	err := order.Cancel()
	var shippedErr *OrderAlreadyShippedError
	assert.ErrorAs(t, err, &shippedErr)
}

func TestOrder_Cancel_Twice(t *testing.T) {
	order := testOrder(t)
	require.NoError(t, order.Cancel())

	err := order.Cancel()
	var transitionErr *InvalidStatusTransitionError
	assert.ErrorAs(t, err, &transitionErr)
}

func TestOrder_BelongsToCustomer(t *testing.T) {
	order := testOrder(t)
	assert.True(t, order.BelongsToCustomer(7))
	assert.False(t, order.BelongsToCustomer(8))
}

func TestReconstructOrder(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	order := ReconstructOrder(42, 7, testOrderItems(t), PaymentMethodBankTransfer,
		"123 Nguyen Trai, District 1", "0901234567", "",
		OrderStatusShipping, mustMoney(t, "1150000", CurrencyVND),
		createdAt, createdAt)

	assert.Equal(t, 42, order.ID)
	assert.True(t, order.IsShipping())
	assert.Equal(t, createdAt, order.CreatedAt)
	// A reconstructed shipping order continues the lifecycle from its stored
	// status.
	require.NoError(t, order.Complete())
	assert.True(t, order.IsCompleted())
}
