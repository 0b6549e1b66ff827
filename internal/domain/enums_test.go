package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusPending, OrderStatusShipping, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusCompleted, false},
		{OrderStatusShipping, OrderStatusCompleted, true},
		{OrderStatusShipping, OrderStatusCancelled, false},
		{OrderStatusShipping, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusShipping, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusShipping.IsTerminal())
	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatus("NOPE").IsTerminal())
}

func TestOrderStatus_IsModifiable(t *testing.T) {
	assert.True(t, OrderStatusPending.IsModifiable())
	assert.False(t, OrderStatusShipping.IsModifiable())
	assert.False(t, OrderStatusCompleted.IsModifiable())
	assert.False(t, OrderStatusCancelled.IsModifiable())
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("dang_giao")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusShipping, status)

	status, err = ParseOrderStatus("  HOAN_THANH  ")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusCompleted, status)

	_, err = ParseOrderStatus("SHIPPED")
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestParsePaymentMethod(t *testing.T) {
	tests := []struct {
		raw  string
		want PaymentMethod
	}{
		{"CASH", PaymentMethodCash},
		{"cash", PaymentMethodCash},
		{"COD", PaymentMethodCOD},
		{"bank_transfer", PaymentMethodBankTransfer},
		{" CREDIT_CARD ", PaymentMethodCreditCard},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			method, err := ParsePaymentMethod(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, method)
		})
	}
}

func TestParsePaymentMethod_RejectsWireCode(t *testing.T) {
	// Clients submit names; the stored wire codes are not accepted as input.
	_, err := ParsePaymentMethod("TIEN_MAT")
	assert.Error(t, err)

	_, err = ParsePaymentMethod("PAYPAL")
	assert.Error(t, err)
}

func TestPaymentMethod_RequiresConfirmation(t *testing.T) {
	assert.True(t, PaymentMethodBankTransfer.RequiresConfirmation())
	assert.False(t, PaymentMethodCash.RequiresConfirmation())
	assert.False(t, PaymentMethodCOD.RequiresConfirmation())
	assert.False(t, PaymentMethodCreditCard.RequiresConfirmation())
}
