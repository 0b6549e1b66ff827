package delivery

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hayamij/PY-CameraShop-sub000/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", domain.NewValidationError("bad input"), http.StatusBadRequest},
		{"invalid quantity", &domain.InvalidQuantityError{Quantity: 0}, http.StatusBadRequest},
		{"empty cart", domain.ErrEmptyCart, http.StatusBadRequest},
		{"product not found", &domain.ProductNotFoundError{ProductID: 1}, http.StatusNotFound},
		{"order not found", &domain.OrderNotFoundError{OrderID: 1}, http.StatusNotFound},
		{"not in cart", &domain.ProductNotInCartError{ProductID: 1}, http.StatusNotFound},
		{"unavailable", &domain.ProductUnavailableError{ProductID: 1}, http.StatusConflict},
		{"insufficient stock", &domain.InsufficientStockError{ProductID: 1, Requested: 2, Available: 1}, http.StatusConflict},
		{"already shipped", &domain.OrderAlreadyShippedError{OrderID: 1}, http.StatusConflict},
		{"invalid transition", &domain.InvalidStatusTransitionError{From: domain.OrderStatusPending, To: domain.OrderStatusCompleted}, http.StatusConflict},
		{"permission denied", domain.ErrPermissionDenied, http.StatusForbidden},
		{"infrastructure", errors.New("pq: connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := mapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestMapDomainError_WrappedError(t *testing.T) {
	wrapped := errors.New("could not load order: " + domain.ErrPermissionDenied.Error())
	status, message := mapDomainError(wrapped)
	// A message lookalike is not the sentinel; only wrapped chains match.
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "An internal error occurred, please try again later", message)

	status, message = mapDomainError(&domain.OrderNotFoundError{OrderID: 42})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "order with ID 42 not found", message)
}

func TestMapDomainError_HidesInternalDetails(t *testing.T) {
	_, message := mapDomainError(errors.New("pq: password authentication failed"))
	assert.NotContains(t, message, "password")
}
