package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hayamij/PY-CameraShop-sub000/internal/domain"
)

type DeleteOrderOutput struct {
	OrderID int
	Message string
}

// DeleteOrderUseCase hard-removes an order, bypassing the status state
// machine entirely. It is a data-management operation, not a business
// transition; the caller must gate it on an admin role.
type DeleteOrderUseCase struct {
	orders domain.OrderRepository
	log    *logrus.Logger
}

func NewDeleteOrderUseCase(orders domain.OrderRepository, logger *logrus.Logger) *DeleteOrderUseCase {
	return &DeleteOrderUseCase{orders: orders, log: logger}
}

func (uc *DeleteOrderUseCase) Execute(ctx context.Context, orderID int) (*DeleteOrderOutput, error) {
	if orderID <= 0 {
		return nil, domain.NewValidationError("invalid order ID: %d", orderID)
	}

	order, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("could not load order %d: %w", orderID, err)
	}
	if order == nil {
		return nil, &domain.OrderNotFoundError{OrderID: orderID}
	}

	if err := uc.orders.Delete(ctx, orderID); err != nil {
		return nil, fmt.Errorf("could not delete order %d: %w", orderID, err)
	}

	uc.log.Warnf("Use Case: Order %d hard-deleted by admin (status was %s)", orderID, order.Status())
	return &DeleteOrderOutput{
		OrderID: orderID,
		Message: fmt.Sprintf("Order %d deleted successfully", orderID),
	}, nil
}
