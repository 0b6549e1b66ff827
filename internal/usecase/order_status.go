package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hayamij/PY-CameraShop-sub000/internal/domain"
)

type UpdateOrderStatusInput struct {
	OrderID   int
	NewStatus string
}

type UpdateOrderStatusOutput struct {
	OrderID   int
	OldStatus domain.OrderStatus
	NewStatus domain.OrderStatus
	Message   string
}

// UpdateOrderStatusUseCase is the generic admin transition. It never touches
// stock: an admin forcing CANCELLED through this path does not restore
// inventory, unlike the customer cancel path.
type UpdateOrderStatusUseCase struct {
	orders domain.OrderRepository
	log    *logrus.Logger
}

func NewUpdateOrderStatusUseCase(orders domain.OrderRepository, logger *logrus.Logger) *UpdateOrderStatusUseCase {
	return &UpdateOrderStatusUseCase{orders: orders, log: logger}
}

func (uc *UpdateOrderStatusUseCase) Execute(ctx context.Context, in UpdateOrderStatusInput) (*UpdateOrderStatusOutput, error) {
	if in.OrderID <= 0 {
		return nil, domain.NewValidationError("invalid order ID: %d", in.OrderID)
	}
	if in.NewStatus == "" {
		return nil, domain.NewValidationError("new status is required")
	}
	newStatus, err := domain.ParseOrderStatus(in.NewStatus)
	if err != nil {
		uc.log.Warnf("Use Case: Rejected unknown status '%s' for order %d", in.NewStatus, in.OrderID)
		return nil, err
	}

	order, err := uc.orders.FindByID(ctx, in.OrderID)
	if err != nil {
		return nil, fmt.Errorf("could not load order %d: %w", in.OrderID, err)
	}
	if order == nil {
		return nil, &domain.OrderNotFoundError{OrderID: in.OrderID}
	}

	oldStatus := order.Status()
	if err := order.UpdateStatus(newStatus); err != nil {
		uc.log.Warnf("Use Case: Invalid status transition for order %d: %v", order.ID, err)
		return nil, err
	}

	if _, err := uc.orders.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("could not save order %d after status update: %w", order.ID, err)
	}

	uc.log.Infof("Use Case: Order %d status updated from %s to %s", order.ID, oldStatus, newStatus)
	return &UpdateOrderStatusOutput{
		OrderID:   order.ID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		Message:   fmt.Sprintf("Order status updated from %s to %s", oldStatus, newStatus),
	}, nil
}

// ShipOrderUseCase moves a pending order into shipping.
type ShipOrderUseCase struct {
	orders domain.OrderRepository
	log    *logrus.Logger
}

func NewShipOrderUseCase(orders domain.OrderRepository, logger *logrus.Logger) *ShipOrderUseCase {
	return &ShipOrderUseCase{orders: orders, log: logger}
}

func (uc *ShipOrderUseCase) Execute(ctx context.Context, orderID int) (*UpdateOrderStatusOutput, error) {
	return transitionOrder(ctx, uc.orders, uc.log, orderID, (*domain.Order).Ship, domain.OrderStatusShipping)
}

// CompleteOrderUseCase marks a shipping order as delivered.
type CompleteOrderUseCase struct {
	orders domain.OrderRepository
	log    *logrus.Logger
}

func NewCompleteOrderUseCase(orders domain.OrderRepository, logger *logrus.Logger) *CompleteOrderUseCase {
	return &CompleteOrderUseCase{orders: orders, log: logger}
}

func (uc *CompleteOrderUseCase) Execute(ctx context.Context, orderID int) (*UpdateOrderStatusOutput, error) {
	return transitionOrder(ctx, uc.orders, uc.log, orderID, (*domain.Order).Complete, domain.OrderStatusCompleted)
}

func transitionOrder(ctx context.Context, orders domain.OrderRepository, log *logrus.Logger,
	orderID int, transition func(*domain.Order) error, target domain.OrderStatus) (*UpdateOrderStatusOutput, error) {
	if orderID <= 0 {
		return nil, domain.NewValidationError("invalid order ID: %d", orderID)
	}

	order, err := orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("could not load order %d: %w", orderID, err)
	}
	if order == nil {
		return nil, &domain.OrderNotFoundError{OrderID: orderID}
	}

	oldStatus := order.Status()
	if err := transition(order); err != nil {
		log.Warnf("Use Case: Order %d cannot move from %s to %s: %v", order.ID, oldStatus, target, err)
		return nil, err
	}

	if _, err := orders.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("could not save order %d after transition: %w", order.ID, err)
	}

	log.Infof("Use Case: Order %d moved from %s to %s", order.ID, oldStatus, target)
	return &UpdateOrderStatusOutput{
		OrderID:   order.ID,
		OldStatus: oldStatus,
		NewStatus: order.Status(),
		Message:   fmt.Sprintf("Order status updated from %s to %s", oldStatus, order.Status()),
	}, nil
}
