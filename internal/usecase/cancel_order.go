package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hayamij/PY-CameraShop-sub000/internal/domain"
)

type CancelOrderInput struct {
	OrderID          int
	RequestingUserID int
}

type CancelOrderOutput struct {
	OrderID int
	Message string
}

// CancelOrderUseCase is the customer-initiated cancellation: it enforces
// ownership, runs the cancel transition and restores the stock that was
// decremented when the order was placed. Status change and stock restoration
// commit or roll back together.
type CancelOrderUseCase struct {
	orders   domain.OrderRepository
	products domain.ProductRepository
	tx       domain.TxManager
	log      *logrus.Logger
}

func NewCancelOrderUseCase(
	orders domain.OrderRepository,
	products domain.ProductRepository,
	tx domain.TxManager,
	logger *logrus.Logger,
) *CancelOrderUseCase {
	return &CancelOrderUseCase{
		orders:   orders,
		products: products,
		tx:       tx,
		log:      logger,
	}
}

func (uc *CancelOrderUseCase) Execute(ctx context.Context, in CancelOrderInput) (*CancelOrderOutput, error) {
	if in.OrderID <= 0 {
		return nil, domain.NewValidationError("invalid order ID: %d", in.OrderID)
	}
	if in.RequestingUserID <= 0 {
		return nil, domain.NewValidationError("invalid user ID: %d", in.RequestingUserID)
	}

	var out *CancelOrderOutput
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := uc.orders.FindByID(ctx, in.OrderID)
		if err != nil {
			return fmt.Errorf("could not load order %d: %w", in.OrderID, err)
		}
		if order == nil {
			return &domain.OrderNotFoundError{OrderID: in.OrderID}
		}

		if !order.BelongsToCustomer(in.RequestingUserID) {
			uc.log.Warnf("Use Case: User %d attempted to cancel order %d owned by user %d",
				in.RequestingUserID, order.ID, order.CustomerID)
			return domain.ErrPermissionDenied
		}

		if err := order.Cancel(); err != nil {
			uc.log.Warnf("Use Case: Order %d cannot be cancelled: %v", order.ID, err)
			return err
		}

		// Restore exactly what this order decremented. A product deleted
		// since the order was placed is skipped; the cancellation itself
		// still succeeds.
		for _, item := range order.Items() {
			product, err := uc.products.FindByIDForUpdate(ctx, item.ProductID())
			if err != nil {
				return fmt.Errorf("could not load product %d for stock restoration: %w", item.ProductID(), err)
			}
			if product == nil {
				uc.log.Warnf("Use Case: Product %d from order %d no longer exists, skipping stock restoration",
					item.ProductID(), order.ID)
				continue
			}
			if err := product.AddStock(item.Quantity()); err != nil {
				return err
			}
			if _, err := uc.products.Save(ctx, product); err != nil {
				return fmt.Errorf("could not persist restored stock for product %d: %w", product.ID, err)
			}
		}

		if _, err := uc.orders.Save(ctx, order); err != nil {
			return fmt.Errorf("could not save cancelled order %d: %w", order.ID, err)
		}

		out = &CancelOrderOutput{
			OrderID: order.ID,
			Message: fmt.Sprintf("Order #%d has been cancelled successfully", order.ID),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Infof("Use Case: Order %d cancelled by user %d, stock restored", out.OrderID, in.RequestingUserID)
	return out, nil
}
