package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hayamij/PY-CameraShop-sub000/internal/domain"
)

type PlaceOrderInput struct {
	CustomerID      int
	ShippingAddress string
	PhoneNumber     string
	PaymentMethod   string
	Notes           string
}

type PlaceOrderOutput struct {
	OrderID     int
	TotalAmount domain.Money
	Message     string
}

// PlaceOrderUseCase converts the customer's mutable cart into an immutable
// order. Every line is validated against the live catalog before any stock is
// touched, and the decrement/persist/clear sequence runs in one transaction
// with the product rows locked, so no partial order can ever commit and stock
// cannot be oversold by concurrent checkouts.
type PlaceOrderUseCase struct {
	orders   domain.OrderRepository
	carts    domain.CartRepository
	products domain.ProductRepository
	tx       domain.TxManager
	log      *logrus.Logger
}

func NewPlaceOrderUseCase(
	orders domain.OrderRepository,
	carts domain.CartRepository,
	products domain.ProductRepository,
	tx domain.TxManager,
	logger *logrus.Logger,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		orders:   orders,
		carts:    carts,
		products: products,
		tx:       tx,
		log:      logger,
	}
}

func (uc *PlaceOrderUseCase) Execute(ctx context.Context, in PlaceOrderInput) (*PlaceOrderOutput, error) {
	paymentMethod, err := uc.validateInput(in)
	if err != nil {
		uc.log.Warnf("Use Case: Place order input validation failed for user %d: %v", in.CustomerID, err)
		return nil, err
	}

	var out *PlaceOrderOutput
	err = uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		cart, err := uc.carts.FindByCustomerID(ctx, in.CustomerID)
		if err != nil {
			return fmt.Errorf("could not load cart for user %d: %w", in.CustomerID, err)
		}
		if cart == nil || cart.IsEmpty() {
			uc.log.Warnf("Use Case: User %d attempted checkout with an empty cart", in.CustomerID)
			return domain.ErrEmptyCart
		}

		// Items() is sorted by product ID, so row locks are always acquired
		// in the same order across concurrent checkouts.
		cartItems := cart.Items()
		products := make([]*domain.Product, 0, len(cartItems))
		for _, item := range cartItems {
			product, err := uc.products.FindByIDForUpdate(ctx, item.ProductID)
			if err != nil {
				return fmt.Errorf("could not load product %d: %w", item.ProductID, err)
			}
			if product == nil {
				uc.log.Warnf("Use Case: Product %d in user %d's cart no longer exists", item.ProductID, in.CustomerID)
				return &domain.ProductNotFoundError{ProductID: item.ProductID}
			}
			if !product.IsVisible {
				uc.log.Warnf("Use Case: Product %d ('%s') in user %d's cart is hidden", product.ID, product.Name, in.CustomerID)
				return &domain.ProductUnavailableError{ProductID: product.ID, Name: product.Name}
			}
			if !product.HasSufficientStock(item.Quantity) {
				uc.log.Warnf("Use Case: Insufficient stock for product %d (requested: %d, available: %d)",
					product.ID, item.Quantity, product.StockQuantity)
				return &domain.InsufficientStockError{
					ProductID: product.ID,
					Requested: item.Quantity,
					Available: product.StockQuantity,
				}
			}
			products = append(products, product)
		}

		// All lines passed validation; only now mutate stock and build the
		// order snapshot.
		orderItems := make([]domain.OrderItem, 0, len(cartItems))
		for i, item := range cartItems {
			product := products[i]
			if err := product.ReduceStock(item.Quantity); err != nil {
				return err
			}
			if _, err := uc.products.Save(ctx, product); err != nil {
				return fmt.Errorf("could not persist stock for product %d: %w", product.ID, err)
			}
			orderItem, err := domain.NewOrderItem(product.ID, product.Name, item.Quantity, product.Price)
			if err != nil {
				return err
			}
			orderItems = append(orderItems, orderItem)
		}

		order, err := domain.NewOrder(in.CustomerID, orderItems, paymentMethod,
			in.ShippingAddress, in.PhoneNumber, in.Notes)
		if err != nil {
			return err
		}

		saved, err := uc.orders.Save(ctx, order)
		if err != nil {
			return fmt.Errorf("could not save order for user %d: %w", in.CustomerID, err)
		}

		if err := uc.carts.ClearCart(ctx, in.CustomerID); err != nil {
			return fmt.Errorf("could not clear cart for user %d: %w", in.CustomerID, err)
		}

		out = &PlaceOrderOutput{
			OrderID:     saved.ID,
			TotalAmount: saved.TotalAmount(),
			Message:     fmt.Sprintf("Order #%d placed successfully", saved.ID),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Infof("Use Case: Order %d placed successfully for user %d (total: %s)",
		out.OrderID, in.CustomerID, out.TotalAmount)
	return out, nil
}

func (uc *PlaceOrderUseCase) validateInput(in PlaceOrderInput) (domain.PaymentMethod, error) {
	if in.CustomerID <= 0 {
		return "", domain.NewValidationError("invalid customer ID: %d", in.CustomerID)
	}
	if len(strings.TrimSpace(in.ShippingAddress)) < 10 {
		return "", domain.NewValidationError("shipping address must be at least 10 characters")
	}
	if len(strings.TrimSpace(in.PhoneNumber)) < 10 {
		return "", domain.NewValidationError("phone number must be at least 10 digits")
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return "", domain.NewValidationError("payment method is required")
	}
	return domain.ParsePaymentMethod(in.PaymentMethod)
}
