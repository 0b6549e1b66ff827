package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hayamij/PY-CameraShop-sub000/internal/domain"
)

type OrderSummary struct {
	OrderID         int
	TotalAmount     domain.Money
	Status          domain.OrderStatus
	PaymentMethod   domain.PaymentMethod
	ShippingAddress string
	PhoneNumber     string
	Notes           string
	CreatedAt       time.Time
	ItemCount       int
}

type GetMyOrdersOutput struct {
	Orders      []OrderSummary
	TotalOrders int
}

// GetMyOrdersUseCase lists a customer's orders, optionally filtered by
// status, newest first.
type GetMyOrdersUseCase struct {
	orders domain.OrderRepository
	log    *logrus.Logger
}

func NewGetMyOrdersUseCase(orders domain.OrderRepository, logger *logrus.Logger) *GetMyOrdersUseCase {
	return &GetMyOrdersUseCase{orders: orders, log: logger}
}

func (uc *GetMyOrdersUseCase) Execute(ctx context.Context, userID int, statusFilter string) (*GetMyOrdersOutput, error) {
	if userID <= 0 {
		return nil, domain.NewValidationError("invalid user ID: %d", userID)
	}

	var filter domain.OrderStatus
	if statusFilter != "" {
		parsed, err := domain.ParseOrderStatus(statusFilter)
		if err != nil {
			return nil, err
		}
		filter = parsed
	}

	orders, err := uc.orders.FindByCustomerID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not list orders for user %d: %w", userID, err)
	}

	out := &GetMyOrdersOutput{Orders: []OrderSummary{}}
	for _, order := range orders {
		if filter != "" && order.Status() != filter {
			continue
		}
		out.Orders = append(out.Orders, OrderSummary{
			OrderID:         order.ID,
			TotalAmount:     order.TotalAmount(),
			Status:          order.Status(),
			PaymentMethod:   order.PaymentMethod,
			ShippingAddress: order.ShippingAddress,
			PhoneNumber:     order.PhoneNumber,
			Notes:           order.Notes,
			CreatedAt:       order.CreatedAt,
			ItemCount:       order.ItemCount(),
		})
	}
	out.TotalOrders = len(out.Orders)

	uc.log.Infof("Use Case: Retrieved %d order(s) for user %d", out.TotalOrders, userID)
	return out, nil
}

type OrderDetailLine struct {
	ProductID    int
	ProductName  string
	ProductImage string
	Quantity     int
	UnitPrice    domain.Money
	Subtotal     domain.Money
}

type GetOrderDetailOutput struct {
	OrderID         int
	CustomerID      int
	Status          domain.OrderStatus
	PaymentMethod   domain.PaymentMethod
	ShippingAddress string
	PhoneNumber     string
	Notes           string
	Lines           []OrderDetailLine
	TotalAmount     domain.Money
	CreatedAt       time.Time
}

type GetOrderDetailInput struct {
	OrderID          int
	RequestingUserID int
	// IsAdmin bypasses the ownership check; the caller has already verified
	// the admin role.
	IsAdmin bool
}

type GetOrderDetailUseCase struct {
	orders   domain.OrderRepository
	products domain.ProductRepository
	log      *logrus.Logger
}

func NewGetOrderDetailUseCase(orders domain.OrderRepository, products domain.ProductRepository, logger *logrus.Logger) *GetOrderDetailUseCase {
	return &GetOrderDetailUseCase{orders: orders, products: products, log: logger}
}

func (uc *GetOrderDetailUseCase) Execute(ctx context.Context, in GetOrderDetailInput) (*GetOrderDetailOutput, error) {
	if in.OrderID <= 0 {
		return nil, domain.NewValidationError("invalid order ID: %d", in.OrderID)
	}

	order, err := uc.orders.FindByID(ctx, in.OrderID)
	if err != nil {
		return nil, fmt.Errorf("could not load order %d: %w", in.OrderID, err)
	}
	if order == nil {
		return nil, &domain.OrderNotFoundError{OrderID: in.OrderID}
	}

	if !in.IsAdmin && !order.BelongsToCustomer(in.RequestingUserID) {
		uc.log.Warnf("Use Case: User %d attempted to view order %d owned by user %d",
			in.RequestingUserID, order.ID, order.CustomerID)
		return nil, domain.ErrPermissionDenied
	}

	out := &GetOrderDetailOutput{
		OrderID:         order.ID,
		CustomerID:      order.CustomerID,
		Status:          order.Status(),
		PaymentMethod:   order.PaymentMethod,
		ShippingAddress: order.ShippingAddress,
		PhoneNumber:     order.PhoneNumber,
		Notes:           order.Notes,
		TotalAmount:     order.TotalAmount(),
		CreatedAt:       order.CreatedAt,
	}
	for _, item := range order.Items() {
		subtotal, err := item.Subtotal()
		if err != nil {
			return nil, err
		}
		line := OrderDetailLine{
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
			Subtotal:    subtotal,
		}
		// The image comes from the live catalog; the snapshot name and price
		// stay authoritative even when the product changed or vanished.
		product, err := uc.products.FindByID(ctx, item.ProductID())
		if err != nil {
			return nil, fmt.Errorf("could not load product %d: %w", item.ProductID(), err)
		}
		if product != nil {
			line.ProductImage = product.ImageURL
		}
		out.Lines = append(out.Lines, line)
	}

	return out, nil
}
