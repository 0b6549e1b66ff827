package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hayamij/PY-CameraShop-sub000/internal/domain"
)

// maxAddQuantity caps a single add-to-cart request.
const maxAddQuantity = 100

type AddToCartInput struct {
	UserID    int
	ProductID int
	Quantity  int
}

type AddToCartOutput struct {
	CartID        int
	TotalItems    int
	TotalQuantity int
	Message       string
}

// AddToCartUseCase puts a product into the customer's cart, merging with an
// existing line. The requested total for the product may not exceed current
// stock; the definitive stock check still happens again at checkout.
type AddToCartUseCase struct {
	carts    domain.CartRepository
	products domain.ProductRepository
	log      *logrus.Logger
}

func NewAddToCartUseCase(carts domain.CartRepository, products domain.ProductRepository, logger *logrus.Logger) *AddToCartUseCase {
	return &AddToCartUseCase{carts: carts, products: products, log: logger}
}

func (uc *AddToCartUseCase) Execute(ctx context.Context, in AddToCartInput) (*AddToCartOutput, error) {
	if in.UserID <= 0 {
		return nil, domain.NewValidationError("invalid user ID: %d", in.UserID)
	}
	if in.ProductID <= 0 {
		return nil, domain.NewValidationError("invalid product ID: %d", in.ProductID)
	}
	if in.Quantity <= 0 {
		return nil, &domain.InvalidQuantityError{Quantity: in.Quantity}
	}
	if in.Quantity > maxAddQuantity {
		return nil, domain.NewValidationError("cannot add more than %d items at once", maxAddQuantity)
	}

	product, err := uc.products.FindByID(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("could not load product %d: %w", in.ProductID, err)
	}
	if product == nil {
		return nil, &domain.ProductNotFoundError{ProductID: in.ProductID}
	}
	if !product.IsVisible {
		return nil, &domain.ProductUnavailableError{ProductID: product.ID, Name: product.Name}
	}

	cart, err := uc.carts.FindByCustomerID(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("could not load cart for user %d: %w", in.UserID, err)
	}
	if cart == nil {
		cart, err = domain.NewCart(in.UserID)
		if err != nil {
			return nil, err
		}
	}

	requestedTotal := in.Quantity
	if existing, ok := cart.Item(in.ProductID); ok {
		requestedTotal += existing.Quantity
	}
	if !product.HasSufficientStock(requestedTotal) {
		uc.log.Warnf("Use Case: User %d requested %d of product %d but only %d in stock",
			in.UserID, requestedTotal, product.ID, product.StockQuantity)
		return nil, &domain.InsufficientStockError{
			ProductID: product.ID,
			Requested: requestedTotal,
			Available: product.StockQuantity,
		}
	}

	if err := cart.AddItem(in.ProductID, in.Quantity); err != nil {
		return nil, err
	}

	saved, err := uc.carts.Save(ctx, cart)
	if err != nil {
		return nil, fmt.Errorf("could not save cart for user %d: %w", in.UserID, err)
	}

	uc.log.Infof("Use Case: Added %d of product %d to cart %d (user %d)",
		in.Quantity, in.ProductID, saved.ID, in.UserID)
	return &AddToCartOutput{
		CartID:        saved.ID,
		TotalItems:    saved.ItemCount(),
		TotalQuantity: saved.TotalQuantity(),
		Message:       fmt.Sprintf("Added %d item(s) to cart", in.Quantity),
	}, nil
}

type CartLineView struct {
	CartItemID     int
	ProductID      int
	ProductName    string
	ProductImage   string
	UnitPrice      domain.Money
	Quantity       int
	Subtotal       domain.Money
	StockAvailable int
	IsAvailable    bool
}

type ViewCartOutput struct {
	CartID     int
	Lines      []CartLineView
	TotalItems int
	Total      domain.Money
}

// ViewCartUseCase renders the cart against the live catalog: prices and
// availability come from the products, not from the cart lines.
type ViewCartUseCase struct {
	carts    domain.CartRepository
	products domain.ProductRepository
	log      *logrus.Logger
}

func NewViewCartUseCase(carts domain.CartRepository, products domain.ProductRepository, logger *logrus.Logger) *ViewCartUseCase {
	return &ViewCartUseCase{carts: carts, products: products, log: logger}
}

func (uc *ViewCartUseCase) Execute(ctx context.Context, userID int) (*ViewCartOutput, error) {
	if userID <= 0 {
		return nil, domain.NewValidationError("invalid user ID: %d", userID)
	}

	cart, err := uc.carts.FindByCustomerID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not load cart for user %d: %w", userID, err)
	}
	if cart == nil {
		return &ViewCartOutput{Total: domain.ZeroMoney(domain.DefaultCurrency)}, nil
	}

	out := &ViewCartOutput{
		CartID:     cart.ID,
		TotalItems: cart.ItemCount(),
		Total:      domain.ZeroMoney(domain.DefaultCurrency),
	}
	for _, item := range cart.Items() {
		product, err := uc.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("could not load product %d: %w", item.ProductID, err)
		}
		if product == nil {
			// Keep the line visible so the customer can remove it.
			out.Lines = append(out.Lines, CartLineView{
				CartItemID:  item.CartItemID,
				ProductID:   item.ProductID,
				ProductName: "Product Not Found",
				Quantity:    item.Quantity,
			})
			continue
		}

		subtotal, err := product.Price.MultiplyInt(item.Quantity)
		if err != nil {
			return nil, err
		}
		line := CartLineView{
			CartItemID:     item.CartItemID,
			ProductID:      product.ID,
			ProductName:    product.Name,
			ProductImage:   product.ImageURL,
			UnitPrice:      product.Price,
			Quantity:       item.Quantity,
			Subtotal:       subtotal,
			StockAvailable: product.StockQuantity,
			IsAvailable:    product.IsVisible && product.HasSufficientStock(item.Quantity),
		}
		out.Lines = append(out.Lines, line)

		out.Total, err = out.Total.Add(subtotal)
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

type UpdateCartItemInput struct {
	UserID      int
	ProductID   int
	NewQuantity int
}

type UpdateCartItemOutput struct {
	CartID      int
	ProductID   int
	NewQuantity int
	Message     string
}

// UpdateCartItemUseCase sets an absolute quantity for a cart line. Setting
// zero is rejected; the remove operation exists for that.
type UpdateCartItemUseCase struct {
	carts    domain.CartRepository
	products domain.ProductRepository
	log      *logrus.Logger
}

func NewUpdateCartItemUseCase(carts domain.CartRepository, products domain.ProductRepository, logger *logrus.Logger) *UpdateCartItemUseCase {
	return &UpdateCartItemUseCase{carts: carts, products: products, log: logger}
}

func (uc *UpdateCartItemUseCase) Execute(ctx context.Context, in UpdateCartItemInput) (*UpdateCartItemOutput, error) {
	if in.UserID <= 0 {
		return nil, domain.NewValidationError("invalid user ID: %d", in.UserID)
	}
	if in.ProductID <= 0 {
		return nil, domain.NewValidationError("invalid product ID: %d", in.ProductID)
	}
	if in.NewQuantity <= 0 {
		return nil, &domain.InvalidQuantityError{Quantity: in.NewQuantity}
	}

	cart, err := uc.carts.FindByCustomerID(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("could not load cart for user %d: %w", in.UserID, err)
	}
	if cart == nil || !cart.HasItem(in.ProductID) {
		return nil, &domain.ProductNotInCartError{ProductID: in.ProductID}
	}

	product, err := uc.products.FindByID(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("could not load product %d: %w", in.ProductID, err)
	}
	if product != nil && !product.HasSufficientStock(in.NewQuantity) {
		return nil, &domain.InsufficientStockError{
			ProductID: product.ID,
			Requested: in.NewQuantity,
			Available: product.StockQuantity,
		}
	}

	if err := cart.UpdateItemQuantity(in.ProductID, in.NewQuantity); err != nil {
		return nil, err
	}

	saved, err := uc.carts.Save(ctx, cart)
	if err != nil {
		return nil, fmt.Errorf("could not save cart for user %d: %w", in.UserID, err)
	}

	uc.log.Infof("Use Case: Updated product %d in cart %d to quantity %d", in.ProductID, saved.ID, in.NewQuantity)
	return &UpdateCartItemOutput{
		CartID:      saved.ID,
		ProductID:   in.ProductID,
		NewQuantity: in.NewQuantity,
		Message:     fmt.Sprintf("Updated quantity to %d", in.NewQuantity),
	}, nil
}

type RemoveCartItemInput struct {
	UserID    int
	ProductID int
}

type RemoveCartItemOutput struct {
	CartID  int
	Message string
}

type RemoveCartItemUseCase struct {
	carts domain.CartRepository
	log   *logrus.Logger
}

func NewRemoveCartItemUseCase(carts domain.CartRepository, logger *logrus.Logger) *RemoveCartItemUseCase {
	return &RemoveCartItemUseCase{carts: carts, log: logger}
}

func (uc *RemoveCartItemUseCase) Execute(ctx context.Context, in RemoveCartItemInput) (*RemoveCartItemOutput, error) {
	if in.UserID <= 0 {
		return nil, domain.NewValidationError("invalid user ID: %d", in.UserID)
	}
	if in.ProductID <= 0 {
		return nil, domain.NewValidationError("invalid product ID: %d", in.ProductID)
	}

	cart, err := uc.carts.FindByCustomerID(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("could not load cart for user %d: %w", in.UserID, err)
	}
	if cart == nil {
		return nil, &domain.ProductNotInCartError{ProductID: in.ProductID}
	}

	if err := cart.RemoveItem(in.ProductID); err != nil {
		return nil, err
	}

	saved, err := uc.carts.Save(ctx, cart)
	if err != nil {
		return nil, fmt.Errorf("could not save cart for user %d: %w", in.UserID, err)
	}

	uc.log.Infof("Use Case: Removed product %d from cart %d (user %d)", in.ProductID, saved.ID, in.UserID)
	return &RemoveCartItemOutput{
		CartID:  saved.ID,
		Message: "Item removed from cart",
	}, nil
}
