package delivery

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hayamij/PY-CameraShop-sub000/internal/usecase"
)

type CartHandler struct {
	addToCart  *usecase.AddToCartUseCase
	viewCart   *usecase.ViewCartUseCase
	updateItem *usecase.UpdateCartItemUseCase
	removeItem *usecase.RemoveCartItemUseCase
	log        *logrus.Logger
}

func NewCartHandler(
	addToCart *usecase.AddToCartUseCase,
	viewCart *usecase.ViewCartUseCase,
	updateItem *usecase.UpdateCartItemUseCase,
	removeItem *usecase.RemoveCartItemUseCase,
	logger *logrus.Logger,
) *CartHandler {
	return &CartHandler{
		addToCart:  addToCart,
		viewCart:   viewCart,
		updateItem: updateItem,
		removeItem: removeItem,
		log:        logger,
	}
}

func (h *CartHandler) RegisterRoutes(router gin.IRouter) {
	cart := router.Group("/cart")
	{
		cart.GET("", h.View)
		cart.POST("/items", h.Add)
		cart.PATCH("/items/:productId", h.UpdateItem)
		cart.DELETE("/items/:productId", h.RemoveItem)
	}
}

func productIDFromPath(c *gin.Context) (int, bool) {
	idStr := c.Param("productId")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return 0, false
	}
	return id, true
}

type addToCartRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

func (h *CartHandler) Add(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	out, err := h.addToCart.Execute(c.Request.Context(), usecase.AddToCartInput{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.log.Warnf("Add to cart failed for user %d (product %d): %v", userID, req.ProductID, err)
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, out.Message, gin.H{
		"cart_id":        out.CartID,
		"total_items":    out.TotalItems,
		"total_quantity": out.TotalQuantity,
	})
}

func (h *CartHandler) View(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}

	out, err := h.viewCart.Execute(c.Request.Context(), userID)
	if err != nil {
		h.log.Warnf("View cart failed for user %d: %v", userID, err)
		FailFromError(c, err)
		return
	}

	lines := make([]gin.H, 0, len(out.Lines))
	for _, line := range out.Lines {
		lines = append(lines, gin.H{
			"cart_item_id":    line.CartItemID,
			"product_id":      line.ProductID,
			"product_name":    line.ProductName,
			"product_image":   line.ProductImage,
			"unit_price":      line.UnitPrice.Amount(),
			"quantity":        line.Quantity,
			"subtotal":        line.Subtotal.Amount(),
			"stock_available": line.StockAvailable,
			"is_available":    line.IsAvailable,
		})
	}
	SuccessResponse(c, http.StatusOK, "Cart retrieved successfully", gin.H{
		"cart_id":     out.CartID,
		"items":       lines,
		"total_items": out.TotalItems,
		"total":       out.Total.Amount(),
		"currency":    out.Total.Currency(),
	})
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	productID, ok := productIDFromPath(c)
	if !ok {
		return
	}

	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	out, err := h.updateItem.Execute(c.Request.Context(), usecase.UpdateCartItemInput{
		UserID:      userID,
		ProductID:   productID,
		NewQuantity: req.Quantity,
	})
	if err != nil {
		h.log.Warnf("Cart item update failed for user %d (product %d): %v", userID, productID, err)
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, out.Message, gin.H{
		"cart_id":      out.CartID,
		"product_id":   out.ProductID,
		"new_quantity": out.NewQuantity,
	})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	productID, ok := productIDFromPath(c)
	if !ok {
		return
	}

	out, err := h.removeItem.Execute(c.Request.Context(), usecase.RemoveCartItemInput{
		UserID:    userID,
		ProductID: productID,
	})
	if err != nil {
		h.log.Warnf("Cart item removal failed for user %d (product %d): %v", userID, productID, err)
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, out.Message, gin.H{"cart_id": out.CartID})
}
