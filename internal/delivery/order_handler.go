package delivery

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hayamij/PY-CameraShop-sub000/internal/usecase"
)

type OrderHandler struct {
	placeOrder   *usecase.PlaceOrderUseCase
	cancelOrder  *usecase.CancelOrderUseCase
	updateStatus *usecase.UpdateOrderStatusUseCase
	shipOrder    *usecase.ShipOrderUseCase
	complete     *usecase.CompleteOrderUseCase
	deleteOrder  *usecase.DeleteOrderUseCase
	myOrders     *usecase.GetMyOrdersUseCase
	orderDetail  *usecase.GetOrderDetailUseCase
	log          *logrus.Logger
}

func NewOrderHandler(
	placeOrder *usecase.PlaceOrderUseCase,
	cancelOrder *usecase.CancelOrderUseCase,
	updateStatus *usecase.UpdateOrderStatusUseCase,
	shipOrder *usecase.ShipOrderUseCase,
	complete *usecase.CompleteOrderUseCase,
	deleteOrder *usecase.DeleteOrderUseCase,
	myOrders *usecase.GetMyOrdersUseCase,
	orderDetail *usecase.GetOrderDetailUseCase,
	logger *logrus.Logger,
) *OrderHandler {
	return &OrderHandler{
		placeOrder:   placeOrder,
		cancelOrder:  cancelOrder,
		updateStatus: updateStatus,
		shipOrder:    shipOrder,
		complete:     complete,
		deleteOrder:  deleteOrder,
		myOrders:     myOrders,
		orderDetail:  orderDetail,
		log:          logger,
	}
}

func (h *OrderHandler) RegisterRoutes(router gin.IRouter) {
	orders := router.Group("/orders")
	{
		orders.POST("/checkout", h.Checkout)
		orders.GET("", h.MyOrders)
		orders.GET("/:id", h.OrderDetail)
		orders.POST("/:id/cancel", h.Cancel)
		orders.POST("/:id/complete", h.Complete)
	}
	// Admin routes: the caller in front of this router enforces the admin
	// role (out of scope here).
	admin := router.Group("/admin/orders")
	{
		admin.PATCH("/:id/status", h.UpdateStatus)
		admin.POST("/:id/ship", h.Ship)
		admin.GET("/:id", h.AdminOrderDetail)
		admin.DELETE("/:id", h.Delete)
	}
}

// userIDFromHeader reads the authenticated user forwarded by the gateway.
func userIDFromHeader(c *gin.Context) (int, bool) {
	raw := c.GetHeader("X-User-ID")
	if raw == "" {
		ErrorResponse(c, http.StatusUnauthorized, "User identification missing")
		return 0, false
	}
	userID, err := strconv.Atoi(raw)
	if err != nil || userID <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "Invalid user identification data")
		return 0, false
	}
	return userID, true
}

func orderIDFromPath(c *gin.Context) (int, bool) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "Invalid order ID format")
		return 0, false
	}
	return id, true
}

type checkoutRequest struct {
	ShippingAddress string `json:"shipping_address"`
	PhoneNumber     string `json:"phone_number"`
	PaymentMethod   string `json:"payment_method"`
	Notes           string `json:"notes"`
}

func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind JSON for checkout (user %d): %v", userID, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	out, err := h.placeOrder.Execute(c.Request.Context(), usecase.PlaceOrderInput{
		CustomerID:      userID,
		ShippingAddress: req.ShippingAddress,
		PhoneNumber:     req.PhoneNumber,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	})
	if err != nil {
		h.log.Warnf("Checkout failed for user %d: %v", userID, err)
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, out.Message, gin.H{
		"order_id":     out.OrderID,
		"total_amount": out.TotalAmount.Amount(),
		"currency":     out.TotalAmount.Currency(),
	})
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	orderID, ok := orderIDFromPath(c)
	if !ok {
		return
	}

	out, err := h.cancelOrder.Execute(c.Request.Context(), usecase.CancelOrderInput{
		OrderID:          orderID,
		RequestingUserID: userID,
	})
	if err != nil {
		h.log.Warnf("Cancel failed for order %d (user %d): %v", orderID, userID, err)
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, out.Message, gin.H{"order_id": out.OrderID})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := orderIDFromPath(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	out, err := h.updateStatus.Execute(c.Request.Context(), usecase.UpdateOrderStatusInput{
		OrderID:   orderID,
		NewStatus: req.Status,
	})
	if err != nil {
		h.log.Warnf("Status update failed for order %d: %v", orderID, err)
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, out.Message, gin.H{
		"order_id":   out.OrderID,
		"old_status": out.OldStatus,
		"new_status": out.NewStatus,
	})
}

func (h *OrderHandler) Ship(c *gin.Context) {
	orderID, ok := orderIDFromPath(c)
	if !ok {
		return
	}

	out, err := h.shipOrder.Execute(c.Request.Context(), orderID)
	if err != nil {
		h.log.Warnf("Ship failed for order %d: %v", orderID, err)
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, out.Message, gin.H{
		"order_id":   out.OrderID,
		"new_status": out.NewStatus,
	})
}

func (h *OrderHandler) Complete(c *gin.Context) {
	orderID, ok := orderIDFromPath(c)
	if !ok {
		return
	}

	out, err := h.complete.Execute(c.Request.Context(), orderID)
	if err != nil {
		h.log.Warnf("Complete failed for order %d: %v", orderID, err)
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, out.Message, gin.H{
		"order_id":   out.OrderID,
		"new_status": out.NewStatus,
	})
}

func (h *OrderHandler) Delete(c *gin.Context) {
	orderID, ok := orderIDFromPath(c)
	if !ok {
		return
	}

	out, err := h.deleteOrder.Execute(c.Request.Context(), orderID)
	if err != nil {
		h.log.Warnf("Delete failed for order %d: %v", orderID, err)
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, out.Message, gin.H{"order_id": out.OrderID})
}

func (h *OrderHandler) MyOrders(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}

	out, err := h.myOrders.Execute(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		h.log.Warnf("Listing orders failed for user %d: %v", userID, err)
		FailFromError(c, err)
		return
	}

	summaries := make([]gin.H, 0, len(out.Orders))
	for _, o := range out.Orders {
		summaries = append(summaries, gin.H{
			"order_id":         o.OrderID,
			"total_amount":     o.TotalAmount.Amount(),
			"currency":         o.TotalAmount.Currency(),
			"status":           o.Status,
			"payment_method":   o.PaymentMethod,
			"shipping_address": o.ShippingAddress,
			"phone_number":     o.PhoneNumber,
			"notes":            o.Notes,
			"created_at":       o.CreatedAt,
			"item_count":       o.ItemCount,
		})
	}
	SuccessResponse(c, http.StatusOK, "Orders retrieved successfully", gin.H{
		"orders":       summaries,
		"total_orders": out.TotalOrders,
	})
}

func (h *OrderHandler) OrderDetail(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	orderID, ok := orderIDFromPath(c)
	if !ok {
		return
	}
	h.respondOrderDetail(c, usecase.GetOrderDetailInput{
		OrderID:          orderID,
		RequestingUserID: userID,
	})
}

func (h *OrderHandler) AdminOrderDetail(c *gin.Context) {
	orderID, ok := orderIDFromPath(c)
	if !ok {
		return
	}
	h.respondOrderDetail(c, usecase.GetOrderDetailInput{
		OrderID: orderID,
		IsAdmin: true,
	})
}

func (h *OrderHandler) respondOrderDetail(c *gin.Context, in usecase.GetOrderDetailInput) {
	out, err := h.orderDetail.Execute(c.Request.Context(), in)
	if err != nil {
		h.log.Warnf("Order detail failed for order %d: %v", in.OrderID, err)
		FailFromError(c, err)
		return
	}

	lines := make([]gin.H, 0, len(out.Lines))
	for _, line := range out.Lines {
		lines = append(lines, gin.H{
			"product_id":    line.ProductID,
			"product_name":  line.ProductName,
			"product_image": line.ProductImage,
			"quantity":      line.Quantity,
			"unit_price":    line.UnitPrice.Amount(),
			"subtotal":      line.Subtotal.Amount(),
		})
	}
	SuccessResponse(c, http.StatusOK, "Order retrieved successfully", gin.H{
		"order_id":         out.OrderID,
		"customer_id":      out.CustomerID,
		"status":           out.Status,
		"payment_method":   out.PaymentMethod,
		"shipping_address": out.ShippingAddress,
		"phone_number":     out.PhoneNumber,
		"notes":            out.Notes,
		"items":            lines,
		"total_amount":     out.TotalAmount.Amount(),
		"currency":         out.TotalAmount.Currency(),
		"created_at":       out.CreatedAt,
	})
}
