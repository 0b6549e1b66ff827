package delivery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hayamij/PY-CameraShop-sub000/internal/domain"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
	})
}

// FailFromError maps a use-case error onto an HTTP response. Business errors
// keep their message; anything unrecognized is an infrastructure failure and
// gets a generic message so driver errors never reach the caller.
func FailFromError(c *gin.Context, err error) {
	status, message := mapDomainError(err)
	ErrorResponse(c, status, message)
}

func mapDomainError(err error) (int, string) {
	var (
		validationErr   *domain.ValidationError
		quantityErr     *domain.InvalidQuantityError
		notFoundErr     *domain.ProductNotFoundError
		unavailableErr  *domain.ProductUnavailableError
		notInCartErr    *domain.ProductNotInCartError
		stockErr        *domain.InsufficientStockError
		orderNotFound   *domain.OrderNotFoundError
		alreadyShipped  *domain.OrderAlreadyShippedError
		badTransition   *domain.InvalidStatusTransitionError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &quantityErr):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &notFoundErr), errors.As(err, &orderNotFound), errors.As(err, &notInCartErr):
		return http.StatusNotFound, err.Error()
	case errors.As(err, &unavailableErr), errors.As(err, &stockErr),
		errors.As(err, &alreadyShipped), errors.As(err, &badTransition):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrEmptyCart), errors.Is(err, domain.ErrEmptyOrder):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, err.Error()
	default:
		return http.StatusInternalServerError, "An internal error occurred, please try again later"
	}
}
