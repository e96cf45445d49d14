package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/service/checkout"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type cartResponse struct {
	Cart    domain.Cart          `json:"cart"`
	Totals  domain.Totals        `json:"totals"`
	Coupon  *domain.CouponResult `json:"coupon,omitempty"`
	Warning string               `json:"warning,omitempty"`
}

type orderResponse struct {
	Order   *domain.Order `json:"order"`
	Warning string        `json:"warning,omitempty"`
}

type listResponse[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

func newList[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Count: len(items), Results: items}
}

const persistWarning = "Your cart could not be saved and may be lost on reload."

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorResponse{Error: code, Message: message})
}

// writeDomainError maps service errors to HTTP statuses.
func writeDomainError(c *gin.Context, err error) {
	var verr *checkout.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid_request", Message: "Please correct the highlighted fields", Fields: verr.Fields})
	case errors.Is(err, domain.ErrNotFound):
		writeError(c, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrInvalidQuantity):
		writeError(c, http.StatusBadRequest, "invalid_quantity", err.Error())
	case errors.Is(err, domain.ErrEmptyCart):
		writeError(c, http.StatusConflict, "empty_cart", "Your cart is empty")
	case errors.Is(err, domain.ErrCheckoutInProgress):
		writeError(c, http.StatusConflict, "checkout_in_progress", "A checkout for this cart is already in progress")
	case errors.Is(err, domain.ErrPaymentFailed):
		writeError(c, http.StatusPaymentRequired, "payment_failed", "Payment could not be processed")
	default:
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
