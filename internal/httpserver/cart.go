package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type couponRequest struct {
	Code string `json:"code"`
}

// openCart resolves the caller's cart store. It writes the error response
// itself and returns nil on failure.
func (h *handlers) openCart(c *gin.Context) *cartsvc.Store {
	store, err := h.deps.CartSvc.Open(c.Request.Context(), sessionFromContext(c.Request.Context()))
	if err != nil {
		writeDomainError(c, err)
		return nil
	}
	return store
}

// respondCart answers with the cart after a mutation. A persistence failure
// still returns the applied state, flagged with a warning.
func (h *handlers) respondCart(c *gin.Context, store *cartsvc.Store, status int, mutErr error) {
	resp := cartResponse{}
	if mutErr != nil {
		if !errors.Is(mutErr, domain.ErrPersist) {
			writeDomainError(c, mutErr)
			return
		}
		h.logger.Warnw("http: cart change not persisted", "key", store.Key(), "error", mutErr)
		resp.Warning = persistWarning
	}
	resp.Cart, resp.Totals = store.View()
	c.JSON(status, resp)
}

func (h *handlers) getCart(c *gin.Context) {
	store := h.openCart(c)
	if store == nil {
		return
	}
	h.respondCart(c, store, http.StatusOK, nil)
}

func (h *handlers) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", "productId is required")
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if qty <= 0 {
		writeDomainError(c, domain.ErrInvalidQuantity)
		return
	}
	product, err := h.deps.ProductSvc.Get(c.Request.Context(), req.ProductID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	store := h.openCart(c)
	if store == nil {
		return
	}
	err = store.AddItem(c.Request.Context(), *product, qty)
	h.respondCart(c, store, http.StatusOK, err)
}

func (h *handlers) setQuantity(c *gin.Context) {
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", "quantity is required")
		return
	}
	store := h.openCart(c)
	if store == nil {
		return
	}
	err := store.SetQuantity(c.Request.Context(), c.Param("productId"), *req.Quantity)
	h.respondCart(c, store, http.StatusOK, err)
}

func (h *handlers) removeItem(c *gin.Context) {
	store := h.openCart(c)
	if store == nil {
		return
	}
	err := store.RemoveItem(c.Request.Context(), c.Param("productId"))
	h.respondCart(c, store, http.StatusOK, err)
}

func (h *handlers) clearCart(c *gin.Context) {
	store := h.openCart(c)
	if store == nil {
		return
	}
	err := store.Clear(c.Request.Context())
	h.respondCart(c, store, http.StatusOK, err)
}

func (h *handlers) applyCoupon(c *gin.Context) {
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", "malformed body")
		return
	}
	store := h.openCart(c)
	if store == nil {
		return
	}
	result, err := store.ApplyCoupon(c.Request.Context(), req.Code)
	if err != nil && !errors.Is(err, domain.ErrPersist) {
		writeDomainError(c, err)
		return
	}
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	resp := cartResponse{Coupon: &result}
	if err != nil {
		h.logger.Warnw("http: coupon not persisted", "key", store.Key(), "error", err)
		resp.Warning = persistWarning
	}
	resp.Cart, resp.Totals = store.View()
	c.JSON(status, resp)
}

func (h *handlers) removeCoupon(c *gin.Context) {
	store := h.openCart(c)
	if store == nil {
		return
	}
	err := store.RemoveCoupon(c.Request.Context())
	h.respondCart(c, store, http.StatusOK, err)
}
