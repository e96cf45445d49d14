package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/service/checkout"
)

func (h *handlers) issueToken(c *gin.Context) {
	token, anonymousID, err := h.deps.AnonymousSvc.Issue(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   h.deps.AnonymousSvc.TTLSeconds(),
		"anonymous_id": anonymousID,
	})
}

func (h *handlers) checkout(c *gin.Context) {
	var req checkout.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", "malformed body")
		return
	}
	store := h.openCart(c)
	if store == nil {
		return
	}
	order, err := h.deps.CheckoutSvc.PlaceOrder(c.Request.Context(), store, req)
	if err != nil && (order == nil || !errors.Is(err, domain.ErrPersist)) {
		writeDomainError(c, err)
		return
	}
	resp := orderResponse{Order: order}
	if err != nil {
		h.logger.Warnw("http: cart not cleared after checkout", "order_id", order.ID, "error", err)
		resp.Warning = persistWarning
	}
	c.JSON(http.StatusCreated, resp)
}
