package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	productsvc "storefront/internal/service/product"
)

func (h *handlers) listCategories(c *gin.Context) {
	categories, err := h.deps.CategorySvc.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, newList(categories))
}

func (h *handlers) listProducts(c *gin.Context) {
	q, err := parseProductQuery(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}
	products, err := h.deps.ProductSvc.List(c.Request.Context(), q)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, newList(products))
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.deps.ProductSvc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) relatedProducts(c *gin.Context) {
	products, err := h.deps.ProductSvc.Related(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, newList(products))
}

func (h *handlers) featuredProducts(c *gin.Context) {
	products, err := h.deps.ProductSvc.Featured(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, newList(products))
}

func (h *handlers) newArrivals(c *gin.Context) {
	products, err := h.deps.ProductSvc.NewArrivals(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, newList(products))
}

// parseProductQuery reads the listing controls. category may repeat or hold
// a comma separated list.
func parseProductQuery(c *gin.Context) (productsvc.Query, error) {
	q := productsvc.Query{
		Search: c.Query("q"),
		Sort:   c.Query("sort"),
	}
	for _, raw := range c.QueryArray("category") {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				q.Categories = append(q.Categories, part)
			}
		}
	}
	var err error
	if q.MinPrice, err = decimalParam(c, "minPrice"); err != nil {
		return q, err
	}
	if q.MaxPrice, err = decimalParam(c, "maxPrice"); err != nil {
		return q, err
	}
	if v := c.Query("inStock"); v != "" {
		if q.InStockOnly, err = strconv.ParseBool(v); err != nil {
			return q, errInvalidParam("inStock")
		}
	}
	return q, nil
}

func decimalParam(c *gin.Context, name string) (*decimal.Decimal, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return nil, errInvalidParam(name)
	}
	return &d, nil
}

type errInvalidParam string

func (e errInvalidParam) Error() string {
	return "invalid " + string(e)
}
