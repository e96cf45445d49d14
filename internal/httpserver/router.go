package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
	"storefront/internal/service/checkout"
	productsvc "storefront/internal/service/product"
)

type ProductService interface {
	List(ctx context.Context, q productsvc.Query) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Related(ctx context.Context, slug string) ([]domain.Product, error)
	Featured(ctx context.Context) ([]domain.Product, error)
	NewArrivals(ctx context.Context) ([]domain.Product, error)
}

type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type CartService interface {
	Open(ctx context.Context, sessionID string) (*cartsvc.Store, error)
}

type CheckoutService interface {
	PlaceOrder(ctx context.Context, store checkout.CartStore, req checkout.Request) (*domain.Order, error)
}

type AnonymousService interface {
	Issue(ctx context.Context) (accessToken, anonymousID string, err error)
	LookupByToken(ctx context.Context, token string) (string, error)
	TTLSeconds() int
}

// Pinger reports whether the cart state backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	ProductSvc   ProductService
	CategorySvc  CategoryService
	CartSvc      CartService
	CheckoutSvc  CheckoutService
	AnonymousSvc AnonymousService
	Storage      Pinger
	CORSOrigins  []string
}

func (d Deps) validate() error {
	switch {
	case d.ProductSvc == nil:
		return errors.New("product service is required")
	case d.CategorySvc == nil:
		return errors.New("category service is required")
	case d.CartSvc == nil:
		return errors.New("cart service is required")
	case d.CheckoutSvc == nil:
		return errors.New("checkout service is required")
	case d.AnonymousSvc == nil:
		return errors.New("anonymous service is required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.SugaredLogger, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery(), corsMiddleware(deps.CORSOrigins))

	h := &handlers{deps: deps, logger: logger}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Storage))

	router.POST("/anonymous/token", h.issueToken)

	router.GET("/categories", h.listCategories)
	router.GET("/products", h.listProducts)
	router.GET("/products/:slug", h.getProduct)
	router.GET("/products/:slug/related", h.relatedProducts)
	router.GET("/collections/featured", h.featuredProducts)
	router.GET("/collections/new-arrivals", h.newArrivals)

	me := router.Group("/me", sessionMiddleware(deps.AnonymousSvc))
	me.GET("/cart", h.getCart)
	me.DELETE("/cart", h.clearCart)
	me.POST("/cart/items", h.addItem)
	me.PATCH("/cart/items/:productId", h.setQuantity)
	me.DELETE("/cart/items/:productId", h.removeItem)
	me.POST("/cart/coupon", h.applyCoupon)
	me.DELETE("/cart/coupon", h.removeCoupon)
	me.POST("/checkout", h.checkout)

	return router, nil
}

type handlers struct {
	deps   Deps
	logger *zap.SugaredLogger
}

func requestLogger(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}
		switch {
		case c.Writer.Status() >= 500:
			logger.Errorw("http request", fields...)
		case c.Writer.Status() >= 400:
			logger.Warnw("http request", fields...)
		default:
			logger.Debugw("http request", fields...)
		}
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

type ctxKey string

const sessionCtxKey ctxKey = "session"

// sessionMiddleware resolves the bearer token to an anonymous session id.
func sessionMiddleware(sessions AnonymousService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			writeError(c, http.StatusUnauthorized, "invalid_token", "missing bearer token")
			c.Abort()
			return
		}
		sessionID, err := sessions.LookupByToken(c.Request.Context(), token)
		if err != nil {
			writeError(c, http.StatusUnauthorized, "invalid_token", "invalid or expired token")
			c.Abort()
			return
		}
		ctx := context.WithValue(c.Request.Context(), sessionCtxKey, sessionID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func sessionFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionCtxKey).(string)
	return id
}
