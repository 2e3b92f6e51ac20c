package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "travelapp/internal/config"
	h "travelapp/internal/http/handlers"
	"travelapp/internal/http/middleware"
	"travelapp/internal/metrics"
	"travelapp/internal/repositories"
)

func NewRouter(env intconfig.Env, app *h.App, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(m), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(m.Handler()))

	secret := []byte(env.JWTSecret)
	tokenizerLimit := middleware.RateLimit(env.TokenizerRPS, int(env.TokenizerRPS*2))
	outcomeLimit := middleware.RateLimit(env.TokenizerRPS, int(env.TokenizerRPS*2))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", app.Login)
		auth.POST("/register", app.Register)

		// Catalog
		catalog := api.Group("/catalog")
		catalog.GET("/lodgings", app.ListCatalog(repositories.TableLodgings))
		catalog.GET("/experiences", app.ListCatalog(repositories.TableExperiences))
		catalog.GET("/destinations", app.ListCatalog(repositories.TableDestinations))
		catalog.GET("/pickup-locations", h.PickupLocations)

		// Checkout
		optional := api.Group("", middleware.AuthOptional(secret))
		optional.POST("/checkout/quote", app.Quote)
		optional.POST("/checkout/token", tokenizerLimit, app.PackageOrderTokenizer)
		optional.GET("/checkout/snap-config", app.SnapConfig)
		optional.POST("/checkout/outcome", outcomeLimit, app.CheckoutOutcome)
		optional.POST("/orders/summary", app.OrderSummary)
		// legacy tokenizer paths
		optional.POST("/package-order-tokenizer", tokenizerLimit, app.PackageOrderTokenizer)
		optional.POST("/regular-order-tokenizer", tokenizerLimit, app.RegularOrderTokenizer)

		// Gateway webhook
		api.POST("/payment-notification", app.PaymentNotification)
		api.POST("/midtrans-notification", app.PaymentNotification)

		// Orders
		orders := api.Group("/orders", middleware.AuthRequired(secret))
		orders.GET("", app.ListOrders)
		orders.GET("/:kind/:id", app.GetOrder)
		orders.GET("/:kind/:id/invoice", app.GetOrderInvoicePDF)

		// Admin
		admin := api.Group("/admin", middleware.AuthRequired(secret), middleware.RequireRoles("owner", "admin"))
		admin.GET("/dashboard", app.AdminDashboard)
		admin.GET("/orders/export", app.ExportOrders)
	}

	h.SetRouter(r)
	return r
}
