// internal/router/router.go
package router

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/delivery-storefront/internal/config"
	"github.com/javajoker/delivery-storefront/internal/handlers"
	"github.com/javajoker/delivery-storefront/internal/i18n"
	"github.com/javajoker/delivery-storefront/internal/middleware"
	"github.com/javajoker/delivery-storefront/internal/services"
)

func Initialize(cfg *config.Config, catalog *services.CatalogService, sessions *services.SessionManager, limiters *middleware.Limiters) *gin.Engine {
	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalog, sessions, cfg.Storefront.PreferredOrder)
	cartHandler := handlers.NewCartHandler(catalog, sessions)
	uiHandler := handlers.NewUIHandler(catalog, sessions)
	notificationHandler := handlers.NewNotificationHandler(sessions)
	orderHandler := handlers.NewOrderHandler(sessions)

	// Initialize Gin router
	r := gin.New()

	// Cart line keys embed option text and may contain escaped slashes.
	r.UseRawPath = true
	r.UnescapePathValues = true

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Session())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.I18nMiddleware(supportedLanguages(cfg.I18n.DefaultLocale)))
	r.Use(limiters.General.Middleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		snapshot := catalog.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"version":  "1.0.0",
			"products": len(snapshot.Products),
			"sessions": sessions.Count(),
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		catalogRoutes := v1.Group("/catalog")
		{
			catalogRoutes.GET("", catalogHandler.GetCatalog)
			catalogRoutes.POST("/refresh", catalogHandler.RefreshCatalog)
		}

		v1.GET("/menu", catalogHandler.GetMenu)

		products := v1.Group("/products")
		{
			products.GET("/:id", catalogHandler.GetProduct)
			products.POST("/:id/quote", catalogHandler.QuoteProduct)
		}

		cart := v1.Group("/cart")
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PATCH("/items/:key", cartHandler.UpdateQuantity)
			cart.DELETE("/items/:key", cartHandler.RemoveLine)
		}

		ui := v1.Group("/ui")
		{
			ui.GET("", uiHandler.GetState)
			ui.PUT("/selection", uiHandler.SelectProduct)
			ui.DELETE("/selection", uiHandler.ClearSelection)
			ui.POST("/cart/show", uiHandler.ShowCart)
			ui.POST("/cart/hide", uiHandler.HideCart)
			ui.POST("/checkout/show", uiHandler.ShowCheckout)
			ui.POST("/checkout/hide", uiHandler.HideCheckout)
			ui.PUT("/category", uiHandler.SetCategory)
		}

		notifications := v1.Group("/notifications")
		{
			notifications.GET("", notificationHandler.GetNotifications)
			notifications.DELETE("/:id", notificationHandler.DismissNotification)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("/preview", orderHandler.PreviewOrder)
			orders.POST("", limiters.Orders.Middleware(), orderHandler.SubmitOrder)
			orders.GET("/pending", orderHandler.GetPendingOrder)
			orders.POST("/:id/confirm", orderHandler.ConfirmOrder)
			orders.DELETE("/:id", orderHandler.CancelOrder)
		}
	}

	return r
}

// supportedLanguages puts the default locale first so it wins when nothing matches.
func supportedLanguages(defaultLocale string) []string {
	var rest []string
	for _, lang := range i18n.GetSupportedLanguages() {
		if lang != defaultLocale {
			rest = append(rest, lang)
		}
	}
	sort.Strings(rest)
	return append([]string{defaultLocale}, rest...)
}
