package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/znsio/specmatic-catalog-admin-go/internal/handlers"
	"github.com/znsio/specmatic-catalog-admin-go/internal/middleware"
)

func SetupRouter(productController *handlers.ProductController, gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.Default()

	// Health check
	r.GET("/health", handlers.HealthCheck(productController.ListView))
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	admin := r.Group("/admin")

	// List view
	admin.GET("/products", productController.ListProducts)
	admin.POST("/reload", productController.Reload)
	admin.PATCH("/products/:id/flags/:key", middleware.RequireFlagKey(), productController.ToggleFlag)
	admin.GET("/products/:id/edit", productController.OpenEdit)
	admin.PUT("/products/:id", productController.SaveEdit)

	// Two-step delete
	admin.POST("/products/:id/delete", productController.RequestDelete)
	admin.POST("/delete/confirm", productController.ConfirmDelete)
	admin.POST("/delete/cancel", productController.CancelDelete)

	// Create form
	admin.POST("/products", productController.CreateProduct)

	admin.GET("/notifications", productController.Notifications)

	return r
}
