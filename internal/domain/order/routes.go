package order

import "github.com/gin-gonic/gin"

// RegisterClientRoutes registers the public customer routes.
func RegisterClientRoutes(r *gin.RouterGroup, h *Handler) {
	client := r.Group("/client")
	{
		client.POST("/submit", h.Submit)
		client.GET("/orders/active", h.Active)
	}
}

// RegisterAdminRoutes registers the operator routes. The caller attaches
// the shared-secret middleware to the group.
func RegisterAdminRoutes(r *gin.RouterGroup, h *AdminHandler) {
	orders := r.Group("/orders")
	{
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.POST("/:id/deliver", h.Deliver)
		orders.DELETE("/:id", h.Delete)
	}
}

// RegisterDeliveryRoutes registers the token-addressed delivery routes.
func RegisterDeliveryRoutes(r *gin.RouterGroup, h *DeliveryHandler) {
	r.GET("/:token", h.Page)
	r.GET("/:token/data", h.Data)
	r.GET("/:token/history", h.History)
	r.POST("/:token/viewed", h.Viewed)
	r.POST("/:token/downloaded", h.Downloaded)
}
