package user

import (
	"foodgram/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to run OptionalAuth already.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth/token")
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", middleware.RequireAuth(), h.Logout)
	}

	users := r.Group("/users")
	{
		users.GET("", h.List)
		users.POST("", h.Register)
		users.GET("/me", middleware.RequireAuth(), h.Me)
		users.POST("/set_password", middleware.RequireAuth(), h.SetPassword)
		users.GET("/subscriptions", middleware.RequireAuth(), h.Subscriptions)
		users.GET("/:id", h.Get)
		users.POST("/:id/subscribe", middleware.RequireAuth(), h.Subscribe)
		users.DELETE("/:id/subscribe", middleware.RequireAuth(), h.Unsubscribe)
	}
}
