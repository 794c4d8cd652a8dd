package recipe

import (
	"foodgram/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to run OptionalAuth already.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	recipes := r.Group("/recipes")
	{
		recipes.GET("", h.List)
		recipes.POST("", middleware.RequireAuth(), h.Create)
		recipes.GET("/:id", h.Get)
		recipes.PATCH("/:id", middleware.RequireAuth(), h.Update)
		recipes.DELETE("/:id", middleware.RequireAuth(), h.Delete)

		recipes.POST("/:id/favorite", middleware.RequireAuth(), h.AddFavorite)
		recipes.DELETE("/:id/favorite", middleware.RequireAuth(), h.RemoveFavorite)
		recipes.POST("/:id/shopping_cart", middleware.RequireAuth(), h.AddToCart)
		recipes.DELETE("/:id/shopping_cart", middleware.RequireAuth(), h.RemoveFromCart)
	}
}
