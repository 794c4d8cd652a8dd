package catalog

import (
	"foodgram/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	staffOnly := middleware.RequireRole("staff", "admin")

	tags := r.Group("/tags")
	{
		tags.GET("", h.ListTags)
		tags.GET("/:id", h.GetTag)
		tags.POST("", middleware.RequireAuth(), staffOnly, h.CreateTag)
	}

	ingredients := r.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.GET("/:id", h.GetIngredient)
		ingredients.POST("", middleware.RequireAuth(), staffOnly, h.CreateIngredient)
	}
}
