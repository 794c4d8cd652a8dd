package shoplist

import (
	"mime"
	"net/http"

	"foodgram/internal/middleware"
	"foodgram/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service       *Service
	defaultFormat string
}

func NewHandler(service *Service, defaultFormat string) *Handler {
	if defaultFormat == "" {
		defaultFormat = FormatPDF
	}
	return &Handler{service: service, defaultFormat: defaultFormat}
}

// Download godoc
// @Summary Download the shopping list
// @Description Ingredients of every recipe in the cart, summed by name and unit.
// @Tags Recipes
// @Security BearerAuth
// @Produce application/pdf
// @Produce text/plain
// @Param format query string false "pdf or txt"
// @Success 200 {file} file
// @Failure 401 {object} map[string]interface{}
// @Router /recipes/download_shopping_cart [get]
func (h *Handler) Download(c *gin.Context) {
	format := c.DefaultQuery("format", h.defaultFormat)

	file, err := h.service.Export(c.Request.Context(), middleware.UserID(c), format)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/recipes/download_shopping_cart", middleware.RequireAuth(), h.Download)
}
