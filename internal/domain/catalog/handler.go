package catalog

import (
	"net/http"
	"strconv"

	"foodgram/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/* ---------- TAGS ---------- */

// ListTags godoc
// @Summary List tags
// @Tags Catalog
// @Produce json
// @Success 200 {array} Tag
// @Router /tags [get]
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.service.ListTags(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	if tags == nil {
		tags = []Tag{}
	}
	response.Success(c, http.StatusOK, tags)
}

// GetTag godoc
// @Summary Get tag
// @Tags Catalog
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} Tag
// @Failure 404 {object} map[string]interface{}
// @Router /tags/{id} [get]
func (h *Handler) GetTag(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	tag, err := h.service.GetTag(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tag)
}

// CreateTag godoc
// @Summary Create tag (staff)
// @Tags Catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body Tag true "Tag"
// @Success 201 {object} Tag
// @Router /tags [post]
func (h *Handler) CreateTag(c *gin.Context) {
	var tag Tag
	if err := c.ShouldBindJSON(&tag); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := h.service.CreateTag(c.Request.Context(), &tag); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, tag)
}

/* ---------- INGREDIENTS ---------- */

// ListIngredients godoc
// @Summary Search ingredients
// @Description Case-insensitive prefix search by name. Not paginated.
// @Tags Catalog
// @Produce json
// @Param name query string false "Name prefix"
// @Success 200 {array} Ingredient
// @Router /ingredients [get]
func (h *Handler) ListIngredients(c *gin.Context) {
	items, err := h.service.SearchIngredients(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	if items == nil {
		items = []Ingredient{}
	}
	response.Success(c, http.StatusOK, items)
}

// GetIngredient godoc
// @Summary Get ingredient
// @Tags Catalog
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} Ingredient
// @Router /ingredients/{id} [get]
func (h *Handler) GetIngredient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := h.service.GetIngredient(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

// CreateIngredient godoc
// @Summary Create ingredient (staff)
// @Tags Catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body Ingredient true "Ingredient"
// @Success 201 {object} Ingredient
// @Router /ingredients [post]
func (h *Handler) CreateIngredient(c *gin.Context) {
	var item Ingredient
	if err := c.ShouldBindJSON(&item); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := h.service.CreateIngredient(c.Request.Context(), &item); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, item)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}
