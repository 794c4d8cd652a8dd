package recipe

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"foodgram/internal/domain/user"
	"foodgram/internal/pkg/apperr"
	"foodgram/internal/pkg/pagination"
	"foodgram/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

var errInvalidBody = apperr.Validation("VALIDATION_ERROR", "Invalid request body")

type Handler struct {
	service *Service
	pages   pagination.Config
}

func NewHandler(service *Service, pages pagination.Config) *Handler {
	return &Handler{service: service, pages: pages}
}

// List godoc
// @Summary List recipes
// @Description Newest first. Tag slugs are OR-ed. is_favorited and is_in_shopping_cart only apply to authenticated users.
// @Tags Recipes
// @Produce json
// @Param author query int false "Author ID"
// @Param tags query []string false "Tag slugs" collectionFormat(multi)
// @Param is_favorited query int false "1 to keep only favorites"
// @Param is_in_shopping_cart query int false "1 to keep only recipes in the cart"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /recipes [get]
func (h *Handler) List(c *gin.Context) {
	viewerID := user.ActorFrom(c).ID
	p := h.pages.Parse(c)

	f := Filter{
		TagSlugs: nonEmpty(c.QueryArray("tags")),
		Limit:    p.Limit,
		Offset:   p.Offset(),
	}
	if raw := c.Query("author"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.FromError(c, apperr.ValidationFields(map[string]string{"author": "must be a user id"}))
			return
		}
		f.AuthorID = id
	}
	if queryFlag(c, "is_favorited") {
		f.FavoritedBy = viewerID
	}
	if queryFlag(c, "is_in_shopping_cart") {
		f.InCartOf = viewerID
	}

	recipes, total, err := h.service.List(c.Request.Context(), viewerID, f)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, pagination.NewPage(recipes, total, p))
}

// Get godoc
// @Summary Get recipe
// @Tags Recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} RecipeResponse
// @Failure 404 {object} map[string]interface{}
// @Router /recipes/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := user.ParseID(c, "id")
	if !ok {
		return
	}
	rec, err := h.service.Get(c.Request.Context(), user.ActorFrom(c).ID, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

// Create godoc
// @Summary Create recipe
// @Description JSON with the image as a base64 data URI, or multipart/form-data with an image file.
// @Tags Recipes
// @Security BearerAuth
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param body body WritePayload true "Recipe"
// @Success 201 {object} RecipeResponse
// @Failure 400 {object} map[string]interface{}
// @Router /recipes [post]
func (h *Handler) Create(c *gin.Context) {
	in, err := bindWriteInput(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	rec, err := h.service.Create(c.Request.Context(), user.ActorFrom(c), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rec)
}

// Update godoc
// @Summary Update recipe
// @Description Author or staff only. Ingredients and tags are replaced as a whole.
// @Tags Recipes
// @Security BearerAuth
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Recipe ID"
// @Param body body WritePayload true "Recipe"
// @Success 200 {object} RecipeResponse
// @Failure 403 {object} map[string]interface{}
// @Router /recipes/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	id, ok := user.ParseID(c, "id")
	if !ok {
		return
	}
	in, err := bindWriteInput(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	rec, err := h.service.Update(c.Request.Context(), user.ActorFrom(c), id, in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

// Delete godoc
// @Summary Delete recipe
// @Tags Recipes
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 204
// @Router /recipes/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := user.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), user.ActorFrom(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddFavorite godoc
// @Summary Add recipe to favorites
// @Tags Recipes
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 201 {object} user.RecipeBrief
// @Failure 409 {object} map[string]interface{}
// @Router /recipes/{id}/favorite [post]
func (h *Handler) AddFavorite(c *gin.Context) { h.addMark(c, MarkFavorite) }

// RemoveFavorite godoc
// @Summary Remove recipe from favorites
// @Tags Recipes
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 204
// @Router /recipes/{id}/favorite [delete]
func (h *Handler) RemoveFavorite(c *gin.Context) { h.removeMark(c, MarkFavorite) }

// AddToCart godoc
// @Summary Add recipe to the shopping cart
// @Tags Recipes
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 201 {object} user.RecipeBrief
// @Router /recipes/{id}/shopping_cart [post]
func (h *Handler) AddToCart(c *gin.Context) { h.addMark(c, MarkShoppingCart) }

// RemoveFromCart godoc
// @Summary Remove recipe from the shopping cart
// @Tags Recipes
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 204
// @Router /recipes/{id}/shopping_cart [delete]
func (h *Handler) RemoveFromCart(c *gin.Context) { h.removeMark(c, MarkShoppingCart) }

func (h *Handler) addMark(c *gin.Context, kind MarkKind) {
	id, ok := user.ParseID(c, "id")
	if !ok {
		return
	}
	brief, err := h.service.AddMark(c.Request.Context(), kind, user.ActorFrom(c).ID, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, brief)
}

func (h *Handler) removeMark(c *gin.Context, kind MarkKind) {
	id, ok := user.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.RemoveMark(c.Request.Context(), kind, user.ActorFrom(c).ID, id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindWriteInput(c *gin.Context) (WriteInput, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return bindMultipart(c)
	}
	var p WritePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		return WriteInput{}, errInvalidBody
	}
	return p.Input(), nil
}

// bindMultipart reads the form variant: scalars as plain fields, ingredients
// as a JSON array in one field, tags as a repeated field.
func bindMultipart(c *gin.Context) (WriteInput, error) {
	var in WriteInput
	details := map[string]string{}

	if v, ok := c.GetPostForm("name"); ok {
		in.Name = &v
	}
	if v, ok := c.GetPostForm("text"); ok {
		in.Text = &v
	}
	if v, ok := c.GetPostForm("cooking_time"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			details["cooking_time"] = "a valid integer is required"
		} else {
			in.CookingTime = &n
		}
	}
	if v, ok := c.GetPostForm("ingredients"); ok && v != "" {
		if err := json.Unmarshal([]byte(v), &in.Ingredients); err != nil {
			details["ingredients"] = "must be a JSON array of {id, amount}"
		}
	}
	for _, raw := range c.PostFormArray("tags") {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			details["tags"] = "tag ids must be integers"
			break
		}
		in.Tags = append(in.Tags, id)
	}

	if fh, err := c.FormFile("image"); err == nil {
		in.ImageFile = fh
	} else if v := c.PostForm("image"); v != "" {
		in.ImageURI = &v
	}

	if len(details) > 0 {
		return WriteInput{}, apperr.ValidationFields(details)
	}
	return in, nil
}

func queryFlag(c *gin.Context, name string) bool {
	switch strings.ToLower(c.Query(name)) {
	case "1", "true":
		return true
	}
	return false
}

func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
