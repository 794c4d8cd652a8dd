package user

import (
	"net/http"
	"strconv"

	"foodgram/internal/middleware"
	"foodgram/internal/pkg/apperr"
	"foodgram/internal/pkg/pagination"
	"foodgram/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	pages   pagination.Config
}

func NewHandler(service *Service, pages pagination.Config) *Handler {
	return &Handler{service: service, pages: pages}
}

// ActorFrom reads the caller identity put on the context by the auth middleware.
func ActorFrom(c *gin.Context) Actor {
	return Actor{ID: middleware.UserID(c), Role: Role(middleware.Role(c))}
}

// ParseID reads a positive int64 path parameter.
func ParseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name)
		return 0, false
	}
	return id, true
}

// Register godoc
// @Summary Register a user
// @Tags Users
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "New account"
// @Success 201 {object} RegisterResponse
// @Router /users [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	u, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, RegisterResponse{
		Email:     u.Email,
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	})
}

// Login godoc
// @Summary Obtain an auth token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} TokenResponse
// @Router /auth/token/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, TokenResponse{AuthToken: token})
}

// Logout godoc
// @Summary Drop the auth token
// @Description Tokens are stateless, the client just forgets it.
// @Tags Auth
// @Security BearerAuth
// @Success 204
// @Router /auth/token/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// List godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /users [get]
func (h *Handler) List(c *gin.Context) {
	p := h.pages.Parse(c)
	users, total, err := h.service.List(c.Request.Context(), middleware.UserID(c), p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, pagination.NewPage(users, total, p))
}

// Get godoc
// @Summary Get user profile
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} UserResponse
// @Router /users/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}
	profile, err := h.service.Profile(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// Me godoc
// @Summary Current user
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} UserResponse
// @Router /users/me [get]
func (h *Handler) Me(c *gin.Context) {
	userID := middleware.UserID(c)
	profile, err := h.service.Profile(c.Request.Context(), userID, userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// SetPassword godoc
// @Summary Change password
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Param body body SetPasswordRequest true "Passwords"
// @Success 204
// @Router /users/set_password [post]
func (h *Handler) SetPassword(c *gin.Context) {
	var req SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := h.service.SetPassword(c.Request.Context(), middleware.UserID(c), req); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Subscriptions godoc
// @Summary Authors the current user follows
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param recipes_limit query int false "Max recipes per author"
// @Success 200 {object} map[string]interface{}
// @Router /users/subscriptions [get]
func (h *Handler) Subscriptions(c *gin.Context) {
	recipesLimit, err := recipesLimitParam(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	p := h.pages.Parse(c)
	subs, total, err := h.service.Subscriptions(c.Request.Context(), middleware.UserID(c), p, recipesLimit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, pagination.NewPage(subs, total, p))
}

// Subscribe godoc
// @Summary Follow an author
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param id path int true "Author ID"
// @Param recipes_limit query int false "Max recipes in the response"
// @Success 201 {object} SubscriptionResponse
// @Router /users/{id}/subscribe [post]
func (h *Handler) Subscribe(c *gin.Context) {
	authorID, ok := ParseID(c, "id")
	if !ok {
		return
	}
	recipesLimit, err := recipesLimitParam(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	sub, err := h.service.Subscribe(c.Request.Context(), middleware.UserID(c), authorID, recipesLimit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, sub)
}

// Unsubscribe godoc
// @Summary Unfollow an author
// @Tags Users
// @Security BearerAuth
// @Param id path int true "Author ID"
// @Success 204
// @Router /users/{id}/subscribe [delete]
func (h *Handler) Unsubscribe(c *gin.Context) {
	authorID, ok := ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Unsubscribe(c.Request.Context(), middleware.UserID(c), authorID); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func recipesLimitParam(c *gin.Context) (int, error) {
	raw := c.Query("recipes_limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperr.ValidationFields(map[string]string{
			"recipes_limit": "must be a non-negative integer",
		})
	}
	return n, nil
}
