package user

type RegisterRequest struct {
	Email     string `json:"email" form:"email" validate:"required,email,max=254"`
	Username  string `json:"username" form:"username" validate:"required,max=150,username"`
	FirstName string `json:"first_name" form:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" form:"last_name" validate:"required,max=150"`
	Password  string `json:"password" form:"password" validate:"required,max=150"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,max=150"`
}

// UserResponse is the public projection of a user as seen by a viewer.
type UserResponse struct {
	Email        string `json:"email"`
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

func ToUserResponse(u *User, subscribed bool) UserResponse {
	return UserResponse{
		Email:        u.Email,
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}

// RegisterResponse omits is_subscribed, a fresh account follows nobody.
type RegisterResponse struct {
	Email     string `json:"email"`
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type TokenResponse struct {
	AuthToken string `json:"auth_token"`
}

// RecipeBrief is the short recipe form embedded in subscription listings.
type RecipeBrief struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

type SubscriptionResponse struct {
	UserResponse
	Recipes      []RecipeBrief `json:"recipes"`
	RecipesCount int64         `json:"recipes_count"`
}
