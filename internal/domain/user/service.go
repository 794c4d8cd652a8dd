package user

import (
	"context"
	"fmt"
	"strings"

	"foodgram/internal/pkg/apperr"
	"foodgram/internal/pkg/pagination"
	"foodgram/internal/pkg/validator"
)

type Service struct {
	users   Repository
	follows FollowRepository
	recipes AuthorRecipes
	tokens  TokenIssuer
}

func NewService(users Repository, follows FollowRepository, recipes AuthorRecipes, tokens TokenIssuer) *Service {
	return &Service{
		users:   users,
		follows: follows,
		recipes: recipes,
		tokens:  tokens,
	}
}

// Register creates a regular account. Staff roles are granted out of band.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if errs := validator.Validate(req); errs != nil {
		return nil, apperr.ValidationFields(errs)
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}
	exists, err = s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Email:        strings.ToLower(req.Email),
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		Role:         RoleUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks credentials and issues a token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (string, error) {
	if errs := validator.Validate(req); errs != nil {
		return "", apperr.ValidationFields(errs)
	}

	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == ErrUserNotFound {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !CheckPassword(u.PasswordHash, req.Password) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.GenerateToken(u.ID, string(u.Role))
}

func (s *Service) SetPassword(ctx context.Context, userID int64, req SetPasswordRequest) error {
	if errs := validator.Validate(req); errs != nil {
		return apperr.ValidationFields(errs)
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !CheckPassword(u.PasswordHash, req.CurrentPassword) {
		return ErrWrongPassword
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.users.GetByID(ctx, id)
}

// Profile returns user id as seen by viewer. viewer 0 is anonymous.
func (s *Service) Profile(ctx context.Context, viewerID, id int64) (*UserResponse, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	subscribed, err := s.IsSubscribed(ctx, viewerID, u.ID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(u, subscribed)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, viewerID int64, p pagination.Params) ([]UserResponse, int64, error) {
	users, total, err := s.users.List(ctx, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	out, err := s.Project(ctx, viewerID, users)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Project builds viewer-relative projections for a batch of users with a
// single follow lookup.
func (s *Service) Project(ctx context.Context, viewerID int64, users []User) ([]UserResponse, error) {
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	followed, err := s.follows.FollowedAmong(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}

	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToUserResponse(&users[i], followed[users[i].ID]))
	}
	return out, nil
}

// IsSubscribed is false for anonymous viewers and for the user themself.
func (s *Service) IsSubscribed(ctx context.Context, viewerID, authorID int64) (bool, error) {
	if viewerID == 0 || viewerID == authorID {
		return false, nil
	}
	return s.follows.IsFollowing(ctx, viewerID, authorID)
}

// Subscribe makes userID follow authorID and returns the author with their
// recent recipes.
func (s *Service) Subscribe(ctx context.Context, userID, authorID int64, recipesLimit int) (*SubscriptionResponse, error) {
	if userID == authorID {
		return nil, ErrCannotSubscribeSelf
	}
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if err := s.follows.Follow(ctx, userID, authorID); err != nil {
		return nil, err
	}
	return s.subscription(ctx, author, recipesLimit)
}

func (s *Service) Unsubscribe(ctx context.Context, userID, authorID int64) error {
	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		return err
	}
	return s.follows.Unfollow(ctx, userID, authorID)
}

// Subscriptions lists the authors userID follows, newest follow first.
func (s *Service) Subscriptions(ctx context.Context, userID int64, p pagination.Params, recipesLimit int) ([]SubscriptionResponse, int64, error) {
	authors, total, err := s.follows.ListFollowing(ctx, userID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, err
	}

	out := make([]SubscriptionResponse, 0, len(authors))
	for i := range authors {
		sub, err := s.subscription(ctx, &authors[i], recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *sub)
	}
	return out, total, nil
}

func (s *Service) subscription(ctx context.Context, author *User, recipesLimit int) (*SubscriptionResponse, error) {
	recipes, err := s.recipes.RecentByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, fmt.Errorf("author recipes: %w", err)
	}
	count, err := s.recipes.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, fmt.Errorf("author recipe count: %w", err)
	}
	if recipes == nil {
		recipes = []RecipeBrief{}
	}
	return &SubscriptionResponse{
		UserResponse: ToUserResponse(author, true),
		Recipes:      recipes,
		RecipesCount: count,
	}, nil
}
