package recipe

import (
	"context"

	"foodgram/internal/domain/upload"
	"foodgram/internal/domain/user"
)

type Repository interface {
	// Create and Update write the recipe with its ingredient lines and tag
	// links in one transaction.
	Create(ctx context.Context, r *Recipe) error
	Update(ctx context.Context, r *Recipe) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Recipe, error)
	List(ctx context.Context, f Filter) ([]Recipe, int64, error)

	RecentByAuthor(ctx context.Context, authorID int64, limit int) ([]user.RecipeBrief, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
}

// MarkRepository stores the favorite and shopping cart sets.
type MarkRepository interface {
	Add(ctx context.Context, kind MarkKind, userID, recipeID int64) error
	Remove(ctx context.Context, kind MarkKind, userID, recipeID int64) error
	// MarkedAmong returns the subset of recipeIDs in userID's set.
	MarkedAmong(ctx context.Context, kind MarkKind, userID int64, recipeIDs []int64) (map[int64]bool, error)
}

// Catalog answers which referenced ingredients and tags exist.
type Catalog interface {
	ExistingIngredientIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
	ExistingTagIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
}

type ImageStore interface {
	SaveRecipeImage(ctx context.Context, img *upload.Image) (*upload.Stored, error)
	Delete(ctx context.Context, key string) error
	MaxBytes() int64
}

// Subscriptions resolves the author's is_subscribed flag.
type Subscriptions interface {
	FollowedAmong(ctx context.Context, userID int64, authorIDs []int64) (map[int64]bool, error)
}
