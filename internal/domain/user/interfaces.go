package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]User, int64, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
}

type FollowRepository interface {
	Follow(ctx context.Context, userID, authorID int64) error
	Unfollow(ctx context.Context, userID, authorID int64) error
	IsFollowing(ctx context.Context, userID, authorID int64) (bool, error)
	// FollowedAmong returns the subset of authorIDs followed by userID.
	FollowedAmong(ctx context.Context, userID int64, authorIDs []int64) (map[int64]bool, error)
	ListFollowing(ctx context.Context, userID int64, limit, offset int) ([]User, int64, error)
}

// AuthorRecipes is implemented by the recipe store. It is declared here so
// the subscription projection does not import the recipe package.
type AuthorRecipes interface {
	// RecentByAuthor returns the author's newest recipes. limit <= 0 means all.
	RecentByAuthor(ctx context.Context, authorID int64, limit int) ([]RecipeBrief, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}
