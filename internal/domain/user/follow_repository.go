package user

import (
	"context"

	"foodgram/internal/pkg/apperr"

	"gorm.io/gorm"
)

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow relies on idx_follow_pair to reject a second edge, so concurrent
// requests cannot both succeed.
func (r *followRepository) Follow(ctx context.Context, userID, authorID int64) error {
	err := r.db.WithContext(ctx).Create(&Follow{UserID: userID, AuthorID: authorID}).Error
	if apperr.IsUniqueViolation(err) {
		return ErrAlreadySubscribed
	}
	return err
}

func (r *followRepository) Unfollow(ctx context.Context, userID, authorID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotSubscribed
	}
	return nil
}

func (r *followRepository) IsFollowing(ctx context.Context, userID, authorID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

func (r *followRepository) FollowedAmong(ctx context.Context, userID int64, authorIDs []int64) (map[int64]bool, error) {
	followed := make(map[int64]bool, len(authorIDs))
	if userID == 0 || len(authorIDs) == 0 {
		return followed, nil
	}

	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&Follow{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		followed[id] = true
	}
	return followed, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, userID int64, limit, offset int) ([]User, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	err := base.Session(&gorm.Session{}).
		Order("follows.created_at DESC, follows.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, total, err
}
