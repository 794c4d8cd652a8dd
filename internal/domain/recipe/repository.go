package recipe

import (
	"context"
	"time"

	"foodgram/internal/domain/user"
	"foodgram/internal/pkg/apperr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rec *Recipe) error {
	lines, links := rec.Ingredients, rec.Tags
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(rec).Error; err != nil {
			return err
		}
		return insertRelations(tx, rec.ID, lines, links)
	})
}

// Update rewrites scalar fields and replaces the whole ingredient and tag
// sets. Old rows are deleted first, then the new ones inserted.
func (r *repository) Update(ctx context.Context, rec *Recipe) error {
	lines, links := rec.Ingredients, rec.Tags
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Recipe{}).
			Where("id = ?", rec.ID).
			Updates(map[string]any{
				"name":         rec.Name,
				"text":         rec.Text,
				"cooking_time": rec.CookingTime,
				"image":        rec.Image,
				"image_key":    rec.ImageKey,
				"updated_at":   time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRecipeNotFound
		}

		if err := tx.Where("recipe_id = ?", rec.ID).Delete(&RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", rec.ID).Delete(&RecipeTag{}).Error; err != nil {
			return err
		}
		return insertRelations(tx, rec.ID, lines, links)
	})
}

func insertRelations(tx *gorm.DB, recipeID int64, lines []RecipeIngredient, links []RecipeTag) error {
	if len(lines) > 0 {
		rows := make([]RecipeIngredient, 0, len(lines))
		for _, l := range lines {
			rows = append(rows, RecipeIngredient{RecipeID: recipeID, IngredientID: l.IngredientID, Amount: l.Amount})
		}
		if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
			return err
		}
	}
	if len(links) > 0 {
		rows := make([]RecipeTag, 0, len(links))
		for _, l := range links {
			rows = append(rows, RecipeTag{RecipeID: recipeID, TagID: l.TagID})
		}
		if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the recipe and everything that points at it. The rows are
// deleted explicitly so the result does not depend on the driver enforcing
// foreign keys.
func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dep := range []any{&Favorite{}, &ShoppingCartItem{}, &RecipeIngredient{}, &RecipeTag{}} {
			if err := tx.Where("recipe_id = ?", id).Delete(dep).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&Recipe{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRecipeNotFound
		}
		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Recipe, error) {
	var rec Recipe
	err := r.withRelations(r.db.WithContext(ctx)).First(&rec, id).Error
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *repository) List(ctx context.Context, f Filter) ([]Recipe, int64, error) {
	q := r.filtered(ctx, f)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []Recipe
	err := r.withRelations(q.Session(&gorm.Session{})).
		Order("recipes.created_at DESC").
		Order("recipes.id DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&recipes).Error
	return recipes, total, err
}

func (r *repository) filtered(ctx context.Context, f Filter) *gorm.DB {
	db := r.db.WithContext(ctx)
	q := db.Model(&Recipe{})

	if f.AuthorID != 0 {
		q = q.Where("recipes.author_id = ?", f.AuthorID)
	}
	if len(f.TagSlugs) > 0 {
		// any of the slugs matches
		sub := db.Model(&RecipeTag{}).
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", f.TagSlugs)
		q = q.Where("recipes.id IN (?)", sub)
	}
	if f.FavoritedBy != 0 {
		sub := db.Model(&Favorite{}).Select("recipe_id").Where("user_id = ?", f.FavoritedBy)
		q = q.Where("recipes.id IN (?)", sub)
	}
	if f.InCartOf != 0 {
		sub := db.Model(&ShoppingCartItem{}).Select("recipe_id").Where("user_id = ?", f.InCartOf)
		q = q.Where("recipes.id IN (?)", sub)
	}
	return q
}

func (r *repository) withRelations(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Author").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_ingredients.id ASC") }).
		Preload("Ingredients.Ingredient").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_tags.tag_id ASC") }).
		Preload("Tags.Tag")
}

func (r *repository) RecentByAuthor(ctx context.Context, authorID int64, limit int) ([]user.RecipeBrief, error) {
	q := r.db.WithContext(ctx).
		Model(&Recipe{}).
		Select("id", "name", "image", "cooking_time").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var briefs []user.RecipeBrief
	err := q.Scan(&briefs).Error
	return briefs, err
}

func (r *repository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Recipe{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

type markRepository struct {
	db *gorm.DB
}

func NewMarkRepository(db *gorm.DB) MarkRepository {
	return &markRepository{db: db}
}

func markModel(kind MarkKind, userID, recipeID int64) any {
	if kind == MarkShoppingCart {
		return &ShoppingCartItem{UserID: userID, RecipeID: recipeID}
	}
	return &Favorite{UserID: userID, RecipeID: recipeID}
}

// Add relies on the (user_id, recipe_id) unique index: of two concurrent
// inserts exactly one succeeds and the other gets the already-present error.
func (r *markRepository) Add(ctx context.Context, kind MarkKind, userID, recipeID int64) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(markModel(kind, userID, recipeID)).Error
	if apperr.IsUniqueViolation(err) {
		return errAlreadyMarked(kind)
	}
	return err
}

func (r *markRepository) Remove(ctx context.Context, kind MarkKind, userID, recipeID int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(markModel(kind, 0, 0))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errNotMarked(kind)
	}
	return nil
}

func (r *markRepository) MarkedAmong(ctx context.Context, kind MarkKind, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	marked := make(map[int64]bool, len(recipeIDs))
	if userID == 0 || len(recipeIDs) == 0 {
		return marked, nil
	}

	var ids []int64
	err := r.db.WithContext(ctx).
		Model(markModel(kind, 0, 0)).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		marked[id] = true
	}
	return marked, nil
}
