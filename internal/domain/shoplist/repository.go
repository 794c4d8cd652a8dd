package shoplist

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CartLines(ctx context.Context, userID int64) ([]Line, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CartLines returns every ingredient line of every recipe in the user's
// shopping cart, unsummed.
func (r *repository) CartLines(ctx context.Context, userID int64) ([]Line, error) {
	var lines []Line
	err := r.db.WithContext(ctx).
		Table("shopping_cart_items").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, recipe_ingredients.amount AS amount").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = shopping_cart_items.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("shopping_cart_items.user_id = ?", userID).
		Order("recipe_ingredients.id").
		Scan(&lines).Error
	return lines, err
}
