package recipe

import (
	"time"

	"foodgram/internal/domain/catalog"
	"foodgram/internal/domain/user"
)

const (
	MinCookingTime = 1
	MaxCookingTime = 1440
	MinAmount      = 1
	MaxAmount      = 32000
	MaxNameLength  = 200
)

type Recipe struct {
	ID          int64      `gorm:"primaryKey"`
	AuthorID    int64      `gorm:"not null;index"`
	Author      *user.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Name        string     `gorm:"size:200;not null"`
	Image       string     `gorm:"size:500;not null"`
	ImageKey    string     `gorm:"size:300;not null"`
	Text        string     `gorm:"type:text;not null"`
	CookingTime int        `gorm:"not null;check:chk_recipe_cooking_time,cooking_time >= 1 AND cooking_time <= 1440"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Tags        []RecipeTag        `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (Recipe) TableName() string { return "recipes" }

// RecipeIngredient is one ingredient line of a recipe.
type RecipeIngredient struct {
	ID           int64               `gorm:"primaryKey"`
	RecipeID     int64               `gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	IngredientID int64               `gorm:"not null;index;uniqueIndex:idx_recipe_ingredient"`
	Ingredient   *catalog.Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:RESTRICT"`
	Amount       int                 `gorm:"not null;check:chk_recipe_ingredient_amount,amount >= 1 AND amount <= 32000"`
}

func (RecipeIngredient) TableName() string { return "recipe_ingredients" }

type RecipeTag struct {
	ID       int64        `gorm:"primaryKey"`
	RecipeID int64        `gorm:"not null;uniqueIndex:idx_recipe_tag"`
	TagID    int64        `gorm:"not null;index;uniqueIndex:idx_recipe_tag"`
	Tag      *catalog.Tag `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}

func (RecipeTag) TableName() string { return "recipe_tags" }

type Favorite struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"not null;index;uniqueIndex:idx_favorite_pair"`
	RecipeID  int64     `gorm:"not null;index;uniqueIndex:idx_favorite_pair"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User   *user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe    `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (Favorite) TableName() string { return "favorites" }

type ShoppingCartItem struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"not null;index;uniqueIndex:idx_cart_pair"`
	RecipeID  int64     `gorm:"not null;index;uniqueIndex:idx_cart_pair"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User   *user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe    `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (ShoppingCartItem) TableName() string { return "shopping_cart_items" }

// MarkKind selects one of the per-user recipe sets.
type MarkKind int

const (
	MarkFavorite MarkKind = iota
	MarkShoppingCart
)

func (k MarkKind) String() string {
	if k == MarkShoppingCart {
		return "shopping_cart"
	}
	return "favorite"
}
