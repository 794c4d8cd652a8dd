package recipe

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"foodgram/internal/domain/catalog"
	"foodgram/internal/domain/user"
	"foodgram/internal/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

type fixture struct {
	db          *gorm.DB
	anna, boris *user.User
	flour       catalog.Ingredient
	sugar       catalog.Ingredient
	eggs        catalog.Ingredient
	breakfast   catalog.Tag
	dinner      catalog.Tag
}

func setupTestDB(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:recipe_test_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name())
	db, err := gorm.Open(gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&user.User{}, &user.Follow{},
		&catalog.Ingredient{}, &catalog.Tag{},
		&Recipe{}, &RecipeIngredient{}, &RecipeTag{}, &Favorite{}, &ShoppingCartItem{},
	))

	f := &fixture{db: db}
	f.anna = &user.User{Email: "anna@example.com", Username: "anna", FirstName: "Anna", LastName: "A", PasswordHash: "x", Role: user.RoleUser}
	f.boris = &user.User{Email: "boris@example.com", Username: "boris", FirstName: "Boris", LastName: "B", PasswordHash: "x", Role: user.RoleUser}
	require.NoError(t, db.Create(f.anna).Error)
	require.NoError(t, db.Create(f.boris).Error)

	f.flour = catalog.Ingredient{Name: "flour", MeasurementUnit: "g"}
	f.sugar = catalog.Ingredient{Name: "sugar", MeasurementUnit: "g"}
	f.eggs = catalog.Ingredient{Name: "eggs", MeasurementUnit: "pcs"}
	require.NoError(t, db.Create(&f.flour).Error)
	require.NoError(t, db.Create(&f.sugar).Error)
	require.NoError(t, db.Create(&f.eggs).Error)

	f.breakfast = catalog.Tag{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"}
	f.dinner = catalog.Tag{Name: "Dinner", Color: "#8775D2", Slug: "dinner"}
	require.NoError(t, db.Create(&f.breakfast).Error)
	require.NoError(t, db.Create(&f.dinner).Error)
	return f
}

func (f *fixture) newRecipe(t *testing.T, repo Repository, author *user.User, name string, tags ...catalog.Tag) *Recipe {
	t.Helper()
	rec := &Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Image:       "/media/recipes/images/" + name + ".png",
		ImageKey:    "recipes/images/" + name + ".png",
		Text:        "Mix and bake.",
		CookingTime: 30,
		Ingredients: []RecipeIngredient{
			{IngredientID: f.flour.ID, Amount: 200},
			{IngredientID: f.sugar.ID, Amount: 50},
		},
	}
	for _, tag := range tags {
		rec.Tags = append(rec.Tags, RecipeTag{TagID: tag.ID})
	}
	require.NoError(t, repo.Create(context.Background(), rec))
	return rec
}

func TestRepository_CreateAndGet(t *testing.T) {
	f := setupTestDB(t)
	repo := NewRepository(f.db)

	created := f.newRecipe(t, repo, f.anna, "pancakes", f.breakfast)

	rec, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, "pancakes", rec.Name)
	require.NotNil(t, rec.Author)
	assert.Equal(t, "anna", rec.Author.Username)
	require.Len(t, rec.Ingredients, 2)
	assert.Equal(t, "flour", rec.Ingredients[0].Ingredient.Name)
	assert.Equal(t, 200, rec.Ingredients[0].Amount)
	require.Len(t, rec.Tags, 1)
	assert.Equal(t, "breakfast", rec.Tags[0].Tag.Slug)
}

func TestRepository_CreateIsAtomic(t *testing.T) {
	f := setupTestDB(t)
	repo := NewRepository(f.db)

	// the second line repeats an ingredient and trips idx_recipe_ingredient
	err := repo.Create(context.Background(), &Recipe{
		AuthorID:    f.anna.ID,
		Name:        "broken",
		Image:       "/media/x.png",
		ImageKey:    "x.png",
		Text:        "text",
		CookingTime: 10,
		Ingredients: []RecipeIngredient{
			{IngredientID: f.flour.ID, Amount: 1},
			{IngredientID: f.flour.ID, Amount: 2},
		},
		Tags: []RecipeTag{{TagID: f.breakfast.ID}},
	})
	require.Error(t, err)

	var recipes, lines int64
	f.db.Model(&Recipe{}).Count(&recipes)
	f.db.Model(&RecipeIngredient{}).Count(&lines)
	assert.Zero(t, recipes)
	assert.Zero(t, lines)
}

func TestRepository_UpdateReplacesSets(t *testing.T) {
	f := setupTestDB(t)
	repo := NewRepository(f.db)
	ctx := context.Background()

	rec := f.newRecipe(t, repo, f.anna, "pancakes", f.breakfast)

	rec.Name = "crepes"
	rec.Ingredients = []RecipeIngredient{{IngredientID: f.eggs.ID, Amount: 3}}
	rec.Tags = []RecipeTag{{TagID: f.dinner.ID}}
	require.NoError(t, repo.Update(ctx, rec))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "crepes", got.Name)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, f.eggs.ID, got.Ingredients[0].IngredientID)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, f.dinner.ID, got.Tags[0].TagID)

	var lines int64
	f.db.Model(&RecipeIngredient{}).Where("recipe_id = ?", rec.ID).Count(&lines)
	assert.Equal(t, int64(1), lines)
}

func TestRepository_UpdateMissingRecipe(t *testing.T) {
	f := setupTestDB(t)
	repo := NewRepository(f.db)

	err := repo.Update(context.Background(), &Recipe{ID: 999, Name: "x"})
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestRepository_DeleteCascades(t *testing.T) {
	f := setupTestDB(t)
	repo := NewRepository(f.db)
	marks := NewMarkRepository(f.db)
	ctx := context.Background()

	rec := f.newRecipe(t, repo, f.anna, "pancakes", f.breakfast)
	require.NoError(t, marks.Add(ctx, MarkFavorite, f.boris.ID, rec.ID))
	require.NoError(t, marks.Add(ctx, MarkShoppingCart, f.boris.ID, rec.ID))

	require.NoError(t, repo.Delete(ctx, rec.ID))

	for _, model := range []any{&Recipe{}, &RecipeIngredient{}, &RecipeTag{}, &Favorite{}, &ShoppingCartItem{}} {
		var n int64
		f.db.Model(model).Count(&n)
		assert.Zero(t, n, "%T", model)
	}
	assert.ErrorIs(t, repo.Delete(ctx, rec.ID), ErrRecipeNotFound)
}

func TestRepository_ListFilters(t *testing.T) {
	f := setupTestDB(t)
	repo := NewRepository(f.db)
	marks := NewMarkRepository(f.db)
	ctx := context.Background()

	pancakes := f.newRecipe(t, repo, f.anna, "pancakes", f.breakfast)
	time.Sleep(5 * time.Millisecond)
	stew := f.newRecipe(t, repo, f.anna, "stew", f.dinner)
	time.Sleep(5 * time.Millisecond)
	omelette := f.newRecipe(t, repo, f.boris, "omelette", f.breakfast, f.dinner)

	all, total, err := repo.List(ctx, Filter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []int64{omelette.ID, stew.ID, pancakes.ID}, recipeIDs(all))

	byAuthor, total, err := repo.List(ctx, Filter{AuthorID: f.anna.ID, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []int64{stew.ID, pancakes.ID}, recipeIDs(byAuthor))

	// any of the tags, each recipe once
	byTags, total, err := repo.List(ctx, Filter{TagSlugs: []string{"breakfast", "dinner"}, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, byTags, 3)

	breakfastOnly, _, err := repo.List(ctx, Filter{TagSlugs: []string{"breakfast"}, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{omelette.ID, pancakes.ID}, recipeIDs(breakfastOnly))

	require.NoError(t, marks.Add(ctx, MarkFavorite, f.boris.ID, stew.ID))
	require.NoError(t, marks.Add(ctx, MarkShoppingCart, f.boris.ID, pancakes.ID))

	favs, _, err := repo.List(ctx, Filter{FavoritedBy: f.boris.ID, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{stew.ID}, recipeIDs(favs))

	cart, _, err := repo.List(ctx, Filter{InCartOf: f.boris.ID, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{pancakes.ID}, recipeIDs(cart))

	page, total, err := repo.List(ctx, Filter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []int64{pancakes.ID}, recipeIDs(page))
}

func TestRepository_AuthorRecipes(t *testing.T) {
	f := setupTestDB(t)
	repo := NewRepository(f.db)
	ctx := context.Background()

	f.newRecipe(t, repo, f.anna, "one")
	time.Sleep(5 * time.Millisecond)
	f.newRecipe(t, repo, f.anna, "two")
	time.Sleep(5 * time.Millisecond)
	f.newRecipe(t, repo, f.anna, "three")

	briefs, err := repo.RecentByAuthor(ctx, f.anna.ID, 2)
	require.NoError(t, err)
	require.Len(t, briefs, 2)
	assert.Equal(t, "three", briefs[0].Name)
	assert.Equal(t, 30, briefs[0].CookingTime)

	briefs, err = repo.RecentByAuthor(ctx, f.anna.ID, 0)
	require.NoError(t, err)
	assert.Len(t, briefs, 3)

	count, err := repo.CountByAuthor(ctx, f.anna.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestMarkRepository_AddRemove(t *testing.T) {
	f := setupTestDB(t)
	repo := NewRepository(f.db)
	marks := NewMarkRepository(f.db)
	ctx := context.Background()

	rec := f.newRecipe(t, repo, f.anna, "pancakes")

	require.NoError(t, marks.Add(ctx, MarkFavorite, f.boris.ID, rec.ID))
	assert.ErrorIs(t, marks.Add(ctx, MarkFavorite, f.boris.ID, rec.ID), ErrAlreadyFavorited)

	// the sets are independent
	require.NoError(t, marks.Add(ctx, MarkShoppingCart, f.boris.ID, rec.ID))

	marked, err := marks.MarkedAmong(ctx, MarkFavorite, f.boris.ID, []int64{rec.ID, 999})
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{rec.ID: true}, marked)

	require.NoError(t, marks.Remove(ctx, MarkFavorite, f.boris.ID, rec.ID))
	assert.ErrorIs(t, marks.Remove(ctx, MarkFavorite, f.boris.ID, rec.ID), ErrNotFavorited)
	assert.ErrorIs(t, marks.Remove(ctx, MarkShoppingCart, f.anna.ID, rec.ID), ErrNotInCart)
}

func TestMarkRepository_ConcurrentAddExactlyOneWins(t *testing.T) {
	f := setupTestDB(t)
	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	rec := f.newRecipe(t, NewRepository(f.db), f.anna, "pancakes")
	marks := NewMarkRepository(f.db)

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = marks.Add(context.Background(), MarkFavorite, f.boris.ID, rec.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, apperr.ErrConflict)
	}
	assert.Equal(t, 1, succeeded)

	var n int64
	f.db.Model(&Favorite{}).Count(&n)
	assert.Equal(t, int64(1), n)
}

func recipeIDs(recipes []Recipe) []int64 {
	ids := make([]int64, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
	}
	return ids
}
