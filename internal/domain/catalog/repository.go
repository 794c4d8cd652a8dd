package catalog

import (
	"context"
	"strings"

	"foodgram/internal/pkg/apperr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	ListTags(ctx context.Context) ([]Tag, error)
	GetTag(ctx context.Context, id int64) (*Tag, error)
	CreateTag(ctx context.Context, t *Tag) error
	SearchIngredients(ctx context.Context, namePrefix string) ([]Ingredient, error)
	GetIngredient(ctx context.Context, id int64) (*Ingredient, error)
	CreateIngredient(ctx context.Context, i *Ingredient) error
	// ExistingTagIDs returns which of ids are present in the catalog.
	ExistingTagIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
	ExistingIngredientIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
	// InsertTags and InsertIngredients skip rows that clash with existing ones
	// and report how many were written.
	InsertTags(ctx context.Context, tags []Tag) (int64, error)
	InsertIngredients(ctx context.Context, items []Ingredient) (int64, error)
}

const seedBatchSize = 500

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListTags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	err := r.db.WithContext(ctx).Order("id ASC").Find(&tags).Error
	return tags, err
}

func (r *repository) GetTag(ctx context.Context, id int64) (*Tag, error) {
	var t Tag
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if apperr.IsNotFound(err) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *repository) CreateTag(ctx context.Context, t *Tag) error {
	err := r.db.WithContext(ctx).Create(t).Error
	if apperr.IsUniqueViolation(err) {
		return ErrTagExists
	}
	return err
}

func (r *repository) SearchIngredients(ctx context.Context, namePrefix string) ([]Ingredient, error) {
	q := r.db.WithContext(ctx).Model(&Ingredient{})
	if namePrefix = strings.TrimSpace(namePrefix); namePrefix != "" {
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, escapeLike(strings.ToLower(namePrefix))+"%")
	}

	var items []Ingredient
	err := q.Order("name ASC").Order("id ASC").Find(&items).Error
	return items, err
}

func (r *repository) GetIngredient(ctx context.Context, id int64) (*Ingredient, error) {
	var i Ingredient
	if err := r.db.WithContext(ctx).First(&i, id).Error; err != nil {
		if apperr.IsNotFound(err) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return &i, nil
}

func (r *repository) CreateIngredient(ctx context.Context, i *Ingredient) error {
	err := r.db.WithContext(ctx).Create(i).Error
	if apperr.IsUniqueViolation(err) {
		return ErrIngredientExists
	}
	return err
}

func (r *repository) ExistingTagIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	return r.existing(ctx, &Tag{}, ids)
}

func (r *repository) ExistingIngredientIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	return r.existing(ctx, &Ingredient{}, ids)
}

func (r *repository) existing(ctx context.Context, model any, ids []int64) (map[int64]bool, error) {
	found := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	var present []int64
	if err := r.db.WithContext(ctx).Model(model).Where("id IN ?", ids).Pluck("id", &present).Error; err != nil {
		return nil, err
	}
	for _, id := range present {
		found[id] = true
	}
	return found, nil
}

func (r *repository) InsertTags(ctx context.Context, tags []Tag) (int64, error) {
	if len(tags) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&tags, seedBatchSize)
	return res.RowsAffected, res.Error
}

func (r *repository) InsertIngredients(ctx context.Context, items []Ingredient) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&items, seedBatchSize)
	return res.RowsAffected, res.Error
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
