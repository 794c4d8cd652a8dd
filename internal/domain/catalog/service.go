package catalog

import (
	"context"
	"strings"

	"foodgram/internal/pkg/apperr"
	"foodgram/internal/pkg/validator"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListTags(ctx context.Context) ([]Tag, error) {
	return s.repo.ListTags(ctx)
}

func (s *Service) GetTag(ctx context.Context, id int64) (*Tag, error) {
	return s.repo.GetTag(ctx, id)
}

// CreateTag normalizes the color to upper case so "#ff0000" and "#FF0000"
// collide on the unique index.
func (s *Service) CreateTag(ctx context.Context, t *Tag) error {
	normalizeTag(t)
	if errs := validator.Validate(t); errs != nil {
		return apperr.ValidationFields(errs)
	}
	return s.repo.CreateTag(ctx, t)
}

func (s *Service) SearchIngredients(ctx context.Context, namePrefix string) ([]Ingredient, error) {
	return s.repo.SearchIngredients(ctx, namePrefix)
}

func (s *Service) GetIngredient(ctx context.Context, id int64) (*Ingredient, error) {
	return s.repo.GetIngredient(ctx, id)
}

func (s *Service) CreateIngredient(ctx context.Context, i *Ingredient) error {
	normalizeIngredient(i)
	if errs := validator.Validate(i); errs != nil {
		return apperr.ValidationFields(errs)
	}
	return s.repo.CreateIngredient(ctx, i)
}

func normalizeTag(t *Tag) {
	t.ID = 0
	t.Name = strings.TrimSpace(t.Name)
	t.Color = strings.ToUpper(strings.TrimSpace(t.Color))
	t.Slug = strings.TrimSpace(t.Slug)
}

func normalizeIngredient(i *Ingredient) {
	i.ID = 0
	i.Name = strings.TrimSpace(i.Name)
	i.MeasurementUnit = strings.TrimSpace(i.MeasurementUnit)
}
