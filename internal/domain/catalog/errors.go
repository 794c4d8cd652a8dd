package catalog

import "foodgram/internal/pkg/apperr"

var (
	ErrTagNotFound        = apperr.NotFound("TAG_NOT_FOUND", "tag not found")
	ErrIngredientNotFound = apperr.NotFound("INGREDIENT_NOT_FOUND", "ingredient not found")
	ErrTagExists          = apperr.Conflict("TAG_EXISTS", "a tag with this name, color or slug already exists")
	ErrIngredientExists   = apperr.Conflict("INGREDIENT_EXISTS", "this ingredient with this unit already exists")
)
