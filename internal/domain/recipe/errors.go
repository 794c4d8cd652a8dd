package recipe

import "foodgram/internal/pkg/apperr"

var (
	ErrRecipeNotFound   = apperr.NotFound("RECIPE_NOT_FOUND", "recipe not found")
	ErrNotAuthor        = apperr.PermissionDenied("NOT_RECIPE_AUTHOR", "only the author can change this recipe")
	ErrAlreadyFavorited = apperr.Conflict("ALREADY_IN_FAVORITES", "recipe is already in favorites")
	ErrNotFavorited     = apperr.NotFound("NOT_IN_FAVORITES", "recipe is not in favorites")
	ErrAlreadyInCart    = apperr.Conflict("ALREADY_IN_SHOPPING_CART", "recipe is already in the shopping cart")
	ErrNotInCart        = apperr.NotFound("NOT_IN_SHOPPING_CART", "recipe is not in the shopping cart")
)

func errAlreadyMarked(kind MarkKind) error {
	if kind == MarkShoppingCart {
		return ErrAlreadyInCart
	}
	return ErrAlreadyFavorited
}

func errNotMarked(kind MarkKind) error {
	if kind == MarkShoppingCart {
		return ErrNotInCart
	}
	return ErrNotFavorited
}
