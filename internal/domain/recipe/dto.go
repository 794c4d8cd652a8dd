package recipe

import (
	"mime/multipart"

	"foodgram/internal/domain/catalog"
	"foodgram/internal/domain/user"
)

type IngredientAmount struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}

// WritePayload is the JSON body of create and update. Absent scalar fields
// are nil; on update they keep their stored values.
type WritePayload struct {
	Ingredients []IngredientAmount `json:"ingredients"`
	Tags        []int64            `json:"tags"`
	Image       *string            `json:"image"`
	Name        *string            `json:"name"`
	Text        *string            `json:"text"`
	CookingTime *int               `json:"cooking_time"`
}

// WriteInput is what the service validates. The image comes either as a
// data URI or as a multipart file.
type WriteInput struct {
	Ingredients []IngredientAmount
	Tags        []int64
	Name        *string
	Text        *string
	CookingTime *int
	ImageURI    *string
	ImageFile   *multipart.FileHeader
}

func (p WritePayload) Input() WriteInput {
	return WriteInput{
		Ingredients: p.Ingredients,
		Tags:        p.Tags,
		Name:        p.Name,
		Text:        p.Text,
		CookingTime: p.CookingTime,
		ImageURI:    p.Image,
	}
}

func (in WriteInput) hasImage() bool {
	return in.ImageFile != nil || (in.ImageURI != nil && *in.ImageURI != "")
}

// Filter narrows recipe listings. Zero values mean no filtering.
type Filter struct {
	AuthorID    int64
	TagSlugs    []string
	FavoritedBy int64
	InCartOf    int64
	Limit       int
	Offset      int
}

type IngredientLine struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeResponse is the read projection of a recipe for one viewer.
type RecipeResponse struct {
	ID               int64             `json:"id"`
	Tags             []catalog.Tag     `json:"tags"`
	Author           user.UserResponse `json:"author"`
	Ingredients      []IngredientLine  `json:"ingredients"`
	IsFavorited      bool              `json:"is_favorited"`
	IsInShoppingCart bool              `json:"is_in_shopping_cart"`
	Name             string            `json:"name"`
	Image            string            `json:"image"`
	Text             string            `json:"text"`
	CookingTime      int               `json:"cooking_time"`
}

func toBrief(r *Recipe) user.RecipeBrief {
	return user.RecipeBrief{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}
