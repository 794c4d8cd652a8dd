package recipe

import (
	"context"
	"log"

	"foodgram/internal/domain/catalog"
	"foodgram/internal/domain/user"
)

type Service struct {
	recipes Repository
	marks   MarkRepository
	catalog Catalog
	images  ImageStore
	subs    Subscriptions
}

func NewService(recipes Repository, marks MarkRepository, catalog Catalog, images ImageStore, subs Subscriptions) *Service {
	return &Service{
		recipes: recipes,
		marks:   marks,
		catalog: catalog,
		images:  images,
		subs:    subs,
	}
}

// Create validates the payload and stores the recipe with author as its
// author. The image is stored before the transaction and removed again if
// the transaction fails.
func (s *Service) Create(ctx context.Context, author user.Actor, in WriteInput) (*RecipeResponse, error) {
	valid, err := s.validate(ctx, in, true)
	if err != nil {
		return nil, err
	}

	stored, err := s.images.SaveRecipeImage(ctx, valid.image)
	if err != nil {
		return nil, err
	}

	rec := &Recipe{
		AuthorID:    author.ID,
		Name:        *valid.Name,
		Text:        *valid.Text,
		CookingTime: *valid.CookingTime,
		Image:       stored.URL,
		ImageKey:    stored.Key,
		Ingredients: lineRows(valid.Ingredients),
		Tags:        tagRows(valid.Tags),
	}
	if err := s.recipes.Create(ctx, rec); err != nil {
		s.discardImage(ctx, stored.Key)
		return nil, err
	}

	return s.Get(ctx, author.ID, rec.ID)
}

// Update is allowed to the author and to staff. Ingredient and tag sets are
// replaced, scalar fields only when present.
func (s *Service) Update(ctx context.Context, editor user.Actor, id int64, in WriteInput) (*RecipeResponse, error) {
	rec, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(editor, rec) {
		return nil, ErrNotAuthor
	}

	valid, err := s.validate(ctx, in, false)
	if err != nil {
		return nil, err
	}

	updated := *rec
	if valid.Name != nil {
		updated.Name = *valid.Name
	}
	if valid.Text != nil {
		updated.Text = *valid.Text
	}
	if valid.CookingTime != nil {
		updated.CookingTime = *valid.CookingTime
	}
	updated.Ingredients = lineRows(valid.Ingredients)
	updated.Tags = tagRows(valid.Tags)

	var newKey string
	if valid.image != nil {
		stored, err := s.images.SaveRecipeImage(ctx, valid.image)
		if err != nil {
			return nil, err
		}
		newKey = stored.Key
		updated.Image = stored.URL
		updated.ImageKey = stored.Key
	}

	if err := s.recipes.Update(ctx, &updated); err != nil {
		s.discardImage(ctx, newKey)
		return nil, err
	}
	if newKey != "" {
		s.discardImage(ctx, rec.ImageKey)
	}

	return s.Get(ctx, editor.ID, id)
}

func (s *Service) Delete(ctx context.Context, editor user.Actor, id int64) error {
	rec, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(editor, rec) {
		return ErrNotAuthor
	}
	if err := s.recipes.Delete(ctx, id); err != nil {
		return err
	}
	s.discardImage(ctx, rec.ImageKey)
	return nil
}

// Get returns the read projection of one recipe for viewerID (0 for anonymous).
func (s *Service) Get(ctx context.Context, viewerID, id int64) (*RecipeResponse, error) {
	rec, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := s.project(ctx, viewerID, []Recipe{*rec})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// List applies f. Favorite and cart filters only make sense for a known
// viewer and are dropped for anonymous requests.
func (s *Service) List(ctx context.Context, viewerID int64, f Filter) ([]RecipeResponse, int64, error) {
	if viewerID == 0 {
		f.FavoritedBy = 0
		f.InCartOf = 0
	}
	recipes, total, err := s.recipes.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out, err := s.project(ctx, viewerID, recipes)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// AddMark puts the recipe into one of the user's sets.
func (s *Service) AddMark(ctx context.Context, kind MarkKind, userID, recipeID int64) (*user.RecipeBrief, error) {
	rec, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := s.marks.Add(ctx, kind, userID, recipeID); err != nil {
		return nil, err
	}
	brief := toBrief(rec)
	return &brief, nil
}

func (s *Service) RemoveMark(ctx context.Context, kind MarkKind, userID, recipeID int64) error {
	if _, err := s.recipes.GetByID(ctx, recipeID); err != nil {
		return err
	}
	return s.marks.Remove(ctx, kind, userID, recipeID)
}

func (s *Service) project(ctx context.Context, viewerID int64, recipes []Recipe) ([]RecipeResponse, error) {
	ids := make([]int64, 0, len(recipes))
	authorIDs := make([]int64, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
		authorIDs = append(authorIDs, r.AuthorID)
	}

	favorited, err := s.marks.MarkedAmong(ctx, MarkFavorite, viewerID, ids)
	if err != nil {
		return nil, err
	}
	inCart, err := s.marks.MarkedAmong(ctx, MarkShoppingCart, viewerID, ids)
	if err != nil {
		return nil, err
	}
	followed, err := s.subs.FollowedAmong(ctx, viewerID, authorIDs)
	if err != nil {
		return nil, err
	}

	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		resp := RecipeResponse{
			ID:               r.ID,
			Tags:             make([]catalog.Tag, 0, len(r.Tags)),
			Ingredients:      make([]IngredientLine, 0, len(r.Ingredients)),
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			Name:             r.Name,
			Image:            r.Image,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
		}
		if r.Author != nil {
			resp.Author = user.ToUserResponse(r.Author, followed[r.AuthorID])
		}
		for _, t := range r.Tags {
			if t.Tag != nil {
				resp.Tags = append(resp.Tags, *t.Tag)
			}
		}
		for _, l := range r.Ingredients {
			line := IngredientLine{ID: l.IngredientID, Amount: l.Amount}
			if l.Ingredient != nil {
				line.Name = l.Ingredient.Name
				line.MeasurementUnit = l.Ingredient.MeasurementUnit
			}
			resp.Ingredients = append(resp.Ingredients, line)
		}
		out = append(out, resp)
	}
	return out, nil
}

// discardImage removes a stored image, best effort.
func (s *Service) discardImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.images.Delete(ctx, key); err != nil {
		log.Printf("image_delete_failed key=%s error=%q", key, err.Error())
	}
}

func canModify(editor user.Actor, rec *Recipe) bool {
	return editor.ID == rec.AuthorID || editor.IsStaff()
}

func lineRows(items []IngredientAmount) []RecipeIngredient {
	rows := make([]RecipeIngredient, 0, len(items))
	for _, it := range items {
		rows = append(rows, RecipeIngredient{IngredientID: it.ID, Amount: it.Amount})
	}
	return rows
}

func tagRows(ids []int64) []RecipeTag {
	rows := make([]RecipeTag, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, RecipeTag{TagID: id})
	}
	return rows
}
