package recipe

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"foodgram/internal/domain/upload"
	"foodgram/internal/pkg/apperr"
)

// validInput is a WriteInput that passed validation. Image is nil when
// none was supplied on update.
type validInput struct {
	WriteInput
	image *upload.Image
}

// validate checks the payload and collects every problem into one
// validation error keyed by field. Creating requires all scalar fields and
// the image; ingredients and tags are required in both modes since they are
// always replaced as a whole.
func (s *Service) validate(ctx context.Context, in WriteInput, creating bool) (*validInput, error) {
	details := map[string]string{}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
		switch {
		case name == "":
			details["name"] = "this field may not be blank"
		case utf8.RuneCountInString(name) > MaxNameLength:
			details["name"] = fmt.Sprintf("ensure this field has no more than %d characters", MaxNameLength)
		}
	} else if creating {
		details["name"] = "this field is required"
	}

	if in.Text != nil {
		if strings.TrimSpace(*in.Text) == "" {
			details["text"] = "this field may not be blank"
		}
	} else if creating {
		details["text"] = "this field is required"
	}

	if in.CookingTime != nil {
		if *in.CookingTime < MinCookingTime || *in.CookingTime > MaxCookingTime {
			details["cooking_time"] = fmt.Sprintf("must be between %d and %d minutes", MinCookingTime, MaxCookingTime)
		}
	} else if creating {
		details["cooking_time"] = "this field is required"
	}

	if msg, err := s.checkIngredients(ctx, in.Ingredients); err != nil {
		return nil, err
	} else if msg != "" {
		details["ingredients"] = msg
	}

	if msg, err := s.checkTags(ctx, in.Tags); err != nil {
		return nil, err
	} else if msg != "" {
		details["tags"] = msg
	}

	var img *upload.Image
	switch {
	case in.hasImage():
		decoded, err := s.decodeImage(in)
		if err != nil {
			e, ok := apperr.As(err)
			if !ok {
				return nil, err
			}
			details["image"] = e.Message
		}
		img = decoded
	case creating:
		details["image"] = "this field is required"
	}

	if len(details) > 0 {
		return nil, apperr.ValidationFields(details)
	}
	return &validInput{WriteInput: in, image: img}, nil
}

func (s *Service) checkIngredients(ctx context.Context, items []IngredientAmount) (string, error) {
	if len(items) == 0 {
		return "add at least one ingredient", nil
	}

	seen := make(map[int64]bool, len(items))
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if seen[it.ID] {
			return "ingredients must not repeat", nil
		}
		seen[it.ID] = true
		ids = append(ids, it.ID)
		if it.Amount < MinAmount || it.Amount > MaxAmount {
			return fmt.Sprintf("amount must be between %d and %d", MinAmount, MaxAmount), nil
		}
	}

	existing, err := s.catalog.ExistingIngredientIDs(ctx, ids)
	if err != nil {
		return "", fmt.Errorf("check ingredients: %w", err)
	}
	if missing := missingIDs(ids, existing); missing != "" {
		return "unknown ingredient id(s): " + missing, nil
	}
	return "", nil
}

func (s *Service) checkTags(ctx context.Context, ids []int64) (string, error) {
	if len(ids) == 0 {
		return "add at least one tag", nil
	}

	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return "tags must not repeat", nil
		}
		seen[id] = true
	}

	existing, err := s.catalog.ExistingTagIDs(ctx, ids)
	if err != nil {
		return "", fmt.Errorf("check tags: %w", err)
	}
	if missing := missingIDs(ids, existing); missing != "" {
		return "unknown tag id(s): " + missing, nil
	}
	return "", nil
}

func (s *Service) decodeImage(in WriteInput) (*upload.Image, error) {
	if in.ImageFile != nil {
		return upload.FromFile(in.ImageFile, s.images.MaxBytes())
	}
	return upload.DecodeDataURI(*in.ImageURI, s.images.MaxBytes())
}

func missingIDs(ids []int64, existing map[int64]bool) string {
	var missing []int64
	for _, id := range ids {
		if !existing[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return ""
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })

	parts := make([]string, 0, len(missing))
	for _, id := range missing {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ", ")
}
