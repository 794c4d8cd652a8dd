package upload

import (
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"
)

const recipeImagePrefix = "recipes/images"

// Stored points at a saved object.
type Stored struct {
	Key string
	URL string
}

type Service struct {
	storage  Storage
	maxBytes int64
}

func NewService(storage Storage, maxBytes int64) *Service {
	return &Service{storage: storage, maxBytes: maxBytes}
}

func (s *Service) MaxBytes() int64 { return s.maxBytes }

// SaveRecipeImage stores img under a fresh random key.
func (s *Service) SaveRecipeImage(ctx context.Context, img *Image) (*Stored, error) {
	key := path.Join(recipeImagePrefix, uuid.NewString()+img.Ext)
	url, err := s.storage.Save(ctx, key, img.ContentType, img.Data)
	if err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}
	return &Stored{Key: key, URL: url}, nil
}

func (s *Service) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.storage.Delete(ctx, key)
}
