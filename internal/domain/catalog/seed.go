package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"foodgram/internal/pkg/validator"

	"gopkg.in/yaml.v2"
)

// Loader imports catalog data from JSON or YAML files. Rows that already
// exist are left untouched, so a load can be repeated safely.
type Loader struct {
	repo Repository
}

func NewLoader(repo Repository) *Loader {
	return &Loader{repo: repo}
}

// LoadResult counts read and newly written records.
type LoadResult struct {
	Read     int
	Inserted int64
}

func (l *Loader) LoadIngredients(ctx context.Context, path string) (LoadResult, error) {
	var items []Ingredient
	if err := decodeFile(path, &items); err != nil {
		return LoadResult{}, err
	}
	for i := range items {
		normalizeIngredient(&items[i])
		if errs := validator.Validate(items[i]); errs != nil {
			return LoadResult{}, fmt.Errorf("%s: record %d: %v", path, i+1, errs)
		}
	}

	n, err := l.repo.InsertIngredients(ctx, items)
	if err != nil {
		return LoadResult{}, fmt.Errorf("insert ingredients: %w", err)
	}
	return LoadResult{Read: len(items), Inserted: n}, nil
}

func (l *Loader) LoadTags(ctx context.Context, path string) (LoadResult, error) {
	var tags []Tag
	if err := decodeFile(path, &tags); err != nil {
		return LoadResult{}, err
	}
	for i := range tags {
		normalizeTag(&tags[i])
		if errs := validator.Validate(tags[i]); errs != nil {
			return LoadResult{}, fmt.Errorf("%s: record %d: %v", path, i+1, errs)
		}
	}

	n, err := l.repo.InsertTags(ctx, tags)
	if err != nil {
		return LoadResult{}, fmt.Errorf("insert tags: %w", err)
	}
	return LoadResult{Read: len(tags), Inserted: n}, nil
}

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, out)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, out)
	default:
		return fmt.Errorf("%s: unsupported format, use .json, .yaml or .yml", path)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
