package upload

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStorage(dir, "/media/")
	ctx := context.Background()

	url, err := store.Save(ctx, "recipes/images/a.png", "image/png", pngPixel)
	require.NoError(t, err)
	assert.Equal(t, "/media/recipes/images/a.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "recipes", "images", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, pngPixel, data)

	require.NoError(t, store.Delete(ctx, "recipes/images/a.png"))
	// second delete is a no-op
	require.NoError(t, store.Delete(ctx, "recipes/images/a.png"))
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	store := NewLocalStorage(t.TempDir(), "/media")

	_, err := store.Save(context.Background(), "../outside.png", "image/png", pngPixel)
	assert.Error(t, err)
}

func TestService_SaveRecipeImage(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(NewLocalStorage(dir, "/media"), 1024)

	img, err := DecodeDataURI(dataURI("png", pngPixel), svc.MaxBytes())
	require.NoError(t, err)

	stored, err := svc.SaveRecipeImage(context.Background(), img)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored.Key, "recipes/images/"))
	assert.True(t, strings.HasSuffix(stored.Key, ".png"))
	assert.Equal(t, "/media/"+stored.Key, stored.URL)

	require.NoError(t, svc.Delete(context.Background(), stored.Key))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(stored.Key)))
	assert.True(t, os.IsNotExist(err))
}
