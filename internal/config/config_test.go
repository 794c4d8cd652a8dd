package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("ENV", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PAGE_SIZE", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("SHOPLIST_FORMAT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, "foodgram.db", cfg.DatabaseURL)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 6, cfg.PageSize)
	assert.Equal(t, StorageLocal, cfg.StorageDriver)
	assert.Equal(t, "/media", cfg.MediaURL)
	assert.Equal(t, "pdf", cfg.ShoplistFormat)
}

func TestLoad_ProdRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProdLike())
}

func TestLoad_S3RequiresBucket(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("STORAGE_DRIVER", "s3")
	t.Setenv("S3_BUCKET", "")
	t.Setenv("S3_REGION", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("S3_BUCKET", "foodgram-media")
	t.Setenv("S3_REGION", "eu-central-1")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "foodgram-media", cfg.S3.Bucket)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("APP_ENV", "dev")

	t.Setenv("PAGE_SIZE", "six")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("PAGE_SIZE", "6")
	t.Setenv("SHOPLIST_FORMAT", "docx")
	_, err = Load()
	assert.Error(t, err)
}
