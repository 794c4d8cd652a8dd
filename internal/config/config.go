package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPAddr      = ":8080"
	defaultDatabaseURL   = "foodgram.db"
	defaultJWTSecret     = "change-me-jwt-secret"
	defaultJWTTTL        = "24h"
	defaultPageSize      = 6
	defaultMaxPageSize   = 100
	defaultStorageDriver = "local"
	defaultUploadsDir    = "./media"
	defaultMediaURL      = "/media"
	defaultMaxImageBytes = 10 * 1024 * 1024
	defaultShoplistFmt   = "pdf"
)

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	PageSize    int
	MaxPageSize int

	StorageDriver string
	UploadsDir    string
	MediaURL      string
	MaxImageBytes int64
	S3            S3Config

	ShoplistFormat string
	ShoplistFont   string

	CORSAllowedOrigins []string
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

func Load() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	if cfg.PageSize, err = parseIntEnv("PAGE_SIZE", defaultPageSize); err != nil {
		return nil, err
	}
	if cfg.MaxPageSize, err = parseIntEnv("MAX_PAGE_SIZE", defaultMaxPageSize); err != nil {
		return nil, err
	}

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", defaultStorageDriver)))
	cfg.UploadsDir = strings.TrimSpace(getEnv("UPLOADS_DIR", defaultUploadsDir))
	cfg.MediaURL = strings.TrimRight(strings.TrimSpace(getEnv("MEDIA_URL", defaultMediaURL)), "/")
	maxImage, err := parseIntEnv("MAX_IMAGE_BYTES", defaultMaxImageBytes)
	if err != nil {
		return nil, err
	}
	cfg.MaxImageBytes = int64(maxImage)

	cfg.S3 = S3Config{
		Bucket:    strings.TrimSpace(os.Getenv("S3_BUCKET")),
		Region:    strings.TrimSpace(os.Getenv("S3_REGION")),
		Endpoint:  strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
		AccessKey: strings.TrimSpace(os.Getenv("S3_ACCESS_KEY")),
		SecretKey: strings.TrimSpace(os.Getenv("S3_SECRET_KEY")),
		PublicURL: strings.TrimRight(strings.TrimSpace(os.Getenv("S3_PUBLIC_URL")), "/"),
	}

	cfg.ShoplistFormat = strings.ToLower(strings.TrimSpace(getEnv("SHOPLIST_FORMAT", defaultShoplistFmt)))
	cfg.ShoplistFont = strings.TrimSpace(os.Getenv("SHOPLIST_FONT"))

	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("config loaded: env=%s addr=%s storage=%s page_size=%d shoplist=%s",
		cfg.AppEnv, cfg.HTTPAddr, cfg.StorageDriver, cfg.PageSize, cfg.ShoplistFormat)

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be > 0")
	}
	if cfg.MaxPageSize < cfg.PageSize {
		return fmt.Errorf("MAX_PAGE_SIZE must be >= PAGE_SIZE")
	}
	if cfg.MaxImageBytes <= 0 {
		return fmt.Errorf("MAX_IMAGE_BYTES must be > 0")
	}

	switch cfg.StorageDriver {
	case StorageLocal:
		if cfg.UploadsDir == "" {
			return fmt.Errorf("UPLOADS_DIR must not be empty")
		}
	case StorageS3:
		if cfg.S3.Bucket == "" || cfg.S3.Region == "" {
			return fmt.Errorf("S3_BUCKET and S3_REGION are required when STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of: local, s3")
	}

	if cfg.ShoplistFormat != "pdf" && cfg.ShoplistFormat != "txt" {
		return fmt.Errorf("SHOPLIST_FORMAT must be one of: pdf, txt")
	}

	if isProdLike(cfg.AppEnv) && isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}

	return nil
}

// IsProdLike reports whether the service runs in a production environment.
func (c *Config) IsProdLike() bool {
	return isProdLike(c.AppEnv)
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
