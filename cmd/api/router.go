package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"foodgram/internal/config"
	"foodgram/internal/domain/catalog"
	"foodgram/internal/domain/recipe"
	"foodgram/internal/domain/shoplist"
	"foodgram/internal/domain/upload"
	"foodgram/internal/domain/user"
	"foodgram/internal/middleware"
	jwtsvc "foodgram/internal/pkg/jwt"
	"foodgram/internal/pkg/pagination"
)

// newRouter wires repositories, services and handlers into one engine.
func newRouter(cfg *config.Config, db *gorm.DB, storage upload.Storage) *gin.Engine {
	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	pages := pagination.Config{DefaultLimit: cfg.PageSize, MaxLimit: cfg.MaxPageSize}

	recipeRepo := recipe.NewRepository(db)
	followRepo := user.NewFollowRepository(db)
	catalogRepo := catalog.NewRepository(db)

	userService := user.NewService(user.NewRepository(db), followRepo, recipeRepo, j)
	userHandler := user.NewHandler(userService, pages)

	catalogHandler := catalog.NewHandler(catalog.NewService(catalogRepo))

	images := upload.NewService(storage, cfg.MaxImageBytes)
	recipeService := recipe.NewService(recipeRepo, recipe.NewMarkRepository(db), catalogRepo, images, followRepo)
	recipeHandler := recipe.NewHandler(recipeService, pages)

	shoplistService := shoplist.NewService(shoplist.NewRepository(db), shoplist.PDFOptions{FontPath: cfg.ShoplistFont})
	shoplistHandler := shoplist.NewHandler(shoplistService, cfg.ShoplistFormat)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	if cfg.StorageDriver == config.StorageLocal {
		r.Static(cfg.MediaURL, cfg.UploadsDir)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.OptionalAuth(j))
	{
		userHandler.RegisterRoutes(api)
		catalogHandler.RegisterRoutes(api)
		shoplistHandler.RegisterRoutes(api)
		recipeHandler.RegisterRoutes(api)
	}
	return r
}
