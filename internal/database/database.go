package database

import (
	"log"
	"strings"

	"foodgram/internal/domain/catalog"
	"foodgram/internal/domain/recipe"
	"foodgram/internal/domain/user"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

func Connect(dsn string, prodLike bool) (*gorm.DB, error) {
	level := logger.Warn
	if prodLike {
		level = logger.Error
	}
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        withSQLitePragmas(dsn),
		}),
		cfg,
	)
}

// withSQLitePragmas turns on foreign keys and a busy timeout for the
// pure-Go driver unless the DSN already sets pragmas.
func withSQLitePragmas(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Migrate creates or updates the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

func Models() []any {
	return []any{
		&user.User{},
		&user.Follow{},
		&catalog.Ingredient{},
		&catalog.Tag{},
		&recipe.Recipe{},
		&recipe.RecipeIngredient{},
		&recipe.RecipeTag{},
		&recipe.Favorite{},
		&recipe.ShoppingCartItem{},
	}
}
