package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/domain/catalog"
	"foodgram/internal/domain/user"
)

func main() {
	ingredientsPath := flag.String("ingredients", "data/ingredients.json", "ingredients file (.json or .yaml)")
	tagsPath := flag.String("tags", "data/tags.yaml", "tags file (.json or .yaml), empty to skip")
	adminEmail := flag.String("admin-email", "", "create an admin with this email if it does not exist")
	adminUsername := flag.String("admin-username", "admin", "username of the created admin")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL, cfg.IsProdLike())
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}
	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed: ", err)
	}

	ctx := context.Background()
	loader := catalog.NewLoader(catalog.NewRepository(db))

	if *ingredientsPath != "" {
		res, err := loader.LoadIngredients(ctx, *ingredientsPath)
		if err != nil {
			log.Fatal("load ingredients: ", err)
		}
		log.Printf("ingredients: read=%d inserted=%d", res.Read, res.Inserted)
	}

	if *tagsPath != "" {
		res, err := loader.LoadTags(ctx, *tagsPath)
		if err != nil {
			log.Fatal("load tags: ", err)
		}
		log.Printf("tags: read=%d inserted=%d", res.Read, res.Inserted)
	}

	if *adminEmail != "" {
		if err := createAdmin(ctx, user.NewRepository(db), *adminEmail, *adminUsername); err != nil {
			log.Fatal("create admin: ", err)
		}
	}

	log.Println("Seed completed")
}

// createAdmin reads the password from ADMIN_PASSWORD so it never lands in
// shell history.
func createAdmin(ctx context.Context, users user.Repository, email, username string) error {
	exists, err := users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		log.Printf("admin %s already exists, skipping", email)
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		return errors.New("ADMIN_PASSWORD is empty")
	}
	hash, err := user.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &user.User{
		Email:        email,
		Username:     username,
		FirstName:    "Admin",
		LastName:     "Foodgram",
		PasswordHash: hash,
		Role:         user.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("admin created: %s (id=%d)", email, admin.ID)
	return nil
}
