package database

import (
	"gorm.io/gorm"

	"github.com/Pohioki/foodgram-project-react/internal/models"
)

// Migrate applies the schema for every entity. The unique indexes declared on
// the models are what enforce email/username/tag/membership uniqueness under
// concurrent writes, so migration must run before the server accepts traffic.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Ingredient{},
		&models.Tag{},
		&models.Recipe{},
		&models.IngredientRecipe{},
		&models.Favorite{},
		&models.ShoppingCart{},
	)
}
