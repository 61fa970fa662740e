package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Pohioki/foodgram-project-react/internal/models"
)

// IngredientService handles the shared ingredient catalog.
type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// List returns ingredients matching the name prefix, case-insensitive,
// ordered by name. An empty prefix returns the whole catalog.
func (s *IngredientService) List(namePrefix string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	query := s.db.Order("name ASC")
	if namePrefix != "" {
		query = query.Where("LOWER(name) LIKE ?", escapeLike(strings.ToLower(namePrefix))+"%")
	}
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (s *IngredientService) Get(id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.First(&ingredient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

// BulkCreate loads catalog entries, skipping (name, unit) pairs that already
// exist. Used by the seeding command.
func (s *IngredientService) BulkCreate(ingredients []models.Ingredient) (int, error) {
	created := 0
	for i := range ingredients {
		err := s.db.Create(&ingredients[i]).Error
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}

// escapeLike neutralizes LIKE metacharacters in user-supplied search input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}
