package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Pohioki/foodgram-project-react/internal/models"
	"github.com/Pohioki/foodgram-project-react/internal/types"
)

const (
	MinCookingTime      = 1
	MaxCookingTime      = 32000
	MinIngredientAmount = 1
	MaxIngredientAmount = 32000
)

// RecipeFilter narrows recipe listings. Caller carries the authenticated
// user, nil for anonymous requests.
type RecipeFilter struct {
	TagSlugs         []string
	AuthorID         *uuid.UUID
	IsFavorited      bool
	IsInShoppingCart bool
	Caller           *uuid.UUID
}

// RecipeService handles recipe operations, favorites, shopping carts and the
// shopping-list aggregation.
type RecipeService struct {
	db     *gorm.DB
	images *ImageService
}

func NewRecipeService(db *gorm.DB, images *ImageService) *RecipeService {
	return &RecipeService{
		db:     db,
		images: images,
	}
}

// Create validates the write representation, then stores the recipe, its tag
// set and its ingredient links in a single transaction.
func (s *RecipeService) Create(ctx context.Context, authorID uuid.UUID, req *types.CreateRecipeRequest) (*types.RecipeResponse, error) {
	if err := s.validateCookingTime(req.CookingTime); err != nil {
		return nil, err
	}
	if err := s.validateIngredients(req.Ingredients); err != nil {
		return nil, err
	}
	tags, err := s.resolveTags(req.Tags)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.images.StoreBase64(ctx, req.Image)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		ImageURL:    imageURL,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Tags:        tags,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		return s.createIngredientLinks(tx, recipe.ID, req.Ingredients)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(recipe.ID, &authorID)
}

// Update applies a partial update. Only the author may call it; pub_date is
// never touched. A supplied ingredient list replaces the existing links,
// except entries marked delete, which are removed individually.
func (s *RecipeService) Update(ctx context.Context, callerID uuid.UUID, recipeID uuid.UUID, req *types.UpdateRecipeRequest) (*types.RecipeResponse, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if recipe.AuthorID != callerID {
		return nil, ErrNotAuthor
	}

	if req.CookingTime != nil {
		if err := s.validateCookingTime(*req.CookingTime); err != nil {
			return nil, err
		}
		recipe.CookingTime = *req.CookingTime
	}
	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Text != nil {
		recipe.Text = *req.Text
	}
	if req.Image != nil {
		imageURL, err := s.images.StoreBase64(ctx, *req.Image)
		if err != nil {
			return nil, err
		}
		recipe.ImageURL = imageURL
	}

	var keep []types.IngredientAmount
	if req.Ingredients != nil {
		for _, entry := range *req.Ingredients {
			if !entry.Delete {
				keep = append(keep, entry)
			}
		}
		if err := s.validateIngredients(keep); err != nil {
			return nil, err
		}
	}

	var tags []models.Tag
	if req.Tags != nil {
		var err error
		tags, err = s.resolveTags(*req.Tags)
		if err != nil {
			return nil, err
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&recipe).Error; err != nil {
			return err
		}
		if req.Ingredients != nil {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.IngredientRecipe{}).Error; err != nil {
				return err
			}
			if err := s.createIngredientLinks(tx, recipe.ID, keep); err != nil {
				return err
			}
		}
		if req.Tags != nil {
			if err := tx.Model(&recipe).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(recipe.ID, &callerID)
}

// Delete removes a recipe. Only the author may call it.
func (s *RecipeService) Delete(callerID, recipeID uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if recipe.AuthorID != callerID {
		return ErrNotAuthor
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.IngredientRecipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.ShoppingCart{}).Error; err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

// Get renders the read representation for one recipe.
func (s *RecipeService) Get(recipeID uuid.UUID, caller *uuid.UUID) (*types.RecipeResponse, error) {
	var recipe models.Recipe
	if err := s.db.Preload("Tags").Preload("Author").First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.buildResponse(&recipe, caller)
}

// List returns the newest-first page of recipes matching the filter and the
// total match count. Flag filters are ignored for anonymous callers and for
// explicit zero values; they never error.
func (s *RecipeService) List(filter RecipeFilter, offset, limit int) ([]types.RecipeResponse, int64, error) {
	query := s.db.Model(&models.Recipe{})

	if len(filter.TagSlugs) > 0 {
		// Subquery instead of a join so a recipe with several matching tags
		// is not counted or returned twice.
		tagged := s.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		query = query.Where("recipes.id IN (?)", tagged)
	}
	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if filter.IsFavorited && filter.Caller != nil {
		query = query.Joins(
			"JOIN favorites ON favorites.recipe_id = recipes.id AND favorites.user_id = ?",
			*filter.Caller,
		)
	}
	if filter.IsInShoppingCart && filter.Caller != nil {
		query = query.Joins(
			"JOIN shopping_carts ON shopping_carts.recipe_id = recipes.id AND shopping_carts.user_id = ?",
			*filter.Caller,
		)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var recipes []models.Recipe
	if err := query.
		Preload("Tags").Preload("Author").
		Order("recipes.pub_date DESC").
		Offset(offset).Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	results := make([]types.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		resp, err := s.buildResponse(&recipes[i], filter.Caller)
		if err != nil {
			return nil, 0, err
		}
		results = append(results, *resp)
	}
	return results, count, nil
}

// Favorite bookmarks a recipe for the user and returns the short shape.
func (s *RecipeService) Favorite(userID, recipeID uuid.UUID) (*types.RecipeShortResponse, error) {
	recipe, err := s.findRecipe(recipeID)
	if err != nil {
		return nil, err
	}

	var existing models.Favorite
	if err := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&existing).Error; err == nil {
		return nil, ErrAlreadyFavorited
	}

	fav := models.Favorite{UserID: userID, RecipeID: recipeID}
	if err := s.db.Create(&fav).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFavorited
		}
		return nil, err
	}
	return shortResponse(recipe), nil
}

func (s *RecipeService) Unfavorite(userID, recipeID uuid.UUID) error {
	if _, err := s.findRecipe(recipeID); err != nil {
		return err
	}
	result := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddToCart puts a recipe into the user's shopping cart.
func (s *RecipeService) AddToCart(userID, recipeID uuid.UUID) (*types.RecipeShortResponse, error) {
	recipe, err := s.findRecipe(recipeID)
	if err != nil {
		return nil, err
	}

	var existing models.ShoppingCart
	if err := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&existing).Error; err == nil {
		return nil, ErrAlreadyInCart
	}

	item := models.ShoppingCart{UserID: userID, RecipeID: recipeID}
	if err := s.db.Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyInCart
		}
		return nil, err
	}
	return shortResponse(recipe), nil
}

func (s *RecipeService) RemoveFromCart(userID, recipeID uuid.UUID) error {
	if _, err := s.findRecipe(recipeID); err != nil {
		return err
	}
	result := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.ShoppingCart{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ShoppingListLine is one aggregated (name, unit) group.
type ShoppingListLine struct {
	Name            string
	MeasurementUnit string
	Amount          int
}

// ShoppingList sums ingredient amounts across every recipe in the user's
// cart, grouped by (name, unit) and ordered by name. The export is a
// download, not a paginated listing, so it is never cut off.
func (s *RecipeService) ShoppingList(userID uuid.UUID) ([]ShoppingListLine, error) {
	var lines []ShoppingListLine
	err := s.db.Model(&models.IngredientRecipe{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(ingredient_recipes.amount) AS amount").
		Joins("JOIN ingredients ON ingredients.id = ingredient_recipes.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = ingredient_recipes.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// RenderShoppingList formats the aggregation as the plain-text document
// served as shopping_list.txt.
func RenderShoppingList(lines []ShoppingListLine) string {
	out := make([]string, 0, len(lines)+1)
	out = append(out, "Shopping List:")
	for _, line := range lines {
		out = append(out, fmt.Sprintf("%s (%s) - %d", line.Name, line.MeasurementUnit, line.Amount))
	}
	return strings.Join(out, "\n")
}

func (s *RecipeService) validateCookingTime(minutes int) error {
	if minutes < MinCookingTime {
		return ErrCookingTimeLow
	}
	if minutes > MaxCookingTime {
		return ErrCookingTimeHigh
	}
	return nil
}

// validateIngredients checks the whole list for duplicates before reporting
// any amount violation, so a duplicate is always surfaced regardless of
// position.
func (s *RecipeService) validateIngredients(ingredients []types.IngredientAmount) error {
	if len(ingredients) == 0 {
		return ErrNoIngredients
	}

	seen := make(map[uuid.UUID]struct{}, len(ingredients))
	for _, entry := range ingredients {
		if _, dup := seen[entry.ID]; dup {
			return ErrDuplicateIngredients
		}
		seen[entry.ID] = struct{}{}
	}

	for _, entry := range ingredients {
		if entry.Amount < MinIngredientAmount {
			return ErrIngredientAmountLow
		}
		if entry.Amount > MaxIngredientAmount {
			return ErrIngredientAmountHigh
		}
	}

	var count int64
	ids := make([]uuid.UUID, 0, len(ingredients))
	for _, entry := range ingredients {
		ids = append(ids, entry.ID)
	}
	if err := s.db.Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return ErrIngredientUnknown
	}
	return nil
}

// resolveTags loads every referenced tag, failing if any id is unknown.
func (s *RecipeService) resolveTags(ids []uuid.UUID) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := s.db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, ErrTagUnknown
	}
	return tags, nil
}

func (s *RecipeService) createIngredientLinks(tx *gorm.DB, recipeID uuid.UUID, ingredients []types.IngredientAmount) error {
	for _, entry := range ingredients {
		link := models.IngredientRecipe{
			RecipeID:     recipeID,
			IngredientID: entry.ID,
			Amount:       entry.Amount,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *RecipeService) findRecipe(recipeID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// buildResponse assembles the read representation: expanded author and tags,
// ingredient links joined to the catalog, and the caller-dependent booleans.
func (s *RecipeService) buildResponse(recipe *models.Recipe, caller *uuid.UUID) (*types.RecipeResponse, error) {
	var links []models.IngredientRecipe
	if err := s.db.Preload("Ingredient").Where("recipe_id = ?", recipe.ID).Find(&links).Error; err != nil {
		return nil, err
	}

	ingredients := make([]types.RecipeIngredientResponse, 0, len(links))
	for _, link := range links {
		ingredients = append(ingredients, types.RecipeIngredientResponse{
			ID:              link.IngredientID,
			Name:            link.Ingredient.Name,
			MeasurementUnit: link.Ingredient.MeasurementUnit,
			Amount:          link.Amount,
		})
	}

	tags := make([]types.TagResponse, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags = append(tags, types.TagResponse{
			ID:    tag.ID,
			Name:  tag.Name,
			Color: tag.Color,
			Slug:  tag.Slug,
		})
	}

	resp := &types.RecipeResponse{
		ID:          recipe.ID,
		Tags:        tags,
		Ingredients: ingredients,
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
		PubDate:     recipe.PubDate,
		Author: types.UserResponse{
			ID:        recipe.Author.ID,
			Email:     recipe.Author.Email,
			Username:  recipe.Author.Username,
			FirstName: recipe.Author.FirstName,
			LastName:  recipe.Author.LastName,
		},
	}

	if caller != nil {
		var n int64
		if err := s.db.Model(&models.Favorite{}).
			Where("user_id = ? AND recipe_id = ?", *caller, recipe.ID).Count(&n).Error; err != nil {
			return nil, err
		}
		resp.IsFavorited = n > 0

		if err := s.db.Model(&models.ShoppingCart{}).
			Where("user_id = ? AND recipe_id = ?", *caller, recipe.ID).Count(&n).Error; err != nil {
			return nil, err
		}
		resp.IsInShoppingCart = n > 0

		if err := s.db.Model(&models.Follow{}).
			Where("user_id = ? AND author_id = ?", *caller, recipe.AuthorID).Count(&n).Error; err != nil {
			return nil, err
		}
		resp.Author.IsSubscribed = n > 0
	}

	return resp, nil
}

func shortResponse(recipe *models.Recipe) *types.RecipeShortResponse {
	return &types.RecipeShortResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}
}
