package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Pohioki/foodgram-project-react/internal/models"
	"github.com/Pohioki/foodgram-project-react/internal/types"
)

// UserService handles user listings and the subscription flow.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Get renders one user with is_subscribed computed for the caller.
func (s *UserService) Get(userID uuid.UUID, caller *uuid.UUID) (*types.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.buildResponse(&user, caller)
}

// List returns a page of users ordered by username plus the total count.
func (s *UserService) List(caller *uuid.UUID, offset, limit int) ([]types.UserResponse, int64, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := s.db.Order("username ASC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	results := make([]types.UserResponse, 0, len(users))
	for i := range users {
		resp, err := s.buildResponse(&users[i], caller)
		if err != nil {
			return nil, 0, err
		}
		results = append(results, *resp)
	}
	return results, count, nil
}

// Subscribe follows an author. Self-follows and duplicates are rejected
// before the write; the unique index covers the remaining race.
func (s *UserService) Subscribe(userID, authorID uuid.UUID, recipesLimit int) (*types.SubscriptionResponse, error) {
	if userID == authorID {
		return nil, ErrSelfFollow
	}

	var author models.User
	if err := s.db.First(&author, "id = ?", authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var existing models.Follow
	if err := s.db.Where("user_id = ? AND author_id = ?", userID, authorID).First(&existing).Error; err == nil {
		return nil, ErrAlreadyFollowing
	}

	follow := models.Follow{UserID: userID, AuthorID: authorID}
	if err := s.db.Create(&follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFollowing
		}
		return nil, err
	}

	return s.buildSubscription(&author, userID, recipesLimit)
}

// Unsubscribe removes the follow, reporting not-found when none exists.
func (s *UserService) Unsubscribe(userID, authorID uuid.UUID) error {
	var author models.User
	if err := s.db.First(&author, "id = ?", authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	result := s.db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Subscriptions lists every author the user follows, each with a cut-down
// recipe list, plus the total count for pagination.
func (s *UserService) Subscriptions(userID uuid.UUID, recipesLimit, offset, limit int) ([]types.SubscriptionResponse, int64, error) {
	followed := s.db.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", userID)

	var count int64
	if err := s.db.Model(&models.User{}).Where("id IN (?)", followed).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var authors []models.User
	if err := s.db.Where("id IN (?)", followed).
		Order("username ASC").Offset(offset).Limit(limit).
		Find(&authors).Error; err != nil {
		return nil, 0, err
	}

	results := make([]types.SubscriptionResponse, 0, len(authors))
	for i := range authors {
		sub, err := s.buildSubscription(&authors[i], userID, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		results = append(results, *sub)
	}
	return results, count, nil
}

func (s *UserService) buildResponse(user *models.User, caller *uuid.UUID) (*types.UserResponse, error) {
	resp := &types.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	if caller != nil {
		var n int64
		if err := s.db.Model(&models.Follow{}).
			Where("user_id = ? AND author_id = ?", *caller, user.ID).Count(&n).Error; err != nil {
			return nil, err
		}
		resp.IsSubscribed = n > 0
	}
	return resp, nil
}

// buildSubscription renders an author with their newest recipes, optionally
// cut at recipesLimit (0 means no limit), and the total recipe count.
func (s *UserService) buildSubscription(author *models.User, caller uuid.UUID, recipesLimit int) (*types.SubscriptionResponse, error) {
	userResp, err := s.buildResponse(author, &caller)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := s.db.Model(&models.Recipe{}).Where("author_id = ?", author.ID).Count(&total).Error; err != nil {
		return nil, err
	}

	query := s.db.Where("author_id = ?", author.ID).Order("pub_date DESC")
	if recipesLimit > 0 {
		query = query.Limit(recipesLimit)
	}
	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}

	short := make([]types.RecipeShortResponse, 0, len(recipes))
	for i := range recipes {
		short = append(short, *shortResponse(&recipes[i]))
	}

	return &types.SubscriptionResponse{
		UserResponse: *userResp,
		Recipes:      short,
		RecipesCount: total,
	}, nil
}
