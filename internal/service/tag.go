package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Pohioki/foodgram-project-react/internal/models"
	"github.com/Pohioki/foodgram-project-react/internal/types"
)

// TagService handles tag CRUD and slug derivation.
type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

func (s *TagService) List() ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *TagService) Get(id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// Create stores a tag. When no slug is supplied one is derived from the name
// and, on collision with an existing slug, disambiguated with a numeric suffix.
func (s *TagService) Create(req *types.CreateTagRequest) (*models.Tag, error) {
	slug := req.Slug
	if slug == "" {
		var err error
		slug, err = s.uniqueSlug(Slugify(req.Name), uuid.Nil)
		if err != nil {
			return nil, err
		}
	}

	tag := models.Tag{
		Name:  req.Name,
		Color: strings.ToUpper(req.Color),
		Slug:  slug,
	}
	if err := s.db.Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateErr(req.Name, tag.Color)
		}
		return nil, err
	}
	return &tag, nil
}

func (s *TagService) Update(id uuid.UUID, req *types.UpdateTagRequest) (*models.Tag, error) {
	tag, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tag.Name = *req.Name
		if req.Slug == nil && tag.Slug == "" {
			slug, err := s.uniqueSlug(Slugify(tag.Name), tag.ID)
			if err != nil {
				return nil, err
			}
			tag.Slug = slug
		}
	}
	if req.Color != nil {
		tag.Color = strings.ToUpper(*req.Color)
	}
	if req.Slug != nil {
		tag.Slug = *req.Slug
	}

	if err := s.db.Save(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateErr(tag.Name, tag.Color)
		}
		return nil, err
	}
	return tag, nil
}

func (s *TagService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Tag{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *TagService) duplicateErr(name, color string) error {
	var existing models.Tag
	if err := s.db.Where("name = ?", name).First(&existing).Error; err == nil {
		return ErrTagNameTaken
	}
	if err := s.db.Where("color = ?", color).First(&existing).Error; err == nil {
		return ErrTagColorTaken
	}
	return ErrTagNameTaken
}

// uniqueSlug appends -2, -3, ... until the slug is free. excludeID skips the
// tag being updated so it does not collide with itself.
func (s *TagService) uniqueSlug(base string, excludeID uuid.UUID) (string, error) {
	if base == "" {
		base = "tag"
	}
	slug := base
	for suffix := 2; ; suffix++ {
		var count int64
		query := s.db.Model(&models.Tag{}).Where("slug = ?", slug)
		if excludeID != uuid.Nil {
			query = query.Where("id <> ?", excludeID)
		}
		if err := query.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, suffix)
	}
}

// Slugify lowercases, strips diacritics where possible and replaces runs of
// non-alphanumeric characters with single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			// Non-ASCII letters pass through; the slug column accepts them
			// and filters match byte-for-byte.
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
