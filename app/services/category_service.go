package services

import (
	"strings"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// CategoryInput is the payload of a create or update. Nil fields are left
// alone on update.
type CategoryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CategoryService handles business logic for categories. Names are not
// unique and deleting a category leaves referencing posts untouched.
type CategoryService struct {
	categories repositories.CategoryRepository
	now        func() time.Time
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categories repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories, now: time.Now}
}

// ListCategories returns every category.
func (s *CategoryService) ListCategories() ([]*models.Category, error) {
	categories, err := s.categories.List()
	if err != nil {
		return nil, storageError(err)
	}
	return categories, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(id string) (*models.Category, error) {
	category, err := s.categories.GetByID(id)
	if err != nil {
		return nil, lookupError(err, "No category with the id of %s", id)
	}
	return category, nil
}

// CreateCategory creates a new category with validation
func (s *CategoryService) CreateCategory(in CategoryInput) (*models.Category, error) {
	category := &models.Category{
		Name:        strings.TrimSpace(deref(in.Name)),
		Description: strings.TrimSpace(deref(in.Description)),
	}
	if err := category.Validate(); err != nil {
		return nil, validationError(err.Error())
	}

	now := s.now()
	category.CreatedAt = now
	category.UpdatedAt = now
	if err := s.categories.Create(category); err != nil {
		return nil, storageError(err)
	}
	return category, nil
}

// UpdateCategory applies a partial update.
func (s *CategoryService) UpdateCategory(id string, in CategoryInput) (*models.Category, error) {
	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		category.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		category.Description = strings.TrimSpace(*in.Description)
	}
	if err := category.Validate(); err != nil {
		return nil, validationError(err.Error())
	}

	category.UpdatedAt = s.now()
	if err := s.categories.Update(category); err != nil {
		return nil, lookupError(err, "No category with the id of %s", id)
	}
	return category, nil
}

// DeleteCategory removes a category.
func (s *CategoryService) DeleteCategory(id string) error {
	if err := s.categories.Delete(id); err != nil {
		return lookupError(err, "No category with the id of %s", id)
	}
	return nil
}

// ReplaceAll deletes every category and creates the given ones in order.
func (s *CategoryService) ReplaceAll(inputs []CategoryInput) ([]*models.Category, error) {
	existing, err := s.ListCategories()
	if err != nil {
		return nil, err
	}
	for _, category := range existing {
		if err := s.DeleteCategory(category.ID); err != nil {
			return nil, err
		}
	}

	created := make([]*models.Category, 0, len(inputs))
	for _, in := range inputs {
		category, err := s.CreateCategory(in)
		if err != nil {
			return nil, err
		}
		created = append(created, category)
	}
	return created, nil
}
