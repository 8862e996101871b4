package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abidalfrz/expense-tracker-webapp/internal/models"

	"gorm.io/gorm"
)

// CategoryService owns category CRUD and the per-user name uniqueness rule.
type CategoryService struct {
	DB *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{DB: db}
}

// List returns all categories owned by the user.
func (s *CategoryService) List(userID uint) ([]models.Category, error) {
	var categories []models.Category
	if err := s.DB.Where("user_id = ?", userID).
		Order("id ASC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Get returns one of the user's categories by id.
func (s *CategoryService) Get(userID, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.DB.Where("id = ? AND user_id = ?", id, userID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup category: %w", err)
	}
	return &category, nil
}

// Create inserts a category for the user. The name must not collide with
// another category of the same user.
func (s *CategoryService) Create(userID uint, name, description string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}

	var count int64
	if err := s.DB.Model(&models.Category{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check category name: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateCategory
	}

	category := models.Category{
		UserID:      userID,
		Name:        name,
		Description: description,
	}
	if err := s.DB.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

// Update renames a category and replaces its description. The new name must
// not collide with another category of the same user, excluding itself.
func (s *CategoryService) Update(userID, id uint, name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: category name is required", ErrValidation)
	}

	category, err := s.Get(userID, id)
	if err != nil {
		return err
	}

	var count int64
	if err := s.DB.Model(&models.Category{}).
		Where("user_id = ? AND name = ? AND id <> ?", userID, name, id).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check category name: %w", err)
	}
	if count > 0 {
		return ErrDuplicateCategory
	}

	category.Name = name
	category.Description = description
	if err := s.DB.Save(category).Error; err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category unless an expense still references it.
//
// Known gap carried over from the system this replaces: the category's owner
// is not checked, only the in-use guard. See the security review note in
// DESIGN.md.
func (s *CategoryService) Delete(id uint) error {
	var category models.Category
	if err := s.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("lookup category: %w", err)
	}

	var count int64
	if err := s.DB.Model(&models.Expense{}).
		Where("category_id = ?", id).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check expenses: %w", err)
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	if err := s.DB.Delete(&category).Error; err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
