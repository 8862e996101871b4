package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abidalfrz/expense-tracker-webapp/internal/auth"
	"github.com/abidalfrz/expense-tracker-webapp/internal/models"

	"gorm.io/gorm"
)

// DefaultCategories are seeded for every new user at registration.
var DefaultCategories = []models.Category{
	{Name: "Food", Description: "Expenses on food and dining"},
	{Name: "Transport", Description: "Expenses on transportation"},
	{Name: "Utilities", Description: "Expenses on utilities like electricity, water, internet"},
	{Name: "Entertainment", Description: "Expenses on movies, games, and other entertainment"},
	{Name: "Healthcare", Description: "Medical and healthcare-related expenses"},
}

// UserService owns registration and credential checks.
type UserService struct {
	DB         *gorm.DB
	BcryptCost int
}

func NewUserService(db *gorm.DB, bcryptCost int) *UserService {
	return &UserService{DB: db, BcryptCost: bcryptCost}
}

// Register creates a user with a hashed password and seeds the default
// categories. Usernames are unique, compared case-sensitively.
func (s *UserService) Register(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	var count int64
	if err := s.DB.Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}

	hash, err := auth.HashPassword(password, s.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: hash,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		for _, c := range DefaultCategories {
			seed := models.Category{
				UserID:      user.ID,
				Name:        c.Name,
				Description: c.Description,
			}
			if err := tx.Create(&seed).Error; err != nil {
				return fmt.Errorf("seed category %s: %w", c.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Authenticate looks a user up by username and verifies the password.
// A missing user and a wrong password fail the same way.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)

	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GetByID resolves a user id to its record.
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return &user, nil
}
