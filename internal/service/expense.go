package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/abidalfrz/expense-tracker-webapp/internal/models"

	"gorm.io/gorm"
)

// ExpenseService owns expense CRUD and the ownership rule: only the owner
// may edit or delete a record, and a mismatch is an authorization failure,
// not a not-found.
type ExpenseService struct {
	DB *gorm.DB
}

func NewExpenseService(db *gorm.DB) *ExpenseService {
	return &ExpenseService{DB: db}
}

// ExpenseInput carries the mutable fields of an expense.
type ExpenseInput struct {
	Title      string
	Amount     float64
	Date       time.Time
	CategoryID uint
}

func (in ExpenseInput) validate() error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if in.CategoryID == 0 {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	return nil
}

// Create inserts a new expense owned by the user.
func (s *ExpenseService) Create(userID uint, in ExpenseInput) (*models.Expense, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	expense := models.Expense{
		UserID:     userID,
		CategoryID: in.CategoryID,
		Title:      in.Title,
		Amount:     in.Amount,
		Date:       in.Date,
	}
	if err := s.DB.Create(&expense).Error; err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return &expense, nil
}

// Get loads an expense by id and enforces ownership.
func (s *ExpenseService) Get(userID, id uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.DB.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup expense: %w", err)
	}
	if expense.UserID != userID {
		return nil, ErrUnauthorized
	}
	return &expense, nil
}

// Update overwrites all mutable fields of the user's expense in place.
func (s *ExpenseService) Update(userID, id uint, in ExpenseInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	expense, err := s.Get(userID, id)
	if err != nil {
		return err
	}

	expense.Title = in.Title
	expense.Amount = in.Amount
	expense.Date = in.Date
	expense.CategoryID = in.CategoryID

	if err := s.DB.Save(expense).Error; err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

// Delete removes the user's expense.
func (s *ExpenseService) Delete(userID, id uint) error {
	expense, err := s.Get(userID, id)
	if err != nil {
		return err
	}
	if err := s.DB.Delete(expense).Error; err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// ListByUser returns all expenses owned by the user in insertion order.
func (s *ExpenseService) ListByUser(userID uint) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.DB.Where("user_id = ?", userID).
		Order("id ASC").
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}
