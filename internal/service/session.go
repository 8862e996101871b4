package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/abidalfrz/expense-tracker-webapp/internal/auth"
	"github.com/abidalfrz/expense-tracker-webapp/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionService issues and resolves login sessions. The browser carries a
// signed JWT; the sessions table is the source of truth so logout can
// invalidate a token before its expiry.
type SessionService struct {
	DB     *gorm.DB
	Secret string
	Issuer string
	TTL    time.Duration
}

func NewSessionService(db *gorm.DB, secret, issuer string, ttlHours int) *SessionService {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &SessionService{
		DB:     db,
		Secret: secret,
		Issuer: issuer,
		TTL:    time.Duration(ttlHours) * time.Hour,
	}
}

// Create opens a session for the user and returns the signed token.
func (s *SessionService) Create(userID uint) (string, error) {
	sess := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.TTL),
	}
	if err := s.DB.Create(&sess).Error; err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	token, err := auth.GenerateToken(s.Secret, s.Issuer, userID, sess.ID, s.TTL)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Resolve verifies a token and returns the user it belongs to. It fails with
// ErrSessionInvalid when the token is malformed, expired, revoked, or points
// at a deleted session or user.
func (s *SessionService) Resolve(token string) (*models.User, error) {
	claims, err := auth.ParseToken(s.Secret, token)
	if err != nil {
		return nil, ErrSessionInvalid
	}

	var sess models.Session
	if err := s.DB.First(&sess, "id = ?", claims.SessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if sess.Revoked || time.Now().After(sess.ExpiresAt) {
		return nil, ErrSessionInvalid
	}

	var user models.User
	if err := s.DB.First(&user, sess.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return &user, nil
}

// Revoke marks the token's session as revoked. Unknown or already revoked
// tokens are a no-op, so logout stays idempotent.
func (s *SessionService) Revoke(token string) error {
	claims, err := auth.ParseToken(s.Secret, token)
	if err != nil {
		return nil
	}
	return s.DB.Model(&models.Session{}).
		Where("id = ?", claims.SessionID).
		Update("revoked", true).Error
}
