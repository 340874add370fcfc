package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/plateup/backend/internal/middleware"
	"github.com/plateup/backend/internal/models"
	"github.com/plateup/backend/internal/validation"
)

// SessionStore records issued sessions so that logout is an explicit
// teardown: a revoked token stops validating immediately, not at expiry.
type SessionStore interface {
	Save(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// AuthService issues and validates session tokens. Authentication here is
// deliberately shallow (no verification emails, no password reset); it
// exists so profile and author-only recipe operations have a caller
// identity.
type AuthService struct {
	db        *gorm.DB
	sessions  SessionStore
	jwtSecret string
	ttl       time.Duration
}

// NewAuthService creates a new AuthService instance
func NewAuthService(db *gorm.DB, sessions SessionStore, jwtSecret string, ttl time.Duration) *AuthService {
	return &AuthService{
		db:        db,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		ttl:       ttl,
	}
}

// RegisterParams are the fields captured at sign-up.
type RegisterParams struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

// Register creates a user and opens a session for it.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (string, *models.User, error) {
	if !validation.ValidEmail(p.Email) {
		return "", nil, errors.New("invalid email address")
	}
	if len(p.Password) < 8 {
		return "", nil, errors.New("password must be at least 8 characters")
	}

	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", p.Email).First(&existing).Error; err == nil {
		return "", nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	username := p.Username
	if username == "" {
		username = strings.ToLower(p.FirstName) + strings.ToLower(p.LastName)
	}

	user := models.User{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Username:     username,
		Email:        p.Email,
		PasswordHash: string(hash),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return "", nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Login verifies the credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Logout tears the session down. The token keeps its signature but will no
// longer validate.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		return err
	}
	return s.sessions.Delete(ctx, claims.sessionID)
}

// ValidateToken checks the signature, expiry and session liveness of a
// token and returns its claims.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*middleware.TokenClaims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}

	alive, err := s.sessions.Exists(ctx, claims.sessionID)
	if err != nil {
		return nil, fmt.Errorf("session lookup failed: %w", err)
	}
	if !alive {
		return nil, errors.New("session expired or logged out")
	}

	return &middleware.TokenClaims{UserID: claims.userID}, nil
}

type parsedClaims struct {
	userID    uuid.UUID
	sessionID string
}

func (s *AuthService) parse(tokenString string) (*parsedClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}
	sessionID, ok := claims["jti"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return &parsedClaims{userID: userID, sessionID: sessionID}, nil
}

func (s *AuthService) openSession(ctx context.Context, userID uuid.UUID) (string, error) {
	sessionID := uuid.New().String()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"jti":     sessionID,
		"exp":     time.Now().Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	if err := s.sessions.Save(ctx, sessionID, userID, s.ttl); err != nil {
		return "", fmt.Errorf("failed to record session: %w", err)
	}
	return signed, nil
}
