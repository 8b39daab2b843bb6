package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dentabook/dentist-booking-api/internal/models"
	"github.com/dentabook/dentist-booking-api/internal/storage"
	"github.com/dentabook/dentist-booking-api/internal/utils"
)

// AuthService covers registration, login and current-user lookup.
type AuthService struct {
	users  UserStore
	tokens *utils.TokenManager
	logger *zap.Logger
}

func NewAuthService(users UserStore, tokens *utils.TokenManager, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Register creates a user with a hashed password and issues a token for it.
// The email must not already be registered.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error) {
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Telephone: req.Telephone,
		Email:     req.Email,
		Password:  hashed,
		Role:      role,
		CreatedAt: time.Now(),
	}

	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("user registered", zap.String("userId", user.ID.Hex()), zap.String("role", user.Role))
	return user, token, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// Me returns the profile of the authenticated user.
func (s *AuthService) Me(ctx context.Context, identity models.Identity) (*models.User, error) {
	user, err := s.users.FindByID(ctx, identity.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}
