package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clinic-service/internal/model"
	"clinic-service/internal/repository"
	"clinic-service/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer mints bearer tokens for a user and clinic pair
type TokenIssuer interface {
	GenerateToken(userID, clinicID uint) (string, error)
}

// RegisterInput is the registration payload
type RegisterInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	ClinicName string `json:"clinicName"`
}

// LoginInput is the login payload
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Me describes the authenticated user
type Me struct {
	ID     uint          `json:"id"`
	Email  string        `json:"email"`
	Clinic *model.Clinic `json:"clinic"`
}

// AuthService handles registration, login and identity lookup
type AuthService struct {
	users   repository.UserRepository
	clinics repository.ClinicRepository
	tokens  TokenIssuer
	cost    int
}

// NewAuthService creates an AuthService
func NewAuthService(users repository.UserRepository, clinics repository.ClinicRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:   users,
		clinics: clinics,
		tokens:  tokens,
		cost:    bcrypt.DefaultCost,
	}
}

// Register creates a clinic with its first user and returns a token for them
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	email := strings.TrimSpace(in.Email)
	clinicName := strings.TrimSpace(in.ClinicName)
	if email == "" || in.Password == "" || clinicName == "" {
		return "", invalid("", "Missing fields")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return "", ErrConflict
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("lookup user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	clinic := &model.Clinic{Name: clinicName}
	user := &model.User{Email: email, Password: string(hashed)}
	if err := s.users.CreateWithClinic(ctx, clinic, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", ErrConflict
		}
		return "", err
	}

	logger.FromContext(ctx).Info("Clinic registered", zap.Uint("clinic_id", clinic.ID), zap.Uint("user_id", user.ID))
	return s.tokens.GenerateToken(user.ID, clinic.ID)
}

// Login checks credentials and returns a fresh token
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return "", invalid("", "Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.GenerateToken(user.ID, user.ClinicID)
}

// Me returns the user behind scope together with their clinic
func (s *AuthService) Me(ctx context.Context, scope Scope) (*Me, error) {
	user, err := s.users.GetByID(ctx, scope.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	clinic, err := s.clinics.GetByID(ctx, user.ClinicID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return &Me{ID: user.ID, Email: user.Email, Clinic: clinic}, nil
}
