// Package auth resolves user identities for the retrieval surface. Token
// issuance is deliberately thin: HS256 with the user id and role as claims,
// and the account is re-read from the store on every request so revoked
// users drop out immediately.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vebops/store/internal/config"
	"github.com/vebops/store/internal/domain/models"
	"github.com/vebops/store/internal/repository/mongodb"
)

// ErrInvalidCredentials indicates an unknown email or wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnauthenticated indicates a missing, malformed or expired token.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrEmailTaken indicates the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidUser indicates a submitted account that fails validation.
var ErrInvalidUser = errors.New("invalid user input")

const tokenTTL = 24 * time.Hour

// Claims is the JWT payload.
type Claims struct {
	UserID string      `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and verifies tokens and manages account credentials.
type Service struct {
	repo   mongodb.Repository
	secret []byte
	logger *zap.Logger
}

// NewService wires an auth service instance.
func NewService(repo mongodb.Repository, cfg config.AuthConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, secret: []byte(cfg.JWTSecret), logger: logger}
}

// Login verifies credentials and returns a signed token with the account.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.UserAccount, error) {
	user, err := s.repo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}
	s.logger.Info("user logged in", zap.String("user_id", user.ID.Hex()), zap.String("role", string(user.Role)))
	return token, user, nil
}

// GenerateToken signs a token for the account.
func (s *Service) GenerateToken(user *models.UserAccount) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID.Hex(),
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Authenticate parses a bearer token and loads the matching account. Every
// failure collapses into ErrUnauthenticated for the caller; details go to
// the log only.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*models.UserAccount, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrUnauthenticated
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		s.logger.Debug("token rejected", zap.Error(err))
		return nil, ErrUnauthenticated
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrUnauthenticated
	}

	user, err := s.repo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		s.logger.Warn("token user lookup failed", zap.String("user_id", claims.UserID), zap.Error(err))
		return nil, ErrUnauthenticated
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// UserInput is a submitted user account.
type UserInput struct {
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	Password   string   `json:"password"`
	Role       string   `json:"role"`
	AccessType string   `json:"accessType"`
	ProjectIDs []string `json:"projectIds"`
}

// CreateUser registers an account with a hashed password.
func (s *Service) CreateUser(ctx context.Context, input UserInput) (models.UserAccount, error) {
	var empty models.UserAccount

	user, err := normalizeUser(input)
	if err != nil {
		return empty, err
	}

	existing, err := s.repo.FindUserByEmail(ctx, user.Email)
	if err != nil {
		return empty, err
	}
	if existing != nil {
		return empty, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return empty, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	saved, err := s.repo.InsertUser(ctx, user)
	if err != nil {
		return empty, err
	}
	s.logger.Info("user created",
		zap.String("user_id", saved.ID.Hex()),
		zap.String("role", string(saved.Role)),
		zap.String("access_type", string(saved.AccessType)))
	return saved, nil
}

// SeedAdmin creates the configured initial admin when no accounts exist yet.
func (s *Service) SeedAdmin(ctx context.Context, seed config.SeedConfig) error {
	if seed.AdminEmail == "" {
		return nil
	}

	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = s.CreateUser(ctx, UserInput{
		Email:      seed.AdminEmail,
		Name:       "Administrator",
		Password:   seed.AdminPassword,
		Role:       string(models.RoleAdmin),
		AccessType: string(models.AccessAll),
	})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	s.logger.Info("seed admin created", zap.String("email", seed.AdminEmail))
	return nil
}

func normalizeUser(input UserInput) (models.UserAccount, error) {
	var empty models.UserAccount

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return empty, fmt.Errorf("%w: a valid email is required", ErrInvalidUser)
	}
	if len(input.Password) < 8 {
		return empty, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidUser)
	}

	role := models.Role(strings.ToUpper(strings.TrimSpace(input.Role)))
	switch role {
	case models.RoleAdmin, models.RoleStorekeeper, models.RoleViewer:
	default:
		return empty, fmt.Errorf("%w: unknown role %q", ErrInvalidUser, input.Role)
	}

	accessType := models.AccessType(strings.ToUpper(strings.TrimSpace(input.AccessType)))
	switch accessType {
	case models.AccessAll, models.AccessProjects:
	default:
		return empty, fmt.Errorf("%w: unknown access type %q", ErrInvalidUser, input.AccessType)
	}

	user := models.UserAccount{
		Email:      email,
		Name:       strings.TrimSpace(input.Name),
		Role:       role,
		AccessType: accessType,
	}
	for _, raw := range input.ProjectIDs {
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
		if err != nil {
			return empty, fmt.Errorf("%w: invalid project id %q", ErrInvalidUser, raw)
		}
		user.ProjectIDs = append(user.ProjectIDs, id)
	}
	return user, nil
}
