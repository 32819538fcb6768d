package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/folio/portfolio/internal/infrastructure/config"
	"github.com/folio/portfolio/internal/infrastructure/logger"
	"github.com/folio/portfolio/internal/ports"
)

const adminRole = "admin"

var (
	// ErrInvalidCredentials is returned by Login for a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is returned by Authorize for a missing or unknown token.
	ErrUnauthorized = errors.New("unauthorized")
)

// Claims represents the JWT claims
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService checks admin credentials and tokens
type AuthService struct {
	admin     config.AdminConfig
	jwtConfig config.JWTConfig
	logger    *logger.Logger
	now       func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(admin config.AdminConfig, jwtConfig config.JWTConfig, logger *logger.Logger) *AuthService {
	return &AuthService{
		admin:     admin,
		jwtConfig: jwtConfig,
		logger:    logger.WithComponent("auth_service"),
		now:       time.Now,
	}
}

// Login exchanges the admin password for a session token
func (s *AuthService) Login(ctx context.Context, req ports.LoginRequest) (*ports.LoginResponse, error) {
	if !s.checkPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.generateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Infow("Admin logged in", "expires_at", expiresAt)

	return &ports.LoginResponse{
		Success:   true,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *AuthService) checkPassword(password string) bool {
	if password == "" {
		return false
	}
	if s.admin.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password)) == nil
	}
	if s.admin.Password != "" {
		return subtle.ConstantTimeCompare([]byte(s.admin.Password), []byte(password)) == 1
	}
	return false
}

// Authorize accepts the static admin token or a session token issued by Login
func (s *AuthService) Authorize(token string) error {
	if token == "" {
		return ErrUnauthorized
	}

	if s.admin.Token != "" && subtle.ConstantTimeCompare([]byte(s.admin.Token), []byte(token)) == 1 {
		return nil
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if claims.Role != adminRole {
		return ErrUnauthorized
	}
	return nil
}

// ValidateToken validates a JWT token and returns claims
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtConfig.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.jwtConfig.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

func (s *AuthService) generateToken() (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.jwtConfig.ExpiresIn)

	claims := &Claims{
		Role: adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   adminRole,
			Issuer:    s.jwtConfig.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// HashPassword returns a bcrypt hash suitable for admin.password_hash
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
