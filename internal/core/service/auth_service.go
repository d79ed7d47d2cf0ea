package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/openlearn/course-platform/internal/core/domain"
	"github.com/openlearn/course-platform/internal/core/ports"
)

// tokenTTL is the fixed lifetime of issued tokens.
const tokenTTL = 7 * 24 * time.Hour

// TokenRevoker abstracts the revocation list (Redis).
type TokenRevoker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

// AuthService implements registration, login, and token handling.
type AuthService struct {
	users     ports.UserRepository
	revoker   TokenRevoker
	jwtSecret string
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, revoker TokenRevoker, jwtSecret string, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, revoker: revoker, jwtSecret: jwtSecret, log: log}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthPayload, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	// Pre-check for a friendlier error; the unique index on email remains the
	// authoritative guard, surfaced by the repository as ErrEmailTaken.
	if existing, err := s.users.FindByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")

	return &ports.AuthPayload{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthPayload, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Unknown email folds into invalid credentials: no account enumeration.
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &ports.AuthPayload{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// ValidateToken resolves a bearer token to its user. Fails closed: expired
// signature, malformed token, revoked token, or unknown user all yield nil.
func (s *AuthService) ValidateToken(ctx context.Context, token string) *domain.User {
	if token == "" {
		return nil
	}

	revoked, err := s.revoker.IsRevoked(ctx, token)
	if err != nil {
		s.log.Warn().Err(err).Msg("revocation check failed, validating signature only")
	} else if revoked {
		return nil
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil
	}
	return user
}

// Logout revokes the token for its remaining lifetime. An already-invalid
// token is rejected with ErrInvalidCredentials.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return domain.ErrInvalidCredentials
	}

	ttl := tokenTTL
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		ttl = time.Until(exp.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return s.revoker.Revoke(ctx, token, ttl)
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) generateToken(user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(tokenTTL)
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     expiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
