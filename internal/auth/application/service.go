package application

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	authdomain "github.com/surveyflow/surveyflow-services/api/internal/auth/domain"
	"github.com/surveyflow/surveyflow-services/api/pkg/fault"
)

// ErrUserNotFound is returned by repositories when no user matches.
var ErrUserNotFound = errors.New("user not found")

// UserRepository persists accounts.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*authdomain.User, error)
	FindByID(ctx context.Context, id string) (*authdomain.User, error)
	Create(ctx context.Context, user *authdomain.User) error
}

// TokenPair bundles the two credentials handed to a client session.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RegisterCommand carries a validated-at-the-boundary registration.
type RegisterCommand struct {
	Name     string
	Email    string
	Password string
}

// LoginCommand carries login credentials.
type LoginCommand struct {
	Email    string
	Password string
}

// AuthService describes the credential and token use-cases.
type AuthService interface {
	Register(ctx context.Context, cmd RegisterCommand) (*authdomain.User, TokenPair, error)
	Login(ctx context.Context, cmd LoginCommand) (*authdomain.User, TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	ParseAccessToken(token string) (string, error)
}

// TokenConfig holds the two signing secrets and lifetimes. The access
// and refresh secrets must differ so one token can never stand in for
// the other.
type TokenConfig struct {
	Issuer        string
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type authService struct {
	users  UserRepository
	tokens TokenConfig
}

// NewAuthService creates an AuthService over the given repository.
func NewAuthService(users UserRepository, tokens TokenConfig) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, cmd RegisterCommand) (*authdomain.User, TokenPair, error) {
	name, err := authdomain.NewName(cmd.Name)
	if err != nil {
		return nil, TokenPair{}, fault.Validation(err.Error())
	}
	email, err := authdomain.NewEmail(cmd.Email)
	if err != nil {
		return nil, TokenPair{}, fault.Validation(err.Error())
	}
	if err := authdomain.ValidatePassword(cmd.Password); err != nil {
		return nil, TokenPair{}, fault.Validation(err.Error())
	}

	if _, err := s.users.FindByEmail(ctx, email.String()); err == nil {
		return nil, TokenPair{}, fault.Conflict("user already exists")
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, TokenPair{}, fault.Internal("user lookup failed", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, TokenPair{}, fault.Internal("password hashing failed", err)
	}

	user := &authdomain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, TokenPair{}, fault.Internal("user creation failed", err)
	}

	pair, err := s.issueTokenPair(user.ID)
	if err != nil {
		return nil, TokenPair{}, fault.Internal("token issuance failed", err)
	}
	return user, pair, nil
}

// Login deliberately reports one generic message for unknown email and
// wrong password so callers cannot enumerate accounts.
func (s *authService) Login(ctx context.Context, cmd LoginCommand) (*authdomain.User, TokenPair, error) {
	email, err := authdomain.NewEmail(cmd.Email)
	if err != nil {
		return nil, TokenPair{}, fault.Validation(err.Error())
	}
	if err := authdomain.ValidatePassword(cmd.Password); err != nil {
		return nil, TokenPair{}, fault.Validation(err.Error())
	}

	user, err := s.users.FindByEmail(ctx, email.String())
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, TokenPair{}, fault.Auth("invalid email or password")
		}
		return nil, TokenPair{}, fault.Internal("user lookup failed", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(cmd.Password)); err != nil {
		return nil, TokenPair{}, fault.Auth("invalid email or password")
	}

	pair, err := s.issueTokenPair(user.ID)
	if err != nil {
		return nil, TokenPair{}, fault.Internal("token issuance failed", err)
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new access token. Every
// failure mode (missing, malformed, expired, deleted user) is reported
// as the same generic auth error.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", fault.Auth("invalid refresh token")
	}

	userID, err := s.parseToken(refreshToken, s.tokens.RefreshSecret)
	if err != nil {
		return "", fault.Auth("invalid refresh token")
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return "", fault.Auth("invalid refresh token")
	}

	access, err := s.signToken(userID, s.tokens.AccessSecret, s.tokens.AccessTTL)
	if err != nil {
		return "", fault.Internal("token issuance failed", err)
	}
	return access, nil
}

// ParseAccessToken verifies an access token and returns the user id claim.
func (s *authService) ParseAccessToken(token string) (string, error) {
	userID, err := s.parseToken(token, s.tokens.AccessSecret)
	if err != nil {
		return "", fault.Auth("invalid access token")
	}
	return userID, nil
}

func (s *authService) issueTokenPair(userID string) (TokenPair, error) {
	access, err := s.signToken(userID, s.tokens.AccessSecret, s.tokens.AccessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.signToken(userID, s.tokens.RefreshSecret, s.tokens.RefreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) signToken(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    s.tokens.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (s *authService) parseToken(tokenString string, secret []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method: " + token.Method.Alg())
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	if s.tokens.Issuer != "" && claims.Issuer != s.tokens.Issuer {
		return "", errors.New("unexpected issuer")
	}
	if claims.Subject == "" {
		return "", errors.New("missing subject")
	}
	return claims.Subject, nil
}
