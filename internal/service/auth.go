package service

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/plushdex/backend/internal/config"
	"github.com/plushdex/backend/internal/db"
	"github.com/plushdex/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// The login flow always issues hour-long tokens; the configured default
// covers every other issuance.
const loginTokenTTL = 60 * time.Minute

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")
	ErrMisconfigured = errors.New("auth config invalid")
)

// UserRepository is the credential store surface. db.Postgres satisfies it;
// tests substitute fakes.
type UserRepository interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

type AuthService struct {
	repo       UserRepository
	signKey    *rsa.PrivateKey
	defaultTTL time.Duration
}

func NewAuthService(repo UserRepository, cfg config.AuthConfig) (*AuthService, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("%w: SECRET_KEY is required", ErrMisconfigured)
	}

	signKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("%w: SECRET_KEY is not a PEM RSA private key", ErrMisconfigured)
	}

	minutes, err := strconv.Atoi(cfg.AccessTokenMinutes)
	if err != nil || minutes <= 0 {
		return nil, fmt.Errorf("%w: invalid ACCESS_TOKEN_EXPIRATION_MINUTES", ErrMisconfigured)
	}

	return &AuthService{
		repo:       repo,
		signKey:    signKey,
		defaultTTL: time.Duration(minutes) * time.Minute,
	}, nil
}

func (s *AuthService) HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *AuthService) VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// Register stores a new credential. The hash is computed before any store
// access; a duplicate username surfaces as ErrConflict whether it is caught
// by the pre-check or by the unique constraint under a race.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrInvalidInput
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = s.repo.GetUserByUsername(ctx, username)
	if err == nil {
		return ErrConflict
	}
	if !db.IsNoRows(err) {
		return err
	}

	if _, err := s.repo.CreateUser(ctx, username, hash); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// Login verifies the credential and issues an hour-long bearer token. An
// unknown username and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if db.IsNoRows(err) {
			return "", ErrUnauthorized
		}
		return "", err
	}

	if !s.VerifyPassword(password, user.PasswordHash) {
		return "", ErrUnauthorized
	}

	return s.IssueToken(user.Username, loginTokenTTL)
}

// IssueToken signs a stateless RS256 token for the subject. A non-positive
// ttl falls back to the configured default.
func (s *AuthService) IssueToken(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(s.signKey)
}

func (s *AuthService) ParseAccessToken(tokenStr string) (*model.AuthUser, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, ErrUnauthorized
		}
		return &s.signKey.PublicKey, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, ErrUnauthorized
	}

	return &model.AuthUser{Username: claims.Subject}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
