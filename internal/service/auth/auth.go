// Package auth is the local user registry behind the technician login.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"renza-entrega/internal/storage"
)

const minPasswordLen = 6

var (
	ErrMissingFields      = errors.New("name, email and password are required")
	ErrWeakPassword       = errors.New("password must have at least 6 characters")
	ErrEmailInUse         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type UserStore interface {
	CreateUser(ctx context.Context, user storage.User) error
	UserByEmail(ctx context.Context, email string) (storage.User, error)
}

// Claims is the payload of an access token.
type Claims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

type Token struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        storage.User `json:"user"`
}

type Service struct {
	users  UserStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(users UserStore, secret string, ttl time.Duration) *Service {
	return &Service{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *Service) Register(ctx context.Context, name, email, password string) (storage.User, error) {
	const op = "service.auth.Register"

	name, email = strings.TrimSpace(name), strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return storage.User{}, fmt.Errorf("%s: %w", op, ErrMissingFields)
	}
	if len(password) < minPasswordLen {
		return storage.User{}, fmt.Errorf("%s: %w", op, ErrWeakPassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return storage.User{}, fmt.Errorf("%s: hash password: %w", op, err)
	}

	user := storage.User{
		UID:          uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			return storage.User{}, fmt.Errorf("%s: %w", op, ErrEmailInUse)
		}
		return storage.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (Token, error) {
	const op = "service.auth.Login"

	user, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return Token{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return Token{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return Token{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UID:   user.UID,
		Email: user.Email,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return Token{}, fmt.Errorf("%s: sign token: %w", op, err)
	}

	return Token{AccessToken: signed, ExpiresAt: expiresAt, User: user}, nil
}

// ForgotPassword only checks that the account exists; no mail is sent.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	const op = "service.auth.ForgotPassword"

	if _, err := s.users.UserByEmail(ctx, email); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
