package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nplqhub/revise/internal/entity"
	"github.com/nplqhub/revise/internal/repository"
)

// Identity is the authenticated caller extracted from a token. The core
// treats an empty UserID as "not logged in" and refuses progress operations.
type Identity struct {
	UserID string
	Role   entity.Role
}

func (id Identity) IsAdmin() bool { return id.Role == entity.RoleAdmin }

// AuthUsecase checks credentials against the users collection and issues
// bearer tokens. Students and admins log in through separate channels; using
// the wrong one is rejected even with valid credentials.
type AuthUsecase interface {
	Login(ctx context.Context, username, password string) (string, *entity.User, error)
	AdminLogin(ctx context.Context, username, password string) (string, *entity.User, error)
	ParseToken(token string) (Identity, error)
}

func NewAuthUsecase(users repository.UserRepository, secret string, tokenTTL time.Duration) AuthUsecase {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &authUsecase{
		users:  users,
		secret: []byte(secret),
		ttl:    tokenTTL,
		clock:  time.Now,
	}
}

type authUsecase struct {
	users  repository.UserRepository
	secret []byte
	ttl    time.Duration
	clock  func() time.Time
}

func (u *authUsecase) Login(ctx context.Context, username, password string) (string, *entity.User, error) {
	return u.login(ctx, username, password, entity.RoleStudent)
}

func (u *authUsecase) AdminLogin(ctx context.Context, username, password string) (string, *entity.User, error) {
	return u.login(ctx, username, password, entity.RoleAdmin)
}

func (u *authUsecase) login(ctx context.Context, username, password string, channel entity.Role) (string, *entity.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return "", nil, entity.ErrInvalidCredential
	}
	user, err := u.users.Get(ctx, username)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return "", nil, entity.ErrInvalidCredential
		}
		return "", nil, err
	}
	// Stored passwords are plain text, inherited from the original data set.
	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		return "", nil, entity.ErrInvalidCredential
	}
	if user.Role != channel {
		return "", nil, entity.ErrWrongLoginChannel
	}

	now := u.clock()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(u.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	sanitized := *user
	sanitized.Password = ""
	return token, &sanitized, nil
}

func (u *authUsecase) ParseToken(tokenString string) (Identity, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return u.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return u.clock() }))
	if err != nil || !parsed.Valid {
		return Identity{}, entity.ErrNotLoggedIn
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, entity.ErrNotLoggedIn
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return Identity{}, entity.ErrNotLoggedIn
	}
	return Identity{UserID: sub, Role: entity.Role(role)}, nil
}
