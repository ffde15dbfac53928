package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dipalrana/restaurant-backend/internal/domain/models"
	security "github.com/dipalrana/restaurant-backend/internal/jwt"
	"github.com/dipalrana/restaurant-backend/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both an unknown email and a wrong
// password. Callers must not be able to tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

var ErrUserExists = errors.New("user already exists")

// LoginResult is what a successful login returns: a session token, a
// greeting that depends on whether the user has order history, and the
// history itself.
type LoginResult struct {
	Token   string
	Message string
	Orders  []*models.Order
}

type AuthServiceInterface interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type AuthService struct {
	log       *slog.Logger
	userRepo  storage.UserStorage
	orderRepo storage.OrderStorage
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(log *slog.Logger, userRepo storage.UserStorage, orderRepo storage.OrderStorage, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		log:       log,
		userRepo:  userRepo,
		orderRepo: orderRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Register creates a new user with a bcrypt-hashed password and returns
// a session token for it. A username or email collision yields
// ErrUserExists.
func (a *AuthService) Register(ctx context.Context, username, email, password string) (string, error) {
	const op = "service.AuthService.Register"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)
	logger.Info("registering user")

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		return "", fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user, err := a.userRepo.CreateUser(ctx, &models.User{
		Username: username,
		Email:    email,
		PassHash: passHash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			logger.Warn("user already exists")
			return "", ErrUserExists
		}
		logger.Error("failed to create user", slog.Any("error", err))
		return "", fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	token, err := security.NewToken(user, a.jwtSecret, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return "", fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user registered", slog.Int64("userID", user.ID))
	return token, nil
}

// Login verifies the credentials and returns a token plus the user's
// order history. Unknown email and wrong password produce the same
// ErrInvalidCredentials.
func (a *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	const op = "service.AuthService.Login"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)
	logger.Info("checking user")

	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Warn("user not found")
			return nil, ErrInvalidCredentials
		}
		logger.Error("failed to get user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		logger.Warn("invalid password")
		return nil, ErrInvalidCredentials
	}

	token, err := security.NewToken(user, a.jwtSecret, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	orders, err := a.orderRepo.GetOrdersByUserID(ctx, user.ID)
	if err != nil {
		logger.Error("failed to get orders", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get orders: %w", op, err)
	}

	message := "Welcome! You have no previous orders."
	if len(orders) > 0 {
		message = "Welcome back! You have saved orders."
	}

	logger.Info("user logged in successfully", slog.Int64("userID", user.ID))
	return &LoginResult{
		Token:   token,
		Message: message,
		Orders:  orders,
	}, nil
}
