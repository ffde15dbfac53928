package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/dipalrana/restaurant-backend/internal/domain/models"
	"github.com/dipalrana/restaurant-backend/internal/storage"
)

var (
	ErrEmptyOrder = errors.New("order must contain at least one item")
	// ErrTotalMismatch means the submitted total does not equal the sum
	// of the item lines. Totals are recomputed server-side, the client
	// value is only accepted when it agrees.
	ErrTotalMismatch = errors.New("total amount does not match order items")
)

type OrderService interface {
	PlaceOrder(ctx context.Context, userID int64, items []models.OrderItem, totalAmount float64) (int, error)
	ListOrders(ctx context.Context, userID int64) ([]*models.Order, error)
}

type orderService struct {
	log       *slog.Logger
	db        *sql.DB
	userRepo  storage.UserStorage
	orderRepo storage.OrderStorage
}

func NewOrderService(log *slog.Logger, db *sql.DB, userRepo storage.UserStorage, orderRepo storage.OrderStorage) OrderService {
	return &orderService{
		log:       log,
		db:        db,
		userRepo:  userRepo,
		orderRepo: orderRepo,
	}
}

// PlaceOrder appends an order to the user's ledger and returns its
// display token number. The whole append runs in one transaction that
// holds the user's row lock, so concurrent orders for the same user
// cannot observe the same order count and duplicate a token number.
func (s *orderService) PlaceOrder(ctx context.Context, userID int64, items []models.OrderItem, totalAmount float64) (int, error) {
	const op = "service.OrderService.PlaceOrder"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))
	logger.Info("starting order transaction")

	if len(items) == 0 {
		return 0, ErrEmptyOrder
	}
	var computed float64
	for _, item := range items {
		if item.Quantity <= 0 || item.UnitPrice < 0 || item.Name == "" {
			return 0, ErrEmptyOrder
		}
		computed += item.UnitPrice * float64(item.Quantity)
	}
	if math.Abs(computed-totalAmount) > 0.005 {
		logger.Warn("total mismatch", slog.Float64("submitted", totalAmount), slog.Float64("computed", computed))
		return 0, ErrTotalMismatch
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	user, err := s.userRepo.LockUserByIDTx(ctx, tx, userID)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Warn("user not found")
			return 0, err
		}
		logger.Error("failed to lock user", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to lock user: %w", op, err)
	}

	tokenNumber, err := s.orderRepo.NextTokenNumberTx(ctx, tx, user.ID)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Error("failed to compute token number", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to compute token number: %w", op, err)
	}

	order := &models.Order{
		UserID:      user.ID,
		TokenNumber: tokenNumber,
		Items:       items,
		TotalAmount: totalAmount,
	}
	if err := s.orderRepo.CreateOrderTx(ctx, tx, order); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Error("failed to create order", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to create order: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Info("order placed", slog.Int("tokenNumber", tokenNumber))
	return tokenNumber, nil
}

// ListOrders returns the user's full order history in creation order.
// A user with no orders gets an empty slice, not an error.
func (s *orderService) ListOrders(ctx context.Context, userID int64) ([]*models.Order, error) {
	const op = "service.OrderService.ListOrders"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))

	// The token may outlive the user record; resolve it first so the
	// transport layer can answer 404 instead of an empty history.
	if _, err := s.userRepo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Warn("user not found")
			return nil, err
		}
		logger.Error("failed to get user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	orders, err := s.orderRepo.GetOrdersByUserID(ctx, userID)
	if err != nil {
		logger.Error("failed to get orders", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get orders: %w", op, err)
	}
	return orders, nil
}
