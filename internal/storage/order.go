package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dipalrana/restaurant-backend/internal/domain/models"
)

// OrderStorage describes the per-user order ledger.
type OrderStorage interface {
	// NextTokenNumberTx computes the next display token number for a user.
	// Must be called with the user row locked in the same transaction.
	NextTokenNumberTx(ctx context.Context, tx *sql.Tx, userID int64) (int, error)
	// CreateOrderTx inserts an order and its items inside the transaction.
	CreateOrderTx(ctx context.Context, tx *sql.Tx, order *models.Order) error
	// GetOrdersByUserID returns a user's full order history in creation order.
	GetOrdersByUserID(ctx context.Context, userID int64) ([]*models.Order, error)
}

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderStorage {
	return &orderRepository{db: db}
}

func (r *orderRepository) NextTokenNumberTx(ctx context.Context, tx *sql.Tx, userID int64) (int, error) {
	var next int
	query := "SELECT COALESCE(MAX(token_number), 0) + 1 FROM orders WHERE user_id = $1"
	if err := tx.QueryRowContext(ctx, query, userID).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to compute next token number: %w", err)
	}
	return next, nil
}

func (r *orderRepository) CreateOrderTx(ctx context.Context, tx *sql.Tx, order *models.Order) error {
	query := `INSERT INTO orders (user_id, token_number, total_amount, created_at)
	          VALUES ($1, $2, $3, NOW()) RETURNING id`
	var orderID int64
	if err := tx.QueryRowContext(ctx, query, order.UserID, order.TokenNumber, order.TotalAmount).Scan(&orderID); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	order.ID = orderID

	itemQuery := `INSERT INTO order_items (order_id, position, name, unit_price, quantity)
	              VALUES ($1, $2, $3, $4, $5)`
	for i, item := range order.Items {
		if _, err := tx.ExecContext(ctx, itemQuery, orderID, i, item.Name, item.UnitPrice, item.Quantity); err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}
	return nil
}

// GetOrdersByUserID loads orders oldest-first with their items, so the
// sequence mirrors token number order.
func (r *orderRepository) GetOrdersByUserID(ctx context.Context, userID int64) ([]*models.Order, error) {
	query := `
		SELECT id, user_id, token_number, total_amount, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY token_number ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	byID := make(map[int64]*models.Order)
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.UserID, &order.TokenNumber, &order.TotalAmount, &order.CreatedAt); err != nil {
			return nil, err
		}
		order.Items = []models.OrderItem{}
		orders = append(orders, order)
		byID[order.ID] = order
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []*models.Order{}, nil
	}

	itemQuery := `
		SELECT i.order_id, i.name, i.unit_price, i.quantity
		FROM order_items i
		JOIN orders o ON i.order_id = o.id
		WHERE o.user_id = $1
		ORDER BY i.order_id ASC, i.position ASC`
	itemRows, err := r.db.QueryContext(ctx, itemQuery, userID)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID int64
		item := models.OrderItem{}
		if err := itemRows.Scan(&orderID, &item.Name, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, err
		}
		if order, ok := byID[orderID]; ok {
			order.Items = append(order.Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
