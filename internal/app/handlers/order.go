package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dipalrana/restaurant-backend/internal/domain/models"
	"github.com/dipalrana/restaurant-backend/internal/jwt/jwtmiddleware"
	"github.com/dipalrana/restaurant-backend/internal/service"
	"github.com/dipalrana/restaurant-backend/internal/storage"
)

// PlaceOrderRequest is the request body for POST /place-order.
type PlaceOrderRequest struct {
	Items       []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	TotalAmount float64            `json:"totalAmount" validate:"required,gt=0"`
}

type OrderItemRequest struct {
	Name      string  `json:"name" validate:"required"`
	UnitPrice float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
}

// PlaceOrderResponse returns the assigned display token number.
type PlaceOrderResponse struct {
	Message     string `json:"message"`
	TokenNumber int    `json:"tokenNumber"`
}

// OrdersResponse is the response for POST /orders.
type OrdersResponse struct {
	Message string          `json:"message"`
	Orders  []*models.Order `json:"orders"`
}

// PlaceOrderHandler handles POST /place-order for an authenticated user.
func PlaceOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.PlaceOrderHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req PlaceOrderRequest
		if err := decodeStrict(r, &req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		items := make([]models.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, models.OrderItem{
				Name:      item.Name,
				UnitPrice: item.UnitPrice,
				Quantity:  item.Quantity,
			})
		}

		tokenNumber, err := orderService.PlaceOrder(r.Context(), userID, items, req.TotalAmount)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrEmptyOrder), errors.Is(err, service.ErrTotalMismatch):
				logger.Warn("order rejected", slog.Any("error", err))
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, storage.ErrUserNotFound):
				logger.Warn("user not found")
				http.Error(w, "user not found", http.StatusNotFound)
			default:
				logger.Error("failed to place order", slog.Any("error", err))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
			return
		}

		resp := PlaceOrderResponse{
			Message:     "Order placed successfully",
			TokenNumber: tokenNumber,
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}

// OrdersHandler handles POST /orders: returns the authenticated user's
// full order history in creation order.
func OrdersHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.OrdersHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		orders, err := orderService.ListOrders(r.Context(), userID)
		if err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				logger.Warn("user not found")
				http.Error(w, "user not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to fetch orders", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		resp := OrdersResponse{
			Message: "Orders fetched successfully",
			Orders:  orders,
		}
		if resp.Orders == nil {
			resp.Orders = []*models.Order{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}
