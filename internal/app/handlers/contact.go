package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dipalrana/restaurant-backend/internal/service"
)

// ContactRequest is the request body for POST /contact.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

type ContactResponse struct {
	Message string `json:"message"`
}

// ContactHandler handles POST /contact, storing a feedback-form
// submission. No authentication required.
func ContactHandler(log *slog.Logger, contactService service.ContactService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ContactHandler"
		logger := log.With(slog.String("op", op))

		var req ContactRequest
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

		if err := contactService.Submit(r.Context(), req.Name, req.Email, req.Message); err != nil {
			logger.Error("failed to submit contact message", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(ContactResponse{Message: "Message sent successfully!"}); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}
