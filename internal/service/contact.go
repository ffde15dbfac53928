package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dipalrana/restaurant-backend/internal/domain/models"
	"github.com/dipalrana/restaurant-backend/internal/storage"
)

// ContactService stores feedback-form submissions.
type ContactService interface {
	Submit(ctx context.Context, name, email, message string) error
}

type contactService struct {
	log         *slog.Logger
	contactRepo storage.ContactStorage
}

func NewContactService(log *slog.Logger, contactRepo storage.ContactStorage) ContactService {
	return &contactService{
		log:         log,
		contactRepo: contactRepo,
	}
}

func (s *contactService) Submit(ctx context.Context, name, email, message string) error {
	const op = "service.ContactService.Submit"
	logger := s.log.With(slog.String("op", op), slog.String("email", email))

	msg := &models.ContactMessage{
		Name:    name,
		Email:   email,
		Message: message,
	}
	if err := s.contactRepo.CreateMessage(ctx, msg); err != nil {
		logger.Error("failed to store contact message", slog.Any("error", err))
		return fmt.Errorf("%s: failed to store contact message: %w", op, err)
	}

	logger.Info("contact message stored")
	return nil
}
