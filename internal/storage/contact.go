package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dipalrana/restaurant-backend/internal/domain/models"
)

// ContactStorage persists contact-form submissions.
type ContactStorage interface {
	CreateMessage(ctx context.Context, msg *models.ContactMessage) error
}

type contactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) ContactStorage {
	return &contactRepository{db: db}
}

func (r *contactRepository) CreateMessage(ctx context.Context, msg *models.ContactMessage) error {
	query := `INSERT INTO contact_messages (name, email, message, created_at)
	          VALUES ($1, $2, $3, NOW())`
	_, err := r.db.ExecContext(ctx, query, msg.Name, msg.Email, msg.Message)
	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}
