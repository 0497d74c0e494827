package repositories

import (
	"github.com/newsbridge/backend/internal/apperrors"
	"github.com/newsbridge/backend/internal/models"
	"gorm.io/gorm"
)

// ContactRepository defines the contact-form data operations.
type ContactRepository interface {
	Create(msg *models.ContactMessage) error
}

// PostgresContactRepository implements ContactRepository for PostgreSQL.
type PostgresContactRepository struct {
	db *gorm.DB
}

// NewPostgresContactRepository creates a new PostgresContactRepository.
func NewPostgresContactRepository(db *gorm.DB) *PostgresContactRepository {
	return &PostgresContactRepository{db: db}
}

// Create stores a contact-form submission.
func (r *PostgresContactRepository) Create(msg *models.ContactMessage) error {
	if err := r.db.Create(msg).Error; err != nil {
		return apperrors.Infra("create contact message", err)
	}
	return nil
}
