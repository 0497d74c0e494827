package repositories

import (
	"errors"

	"github.com/newsbridge/backend/internal/apperrors"
	"github.com/newsbridge/backend/internal/models"
	"gorm.io/gorm"
)

// SubscriberRepository defines the newsletter subscription data operations.
type SubscriberRepository interface {
	GetByEmail(email string) (*models.Subscriber, error)
	Create(sub *models.Subscriber) error
	Update(sub *models.Subscriber) error
}

// PostgresSubscriberRepository implements SubscriberRepository for PostgreSQL.
type PostgresSubscriberRepository struct {
	db *gorm.DB
}

// NewPostgresSubscriberRepository creates a new PostgresSubscriberRepository.
func NewPostgresSubscriberRepository(db *gorm.DB) *PostgresSubscriberRepository {
	return &PostgresSubscriberRepository{db: db}
}

// translateGormError maps gorm sentinel errors to the application taxonomy.
// Relies on gorm.Config{TranslateError: true} so driver-level unique
// violations arrive as gorm.ErrDuplicatedKey.
func translateGormError(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrConflict
	default:
		return apperrors.Infra(op, err)
	}
}

// GetByEmail retrieves a subscriber by email.
func (r *PostgresSubscriberRepository) GetByEmail(email string) (*models.Subscriber, error) {
	var sub models.Subscriber
	if err := r.db.Where("email = ?", email).First(&sub).Error; err != nil {
		return nil, translateGormError("find subscriber", err)
	}
	return &sub, nil
}

// Create inserts a new subscriber. A unique-email violation, such as two
// concurrent subscriptions racing past the pre-check, maps to a conflict.
func (r *PostgresSubscriberRepository) Create(sub *models.Subscriber) error {
	if err := r.db.Create(sub).Error; err != nil {
		return translateGormError("create subscriber", err)
	}
	return nil
}

// Update saves changes to an existing subscriber.
func (r *PostgresSubscriberRepository) Update(sub *models.Subscriber) error {
	if err := r.db.Save(sub).Error; err != nil {
		return translateGormError("update subscriber", err)
	}
	return nil
}
