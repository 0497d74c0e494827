package models

import "github.com/newsbridge/backend/internal/apperrors"

var (
	errInvalidStructuredData = apperrors.NewValidation("structured_data", "must be valid JSON")
	errScheduledNeedsDate    = apperrors.NewValidation("publish_date", "required when publish_status is scheduled")
	errScheduledPastDate     = apperrors.NewValidation("publish_date", "must be in the future when publish_status is scheduled")
)
