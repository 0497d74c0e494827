package models

import "time"

// Subscriber is a newsletter subscription record stored in PostgreSQL.
type Subscriber struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Language     string    `json:"language" gorm:"default:en"`
	Unsubscribed bool      `json:"unsubscribed" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ContactMessage is a contact-form submission stored in PostgreSQL.
type ContactMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// SubscribeRequest defines the request body for a newsletter signup.
type SubscribeRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Language string `json:"language,omitempty"`
}

// ContactRequest defines the request body for a contact-form submission.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject,omitempty" validate:"omitempty,max=300"`
	Body    string `json:"body" validate:"required,min=1"`
}
