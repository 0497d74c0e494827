package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventStatus is the temporal state of an event relative to now.
type EventStatus string

const (
	EventUpcoming EventStatus = "upcoming"
	EventOngoing  EventStatus = "ongoing"
	EventPast     EventStatus = "past"
)

// Event is a standalone calendar item, separate from Post. Its Category is a
// free string, not a Category reference.
type Event struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Slug        string             `json:"slug" bson:"slug"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Image       string             `json:"image" bson:"image"`
	Location    string             `json:"location" bson:"location"`
	Category    string             `json:"category,omitempty" bson:"category,omitempty"`
	Language    string             `json:"language" bson:"language"`
	EventDate   time.Time          `json:"event_date" bson:"event_date"`
	EndDate     *time.Time         `json:"end_date,omitempty" bson:"end_date,omitempty"`
	// Status is persisted as a hint only; every read recomputes it from the
	// dates. See ComputeEventStatus.
	Status          EventStatus `json:"status" bson:"status"`
	Featured        bool        `json:"featured" bson:"featured"`
	Tags            []string    `json:"tags,omitempty" bson:"tags,omitempty"`
	RegistrationURL string      `json:"registration_url,omitempty" bson:"registration_url,omitempty"`
	ViewsCount      int64       `json:"views_count" bson:"views_count"`
	CreatedAt       time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" bson:"updated_at"`
}

// ComputeEventStatus derives the authoritative status from the event dates.
// The stored status field is never trusted.
func ComputeEventStatus(eventDate time.Time, endDate *time.Time, now time.Time) EventStatus {
	if now.Before(eventDate) {
		return EventUpcoming
	}
	if endDate != nil && now.Before(*endDate) {
		return EventOngoing
	}
	return EventPast
}

// RefreshStatus overwrites the stored status hint with the derived value.
func (e *Event) RefreshStatus(now time.Time) {
	e.Status = ComputeEventStatus(e.EventDate, e.EndDate, now)
}

// CreateEventRequest defines the request body for creating a new event.
type CreateEventRequest struct {
	Slug            string     `json:"slug,omitempty" validate:"omitempty,max=200"`
	Title           string     `json:"title" validate:"required,min=1,max=300"`
	Description     string     `json:"description" validate:"required,min=1"`
	Image           string     `json:"image" validate:"required,url,startswith=http"`
	Location        string     `json:"location" validate:"required,min=1"`
	Category        string     `json:"category,omitempty"`
	Language        string     `json:"language,omitempty"`
	EventDate       time.Time  `json:"event_date" validate:"required"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Featured        bool       `json:"featured,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
	RegistrationURL string     `json:"registration_url,omitempty" validate:"omitempty,url,startswith=http"`
}

// EventFilter narrows an event listing. Zero values mean "no filter";
// Status=="upcoming" flips the sort to event date ascending.
type EventFilter struct {
	Language string
	Category string
	Status   EventStatus
	Featured *bool
	Limit    int64
}
