package services

import (
	"context"
	"time"

	"github.com/newsbridge/backend/internal/apperrors"
	"github.com/newsbridge/backend/internal/models"
	"github.com/newsbridge/backend/internal/repositories"
)

const defaultRelatedEvents = 4

// EventService serves the event listings and detail pages.
//
// Unlike posts, fetching an event detail does not bump its view counter; the
// front end triggers IncrementViews in a separate call. Kept as observed in
// production rather than unified with the post path.
type EventService interface {
	ListEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*models.Event, error)
	GetRelatedEvents(ctx context.Context, slug string, limit int64) ([]models.Event, error)
	IncrementViews(ctx context.Context, slug string) error
	CreateEvent(ctx context.Context, req *models.CreateEventRequest) (*models.Event, error)
}

type eventService struct {
	events repositories.EventRepository
	now    func() time.Time
}

// NewEventService creates the event service.
func NewEventService(events repositories.EventRepository) EventService {
	return &eventService{events: events, now: time.Now}
}

// ListEvents lists events matching the filter with statuses recomputed from
// the current time. An unknown status value degrades to "no status filter".
func (s *eventService) ListEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	switch filter.Status {
	case models.EventUpcoming, models.EventOngoing, models.EventPast, "":
	default:
		filter.Status = ""
	}
	filter.Language = languageFilter(filter.Language)

	now := s.now()
	events, err := s.events.Find(ctx, filter, now)
	if err != nil {
		return nil, err
	}
	for i := range events {
		events[i].RefreshStatus(now)
	}
	return events, nil
}

// GetEventBySlug fetches an event without touching its view counter.
func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*models.Event, error) {
	event, err := s.events.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	event.RefreshStatus(s.now())
	return event, nil
}

// GetRelatedEvents lists other events in the same category, topped up with
// upcoming events when the category alone cannot fill the limit.
func (s *eventService) GetRelatedEvents(ctx context.Context, slug string, limit int64) ([]models.Event, error) {
	event, err := s.events.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultRelatedEvents
	}

	now := s.now()
	related, err := s.events.FindRelated(ctx, event.Category, slug, now, limit)
	if err != nil {
		return nil, err
	}
	for i := range related {
		related[i].RefreshStatus(now)
	}
	return related, nil
}

// IncrementViews bumps the event view counter. Called by the client after
// rendering the detail page.
func (s *eventService) IncrementViews(ctx context.Context, slug string) error {
	return s.events.IncrementViews(ctx, slug)
}

// CreateEvent derives or accepts a slug, rejects collisions and stores the
// event with its initial status computed from the dates.
func (s *eventService) CreateEvent(ctx context.Context, req *models.CreateEventRequest) (*models.Event, error) {
	slug := req.Slug
	if slug == "" {
		slug = slugify(req.Title)
	}
	if slug == "" {
		return nil, apperrors.NewValidation("slug", "could not derive a slug from the title")
	}
	inUse, err := s.events.SlugInUse(ctx, slug)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, apperrors.ErrConflict
	}
	if req.EndDate != nil && req.EndDate.Before(req.EventDate) {
		return nil, apperrors.NewValidation("end_date", "must not be before event_date")
	}

	event := &models.Event{
		Slug:            slug,
		Title:           req.Title,
		Description:     req.Description,
		Image:           req.Image,
		Location:        req.Location,
		Category:        req.Category,
		Language:        req.Language,
		EventDate:       req.EventDate,
		EndDate:         req.EndDate,
		Featured:        req.Featured,
		Tags:            req.Tags,
		RegistrationURL: req.RegistrationURL,
	}
	if event.Language == "" {
		event.Language = "en"
	}
	event.RefreshStatus(s.now())

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}
