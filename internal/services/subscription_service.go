package services

import (
	"strings"

	"github.com/newsbridge/backend/internal/apperrors"
	"github.com/newsbridge/backend/internal/models"
	"github.com/newsbridge/backend/internal/repositories"
)

// SubscriptionService handles newsletter signups and contact-form intake.
type SubscriptionService interface {
	Subscribe(req *models.SubscribeRequest) (*models.Subscriber, error)
	Unsubscribe(email string) error
	SubmitContact(req *models.ContactRequest) (*models.ContactMessage, error)
}

type subscriptionService struct {
	subscribers repositories.SubscriberRepository
	contacts    repositories.ContactRepository
}

// NewSubscriptionService creates the subscription service.
func NewSubscriptionService(subscribers repositories.SubscriberRepository, contacts repositories.ContactRepository) SubscriptionService {
	return &subscriptionService{subscribers: subscribers, contacts: contacts}
}

// Subscribe registers the email. Resubscribing a previously unsubscribed
// address reactivates it; an active duplicate is a conflict.
func (s *subscriptionService) Subscribe(req *models.SubscribeRequest) (*models.Subscriber, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	language := req.Language
	if !knownLanguages[language] {
		language = "en"
	}

	existing, err := s.subscribers.GetByEmail(email)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if existing != nil {
		if !existing.Unsubscribed {
			return nil, apperrors.ErrConflict
		}
		existing.Unsubscribed = false
		existing.Language = language
		if err := s.subscribers.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	sub := &models.Subscriber{Email: email, Language: language}
	if err := s.subscribers.Create(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Unsubscribe flags the subscription as inactive.
func (s *subscriptionService) Unsubscribe(email string) error {
	sub, err := s.subscribers.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if sub.Unsubscribed {
		return nil
	}
	sub.Unsubscribed = true
	return s.subscribers.Update(sub)
}

// SubmitContact stores a contact-form submission.
func (s *subscriptionService) SubmitContact(req *models.ContactRequest) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Body,
	}
	if err := s.contacts.Create(msg); err != nil {
		return nil, err
	}
	return msg, nil
}
