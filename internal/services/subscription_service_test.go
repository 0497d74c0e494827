package services

import (
	"testing"

	"github.com/newsbridge/backend/internal/apperrors"
	"github.com/newsbridge/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscriberRepo struct {
	subs map[string]*models.Subscriber
}

func newFakeSubscriberRepo() *fakeSubscriberRepo {
	return &fakeSubscriberRepo{subs: map[string]*models.Subscriber{}}
}

func (f *fakeSubscriberRepo) GetByEmail(email string) (*models.Subscriber, error) {
	if sub, ok := f.subs[email]; ok {
		copied := *sub
		return &copied, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeSubscriberRepo) Create(sub *models.Subscriber) error {
	if _, ok := f.subs[sub.Email]; ok {
		return apperrors.ErrConflict
	}
	sub.ID = uint(len(f.subs) + 1)
	copied := *sub
	f.subs[sub.Email] = &copied
	return nil
}

func (f *fakeSubscriberRepo) Update(sub *models.Subscriber) error {
	copied := *sub
	f.subs[sub.Email] = &copied
	return nil
}

type fakeContactRepo struct {
	messages []models.ContactMessage
}

func (f *fakeContactRepo) Create(msg *models.ContactMessage) error {
	msg.ID = uint(len(f.messages) + 1)
	f.messages = append(f.messages, *msg)
	return nil
}

func TestSubscribe_NormalizesAndRejectsActiveDuplicate(t *testing.T) {
	repo := newFakeSubscriberRepo()
	svc := NewSubscriptionService(repo, &fakeContactRepo{})

	sub, err := svc.Subscribe(&models.SubscribeRequest{Email: "  Reader@Example.COM ", Language: "es"})
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", sub.Email)
	assert.Equal(t, "es", sub.Language)

	_, err = svc.Subscribe(&models.SubscribeRequest{Email: "reader@example.com"})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestSubscribe_ReactivatesUnsubscribed(t *testing.T) {
	repo := newFakeSubscriberRepo()
	svc := NewSubscriptionService(repo, &fakeContactRepo{})

	_, err := svc.Subscribe(&models.SubscribeRequest{Email: "reader@example.com"})
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe("reader@example.com"))

	sub, err := svc.Subscribe(&models.SubscribeRequest{Email: "reader@example.com"})
	require.NoError(t, err)
	assert.False(t, sub.Unsubscribed)
}

func TestSubscribe_UnknownLanguageDefaults(t *testing.T) {
	repo := newFakeSubscriberRepo()
	svc := NewSubscriptionService(repo, &fakeContactRepo{})

	sub, err := svc.Subscribe(&models.SubscribeRequest{Email: "reader@example.com", Language: "tlh"})
	require.NoError(t, err)
	assert.Equal(t, "en", sub.Language)
}

func TestSubmitContact(t *testing.T) {
	contacts := &fakeContactRepo{}
	svc := NewSubscriptionService(newFakeSubscriberRepo(), contacts)

	msg, err := svc.SubmitContact(&models.ContactRequest{
		Name:  "Ana",
		Email: "ana@example.com",
		Body:  "Correction on yesterday's article.",
	})
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)
	require.Len(t, contacts.messages, 1)
}
