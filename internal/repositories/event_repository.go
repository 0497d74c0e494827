package repositories

import (
	"context"
	"time"

	"github.com/newsbridge/backend/internal/apperrors"
	"github.com/newsbridge/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EventRepository defines the event data operations. Status filtering happens
// on dates, not on the stored status hint, so listings stay correct as time
// passes without rewrites.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetBySlug(ctx context.Context, slug string) (*models.Event, error)
	Find(ctx context.Context, filter models.EventFilter, now time.Time) ([]models.Event, error)
	FindRelated(ctx context.Context, category, excludeSlug string, now time.Time, limit int64) ([]models.Event, error)
	IncrementViews(ctx context.Context, slug string) error
	SlugInUse(ctx context.Context, slug string) (bool, error)
}

// MongoEventRepository implements EventRepository for MongoDB.
type MongoEventRepository struct {
	collection *mongo.Collection
}

// NewMongoEventRepository creates a new MongoEventRepository.
func NewMongoEventRepository(db *mongo.Database) *MongoEventRepository {
	return &MongoEventRepository{collection: db.Collection("events")}
}

// Create inserts a new event.
func (r *MongoEventRepository) Create(ctx context.Context, event *models.Event) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	event.ID = primitive.NewObjectID()
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	if _, err := r.collection.InsertOne(ctx, event); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrConflict
		}
		return apperrors.Infra("insert event", err)
	}
	return nil
}

// GetBySlug retrieves an event by slug. Views are not touched here; the
// client triggers the increment separately.
func (r *MongoEventRepository) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var event models.Event
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&event)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Infra("find event by slug", err)
	}
	return &event, nil
}

// statusFilter translates a requested status into a date predicate.
func statusFilter(status models.EventStatus, now time.Time) bson.M {
	switch status {
	case models.EventUpcoming:
		return bson.M{"event_date": bson.M{"$gt": now}}
	case models.EventOngoing:
		return bson.M{
			"event_date": bson.M{"$lte": now},
			"end_date":   bson.M{"$gt": now},
		}
	case models.EventPast:
		return bson.M{
			"event_date": bson.M{"$lte": now},
			"$or": bson.A{
				bson.M{"end_date": bson.M{"$lte": now}},
				bson.M{"end_date": nil},
			},
		}
	default:
		return bson.M{}
	}
}

// Find lists events matching the filter. Default order is event date
// descending; filtering for upcoming flips to ascending so the nearest event
// comes first.
func (r *MongoEventRepository) Find(ctx context.Context, filter models.EventFilter, now time.Time) ([]models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := statusFilter(filter.Status, now)
	if filter.Language != "" {
		query["language"] = filter.Language
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Featured != nil {
		query["featured"] = *filter.Featured
	}

	order := -1
	if filter.Status == models.EventUpcoming {
		order = 1
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "event_date", Value: order}}).
		SetMaxTime(queryTimeout)
	if filter.Limit > 0 {
		findOptions.SetLimit(filter.Limit)
	}

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, apperrors.Infra("find events", err)
	}
	defer cursor.Close(ctx)

	events := []models.Event{}
	if err = cursor.All(ctx, &events); err != nil {
		return nil, apperrors.Infra("decode events", err)
	}
	return events, nil
}

// FindRelated lists events in the same category first, newest by event date,
// then tops up a short result with upcoming events from any category. The
// event itself is always excluded.
func (r *MongoEventRepository) FindRelated(ctx context.Context, category, excludeSlug string, now time.Time, limit int64) ([]models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := bson.M{"slug": bson.M{"$ne": excludeSlug}}
	if category != "" {
		query["category"] = category
	}

	events, err := r.findRelatedPage(ctx, query, -1, limit)
	if err != nil {
		return nil, err
	}
	if int64(len(events)) >= limit {
		return events, nil
	}

	// Fill the remainder with upcoming events, nearest first, skipping
	// anything the category pass already returned.
	exclude := bson.A{excludeSlug}
	for _, e := range events {
		exclude = append(exclude, e.Slug)
	}
	fillQuery := bson.M{
		"slug":       bson.M{"$nin": exclude},
		"event_date": bson.M{"$gt": now},
	}
	fill, err := r.findRelatedPage(ctx, fillQuery, 1, limit-int64(len(events)))
	if err != nil {
		return nil, err
	}
	return append(events, fill...), nil
}

func (r *MongoEventRepository) findRelatedPage(ctx context.Context, query bson.M, order int, limit int64) ([]models.Event, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "event_date", Value: order}}).
		SetLimit(limit).
		SetMaxTime(queryTimeout)

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, apperrors.Infra("find related events", err)
	}
	defer cursor.Close(ctx)

	events := []models.Event{}
	if err = cursor.All(ctx, &events); err != nil {
		return nil, apperrors.Infra("decode related events", err)
	}
	return events, nil
}

// IncrementViews bumps the event's view counter by one.
func (r *MongoEventRepository) IncrementViews(ctx context.Context, slug string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx, bson.M{"slug": slug}, bson.M{"$inc": bson.M{"views_count": 1}})
	if err != nil {
		return apperrors.Infra("increment event views", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SlugInUse reports whether an event already owns the slug.
func (r *MongoEventRepository) SlugInUse(ctx context.Context, slug string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"slug": slug})
	if err != nil {
		return false, apperrors.Infra("count events by slug", err)
	}
	return count > 0, nil
}

// EnsureIndexes creates the unique slug index and the listing index.
func (r *MongoEventRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "event_date", Value: -1}}},
	})
	if err != nil {
		return apperrors.Infra("create event indexes", err)
	}
	return nil
}
